package prompts

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/weknowyourgame/wa-commerce-backend/internal/domain"
)

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

func productList(products []domain.Product) string {
	if len(products) == 0 {
		return "No products available"
	}
	var b strings.Builder
	for i, p := range products {
		if i > 0 {
			b.WriteString("\n")
		}
		desc := p.Description
		if desc == "" {
			desc = "No description"
		}
		b.WriteString(fmt.Sprintf("- ID: %s, Name: %s, Price: ₹%s, Description: %s",
			p.ID, p.Name, formatPrice(p.Price), desc))
	}
	return b.String()
}

func findProduct(products []domain.Product, targetID string) *domain.Product {
	if targetID == "" {
		return nil
	}
	for i := range products {
		if products[i].ID == targetID {
			return &products[i]
		}
	}
	return nil
}

// BuildProductsPrompt handles the catalog-facing intents: VIEW_PRODUCTS,
// PRODUCT_INFO and ORDER_PRODUCT. An unresolvable target id falls to a
// disambiguation prompt listing the catalog.
func BuildProductsPrompt(intent domain.Intent, userMessage string, products []domain.Product, targetID string) string {
	target := findProduct(products, targetID)

	switch intent {
	case domain.IntentViewProducts:
		return fmt.Sprintf(`You are a helpful assistant for an e-commerce business. The customer wants to see all available products.

Available Products:
%s

Instructions:
- Present the products in a friendly, engaging way
- Mention prices clearly
- Highlight key features if available
- Keep the response conversational and helpful
- If no products are available, politely inform the customer

Customer message: "%s"

Respond in a helpful, conversational tone.`, productList(products), userMessage)

	case domain.IntentProductInfo:
		if target == nil {
			return fmt.Sprintf(`You are a helpful assistant for an e-commerce business. The customer is asking about a specific product, but we couldn't identify which one.

Available Products:
%s

Instructions:
- Ask them to specify which product they're interested in
- List the available products to help them choose
- Be helpful and guide them to the right product

Customer message: "%s"

Respond in a helpful, conversational tone.`, productList(products), userMessage)
		}

		desc := target.Description
		if desc == "" {
			desc = "No description available"
		}
		return fmt.Sprintf(`You are a helpful assistant for an e-commerce business. The customer is asking about a specific product.

Product Details:
- ID: %s
- Name: %s
- Price: ₹%s
- Description: %s

Instructions:
- Provide detailed information about the product
- Highlight its features and benefits
- Mention the price clearly
- Offer to help with ordering if they're interested
- Be enthusiastic and helpful

Customer message: "%s"

Respond in a helpful, conversational tone.`, target.ID, target.Name, formatPrice(target.Price), desc, userMessage)

	case domain.IntentOrderProduct:
		if target == nil {
			return fmt.Sprintf(`You are a helpful assistant for an e-commerce business. The customer wants to order a product, but we couldn't identify which one.

Available Products:
%s

Instructions:
- Ask them to specify which product they want to order
- List the available products with prices
- Guide them through the ordering process
- Be helpful and clear about next steps

Customer message: "%s"

Respond in a helpful, conversational tone.`, productList(products), userMessage)
		}

		desc := target.Description
		if desc == "" {
			desc = "No description available"
		}
		return fmt.Sprintf(`You are a helpful assistant for an e-commerce business. The customer wants to order a product.

Product to Order:
- Name: %s
- Price: ₹%s
- Description: %s

Instructions:
- Confirm the product they want to order
- Explain the ordering process
- Mention payment options (UPI, etc.)
- Ask for their phone number to create the order
- Be clear about next steps
- Be enthusiastic and helpful

Customer message: "%s"

Respond in a helpful, conversational tone.`, target.Name, formatPrice(target.Price), desc, userMessage)

	default:
		return fmt.Sprintf(`You are a helpful assistant for an e-commerce business. The customer is asking about products.

Available Products:
%s

Customer message: "%s"

Respond in a helpful, conversational tone.`, productList(products), userMessage)
	}
}
