package prompts

import (
	"fmt"
	"strings"

	"github.com/weknowyourgame/wa-commerce-backend/internal/domain"
)

func orderList(orders []domain.Order) string {
	if len(orders) == 0 {
		return "No orders found"
	}
	var b strings.Builder
	for i, o := range orders {
		if i > 0 {
			b.WriteString("\n")
		}
		name := o.ProductName
		if name == "" {
			name = "Unknown"
		}
		b.WriteString(fmt.Sprintf("- Order ID: %s, Product: %s, Amount: ₹%s, Status: %s, Date: %s",
			o.ID, name, formatPrice(o.Amount), o.Status, o.CreatedAt.Format("02/01/2006")))
	}
	return b.String()
}

func findOrder(orders []domain.Order, targetID string) *domain.Order {
	if targetID == "" {
		return nil
	}
	for i := range orders {
		if orders[i].ID == targetID {
			return &orders[i]
		}
	}
	return nil
}

// BuildOrdersPrompt handles the order-facing intents: ALL_ORDERS_INFO,
// SINGLE_ORDER_INFO and CONFIRM_ORDER.
func BuildOrdersPrompt(intent domain.Intent, userMessage string, orders []domain.Order, targetID string) string {
	target := findOrder(orders, targetID)

	switch intent {
	case domain.IntentAllOrdersInfo:
		return fmt.Sprintf(`You are a helpful assistant for an e-commerce business. The customer wants to see all their orders.

Customer Orders:
%s

Instructions:
- Present the orders in a clear, organized way
- Mention order status, amounts, and dates
- If no orders exist, inform them politely
- Be helpful and offer assistance
- Keep the tone friendly and professional

Customer message: "%s"

Respond in a helpful, conversational tone.`, orderList(orders), userMessage)

	case domain.IntentSingleOrderInfo:
		if target == nil {
			return fmt.Sprintf(`You are a helpful assistant for an e-commerce business. The customer is asking about a specific order, but we couldn't identify which one.

Customer Orders:
%s

Instructions:
- Ask them to specify which order they're asking about
- List their available orders to help them choose
- Be helpful and guide them to the right order

Customer message: "%s"

Respond in a helpful, conversational tone.`, orderList(orders), userMessage)
		}

		name := target.ProductName
		if name == "" {
			name = "Unknown"
		}
		txn := target.TxnID
		if txn == "" {
			txn = "Not available"
		}
		return fmt.Sprintf(`You are a helpful assistant for an e-commerce business. The customer is asking about a specific order.

Order Details:
- Order ID: %s
- Product: %s
- Amount: ₹%s
- Status: %s
- Date: %s
- Transaction ID: %s

Instructions:
- Provide detailed information about the order
- Explain the current status clearly
- If status is PENDING, explain next steps
- If status is CONFIRMED, confirm payment received
- If status is FAILED, offer assistance
- Be helpful and professional

Customer message: "%s"

Respond in a helpful, conversational tone.`,
			target.ID, name, formatPrice(target.Amount), target.Status,
			target.CreatedAt.Format("02/01/2006"), txn, userMessage)

	case domain.IntentConfirmOrder:
		if target == nil {
			return fmt.Sprintf(`You are a helpful assistant for an e-commerce business. The customer wants to confirm an order, but we couldn't identify which one.

Customer Orders:
%s

Instructions:
- Ask them to specify which order they want to confirm
- List their available orders
- Guide them through the confirmation process
- Be helpful and clear about next steps

Customer message: "%s"

Respond in a helpful, conversational tone.`, orderList(orders), userMessage)
		}

		name := target.ProductName
		if name == "" {
			name = "Unknown"
		}
		return fmt.Sprintf(`You are a helpful assistant for an e-commerce business. The customer wants to confirm an order.

Order to Confirm:
- Order ID: %s
- Product: %s
- Amount: ₹%s
- Current Status: %s

Instructions:
- Confirm the order details with them
- Explain what confirmation means
- If status is PENDING, explain payment process
- If status is already CONFIRMED, inform them
- If status is FAILED, offer to help resolve
- Be clear about next steps
- Be helpful and professional

Customer message: "%s"

Respond in a helpful, conversational tone.`,
			target.ID, name, formatPrice(target.Amount), target.Status, userMessage)

	default:
		return fmt.Sprintf(`You are a helpful assistant for an e-commerce business. The customer is asking about orders.

Customer Orders:
%s

Customer message: "%s"

Respond in a helpful, conversational tone.`, orderList(orders), userMessage)
	}
}
