package prompts

import (
	"fmt"

	"github.com/weknowyourgame/wa-commerce-backend/internal/domain"
)

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// BuildBusinessPrompt surfaces the merchant profile; missing fields render
// an explicit "Not specified" rather than an empty line.
func BuildBusinessPrompt(userMessage string, merchant domain.Merchant) string {
	info := merchant.BusinessInfo
	return fmt.Sprintf(`You are a helpful assistant for an e-commerce business. The customer is asking about business information.

Business Information:
- Business Name: %s
- Category: %s
- Description: %s
- Address: %s
- Phone: %s
- UPI Number: %s
- Website: %s

Instructions:
- Provide helpful information about the business
- Be friendly and professional
- If information is missing, politely inform them
- Offer to help with products or orders
- Keep the tone conversational and helpful

Customer message: "%s"

Respond in a helpful, conversational tone.`,
		orDefault(info.Name, "Not specified"),
		orDefault(info.Category, "Not specified"),
		orDefault(info.Description, "Not specified"),
		orDefault(info.Address, "Not specified"),
		orDefault(info.PhoneNumber, "Not specified"),
		orDefault(merchant.UPINumber, "Not specified"),
		orDefault(merchant.Website, "Not available"),
		userMessage)
}
