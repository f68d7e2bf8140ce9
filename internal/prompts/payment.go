package prompts

import (
	"fmt"

	"github.com/weknowyourgame/wa-commerce-backend/internal/domain"
)

// BuildPaymentPrompt surfaces the UPI id and the accepted payment methods.
func BuildPaymentPrompt(userMessage string, merchant domain.Merchant) string {
	info := merchant.BusinessInfo
	return fmt.Sprintf(`You are a helpful assistant for an e-commerce business. The customer is asking about payment information.

Payment Information:
- UPI Number: %s
- Business Name: %s
- Phone: %s

Payment Methods Available:
- UPI (Unified Payments Interface)
- Bank Transfer
- Cash on Delivery (if available)

Instructions:
- Explain the available payment methods clearly
- Provide the UPI number if available
- Explain the payment process step by step
- Be clear about security and safety
- Offer to help with the ordering process
- Keep the tone professional and trustworthy

Customer message: "%s"

Respond in a helpful, conversational tone.`,
		orDefault(merchant.UPINumber, "Not available"),
		orDefault(info.Name, "Not specified"),
		orDefault(info.PhoneNumber, "Not specified"),
		userMessage)
}
