package prompts

import (
	"fmt"

	"github.com/weknowyourgame/wa-commerce-backend/internal/domain"
)

const intentPromptTemplate = `You are an intent classifier. Your job is to analyze the user's message and classify what they want.

Possible intents:
- %s: User wants to see the products
- %s: User wants to order a product (include product ID if mentioned)
- %s: User wants info on a specific product (include product ID if mentioned)
- %s: User wants info related to the business (e.g. opening hours, company story)
- %s: User just wants to chat (small talk, greetings, jokes)
- %s: User wants payment link, payment method, or info
- %s: User wants info on all of their past/current orders
- %s: User wants info about a specific order (include order ID if mentioned)
- %s: User wants to confirm an order (include order ID if mentioned)

Instructions:
- Respond ONLY with a JSON object and nothing else.
- Use this format:
{
  "intent": "%s",
  "targetId": "ID if relevant"
}
- targetId can be omitted if there's no specific product or order.
- Never add extra text, explanation, or preamble.
- Never guess IDs. Only include targetId if user clearly mentions it.

User message:
"%s"`

// BuildIntentPrompt builds the fixed instructional prompt that directs the
// backend to answer with only a JSON {intent, targetId?} object.
func BuildIntentPrompt(userMessage string) string {
	return fmt.Sprintf(intentPromptTemplate,
		domain.IntentViewProducts,
		domain.IntentOrderProduct,
		domain.IntentProductInfo,
		domain.IntentBusinessInfo,
		domain.IntentGeneralChat,
		domain.IntentPaymentInfo,
		domain.IntentAllOrdersInfo,
		domain.IntentSingleOrderInfo,
		domain.IntentConfirmOrder,
		domain.IntentViewProducts,
		userMessage,
	)
}
