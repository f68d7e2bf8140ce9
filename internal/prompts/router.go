package prompts

import "github.com/weknowyourgame/wa-commerce-backend/internal/domain"

// Route maps a classified intent to its prompt strategy. It is a pure,
// total function: every intent value, including ones no case matches,
// yields a non-empty prompt through the general-chat default.
func Route(intent domain.Intent, userMessage string, ctx *domain.MerchantContext, targetID string) string {
	switch intent {
	case domain.IntentViewProducts, domain.IntentProductInfo, domain.IntentOrderProduct:
		return BuildProductsPrompt(intent, userMessage, ctx.Products, targetID)
	case domain.IntentAllOrdersInfo, domain.IntentSingleOrderInfo, domain.IntentConfirmOrder:
		return BuildOrdersPrompt(intent, userMessage, ctx.Orders, targetID)
	case domain.IntentBusinessInfo:
		return BuildBusinessPrompt(userMessage, ctx.Merchant)
	case domain.IntentPaymentInfo:
		return BuildPaymentPrompt(userMessage, ctx.Merchant)
	default:
		return BuildGeneralPrompt(userMessage)
	}
}
