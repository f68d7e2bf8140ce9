package prompts

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weknowyourgame/wa-commerce-backend/internal/domain"
)

var allIntents = []domain.Intent{
	domain.IntentViewProducts,
	domain.IntentOrderProduct,
	domain.IntentProductInfo,
	domain.IntentBusinessInfo,
	domain.IntentGeneralChat,
	domain.IntentPaymentInfo,
	domain.IntentAllOrdersInfo,
	domain.IntentSingleOrderInfo,
	domain.IntentConfirmOrder,
}

func sampleContext() *domain.MerchantContext {
	return &domain.MerchantContext{
		Merchant: domain.Merchant{
			ID:        "m1",
			UPINumber: "store@upi",
			BusinessInfo: domain.BusinessInfo{
				Name:     "Widget World",
				Category: "Retail",
			},
		},
		Products: []domain.Product{
			{ID: "p1", Name: "Widget", Price: 100, Description: "A fine widget"},
			{ID: "p2", Name: "Gadget", Price: 250},
		},
		Orders: []domain.Order{
			{ID: "o1", ProductID: "p1", ProductName: "Widget", Amount: 100,
				Status: domain.OrderStatusPending, CreatedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)},
			{ID: "o2", ProductID: "p2", ProductName: "Gadget", Amount: 250,
				Status: domain.OrderStatusConfirmed, CreatedAt: time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)},
		},
	}
}

func TestRouteIsTotal(t *testing.T) {
	contexts := map[string]*domain.MerchantContext{
		"empty":     {},
		"populated": sampleContext(),
	}
	targets := []string{"", "p1", "o1", "does-not-exist"}

	intents := append([]domain.Intent{}, allIntents...)
	intents = append(intents, domain.Intent("SOMETHING_NEW"))

	for name, ctx := range contexts {
		for _, intent := range intents {
			for _, target := range targets {
				t.Run(fmt.Sprintf("%s/%s/target=%q", name, intent, target), func(t *testing.T) {
					prompt := Route(intent, "hello there", ctx, target)
					assert.NotEmpty(t, prompt)
				})
			}
		}
	}
}

func TestRouteIsPure(t *testing.T) {
	ctx := sampleContext()
	for _, intent := range allIntents {
		first := Route(intent, "what do you have?", ctx, "p1")
		second := Route(intent, "what do you have?", ctx, "p1")
		assert.Equal(t, first, second, "intent %s", intent)
	}
}

func TestProductInfoIncludesProductDetails(t *testing.T) {
	ctx := sampleContext()
	prompt := Route(domain.IntentProductInfo, "tell me about the widget", ctx, "p1")

	assert.Contains(t, prompt, "p1")
	assert.Contains(t, prompt, "Widget")
	assert.Contains(t, prompt, "100")
}

func TestProductInfoUnresolvableTargetDisambiguates(t *testing.T) {
	ctx := sampleContext()
	prompt := Route(domain.IntentProductInfo, "tell me about it", ctx, "nope")

	assert.Contains(t, prompt, "couldn't identify which one")
	// Disambiguation lists the full catalog.
	assert.Contains(t, prompt, "Widget")
	assert.Contains(t, prompt, "Gadget")
}

func TestAllOrdersEmptyListStatesNoOrders(t *testing.T) {
	prompt := Route(domain.IntentAllOrdersInfo, "where are my orders", &domain.MerchantContext{}, "")
	assert.Contains(t, prompt, "No orders found")
}

func TestViewProductsEmptyCatalog(t *testing.T) {
	prompt := Route(domain.IntentViewProducts, "show products", &domain.MerchantContext{}, "")
	assert.Contains(t, prompt, "No products available")
}

func TestOrderProductAsksForPhoneNumber(t *testing.T) {
	ctx := sampleContext()
	prompt := Route(domain.IntentOrderProduct, "I want the widget", ctx, "p1")

	assert.Contains(t, prompt, "phone number")
	assert.Contains(t, prompt, "Widget")
}

func TestBusinessInfoMissingFieldsFallBack(t *testing.T) {
	ctx := &domain.MerchantContext{Merchant: domain.Merchant{ID: "m1"}}
	prompt := Route(domain.IntentBusinessInfo, "where are you located?", ctx, "")

	assert.Contains(t, prompt, "Not specified")
	assert.Contains(t, prompt, "Not available")
}

func TestPaymentInfoSurfacesUPI(t *testing.T) {
	ctx := sampleContext()
	prompt := Route(domain.IntentPaymentInfo, "how do I pay?", ctx, "")

	assert.Contains(t, prompt, "store@upi")
	assert.Contains(t, prompt, "UPI (Unified Payments Interface)")
}

func TestTargetResolutionIsExact(t *testing.T) {
	ctx := sampleContext()

	// A prefix of a real id must not resolve.
	prompt := Route(domain.IntentSingleOrderInfo, "order o", ctx, "o")
	require.Contains(t, prompt, "couldn't identify which one")

	prompt = Route(domain.IntentSingleOrderInfo, "order o1", ctx, "o1")
	assert.Contains(t, prompt, "Order Details:")
	assert.Contains(t, prompt, "o1")
}
