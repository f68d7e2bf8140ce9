package domain

import (
	"encoding/json"
	"time"
)

// Intent is the classified purpose of an inbound customer message.
type Intent string

const (
	IntentViewProducts    Intent = "VIEW_PRODUCTS"
	IntentOrderProduct    Intent = "ORDER_PRODUCT"
	IntentProductInfo     Intent = "PRODUCT_INFO"
	IntentBusinessInfo    Intent = "BUSINESS_INFO"
	IntentGeneralChat     Intent = "GENERAL_CHAT"
	IntentPaymentInfo     Intent = "PAYMENT_INFO"
	IntentAllOrdersInfo   Intent = "ALL_ORDERS_INFO"
	IntentSingleOrderInfo Intent = "SINGLE_ORDER_INFO"
	IntentConfirmOrder    Intent = "CONFIRM_ORDER"
)

// ParseIntent maps a raw classifier string to a known Intent.
// Unknown values report ok=false so callers can fall back to GENERAL_CHAT.
func ParseIntent(s string) (Intent, bool) {
	switch Intent(s) {
	case IntentViewProducts, IntentOrderProduct, IntentProductInfo,
		IntentBusinessInfo, IntentGeneralChat, IntentPaymentInfo,
		IntentAllOrdersInfo, IntentSingleOrderInfo, IntentConfirmOrder:
		return Intent(s), true
	}
	return IntentGeneralChat, false
}

// IntentResult is the outcome of classifying one inbound message.
type IntentResult struct {
	Intent   Intent `json:"intent"`
	TargetID string `json:"targetId,omitempty"`
}

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusFailed    OrderStatus = "FAILED"
)

// ValidOrderStatus reports whether s is one of the three order states.
func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusFailed:
		return true
	}
	return false
}

// BusinessInfo is the merchant-editable profile blob stored as JSON.
type BusinessInfo struct {
	Name        string `json:"name,omitempty"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	Address     string `json:"address,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

type Merchant struct {
	ID                  string       `json:"id"`
	UserID              string       `json:"userId"`
	UPINumber           string       `json:"upiNumber,omitempty"`
	APIToken            string       `json:"-"`
	Website             string       `json:"website,omitempty"`
	BusinessInfo        BusinessInfo `json:"businessInfo"`
	PhoneNumberID       string       `json:"phoneNumberId,omitempty"`
	WhatsAppAccessToken string       `json:"-"`
	IsOnboarded         bool         `json:"isOnboarded"`
	OnboardingStep      int          `json:"onboardingStep"`
	CreatedAt           time.Time    `json:"createdAt"`
	UpdatedAt           time.Time    `json:"updatedAt"`
}

type Product struct {
	ID          string    `json:"id"`
	MerchantID  string    `json:"merchantId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Order struct {
	ID         string      `json:"id"`
	CustomerID string      `json:"customerId"`
	MerchantID string      `json:"merchantId"`
	ProductID  string      `json:"productId"`
	TxnID      string      `json:"txnId,omitempty"`
	Amount     float64     `json:"amount"`
	Status     OrderStatus `json:"status"`
	PaidAt     *time.Time  `json:"paidAt,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`

	// Joined for display; not columns on the order row itself.
	ProductName   string `json:"productName,omitempty"`
	CustomerPhone string `json:"customerPhone,omitempty"`
}

type Customer struct {
	ID        string    `json:"id"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MerchantContext is the read-only snapshot one pipeline run works against.
// It is loaded as one logical read and never cached across runs.
type MerchantContext struct {
	Merchant Merchant
	Products []Product
	Orders   []Order
}

// WebhookEvent is an append-only audit record of channel traffic.
type WebhookEvent struct {
	ID         string          `json:"id"`
	Payload    json.RawMessage `json:"payload"`
	MerchantID string          `json:"merchantId"`
	ReceivedAt time.Time       `json:"receivedAt"`
}

// ContextSummary is the bounded context digest echoed in AIResponse.
type ContextSummary struct {
	ProductsCount int    `json:"productsCount"`
	OrdersCount   int    `json:"ordersCount"`
	BusinessName  string `json:"businessName"`
}

type AIResponseData struct {
	Response string         `json:"response"`
	Intent   Intent         `json:"intent"`
	TargetID string         `json:"targetId,omitempty"`
	Context  ContextSummary `json:"context"`
}

// AIResponse is the terminal envelope of one pipeline run.
type AIResponse struct {
	Success bool            `json:"success"`
	Data    *AIResponseData `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Error codes carried on failure envelopes.
const (
	ErrorInvalidToken  = "INVALID_TOKEN"
	ErrorConfigMissing = "CONFIG_MISSING"
	ErrorUpstream      = "UPSTREAM_FAILED"
)
