package validation

import "github.com/weknowyourgame/wa-commerce-backend/internal/whatsapp"

// IntentRequest is the body of POST /ai/intent.
type IntentRequest struct {
	Message     string `json:"message" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,min=7"`
}

// SendMessageRequest is the body of POST /api/whatsapp/send-message.
type SendMessageRequest struct {
	To      string `json:"to" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// SendInteractiveRequest is the body of POST /api/whatsapp/send-interactive.
type SendInteractiveRequest struct {
	To     string          `json:"to" validate:"required"`
	Type   string          `json:"type" validate:"required,oneof=button list"`
	Header string          `json:"header" validate:"omitempty"`
	Body   string          `json:"body" validate:"required"`
	Action whatsapp.Action `json:"action" validate:"required"`
}

// CustomerOrdersRequest is the body of POST /api/orders.
type CustomerOrdersRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required"`
}

// OrderStatusRequest is the body of PUT /api/orders/:id/status.
type OrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING CONFIRMED FAILED"`
}
