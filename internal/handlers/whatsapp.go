package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/weknowyourgame/wa-commerce-backend/internal/domain"
	"github.com/weknowyourgame/wa-commerce-backend/internal/repository"
	"github.com/weknowyourgame/wa-commerce-backend/internal/validation"
	"github.com/weknowyourgame/wa-commerce-backend/internal/whatsapp"
)

// WhatsAppHandler serves the merchant-facing outbound delivery endpoints.
type WhatsAppHandler struct {
	store     *repository.Store
	sender    whatsapp.Sender
	validator *validatorv10.Validate
	logger    *zap.Logger
	nowFunc   func() time.Time
}

func NewWhatsAppHandler(store *repository.Store, sender whatsapp.Sender, logger *zap.Logger) *WhatsAppHandler {
	return &WhatsAppHandler{
		store:     store,
		sender:    sender,
		validator: validation.New(),
		logger:    logger,
		nowFunc:   time.Now,
	}
}

func (h *WhatsAppHandler) merchantFromAuth(c *gin.Context) *domain.Merchant {
	apiToken := bearerToken(c)
	if apiToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "Authorization header with API token is required",
		})
		return nil
	}

	merchant, err := h.store.MerchantByToken(c.Request.Context(), apiToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid API token"})
		return nil
	}
	if merchant.PhoneNumberID == "" || merchant.WhatsAppAccessToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "WhatsApp not configured for this merchant",
		})
		return nil
	}
	return merchant
}

// SendMessage handles POST /api/whatsapp/send-message.
func (h *WhatsAppHandler) SendMessage(c *gin.Context) {
	merchant := h.merchantFromAuth(c)
	if merchant == nil {
		return
	}

	var req validation.SendMessageRequest
	if err := validation.BindAndValidate(c, &req, h.validator); err != nil {
		return
	}

	ctx := c.Request.Context()
	waResp, err := h.sender.SendText(ctx, merchant.PhoneNumberID, merchant.WhatsAppAccessToken, req.To, req.Message)
	if err != nil {
		h.logger.Error("outbound message failed", zap.String("merchant_id", merchant.ID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Failed to send WhatsApp message"})
		return
	}

	h.audit(ctx, merchant.ID, map[string]any{
		"type":              "whatsapp_message_sent",
		"to":                req.To,
		"message":           req.Message,
		"whatsapp_response": json.RawMessage(waResp),
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    json.RawMessage(waResp),
		"message": "Message sent successfully",
	})
}

// SendInteractive handles POST /api/whatsapp/send-interactive.
func (h *WhatsAppHandler) SendInteractive(c *gin.Context) {
	merchant := h.merchantFromAuth(c)
	if merchant == nil {
		return
	}

	var req validation.SendInteractiveRequest
	if err := validation.BindAndValidate(c, &req, h.validator); err != nil {
		return
	}

	interactive := whatsapp.Interactive{
		Type:   req.Type,
		Body:   whatsapp.Body{Text: req.Body},
		Action: req.Action,
	}
	if req.Header != "" {
		interactive.Header = &whatsapp.Header{Type: "text", Text: req.Header}
	}

	ctx := c.Request.Context()
	waResp, err := h.sender.SendInteractive(ctx, merchant.PhoneNumberID, merchant.WhatsAppAccessToken, req.To, interactive)
	if err != nil {
		h.logger.Error("outbound interactive message failed", zap.String("merchant_id", merchant.ID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Failed to send interactive WhatsApp message"})
		return
	}

	h.audit(ctx, merchant.ID, map[string]any{
		"type":              "whatsapp_interactive_message_sent",
		"to":                req.To,
		"interactive_type":  req.Type,
		"action":            req.Action,
		"whatsapp_response": json.RawMessage(waResp),
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    json.RawMessage(waResp),
		"message": "Interactive message sent successfully",
	})
}

func (h *WhatsAppHandler) audit(ctx context.Context, merchantID string, fields map[string]any) {
	payload, err := json.Marshal(fields)
	if err != nil {
		h.logger.Error("audit payload marshal failed", zap.Error(err))
		return
	}
	ev := domain.WebhookEvent{
		ID:         uuid.NewString(),
		Payload:    payload,
		MerchantID: merchantID,
		ReceivedAt: h.nowFunc(),
	}
	if err := h.store.InsertWebhookEvent(ctx, ev); err != nil {
		h.logger.Error("audit insert failed", zap.Error(err))
	}
}
