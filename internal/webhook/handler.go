package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/weknowyourgame/wa-commerce-backend/internal/domain"
	"github.com/weknowyourgame/wa-commerce-backend/internal/whatsapp"
)

// Shown to the end user when their message's pipeline run fails outright.
const fallbackReply = "Sorry, I'm having trouble right now. Please try again in a moment."

// MerchantStore is the persistence surface the ingestor needs: routing-id
// resolution plus the append-only audit sink.
type MerchantStore interface {
	MerchantByPhoneNumberID(ctx context.Context, phoneNumberID string) (*domain.Merchant, error)
	InsertWebhookEvent(ctx context.Context, ev domain.WebhookEvent) error
}

// PipelineRunner runs the message-to-response pipeline for one message.
type PipelineRunner interface {
	Run(ctx context.Context, message, apiToken string) *domain.AIResponse
}

// Ingestor receives WhatsApp webhook traffic and triggers the pipeline once
// per inbound message.
type Ingestor struct {
	store       MerchantStore
	runner      PipelineRunner
	sender      whatsapp.Sender
	dedup       Dedup
	verifyToken string
	logger      *zap.Logger
	nowFunc     func() time.Time
}

func NewIngestor(store MerchantStore, runner PipelineRunner, sender whatsapp.Sender, dedup Dedup, verifyToken string, logger *zap.Logger) *Ingestor {
	return &Ingestor{
		store:       store,
		runner:      runner,
		sender:      sender,
		dedup:       dedup,
		verifyToken: verifyToken,
		logger:      logger,
		nowFunc:     time.Now,
	}
}

// Verify handles GET /webhook: echoes the challenge iff the mode is
// "subscribe" and the token matches the configured secret.
func (in *Ingestor) Verify(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token == in.verifyToken {
		in.logger.Info("webhook verified")
		c.String(http.StatusOK, challenge)
		return
	}
	c.String(http.StatusForbidden, "Forbidden")
}

// Receive handles POST /webhook. Each message in the batch is processed
// independently; a failing pipeline run never aborts its siblings, and the
// channel always gets a prompt 200 so it does not retry-storm us.
func (in *Ingestor) Receive(c *gin.Context) {
	var batch EventBatch
	if err := c.ShouldBindJSON(&batch); err != nil {
		in.logger.Error("webhook body unparseable", zap.Error(err))
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}

	if batch.Object == "whatsapp_business_account" {
		for _, entry := range batch.Entry {
			for _, change := range entry.Changes {
				if change.Field != "messages" {
					continue
				}
				for _, msg := range change.Value.Messages {
					in.processMessage(c.Request.Context(), change.Value.Metadata, msg)
				}
			}
		}
	}

	c.String(http.StatusOK, "OK")
}

func (in *Ingestor) processMessage(ctx context.Context, meta Metadata, msg InboundMessage) {
	defer func() {
		if r := recover(); r != nil {
			in.logger.Error("panic processing webhook message",
				zap.String("message_id", msg.ID), zap.Any("panic", r))
		}
	}()

	if !in.dedup.FirstDelivery(ctx, msg.ID) {
		in.logger.Info("duplicate webhook delivery skipped", zap.String("message_id", msg.ID))
		return
	}

	merchant, err := in.store.MerchantByPhoneNumberID(ctx, meta.PhoneNumberID)
	if err != nil {
		// Unknown routing id: skip silently, the channel must not see an
		// error for an unknown recipient.
		in.logger.Warn("no merchant for phone number id",
			zap.String("phone_number_id", meta.PhoneNumberID))
		return
	}

	in.logger.Info("webhook message received",
		zap.String("merchant_id", merchant.ID),
		zap.String("from", msg.From),
		zap.String("type", msg.Type))

	// Audit first; the reply is dispatched only after the record exists.
	in.audit(ctx, merchant.ID, "whatsapp_message_received", map[string]any{
		"from":         msg.From,
		"message_type": msg.Type,
		"timestamp":    msg.Timestamp,
		"message_data": msg,
	})

	switch msg.Type {
	case "text":
		if msg.Text == nil || msg.Text.Body == "" {
			return
		}
		in.handleText(ctx, merchant, msg)
	case "interactive":
		if msg.Interactive == nil {
			return
		}
		in.handleInteractive(ctx, merchant, msg)
	}
}

func (in *Ingestor) handleText(ctx context.Context, merchant *domain.Merchant, msg InboundMessage) {
	result := in.runner.Run(ctx, msg.Text.Body, merchant.APIToken)

	reply := fallbackReply
	if result != nil && result.Success && result.Data != nil && result.Data.Response != "" {
		reply = result.Data.Response
	}

	in.reply(ctx, merchant, msg.From, reply)
}

// handleInteractive acknowledges a button or list selection with a fixed
// reply naming the selection; the full pipeline is not invoked.
func (in *Ingestor) handleInteractive(ctx context.Context, merchant *domain.Merchant, msg InboundMessage) {
	var selection *Reply
	switch msg.Interactive.Type {
	case "button_reply":
		selection = msg.Interactive.ButtonReply
	case "list_reply":
		selection = msg.Interactive.ListReply
	}
	if selection == nil {
		return
	}

	in.reply(ctx, merchant, msg.From, fmt.Sprintf("Got it! You selected: %s", selection.Title))
}

func (in *Ingestor) reply(ctx context.Context, merchant *domain.Merchant, to, body string) {
	if merchant.PhoneNumberID == "" || merchant.WhatsAppAccessToken == "" {
		in.logger.Warn("merchant has no WhatsApp configuration, dropping reply",
			zap.String("merchant_id", merchant.ID))
		return
	}

	waResp, err := in.sender.SendText(ctx, merchant.PhoneNumberID, merchant.WhatsAppAccessToken, to, body)
	if err != nil {
		in.logger.Error("reply dispatch failed",
			zap.String("merchant_id", merchant.ID), zap.Error(err))
		return
	}

	in.logger.Info("reply delivered", zap.String("merchant_id", merchant.ID))
	in.audit(ctx, merchant.ID, "whatsapp_message_sent", map[string]any{
		"to":                to,
		"message":           body,
		"whatsapp_response": json.RawMessage(waResp),
	})
}

func (in *Ingestor) audit(ctx context.Context, merchantID, eventType string, fields map[string]any) {
	fields["type"] = eventType
	payload, err := json.Marshal(fields)
	if err != nil {
		in.logger.Error("audit payload marshal failed", zap.Error(err))
		return
	}
	ev := domain.WebhookEvent{
		ID:         uuid.NewString(),
		Payload:    payload,
		MerchantID: merchantID,
		ReceivedAt: in.nowFunc(),
	}
	if err := in.store.InsertWebhookEvent(ctx, ev); err != nil {
		in.logger.Error("audit insert failed", zap.Error(err))
	}
}
