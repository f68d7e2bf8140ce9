package pipeline

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/weknowyourgame/wa-commerce-backend/internal/domain"
	"github.com/weknowyourgame/wa-commerce-backend/internal/genai"
	"github.com/weknowyourgame/wa-commerce-backend/internal/prompts"
	"github.com/weknowyourgame/wa-commerce-backend/internal/repository"
)

const (
	synthesisMaxTokens = 500
	synthesisSystem    = "You are a helpful AI assistant."

	// Shown to the user when the generation backend fails; synthesis errors
	// never surface as a hard failure.
	apologyMessage = "I'm sorry, I'm having trouble processing your request. How can I help you?"

	invalidTokenMessage = "Invalid API token - no merchant found"
)

// IntentClassifier is the classification step. It fails open and therefore
// has no error return.
type IntentClassifier interface {
	Classify(ctx context.Context, userMessage string) domain.IntentResult
}

// ContextLoader fetches a merchant's bounded context by access token.
type ContextLoader interface {
	LoadContext(ctx context.Context, apiToken string) (*domain.MerchantContext, error)
}

// Pipeline sequences one inbound message through classify, context load,
// prompt routing and synthesis, and assembles the result envelope.
type Pipeline struct {
	classifier IntentClassifier
	loader     ContextLoader
	provider   genai.Provider
	logger     *zap.Logger
}

func New(classifier IntentClassifier, loader ContextLoader, provider genai.Provider, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		classifier: classifier,
		loader:     loader,
		provider:   provider,
		logger:     logger,
	}
}

// Run processes one message end to end. It never returns an error: every
// internal failure is folded into the AIResponse envelope.
func (p *Pipeline) Run(ctx context.Context, message, apiToken string) *domain.AIResponse {
	p.logger.Info("pipeline run started")

	// Classification does not need merchant context and runs unconditionally.
	result := p.classifier.Classify(ctx, message)

	merchantCtx, err := p.loader.LoadContext(ctx, apiToken)
	if err != nil {
		if !errors.Is(err, repository.ErrMerchantNotFound) {
			p.logger.Error("context load failed", zap.Error(err))
		}
		return &domain.AIResponse{Success: false, Error: invalidTokenMessage}
	}
	p.logger.Info("context loaded",
		zap.String("merchant_id", merchantCtx.Merchant.ID),
		zap.Int("products", len(merchantCtx.Products)),
		zap.Int("orders", len(merchantCtx.Orders)))

	prompt := prompts.Route(result.Intent, message, merchantCtx, result.TargetID)

	response, err := p.provider.Generate(ctx, &genai.Request{
		Prompt:       prompt,
		SystemPrompt: synthesisSystem,
		MaxTokens:    synthesisMaxTokens,
		Temperature:  0.7,
		TopP:         0.9,
	})
	if err != nil {
		p.logger.Warn("response synthesis failed, substituting apology", zap.Error(err))
		response = apologyMessage
	} else {
		p.logger.Info("response synthesized", zap.String("intent", string(result.Intent)))
	}

	businessName := merchantCtx.Merchant.BusinessInfo.Name
	if businessName == "" {
		businessName = "Unknown"
	}

	return &domain.AIResponse{
		Success: true,
		Data: &domain.AIResponseData{
			Response: response,
			Intent:   result.Intent,
			TargetID: result.TargetID,
			Context: domain.ContextSummary{
				ProductsCount: len(merchantCtx.Products),
				OrdersCount:   len(merchantCtx.Orders),
				BusinessName:  businessName,
			},
		},
	}
}
