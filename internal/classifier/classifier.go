package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/weknowyourgame/wa-commerce-backend/internal/domain"
	"github.com/weknowyourgame/wa-commerce-backend/internal/genai"
	"github.com/weknowyourgame/wa-commerce-backend/internal/prompts"
)

const classifyMaxTokens = 100

// Classifier maps free text to one of the fixed intents.
type Classifier struct {
	provider genai.Provider
	logger   *zap.Logger
}

func New(provider genai.Provider, logger *zap.Logger) *Classifier {
	return &Classifier{provider: provider, logger: logger}
}

// Classify asks the backend for a JSON {intent, targetId?} object and
// parses it strictly. Any backend failure, malformed JSON, or unrecognized
// intent degrades to GENERAL_CHAT with no target id: a chat endpoint must
// always produce some intent, so classification never surfaces an error.
func (c *Classifier) Classify(ctx context.Context, userMessage string) domain.IntentResult {
	fallback := domain.IntentResult{Intent: domain.IntentGeneralChat}

	raw, err := c.provider.Generate(ctx, &genai.Request{
		Prompt:      prompts.BuildIntentPrompt(userMessage),
		MaxTokens:   classifyMaxTokens,
		Temperature: 0.1,
		TopP:        0.9,
	})
	if err != nil {
		c.logger.Warn("intent classification failed, falling back to general chat", zap.Error(err))
		return fallback
	}

	result, err := parseIntentResult(raw)
	if err != nil {
		c.logger.Warn("intent result unparseable, falling back to general chat",
			zap.Error(err), zap.String("raw", raw))
		return fallback
	}

	c.logger.Info("message classified",
		zap.String("intent", string(result.Intent)),
		zap.String("target_id", result.TargetID))
	return result
}

// parseIntentResult extracts the JSON object from the raw model output and
// validates the intent against the closed set. The target id is taken only
// if the backend explicitly supplied one; it is never inferred here.
func parseIntentResult(content string) (domain.IntentResult, error) {
	jsonContent := extractJSON(content)
	if jsonContent == "" {
		return domain.IntentResult{}, fmt.Errorf("no JSON object in response")
	}

	var parsed struct {
		Intent   string `json:"intent"`
		TargetID string `json:"targetId"`
	}
	if err := json.Unmarshal([]byte(jsonContent), &parsed); err != nil {
		return domain.IntentResult{}, fmt.Errorf("failed to parse JSON: %w", err)
	}

	intent, ok := domain.ParseIntent(parsed.Intent)
	if !ok {
		return domain.IntentResult{}, fmt.Errorf("unrecognized intent %q", parsed.Intent)
	}

	return domain.IntentResult{Intent: intent, TargetID: parsed.TargetID}, nil
}

// extractJSON returns the outermost brace-delimited span of the content.
func extractJSON(content string) string {
	start := strings.Index(content, "{")
	if start == -1 {
		return ""
	}
	end := strings.LastIndex(content, "}")
	if end == -1 || end <= start {
		return ""
	}
	return content[start : end+1]
}
