package genai

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/cloudflare"
)

// ErrMissingCredentials is returned when the Workers AI token or account id
// is absent. This is a configuration error, distinct from an UpstreamError.
var ErrMissingCredentials = errors.New("genai: cloudflare api token and account id are required")

// CloudflareProvider generates text through Cloudflare Workers AI.
type CloudflareProvider struct {
	llm     *cloudflare.LLM
	timeout time.Duration
}

func NewCloudflareProvider(apiToken, accountID, model string, timeout time.Duration) (*CloudflareProvider, error) {
	if apiToken == "" || accountID == "" {
		return nil, ErrMissingCredentials
	}

	llm, err := cloudflare.New(
		cloudflare.WithToken(apiToken),
		cloudflare.WithAccountID(accountID),
		cloudflare.WithModel(model),
	)
	if err != nil {
		return nil, err
	}

	return &CloudflareProvider{
		llm:     llm,
		timeout: timeout,
	}, nil
}

// Generate issues one generation call with a bounded timeout. Transport
// faults, non-success responses, and empty results all surface as a typed
// UpstreamError; nothing here retries.
func (p *CloudflareProvider) Generate(ctx context.Context, req *Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	content := make([]llms.MessageContent, 0, 2)
	if req.SystemPrompt != "" {
		content = append(content, llms.TextParts(llms.ChatMessageTypeSystem, req.SystemPrompt))
	}
	content = append(content, llms.TextParts(llms.ChatMessageTypeHuman, req.Prompt))

	resp, err := p.llm.GenerateContent(ctx, content,
		llms.WithMaxTokens(req.MaxTokens),
		llms.WithTemperature(req.Temperature),
		llms.WithTopP(req.TopP),
	)
	if err != nil {
		return "", &UpstreamError{Op: "generate", Err: err}
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		return "", &UpstreamError{Op: "generate", Err: errors.New("empty result")}
	}

	return resp.Choices[0].Content, nil
}
