package genai

import (
	"context"
	"fmt"
)

// Request is a single text-generation call to the backend.
type Request struct {
	Prompt       string
	SystemPrompt string
	MaxTokens    int
	Temperature  float64
	TopP         float64
}

// Provider defines the interface for generative-text backends.
type Provider interface {
	Generate(ctx context.Context, req *Request) (string, error)
}

// UpstreamError marks a failure of the generation backend: unreachable,
// non-success response, or an empty result. Callers decide whether to
// fail open or substitute an apology; they never retry.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("genai: %s failed", e.Op)
	}
	return fmt.Sprintf("genai: %s failed: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
