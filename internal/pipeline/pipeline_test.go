package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/weknowyourgame/wa-commerce-backend/internal/domain"
	"github.com/weknowyourgame/wa-commerce-backend/internal/genai"
	"github.com/weknowyourgame/wa-commerce-backend/internal/repository"
)

type fakeClassifier struct {
	result domain.IntentResult
	calls  int
}

func (f *fakeClassifier) Classify(ctx context.Context, msg string) domain.IntentResult {
	f.calls++
	return f.result
}

type fakeLoader struct {
	ctx *domain.MerchantContext
	err error
}

func (f *fakeLoader) LoadContext(ctx context.Context, apiToken string) (*domain.MerchantContext, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.ctx, nil
}

type fakeProvider struct {
	resp    string
	err     error
	prompts []string
}

func (f *fakeProvider) Generate(ctx context.Context, req *genai.Request) (string, error) {
	f.prompts = append(f.prompts, req.Prompt)
	return f.resp, f.err
}

func merchantContext() *domain.MerchantContext {
	return &domain.MerchantContext{
		Merchant: domain.Merchant{
			ID:           "m1",
			BusinessInfo: domain.BusinessInfo{Name: "Widget World"},
		},
		Products: []domain.Product{{ID: "p1", Name: "Widget", Price: 100}},
		Orders:   []domain.Order{{ID: "o1", Status: domain.OrderStatusPending}},
	}
}

func TestRunHappyPath(t *testing.T) {
	cls := &fakeClassifier{result: domain.IntentResult{Intent: domain.IntentProductInfo, TargetID: "p1"}}
	provider := &fakeProvider{resp: "Here is the widget!"}
	p := New(cls, &fakeLoader{ctx: merchantContext()}, provider, zap.NewNop())

	resp := p.Run(context.Background(), "tell me about p1", "token-1")

	require.True(t, resp.Success)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "Here is the widget!", resp.Data.Response)
	assert.Equal(t, domain.IntentProductInfo, resp.Data.Intent)
	assert.Equal(t, "p1", resp.Data.TargetID)
	assert.Equal(t, 1, resp.Data.Context.ProductsCount)
	assert.Equal(t, 1, resp.Data.Context.OrdersCount)
	assert.Equal(t, "Widget World", resp.Data.Context.BusinessName)

	// The synthesized prompt was routed from the classified intent.
	require.Len(t, provider.prompts, 1)
	assert.Contains(t, provider.prompts[0], "Widget")
}

func TestRunInvalidToken(t *testing.T) {
	cls := &fakeClassifier{result: domain.IntentResult{Intent: domain.IntentViewProducts}}
	provider := &fakeProvider{resp: "unused"}
	p := New(cls, &fakeLoader{err: repository.ErrMerchantNotFound}, provider, zap.NewNop())

	resp := p.Run(context.Background(), "show products", "bad-token")

	assert.False(t, resp.Success)
	assert.Nil(t, resp.Data)
	assert.Equal(t, "Invalid API token - no merchant found", resp.Error)

	// Classification still ran unconditionally; synthesis never did.
	assert.Equal(t, 1, cls.calls)
	assert.Empty(t, provider.prompts)
}

func TestRunSynthesisFailureSubstitutesApology(t *testing.T) {
	cls := &fakeClassifier{result: domain.IntentResult{Intent: domain.IntentGeneralChat}}
	provider := &fakeProvider{err: &genai.UpstreamError{Op: "generate", Err: errors.New("502")}}
	p := New(cls, &fakeLoader{ctx: merchantContext()}, provider, zap.NewNop())

	resp := p.Run(context.Background(), "hello", "token-1")

	require.True(t, resp.Success)
	require.NotNil(t, resp.Data)
	assert.Equal(t, apologyMessage, resp.Data.Response)
}

func TestRunUnknownBusinessName(t *testing.T) {
	ctx := merchantContext()
	ctx.Merchant.BusinessInfo.Name = ""
	cls := &fakeClassifier{result: domain.IntentResult{Intent: domain.IntentGeneralChat}}
	p := New(cls, &fakeLoader{ctx: ctx}, &fakeProvider{resp: "hi"}, zap.NewNop())

	resp := p.Run(context.Background(), "hello", "token-1")

	require.True(t, resp.Success)
	assert.Equal(t, "Unknown", resp.Data.Context.BusinessName)
}
