package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("CLOUDFLARE_API_TOKEN", "cf-token")
	t.Setenv("CLOUDFLARE_ACCOUNT_ID", "cf-account")
	t.Setenv("DATABASE_URL", "postgres://localhost/commerce")
	t.Setenv("VERIFY_TOKEN", "verify-me")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "@cf/meta/llama-3.1-8b-instruct", cfg.AIModel)
	assert.Equal(t, 30*time.Second, cfg.AITimeout)
	assert.Equal(t, 10*time.Second, cfg.DBTimeout)
	assert.Equal(t, 15*time.Second, cfg.WhatsAppTimeout)
	assert.Equal(t, 24*time.Hour, cfg.DedupTTL)
	assert.Empty(t, cfg.RedisURL)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9090")
	t.Setenv("AI_MODEL", "@cf/meta/llama-3.3-70b-instruct")
	t.Setenv("AI_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "@cf/meta/llama-3.3-70b-instruct", cfg.AIModel)
	assert.Equal(t, 5*time.Second, cfg.AITimeout)
}

func TestLoadRejectsMissingRequired(t *testing.T) {
	required := []string{
		"CLOUDFLARE_API_TOKEN",
		"CLOUDFLARE_ACCOUNT_ID",
		"DATABASE_URL",
		"VERIFY_TOKEN",
	}
	for _, name := range required {
		t.Run(name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(name, "")

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), name)
		})
	}
}
