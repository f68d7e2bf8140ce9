package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// HTTP server
	Port string `envconfig:"PORT" default:"8080"`

	// Cloudflare Workers AI
	CloudflareAPIToken  string        `envconfig:"CLOUDFLARE_API_TOKEN"`
	CloudflareAccountID string        `envconfig:"CLOUDFLARE_ACCOUNT_ID"`
	AIModel             string        `envconfig:"AI_MODEL" default:"@cf/meta/llama-3.1-8b-instruct"`
	AITimeout           time.Duration `envconfig:"AI_TIMEOUT" default:"30s"`

	// Persistence
	DatabaseURL string        `envconfig:"DATABASE_URL"`
	DBTimeout   time.Duration `envconfig:"DB_TIMEOUT" default:"10s"`

	// WhatsApp channel
	VerifyToken     string        `envconfig:"VERIFY_TOKEN"`
	WhatsAppTimeout time.Duration `envconfig:"WHATSAPP_TIMEOUT" default:"15s"`

	// Webhook dedup (optional; dedup is skipped when unset)
	RedisURL string        `envconfig:"REDIS_URL"`
	DedupTTL time.Duration `envconfig:"DEDUP_TTL" default:"24h"`

	// Service
	ServiceName string `envconfig:"SERVICE_NAME" default:"wa-commerce-backend"`
}

// Load reads configuration from the environment and validates required
// fields up front. Missing generation-backend credentials or the database
// URL are configuration errors at startup, not runtime surprises deep in
// a request.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.CloudflareAPIToken == "" {
		return fmt.Errorf("config: CLOUDFLARE_API_TOKEN is required")
	}
	if c.CloudflareAccountID == "" {
		return fmt.Errorf("config: CLOUDFLARE_ACCOUNT_ID is required")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("config: DATABASE_URL is required")
	}
	if c.VerifyToken == "" {
		return fmt.Errorf("config: VERIFY_TOKEN is required")
	}
	return nil
}
