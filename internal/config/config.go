package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Server
	Port          int    `env:"PORT" envDefault:"8080"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL"`

	// Payment: OxaPay
	OxaPayAPIKey        string `env:"OXAPAY_API_KEY"`
	OxaPayMerchantID    string `env:"OXAPAY_MERCHANT_ID"`
	OxaPayURL           string `env:"OXAPAY_API_URL" envDefault:"https://api.oxapay.com/v1"`
	OxaPayWebhookSecret string `env:"OXAPAY_WEBHOOK_SECRET"`

	// Telegram
	BotToken    string `env:"BOT_TOKEN"`
	AdminChatID int64  `env:"ADMIN_CHAT_ID"`

	// Store backend: memory, redis or postgres
	StoreBackend string `env:"STORE_BACKEND" envDefault:"memory"`

	// Redis backend
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string `env:"REDIS_PREFIX" envDefault:"otpbot"`
	RedisTTLHours int    `env:"REDIS_TTL_HOURS" envDefault:"0"`

	// Postgres backend
	DatabaseURL string `env:"DATABASE_URL"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// WebhookURL builds the callback URL handed to the payment processor.
// Empty when PUBLIC_BASE_URL is not configured.
func (c *Config) WebhookURL() string {
	if c.PublicBaseURL == "" {
		return ""
	}
	return c.PublicBaseURL + "/api/oxapay/webhook"
}
