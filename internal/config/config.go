package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv string

	HTTPAddr    string
	DatabaseURL string
	RedisURL    string

	// RabbitMQ (order-created events from the order service)
	RabbitURL        string
	RabbitExchange   string
	RabbitOrderQueue string

	// Campaign schedule, local wall-clock "HH:MM"
	AbandonedCartAt   string
	FrequentViewerAt  string
	PurchaseConfirmAt string

	// Segment tuning
	ViewThreshold       int
	DefaultProductImage string

	// Dispatch bounds
	CampaignCooldown time.Duration // per-user-per-campaign watermark TTL
	SendTimeout      time.Duration // per-recipient send deadline
	RunTimeout       time.Duration // whole campaign run deadline

	// Email provider
	Email EmailConfig

	// Rate limiting
	RLEnabled bool
	RLLimit   int
	RLWindow  time.Duration

	LogLevel  string
	LogFormat string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.AppEnv = getEnv("APP_ENV", "dev")
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8084")
	cfg.DatabaseURL = getEnv("DATABASE_URL", "")
	cfg.RedisURL = getEnv("REDIS_URL", "redis://localhost:6379/0")

	cfg.RabbitURL = getEnv("RABBIT_URL", "")
	cfg.RabbitExchange = getEnv("RABBIT_EXCHANGE", "shop.orders")
	cfg.RabbitOrderQueue = getEnv("RABBIT_ORDER_QUEUE", "engagement.order_created.queue")

	cfg.AbandonedCartAt = getEnv("CAMPAIGN_ABANDONED_CART_AT", "09:00")
	cfg.FrequentViewerAt = getEnv("CAMPAIGN_FREQUENT_VIEWER_AT", "10:00")
	cfg.PurchaseConfirmAt = getEnv("CAMPAIGN_PURCHASE_CONFIRM_AT", "11:00")

	cfg.ViewThreshold = getIntEnv("VIEW_THRESHOLD", 3)
	cfg.DefaultProductImage = getEnv("DEFAULT_PRODUCT_IMAGE", "https://cdn.shopsignal.dev/default-product.jpg")

	cfg.CampaignCooldown = getDuration("CAMPAIGN_COOLDOWN", 24*time.Hour)
	cfg.SendTimeout = getDuration("SEND_TIMEOUT", 15*time.Second)
	cfg.RunTimeout = getDuration("RUN_TIMEOUT", 10*time.Minute)

	cfg.Email = loadEmailConfig()

	cfg.RLEnabled = getEnv("RL_ENABLED", "true") == "true"
	cfg.RLLimit = getIntEnv("RL_IP_LIMIT", 300)
	cfg.RLWindow = getDuration("RL_IP_WINDOW", 1*time.Minute)

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "console")

	cfg.HTTPReadTimeout = getDuration("HTTP_READ_TIMEOUT", 10*time.Second)
	cfg.HTTPWriteTimeout = getDuration("HTTP_WRITE_TIMEOUT", 20*time.Second)
	cfg.HTTPIdleTimeout = getDuration("HTTP_IDLE_TIMEOUT", 60*time.Second)

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("missing DATABASE_URL")
	}
	for _, at := range []struct{ key, val string }{
		{"CAMPAIGN_ABANDONED_CART_AT", cfg.AbandonedCartAt},
		{"CAMPAIGN_FREQUENT_VIEWER_AT", cfg.FrequentViewerAt},
		{"CAMPAIGN_PURCHASE_CONFIRM_AT", cfg.PurchaseConfirmAt},
	} {
		if _, err := time.Parse("15:04", at.val); err != nil {
			return nil, fmt.Errorf("%s: %q is not HH:MM", at.key, at.val)
		}
	}
	if cfg.ViewThreshold < 0 {
		return nil, fmt.Errorf("VIEW_THRESHOLD must be >= 0")
	}

	// Rabbit: optional in dev, required otherwise
	if cfg.AppEnv != "dev" && cfg.RabbitURL == "" {
		return nil, fmt.Errorf("missing RABBIT_URL (required when APP_ENV != dev)")
	}

	return cfg, nil
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func getIntEnv(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}
