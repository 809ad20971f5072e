package config

import "os"

// EmailConfig holds outbound provider configuration.
type EmailConfig struct {
	Provider string

	FromEmail string
	FromName  string

	// SendGrid
	SendGridAPIKey string

	// AWS SES
	AWSRegion      string
	AWSAccessKeyID string
	AWSSecretKey   string

	// SMTP
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
}

func loadEmailConfig() EmailConfig {
	provider := getEnv("EMAIL_PROVIDER", "smtp")

	cfg := EmailConfig{
		Provider:  provider,
		FromEmail: getEnv("EMAIL_FROM", "noreply@shopsignal.dev"),
		FromName:  getEnv("EMAIL_FROM_NAME", "ShopSignal"),
	}

	switch provider {
	case "sendgrid":
		cfg.SendGridAPIKey = os.Getenv("SENDGRID_API_KEY")
	case "ses":
		cfg.AWSRegion = getEnv("AWS_REGION", "us-east-1")
		cfg.AWSAccessKeyID = os.Getenv("AWS_ACCESS_KEY_ID")
		cfg.AWSSecretKey = os.Getenv("AWS_SECRET_ACCESS_KEY")
	case "smtp":
		cfg.SMTPHost = getEnv("SMTP_HOST", "smtp.gmail.com")
		cfg.SMTPPort = getIntEnv("SMTP_PORT", 587)
		cfg.SMTPUsername = os.Getenv("SMTP_USERNAME")
		cfg.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	}

	return cfg
}
