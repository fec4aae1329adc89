package config

import (
	"os"

	// this will automatically load your .env file:
	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	Logs     LogConfig
	DB       PostgresConfig
	Stripe   StripeConfig
	Email    EmailConfig
	SEO      SEOConfig
	QueueURL string
}

type LogConfig struct {
	Style string // "console" or "json"
	Level string
}

type PostgresConfig struct {
	Username string
	Password string
	URL      string
	Port     string
	Name     string
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	FrontendURL   string
}

type EmailConfig struct {
	SendGridKey string
	FromAddress string
	FromName    string
	NotifyTo    string
}

type SEOConfig struct {
	SiteURL     string
	SnapshotDir string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		QueueURL: os.Getenv("RECONCILE_QUEUE_URL"),
		Logs: LogConfig{
			Style: os.Getenv("LOG_STYLE"),
			Level: os.Getenv("LOG_LEVEL"),
		},
		DB: PostgresConfig{
			Username: os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PWD"),
			URL:      os.Getenv("POSTGRES_URL"),
			Port:     os.Getenv("POSTGRES_PORT"),
			Name:     os.Getenv("POSTGRES_DB"),
		},
		Stripe: StripeConfig{
			SecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
			WebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
			FrontendURL:   os.Getenv("FRONTEND_URL"),
		},
		Email: EmailConfig{
			SendGridKey: os.Getenv("SENDGRID_API_KEY"),
			FromAddress: os.Getenv("EMAIL_FROM_ADDRESS"),
			FromName:    os.Getenv("EMAIL_FROM_NAME"),
			NotifyTo:    os.Getenv("EMAIL_NOTIFY_TO"),
		},
		SEO: SEOConfig{
			SiteURL:     os.Getenv("SITE_URL"),
			SnapshotDir: os.Getenv("PRERENDER_SNAPSHOT_DIR"),
		},
	}

	return cfg, nil
}
