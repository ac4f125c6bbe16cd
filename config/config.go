package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds every externally supplied setting. It is loaded once in main
// and passed by reference to the components that need it.
type Config struct {
	Port   string
	AppEnv string

	DatabaseURL string

	JWTSecret        string
	JWTIssuer        string
	JWTAudience      string
	JWTExpiryMinutes int

	MediaBucket string
	AWSRegion   string

	StripeSecretKey      string
	StripePublishableKey string
	StripeWebhookSecret  string

	AllowedOrigins []string
}

// Load reads configuration from the environment. DATABASE_URL and JWT_SECRET
// are required; everything else has a default or is reported as absent via
// the health endpoint.
func Load() (*Config, error) {
	cfg := &Config{
		Port:   getEnv("PORT", "8080"),
		AppEnv: getEnv("APP_ENV", "development"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret:   os.Getenv("JWT_SECRET"),
		JWTIssuer:   getEnv("JWT_ISSUER", "sokoni-api"),
		JWTAudience: getEnv("JWT_AUDIENCE", "sokoni-clients"),

		MediaBucket: os.Getenv("MEDIA_BUCKET"),
		AWSRegion:   getEnv("AWS_REGION", "us-east-1"),

		StripeSecretKey:      os.Getenv("STRIPE_SECRET_KEY"),
		StripePublishableKey: os.Getenv("STRIPE_PUBLISHABLE_KEY"),
		StripeWebhookSecret:  os.Getenv("STRIPE_WEBHOOK_SECRET"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	expiry := getEnv("JWT_EXPIRY_MINUTES", "60")
	minutes, err := strconv.Atoi(expiry)
	if err != nil || minutes <= 0 {
		return nil, fmt.Errorf("JWT_EXPIRY_MINUTES must be a positive number")
	}
	cfg.JWTExpiryMinutes = minutes

	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000")
	for _, origin := range strings.Split(origins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
