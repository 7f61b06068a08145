package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	Port        string
	DatabaseDSN string
	JWTSecret   string

	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SMTPUseTLS    bool
	EmailFrom     string
	EmailFromName string

	// Users registering with this email domain receive the admin role.
	AdminEmailDomain string

	AllowedOrigins []string

	UptimeRefreshInterval time.Duration
}

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}

func Load() *Config {
	cfg := &Config{
		Port:                  getEnv("PORT", "3000"),
		DatabaseDSN:           os.Getenv("DATABASE_URL"),
		JWTSecret:             os.Getenv("JWT_SECRET"),
		SMTPHost:              os.Getenv("SMTP_HOST"),
		SMTPPort:              getEnv("SMTP_PORT", "587"),
		SMTPUsername:          os.Getenv("SMTP_USERNAME"),
		SMTPPassword:          os.Getenv("SMTP_PASSWORD"),
		SMTPUseTLS:            os.Getenv("SMTP_USE_TLS") == "true",
		EmailFrom:             os.Getenv("EMAIL_FROM"),
		EmailFromName:         getEnv("EMAIL_FROM_NAME", "StatusHub"),
		AdminEmailDomain:      os.Getenv("ADMIN_EMAIL_DOMAIN"),
		AllowedOrigins:        loadAllowedOrigins(),
		UptimeRefreshInterval: 300 * time.Second,
	}

	return cfg
}

func loadAllowedOrigins() []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	if allowedOrigins := os.Getenv("ALLOWED_ORIGINS"); allowedOrigins != "" {
		for _, origin := range strings.Split(allowedOrigins, ",") {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return origins
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
