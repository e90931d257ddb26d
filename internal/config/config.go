package config

import (
	"log/slog"
	"os"
)

// Config holds all environment-derived settings.
type Config struct {
	Port string
	Env  string

	DatabaseDriver string
	DatabaseDSN    string

	AdminName     string
	AdminEmail    string
	AdminPassword string

	WhatsAppEnabled bool
	WhatsAppDataDir string
	PublicBaseURL   string
}

// Load reads configuration from environment variables with development
// defaults.
func Load() Config {
	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		DatabaseDriver:  getEnv("DATABASE_DRIVER", "mysql"),
		DatabaseDSN:     getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/rsvpdesk?parseTime=true"),
		AdminName:       getEnv("ADMIN_NAME", "Admin"),
		AdminEmail:      getEnv("ADMIN_EMAIL", "admin@example.com"),
		AdminPassword:   getEnv("ADMIN_PASSWORD", "admin123"),
		WhatsAppEnabled: getEnv("WHATSAPP_ENABLED", "false") == "true",
		WhatsAppDataDir: getEnv("WHATSAPP_DATA_DIR", "data"),
		PublicBaseURL:   getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
	}

	if cfg.Env == "production" && cfg.AdminPassword == "admin123" {
		slog.Error("ADMIN_PASSWORD must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
