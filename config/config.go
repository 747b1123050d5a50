package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddr      string
	JWTSecret       string
	JWTExpiry       time.Duration
	DefaultProvider string
	BulkSMS         *BulkSMSConfig
	WhatsApp        *WhatsAppConfig
	Admin           *AdminConfig
	Log             *LogConfig
}

type BulkSMSConfig struct {
	Username string
	Password string
	APIURI   string
}

type WhatsAppConfig struct {
	SessionDir string
	Enabled    bool
}

// AdminConfig seeds the first super_admin account on startup when set.
type AdminConfig struct {
	Email    string
	Password string
}

type LogConfig struct {
	Level  string
	Format string
	Output string
}

func NewConfig() *Config {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	expiryMinutes, err := strconv.Atoi(getEnv("JWT_EXPIRY_MINUTES", "60"))
	if err != nil {
		expiryMinutes = 60
	}

	return &Config{
		ServerAddr:      getEnv("SERVER_ADDR", ":8081"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		JWTExpiry:       time.Duration(expiryMinutes) * time.Minute,
		DefaultProvider: getEnv("SMS_DEFAULT_PROVIDER", "bulksms"),
		BulkSMS: &BulkSMSConfig{
			Username: getEnv("BULKSMS_USERNAME", ""),
			Password: getEnv("BULKSMS_PASSWORD", ""),
			APIURI:   getEnv("BULKSMS_API_URI", "https://api.bulksms.com/v1/messages"),
		},
		WhatsApp: &WhatsAppConfig{
			SessionDir: getEnv("WHATSAPP_SESSION_DIR", "sessions"),
			Enabled:    getEnv("WHATSAPP_ENABLED", "true") == "true",
		},
		Admin: &AdminConfig{
			Email:    getEnv("ADMIN_EMAIL", ""),
			Password: getEnv("ADMIN_PASSWORD", ""),
		},
		Log: &LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
			Output: getEnv("LOG_OUTPUT", "stdout"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
