package config

import (
	"fmt"
	"os"
)

// Config holds application configuration
type Config struct {
	Port      string
	DBConn    string
	LogLevel  string
	JWTSecret string
	RedisAddr string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string

	AdvisorURL    string
	AdvisorAPIKey string
	AdvisorModel  string
	AdvisorMode   string // "live" or "fixture"

	ReminderSchedule string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		DBConn:    getEnv("DB_CONN", "host=localhost port=5432 user=test password=test dbname=teenbudget sslmode=disable"),
		LogLevel:  getEnv("LOG_LEVEL", "INFO"),
		JWTSecret: getEnv("JWT_SECRET", "secret"),
		RedisAddr: getEnv("REDIS_ADDR", ""),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SenderEmail:  getEnv("SENDER_EMAIL", "noreply@teenbudget.app"),

		AdvisorURL:    getEnv("ADVISOR_URL", "https://api.openai.com/v1/chat/completions"),
		AdvisorAPIKey: getEnv("ADVISOR_API_KEY", ""),
		AdvisorModel:  getEnv("ADVISOR_MODEL", "gpt-4o-mini"),
		AdvisorMode:   getEnv("ADVISOR_MODE", "fixture"),

		ReminderSchedule: getEnv("REMINDER_SCHEDULE", "0 9 * * *"),
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.AdvisorMode != "live" && cfg.AdvisorMode != "fixture" {
		return nil, fmt.Errorf("ADVISOR_MODE must be \"live\" or \"fixture\", got %q", cfg.AdvisorMode)
	}
	if cfg.AdvisorMode == "live" && cfg.AdvisorAPIKey == "" {
		return nil, fmt.Errorf("ADVISOR_API_KEY is required when ADVISOR_MODE=live")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
