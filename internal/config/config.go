package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// Database
	DatabaseURL string

	// Session storage (optional; in-memory when unset)
	RedisURL string

	// Escalation lifecycle
	RequestTimeout      time.Duration // deadline for pending requests (default 5m)
	SweepInterval       time.Duration // how often the timeout sweeper runs (default 60s)
	DefaultSupervisorID string        // attribution when the API caller supplies none

	// TLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string

	// OIDC (supervisor panel login; panel is open when unset)
	OIDCIssuer       string
	OIDCClientID     string
	OIDCClientSecret string
	OIDCRedirectURL  string

	// Session
	SessionSecret string

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// SMTP (supervisor escalation alerts; disabled when host unset)
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPFromName string
	SMTPTLS      string // "none", "tls", or "starttls"

	// Comma-separated addresses alerted when a question is escalated
	SupervisorAlertEmails string

	// Development
	SeedDev bool // seed a few knowledge entries on startup
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first if present.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env file: %v", err)
	}

	return &Config{
		Env:         getEnv("ENV", "development"),
		ServerAddr:  getEnv("SERVER_ADDR", ":3001"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:3001"),
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/helpdesk?sslmode=disable"),
		RedisURL:    getEnv("REDIS_URL", ""),

		RequestTimeout:      getDuration("REQUEST_TIMEOUT", 5*time.Minute),
		SweepInterval:       getDuration("SWEEP_INTERVAL", 60*time.Second),
		DefaultSupervisorID: getEnv("DEFAULT_SUPERVISOR_ID", "supervisor-1"),

		TLSEnabled:  getEnv("TLS_ENABLED", "") != "",
		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),

		OIDCIssuer:       getEnv("OIDC_ISSUER", ""),
		OIDCClientID:     getEnv("OIDC_CLIENT_ID", ""),
		OIDCClientSecret: getEnv("OIDC_CLIENT_SECRET", ""),
		OIDCRedirectURL:  getEnv("OIDC_REDIRECT_URL", "http://localhost:3001/auth/callback"),

		SessionSecret: getEnv("SESSION_SECRET", "change-me-in-production-min-32-chars"),
		CORSOrigins:   getEnv("CORS_ORIGINS", ""),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getInt("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", ""),
		SMTPFromName: getEnv("SMTP_FROM_NAME", "Helpdesk"),
		SMTPTLS:      getEnv("SMTP_TLS", "starttls"),

		SupervisorAlertEmails: getEnv("SUPERVISOR_ALERT_EMAILS", ""),

		SeedDev: getEnv("SEED_DEV", "") != "",
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: invalid %s %q, using %v", key, value, fallback)
		return fallback
	}
	return d
}

func getInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: invalid %s %q, using %d", key, value, fallback)
		return fallback
	}
	return n
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// IsEmailEnabled returns true if SMTP is configured.
func (c *Config) IsEmailEnabled() bool {
	return c.SMTPHost != "" && c.SMTPFrom != ""
}

// IsOIDCEnabled returns true if supervisor login is configured.
func (c *Config) IsOIDCEnabled() bool {
	return c.OIDCIssuer != ""
}
