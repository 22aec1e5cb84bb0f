// Package config centralises runtime configuration for the SportConnect backend.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures every runtime setting the process needs. It is built once at
// startup and passed down explicitly; nothing else reads the environment.
type Config struct {
	Port        string
	Environment string // "development" or "production"

	DatabaseURL string

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	AllowedOrigins []string

	// Local media storage, used when R2 is not configured.
	UploadDir string

	// Optional R2/S3 object storage for profile photos.
	CloudflareAccountID string
	R2AccessKeyID       string
	R2AccessKeySecret   string
	R2Bucket            string
	CDNBaseURL          string

	// Optional admin bootstrap account.
	AdminUsername string
	AdminPassword string

	SeedDemo bool
}

// Load reads environment variables into Config, applying dev-friendly defaults.
func Load() Config {
	cfg := Config{
		Port:                getEnv("PORT", "5200"),
		Environment:         getEnv("APP_ENV", "development"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		JWTSecret:           getEnv("JWT_SECRET", "dev-secret-change-me"),
		AccessTokenTTL:      getDurationEnv("ACCESS_TOKEN_TTL", 30*time.Minute),
		RefreshTokenTTL:     getDurationEnv("REFRESH_TOKEN_TTL", 7*24*time.Hour),
		UploadDir:           getEnv("UPLOAD_DIR", "uploads"),
		CloudflareAccountID: os.Getenv("CLOUDFLARE_ACCOUNT_ID"),
		R2AccessKeyID:       os.Getenv("R2_ACCESS_KEY_ID"),
		R2AccessKeySecret:   os.Getenv("R2_ACCESS_KEY_SECRET"),
		R2Bucket:            os.Getenv("R2_BUCKET_NAME"),
		CDNBaseURL:          os.Getenv("CDN_BASE_URL"),
		AdminUsername:       os.Getenv("ADMIN_USERNAME"),
		AdminPassword:       os.Getenv("ADMIN_PASSWORD"),
		SeedDemo:            getBoolEnv("SEED_DEMO", false),
	}

	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:5173")
	cfg.AllowedOrigins = splitAndTrim(origins)
	return cfg
}

// Validate rejects configurations the process cannot safely run with.
func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.Environment != "development" && c.Environment != "production" {
		return errors.New("APP_ENV must be 'development' or 'production'")
	}
	if c.IsProduction() {
		if c.JWTSecret == "" || c.JWTSecret == "dev-secret-change-me" {
			return errors.New("JWT_SECRET must be set to a real secret in production")
		}
		if c.SeedDemo {
			return errors.New("SEED_DEMO is not allowed in production")
		}
	}
	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		return errors.New("token lifetimes must be positive")
	}
	return nil
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

// R2Configured reports whether object storage credentials are present.
func (c Config) R2Configured() bool {
	return c.CloudflareAccountID != "" && c.R2AccessKeyID != "" &&
		c.R2AccessKeySecret != "" && c.R2Bucket != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return parsed
		}
	}
	return fallback
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
