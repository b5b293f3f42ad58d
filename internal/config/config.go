package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort     string
	APIBaseURL     string
	UpstreamURL    string
	StorePath      string
	AuthCookieName string
	CredentialTTL  time.Duration
	RequestTimeout time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is honored when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:     getEnv("PORT", "8080"),
		APIBaseURL:     getEnv("API_BASE_URL", "http://localhost:3005/api"),
		UpstreamURL:    getEnv("UPSTREAM_URL", "http://localhost:3000"),
		StorePath:      getEnv("STORE_PATH", "./ceria.db"),
		AuthCookieName: getEnv("AUTH_COOKIE", "auth_token"),
		CredentialTTL:  24 * time.Hour,
		RequestTimeout: 15 * time.Second,
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
