package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string

	AWSRegion      string
	DynamoEndpoint string
	LeadsTable     string
	UsersTable     string

	JWTSecret     string
	JWTIssuer     string
	JWTTTLMinutes int

	CORSOrigins string
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "local"),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		DynamoEndpoint: getEnv("DYNAMODB_ENDPOINT", "http://localhost:8000"),
		LeadsTable:     getEnv("LEADS_TABLE_NAME", "leads"),
		UsersTable:     getEnv("USERS_TABLE_NAME", "users"),
		JWTSecret:      getEnv("JWT_SECRET_KEY", "dev-secret-change"),
		JWTIssuer:      getEnv("JWT_ISSUER", "localassist-api"),
		JWTTTLMinutes:  getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 1440),
		CORSOrigins:    getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:8080"),
	}
	return cfg
}

// IsLocal reports whether the service targets a local DynamoDB endpoint
// instead of real AWS.
func (c Config) IsLocal() bool {
	return c.Environment == "local" || c.Environment == "test"
}

// AllowedOrigins parses the comma-separated CORS origin list.
func (c Config) AllowedOrigins() []string {
	parts := strings.Split(c.CORSOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
