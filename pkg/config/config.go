package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort      string
	Environment     string
	JWTSecret       string
	JWTExpiry       int64
	StoreBackend    string
	FirebaseProject string

	FirebaseServiceAccountJSON string
	FirebaseServiceAccountPath string

	// Account that answers support conversations when no owner is given.
	SupportAccountID string

	RecencyCapacity      int
	MessageRatePerMinute int
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		JWTSecret:       getEnv("JWT_SECRET", "your-secret-key"),
		JWTExpiry:       getEnvAsInt64("JWT_EXPIRY", 24*60*60), // 24 hours
		StoreBackend:    getEnv("STORE_BACKEND", "memory"),
		FirebaseProject: getEnv("FIREBASE_PROJECT_ID", ""),

		FirebaseServiceAccountJSON: getEnv("FIREBASE_SERVICE_ACCOUNT_JSON", ""),
		FirebaseServiceAccountPath: getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", ""),

		SupportAccountID: getEnv("SUPPORT_ACCOUNT_ID", "u3"),

		RecencyCapacity:      int(getEnvAsInt64("RECENCY_CAPACITY", 10)),
		MessageRatePerMinute: int(getEnvAsInt64("MESSAGE_RATE_PER_MINUTE", 30)),
	}

	return config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}
