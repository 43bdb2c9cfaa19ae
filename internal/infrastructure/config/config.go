package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// PostgreSQL (tracked flights and users)
	PostgresURI string

	// MongoDB (flight history archive)
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// Flight-offer provider
	AmadeusTokenURL     string
	AmadeusSearchURL    string
	AmadeusClientID     string
	AmadeusClientSecret string
	TokenTTL            time.Duration
	ProviderTimeout     time.Duration
	MaxResults          int

	// Offer response cache
	OfferCacheTTL      time.Duration
	OfferCacheCapacity int

	// Reconciliation job
	ReconcileInterval time.Duration
	WorkerCount       int

	// Gmail notifier
	GmailClientID     string
	GmailClientSecret string
	GmailRefreshToken string
	NotifyFrom        string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		PostgresURI: getEnv("POSTGRES_DSN", "host=localhost user=postgres dbname=price_tracker sslmode=disable"),

		MongoURI:      getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "price_tracker"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		AmadeusTokenURL:     getEnv("AMADEUS_TOKEN_URL", "https://test.api.amadeus.com/v1/security/oauth2/token"),
		AmadeusSearchURL:    getEnv("AMADEUS_SEARCH_URL", "https://test.api.amadeus.com/v2/shopping/flight-offers"),
		AmadeusClientID:     getEnv("AMADEUS_API_KEY", ""),
		AmadeusClientSecret: getEnv("AMADEUS_API_SECRET", ""),
		TokenTTL:            time.Duration(getEnvAsInt("TOKEN_TTL_SECONDS", 3600)) * time.Second,
		ProviderTimeout:     time.Duration(getEnvAsInt("PROVIDER_TIMEOUT_SECONDS", 20)) * time.Second,
		MaxResults:          getEnvAsInt("MAX_SEARCH_RESULTS", 5),

		OfferCacheTTL:      time.Duration(getEnvAsInt("OFFER_CACHE_TTL_SECONDS", 3600)) * time.Second,
		OfferCacheCapacity: getEnvAsInt("OFFER_CACHE_CAPACITY", 1000),

		ReconcileInterval: time.Duration(getEnvAsInt("RECONCILE_INTERVAL_SECONDS", 3600)) * time.Second,
		WorkerCount:       getEnvAsInt("RECONCILE_WORKERS", 4),

		GmailClientID:     getEnv("GMAIL_CLIENT_ID", ""),
		GmailClientSecret: getEnv("GMAIL_CLIENT_SECRET", ""),
		GmailRefreshToken: getEnv("GMAIL_REFRESH_TOKEN", ""),
		NotifyFrom:        getEnv("NOTIFY_FROM", ""),
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
