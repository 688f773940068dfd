package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	JWTSecret     string
	JWTIssuer     string

	// Ledger settings
	DefaultCurrency string

	// Audit event sink
	KafkaBrokers []string
	AuditTopic   string

	// Rate limiting, e.g. "100-M" for 100 requests per minute
	RateLimit string

	// Analytics
	PosthogAPIKey string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "trust-ledger-app")
	viper.SetDefault("DEFAULT_CURRENCY", "USD")
	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("AUDIT_TOPIC", "ledger_audit_events")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("POSTHOG_API_KEY", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.DefaultCurrency = viper.GetString("DEFAULT_CURRENCY")

	brokers := viper.GetString("KAFKA_BROKERS")
	if brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	} else {
		log.Println("Warning: KAFKA_BROKERS not set. Audit events will not be published.")
	}
	cfg.AuditTopic = viper.GetString("AUDIT_TOPIC")

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")

	return cfg, nil
}
