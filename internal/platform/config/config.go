package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// BusinessRules holds the policy constants consumed by the business-rule
// evaluator. It is built once at startup and never mutated, so every
// deployment can tune limits without code changes and tests can construct
// their own instances.
type BusinessRules struct {
	// DailyTransactionLimit caps transactions per user per calendar day.
	DailyTransactionLimit int
	// MaxTransactionAmount is the policy ceiling for a single transaction,
	// stricter than the schema validator's technical bound.
	MaxTransactionAmount float64
	// InactivityThreshold expires sessions whose last login is older than
	// this, even when the token itself is still valid.
	InactivityThreshold time.Duration
	// FutureDateHorizon is how far into the future a transaction date may lie.
	FutureDateHorizon time.Duration
}

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Request pipeline
	MaxBodyBytes  int64
	RateLimit     string // ulule/limiter formatted rate, e.g. "100-M"
	AuthRateLimit string // tighter rate for the credential endpoints

	Rules BusinessRules

	// External OAuth Providers
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	AllowedOrigins     []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "fintrack-backend")
	viper.SetDefault("MAX_BODY_BYTES", int64(1<<20))
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("AUTH_RATE_LIMIT", "5-M")
	viper.SetDefault("DAILY_TXN_LIMIT", 50)
	viper.SetDefault("MAX_TXN_AMOUNT", 1_000_000.0)
	viper.SetDefault("INACTIVITY_THRESHOLD", "2160h") // 90 days
	viper.SetDefault("FUTURE_DATE_HORIZON", "720h")   // 30 days
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")
	viper.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:3000"})

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiry, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiry = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiry)
	}
	cfg.JWTExpiryDuration = jwtExpiry
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.MaxBodyBytes = viper.GetInt64("MAX_BODY_BYTES")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.AuthRateLimit = viper.GetString("AUTH_RATE_LIMIT")

	cfg.Rules = BusinessRules{
		DailyTransactionLimit: viper.GetInt("DAILY_TXN_LIMIT"),
		MaxTransactionAmount:  viper.GetFloat64("MAX_TXN_AMOUNT"),
		InactivityThreshold:   parseDurationOr("INACTIVITY_THRESHOLD", 90*24*time.Hour),
		FutureDateHorizon:     parseDurationOr("FUTURE_DATE_HORIZON", 30*24*time.Hour),
	}

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google sign-in will not function.")
	}
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = viper.GetString("GOOGLE_REDIRECT_URL")
	cfg.AllowedOrigins = viper.GetStringSlice("ALLOWED_ORIGINS")

	return cfg, nil
}

func parseDurationOr(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		return fallback
	}
	return d
}
