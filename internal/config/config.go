package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-med-reminder/internal/pkg/validate"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort        string `validate:"required,numeric"`
	AppEnv         string `validate:"required"`
	LogLevel       slog.Level
	AWSRegion      string `validate:"required"`
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables
	// DynamoBootstrap creates missing tables at startup (dev/LocalStack).
	DynamoBootstrap bool
	Dispatch        Dispatch
	SNSRegion       string `validate:"required"`
	// SummaryBucket is the S3 bucket run summaries are archived to; empty disables archiving.
	SummaryBucket string
	Trigger       Trigger
	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users              string `validate:"required"`
	Medications        string `validate:"required"`
	NotificationTokens string `validate:"required"`
	Preferences        string `validate:"required"`
	ReminderDispatches string `validate:"required"`
}

// Dispatch tunes the reminder pass.
type Dispatch struct {
	Interval        time.Duration `validate:"gte=1s"`
	LockTTL         time.Duration `validate:"gte=0s"`
	UserConcurrency int           `validate:"gte=1,lte=64"`
	ChunkSize       int           `validate:"gte=1,lte=500"`
	PageSize        int           `validate:"gte=1,lte=1000"`
}

// Trigger configures the HTTP trigger endpoint. With no verifier configured the
// endpoint is unauthenticated.
type Trigger struct {
	JWTPublicKeyPath string
	JWTAudience      string
	APIKeyHash       string
	GoogleAudience   string
	RatePerSec       float64 `validate:"gt=0"`
	RateBurst        int     `validate:"gte=1"`
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort:        getEnv("APP_PORT", "3000"),
		AppEnv:         getEnv("APP_ENV", "development"),
		LogLevel:       parseLogLevel(getEnv("LOG_LEVEL", "info")),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Users:              getEnv("DYNAMO_TABLE_USERS", "users"),
			Medications:        getEnv("DYNAMO_TABLE_MEDICATIONS", "medications"),
			NotificationTokens: getEnv("DYNAMO_TABLE_NOTIFICATION_TOKENS", "notification_tokens"),
			Preferences:        getEnv("DYNAMO_TABLE_PREFERENCES", "preferences"),
			ReminderDispatches: getEnv("DYNAMO_TABLE_REMINDER_DISPATCHES", "reminder_dispatches"),
		},
		DynamoBootstrap: getEnvBool("DYNAMO_BOOTSTRAP", false),
		Dispatch: Dispatch{
			Interval:        getEnvDuration("DISPATCH_INTERVAL", time.Minute),
			LockTTL:         getEnvDuration("DISPATCH_LOCK_TTL", 7*24*time.Hour),
			UserConcurrency: getEnvInt("DISPATCH_USER_CONCURRENCY", 1),
			ChunkSize:       getEnvInt("DISPATCH_CHUNK_SIZE", 500),
			PageSize:        getEnvInt("DISPATCH_PAGE_SIZE", 100),
		},
		SNSRegion:     getEnv("SNS_REGION", getEnv("AWS_REGION", "us-east-1")),
		SummaryBucket: getEnv("SUMMARY_S3_BUCKET", ""),
		Trigger: Trigger{
			JWTPublicKeyPath: getEnv("TRIGGER_JWT_PUBLIC_KEY_PATH", ""),
			JWTAudience:      getEnv("TRIGGER_JWT_AUDIENCE", ""),
			APIKeyHash:       getEnv("TRIGGER_API_KEY_HASH", ""),
			GoogleAudience:   getEnv("TRIGGER_GOOGLE_AUDIENCE", ""),
			RatePerSec:       getEnvFloat("TRIGGER_RATE_PER_SEC", 1),
			RateBurst:        getEnvInt("TRIGGER_RATE_BURST", 5),
		},
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

// Validate checks the loaded values against their constraints.
func (c *Config) Validate() error {
	return validate.Struct(c)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
