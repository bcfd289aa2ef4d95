// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Credits store backends.
const (
	CreditsStoreMemory   = "memory"
	CreditsStoreRedis    = "redis"
	CreditsStorePostgres = "postgres"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// JWTConfig provides JWT validation settings for middleware.
type JWTConfig interface {
	GetJWTAccessSecret() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// RedisConfig provides the shared Redis connection settings.
type RedisConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
}

// SchedulerConfig provides settings for the asynq worker and client.
type SchedulerConfig interface {
	RedisConfig
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
}

// CreditsConfig provides settings for the credits ledger.
type CreditsConfig interface {
	GetCreditsStore() string
	GetCreditsInitialBalance() int64
	GetCreditsSessionTTL() time.Duration
}

// MarketplaceConfig provides settings for the filter/match engine.
type MarketplaceConfig interface {
	GetScoreJitter() bool
	GetPhoneDefaultRegion() string
}

// AssistantConfig provides the pacing window for assistant replies.
type AssistantConfig interface {
	GetAssistantDelayMin() time.Duration
	GetAssistantDelayMax() time.Duration
}

// EmailConfig provides settings for email sending.
type EmailConfig interface {
	GetEmailEnabled() bool
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                   string
	HTTPAddr              string
	DatabaseURL           string
	JWTAccessSecret       string
	CORSAllowAll          bool
	CORSOrigins           []string
	CORSAllowCreds        bool
	RedisURL              string
	RedisTLSInsecure      bool
	AsynqQueueName        string
	AsynqConcurrency      int
	CreditsStore          string
	CreditsInitialBalance int64
	CreditsSessionTTL     time.Duration
	ScoreJitter           bool
	PhoneDefaultRegion    string
	AssistantDelayMin     time.Duration
	AssistantDelayMax     time.Duration
	EmailEnabled          bool
	SMTPHost              string
	SMTPPort              int
	SMTPUsername          string
	SMTPPassword          string
	EmailFromName         string
	EmailFromAddress      string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// JWTConfig implementation
func (c *Config) GetJWTAccessSecret() string { return c.JWTAccessSecret }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// RedisConfig / SchedulerConfig implementation
func (c *Config) GetRedisURL() string       { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool { return c.RedisTLSInsecure }
func (c *Config) GetAsynqQueueName() string { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int  { return c.AsynqConcurrency }

// CreditsConfig implementation
func (c *Config) GetCreditsStore() string             { return c.CreditsStore }
func (c *Config) GetCreditsInitialBalance() int64     { return c.CreditsInitialBalance }
func (c *Config) GetCreditsSessionTTL() time.Duration { return c.CreditsSessionTTL }

// MarketplaceConfig implementation
func (c *Config) GetScoreJitter() bool          { return c.ScoreJitter }
func (c *Config) GetPhoneDefaultRegion() string { return c.PhoneDefaultRegion }

// AssistantConfig implementation
func (c *Config) GetAssistantDelayMin() time.Duration { return c.AssistantDelayMin }
func (c *Config) GetAssistantDelayMax() time.Duration { return c.AssistantDelayMax }

// EmailConfig implementation
func (c *Config) GetEmailEnabled() bool       { return c.EmailEnabled }
func (c *Config) GetSMTPHost() string         { return c.SMTPHost }
func (c *Config) GetSMTPPort() int            { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string     { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string     { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string    { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string { return c.EmailFromAddress }

// Load reads .env (if present) and the environment into a validated Config.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from an arbitrary key lookup. Load passes os.LookupEnv.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	getEnv := func(key, fallback string) string {
		if val, ok := lookup(key); ok {
			return val
		}
		return fallback
	}

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	var parseErr error
	getInt64 := func(key, fallback string) int64 {
		n, err := strconv.ParseInt(strings.TrimSpace(getEnv(key, fallback)), 10, 64)
		if err != nil && parseErr == nil {
			parseErr = fmt.Errorf("%s must be an integer: %w", key, err)
		}
		return n
	}
	getDuration := func(key, fallback string) time.Duration {
		d, err := time.ParseDuration(strings.TrimSpace(getEnv(key, fallback)))
		if err != nil && parseErr == nil {
			parseErr = fmt.Errorf("%s must be a duration: %w", key, err)
		}
		return d
	}

	smtpHost := getEnv("SMTP_HOST", "")
	emailEnabled := strings.EqualFold(getEnv("EMAIL_ENABLED", "false"), "true")

	cfg := &Config{
		Env:                   getEnv("APP_ENV", "development"),
		HTTPAddr:              getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:           getEnv("DATABASE_URL", ""),
		JWTAccessSecret:       getEnv("JWT_ACCESS_SECRET", ""),
		CORSAllowAll:          corsAllowAll,
		CORSOrigins:           corsOrigins,
		CORSAllowCreds:        strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		RedisURL:              getEnv("REDIS_URL", ""),
		RedisTLSInsecure:      strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		AsynqQueueName:        getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency:      int(getInt64("ASYNQ_CONCURRENCY", "10")),
		CreditsStore:          strings.ToLower(strings.TrimSpace(getEnv("CREDITS_STORE", CreditsStoreMemory))),
		CreditsInitialBalance: getInt64("CREDITS_INITIAL_BALANCE", "150"),
		CreditsSessionTTL:     getDuration("CREDITS_SESSION_TTL", "24h"),
		ScoreJitter:           strings.EqualFold(getEnv("MARKETPLACE_SCORE_JITTER", "false"), "true"),
		PhoneDefaultRegion:    strings.ToUpper(getEnv("PHONE_DEFAULT_REGION", "ES")),
		AssistantDelayMin:     getDuration("ASSISTANT_DELAY_MIN", "1s"),
		AssistantDelayMax:     getDuration("ASSISTANT_DELAY_MAX", "1500ms"),
		EmailEnabled:          emailEnabled && smtpHost != "",
		SMTPHost:              smtpHost,
		SMTPPort:              int(getInt64("SMTP_PORT", "587")),
		SMTPUsername:          getEnv("SMTP_USERNAME", ""),
		SMTPPassword:          getEnv("SMTP_PASSWORD", ""),
		EmailFromName:         getEnv("EMAIL_FROM_NAME", "Marketplace"),
		EmailFromAddress:      getEnv("EMAIL_FROM_ADDRESS", ""),
	}

	if parseErr != nil {
		return nil, parseErr
	}
	if cfg.JWTAccessSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}
	if cfg.CreditsInitialBalance < 0 {
		return nil, fmt.Errorf("CREDITS_INITIAL_BALANCE must not be negative")
	}
	switch cfg.CreditsStore {
	case CreditsStoreMemory:
	case CreditsStoreRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("REDIS_URL is required when CREDITS_STORE is redis")
		}
		if cfg.CreditsSessionTTL < time.Millisecond {
			return nil, fmt.Errorf("CREDITS_SESSION_TTL must be at least 1ms")
		}
	case CreditsStorePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when CREDITS_STORE is postgres")
		}
	default:
		return nil, fmt.Errorf("unknown CREDITS_STORE %q", cfg.CreditsStore)
	}
	if cfg.AssistantDelayMin < 0 {
		return nil, fmt.Errorf("ASSISTANT_DELAY_MIN must not be negative")
	}
	if cfg.AssistantDelayMax < cfg.AssistantDelayMin {
		return nil, fmt.Errorf("ASSISTANT_DELAY_MAX must not be lower than ASSISTANT_DELAY_MIN")
	}
	if emailEnabled && smtpHost == "" {
		return nil, fmt.Errorf("SMTP_HOST is required when EMAIL_ENABLED is true")
	}
	if cfg.EmailEnabled && cfg.EmailFromAddress == "" {
		return nil, fmt.Errorf("EMAIL_FROM_ADDRESS is required when email is enabled")
	}

	return cfg, nil
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
