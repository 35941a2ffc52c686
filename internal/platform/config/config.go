package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures process-level configuration for the onboarding service.
type Server struct {
	Addr string

	// Base URL of the remote verification API that owns identify/challenge
	// and onboarding-status endpoints.
	APIBaseURL string

	// HMAC key for minting scoped handoff tokens.
	ScopedTokenSigningKey string

	// Optional backing stores. Empty values select the in-memory fallbacks.
	RedisURL    string
	PostgresDSN string

	// Kafka brokers for the audit publisher; empty disables publishing.
	KafkaBrokers string
	AuditTopic   string

	// Client-side resend cooldown applied to every freshly issued challenge.
	ResendCooldown time.Duration

	// Lifetime of an untouched session record and of scoped handoff tokens.
	SessionTTL     time.Duration
	ScopedTokenTTL time.Duration

	// How long a session may sit in init before bootstrap is considered failed.
	BootstrapTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	return Server{
		Addr:                  getenv("BIFROST_ADDR", ":8080"),
		APIBaseURL:            getenv("BIFROST_API_BASE_URL", "http://localhost:9000"),
		ScopedTokenSigningKey: getenv("BIFROST_SCOPED_TOKEN_KEY", "dev-secret-key-change-in-production"),
		RedisURL:              os.Getenv("BIFROST_REDIS_URL"),
		PostgresDSN:           os.Getenv("BIFROST_POSTGRES_DSN"),
		KafkaBrokers:          os.Getenv("BIFROST_KAFKA_BROKERS"),
		AuditTopic:            getenv("BIFROST_AUDIT_TOPIC", "bifrost.onboarding.audit"),
		ResendCooldown:        getduration("BIFROST_RESEND_COOLDOWN", 30*time.Second),
		SessionTTL:            getduration("BIFROST_SESSION_TTL", 24*time.Hour),
		ScopedTokenTTL:        getduration("BIFROST_SCOPED_TOKEN_TTL", 10*time.Minute),
		BootstrapTimeout:      getduration("BIFROST_BOOTSTRAP_TIMEOUT", 20*time.Second),
	}
}

// RedisConfig carries tuning for the optional Redis session store.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// RedisFromEnv builds the Redis config, returning defaults sized for a small
// deployment.
func RedisFromEnv() RedisConfig {
	return RedisConfig{
		URL:          os.Getenv("BIFROST_REDIS_URL"),
		PoolSize:     getint("BIFROST_REDIS_POOL_SIZE", 10),
		MinIdleConns: getint("BIFROST_REDIS_MIN_IDLE", 2),
		DialTimeout:  getduration("BIFROST_REDIS_DIAL_TIMEOUT", 5*time.Second),
		ReadTimeout:  getduration("BIFROST_REDIS_READ_TIMEOUT", 3*time.Second),
		WriteTimeout: getduration("BIFROST_REDIS_WRITE_TIMEOUT", 3*time.Second),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
