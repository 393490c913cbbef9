// Package config loads runtime configuration from the environment so main
// stays lean. Optional backends (database, cache, audit brokers) are enabled
// by presence of their variables; absence means the in-process fallback.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the full runtime configuration.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string

	// DatabaseURL enables the Postgres BIC directory when set.
	DatabaseURL string

	// Redis fronts the directory with a cache when configured.
	Redis RedisConfig

	// KafkaBrokers enables the audit stream when non-empty.
	KafkaBrokers []string
	// AuditTopic is the audit stream topic.
	AuditTopic string

	// BatchLimit caps one batch validation request.
	BatchLimit int
}

// RedisConfig carries the cache connection settings.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CacheTTL     time.Duration
}

// FromEnv builds the configuration from environment variables.
func FromEnv() Config {
	return Config{
		Addr:         envOr("SCHWIFTY_ADDR", ":8080"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		Redis:        redisFromEnv(),
		KafkaBrokers: splitNonEmpty(os.Getenv("KAFKA_BROKERS")),
		AuditTopic:   envOr("AUDIT_TOPIC", "schwifty.audit"),
		BatchLimit:   envIntOr("BATCH_LIMIT", 100),
	}
}

func redisFromEnv() RedisConfig {
	return RedisConfig{
		URL:          os.Getenv("REDIS_URL"),
		PoolSize:     envIntOr("REDIS_POOL_SIZE", 10),
		MinIdleConns: envIntOr("REDIS_MIN_IDLE_CONNS", 2),
		DialTimeout:  envDurationOr("REDIS_DIAL_TIMEOUT", 5*time.Second),
		ReadTimeout:  envDurationOr("REDIS_READ_TIMEOUT", 3*time.Second),
		WriteTimeout: envDurationOr("REDIS_WRITE_TIMEOUT", 3*time.Second),
		CacheTTL:     envDurationOr("REDIS_CACHE_TTL", 24*time.Hour),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func splitNonEmpty(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
