// Package testkit starts the Postgres and Redis instances the integration suites run against.
package testkit

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds environment-driven configuration for integration test infrastructure.
type Config struct {
	PGImage        string
	RedisImage     string
	PGDSN          string        // FXDESK_TEST_PG_DSN; skips the Postgres container.
	RedisAddr      string        // FXDESK_TEST_REDIS_ADDR; skips the Redis container.
	StartupTimeout time.Duration // Max time to wait for containers to become ready.
	KeepContainers bool          // Leave containers running after the suite, for debugging.
}

// LoadConfig reads test infrastructure settings from environment variables.
func LoadConfig() Config {
	return Config{
		PGImage:        envOrDefault("FXDESK_TEST_PG_IMAGE", "postgres:17-alpine"),
		RedisImage:     envOrDefault("FXDESK_TEST_REDIS_IMAGE", "redis:7.4-alpine"),
		PGDSN:          os.Getenv("FXDESK_TEST_PG_DSN"),
		RedisAddr:      os.Getenv("FXDESK_TEST_REDIS_ADDR"),
		StartupTimeout: envDurationOrDefault("FXDESK_TEST_STARTUP_TIMEOUT", 90*time.Second),
		KeepContainers: envBoolOrDefault("FXDESK_TEST_KEEP_CONTAINERS", false),
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envDurationOrDefault accepts Go durations ("2m") or plain seconds ("120").
func envDurationOrDefault(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	fmt.Fprintf(os.Stderr, "testkit: invalid value %q for %s, using default %v\n", v, key, def)
	return def
}

func envBoolOrDefault(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "testkit: invalid value %q for %s, using default %v\n", v, key, def)
		return def
	}
	return b
}
