// Package config provides application configuration loading and validation.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Ingestion modes.
const (
	IngestModeInline = "inline"
	IngestModeQueue  = "queue"
)

// Config holds the complete application configuration.
type Config struct {
	Server       ServerConfig
	Storage      StorageConfig
	Database     DatabaseConfig
	AlphaVantage AlphaVantageConfig `mapstructure:"alphavantage"`
	News         NewsConfig
	Ingest       IngestConfig
	Redis        RedisConfig
	Auth         AuthConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port          int  `mapstructure:"port"`
	ServeSwagger  bool `mapstructure:"serve_swagger"`
	ServeAsynqmon bool `mapstructure:"serve_asynqmon"`
}

// StorageConfig selects the quote store implementation.
type StorageConfig struct {
	Driver string `mapstructure:"driver"`
}

// DatabaseConfig holds PostgreSQL connection settings.
// URL takes precedence over the discrete host/port/user fields.
type DatabaseConfig struct {
	URL                string `mapstructure:"url"`
	Host               string `mapstructure:"host"`
	Port               int    `mapstructure:"port"`
	User               string `mapstructure:"user"`
	Password           string `mapstructure:"password"`
	Name               string `mapstructure:"name"`
	SSLMode            string `mapstructure:"sslmode"`
	MaxOpenConns       int    `mapstructure:"max_open_conns"`
	MaxIdleConns       int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeSec int    `mapstructure:"conn_max_lifetime_sec"`
	DSN                string
}

// AlphaVantageConfig holds settings for the Alpha Vantage quote provider.
type AlphaVantageConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	APIKey     string `mapstructure:"api_key"`
	TimeoutSec int    `mapstructure:"timeout_sec"`
}

// NewsConfig holds settings for the NewsAPI proxy.
type NewsConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	APIKey     string `mapstructure:"api_key"`
	Query      string `mapstructure:"query"`
	Language   string `mapstructure:"language"`
	PageSize   int    `mapstructure:"page_size"`
	TimeoutSec int    `mapstructure:"timeout_sec"`
}

// IngestConfig controls how freshly fetched quotes are persisted.
type IngestConfig struct {
	Mode        string `mapstructure:"mode"`
	TimeoutSec  int    `mapstructure:"timeout_sec"`
	MaxRetry    int    `mapstructure:"max_retry"`
	Concurrency int    `mapstructure:"concurrency"`
}

// RedisConfig holds connection settings for the optional Redis instances.
type RedisConfig struct {
	AsynqAddr   string `mapstructure:"asynq_addr"`   // Task queue, required when ingest.mode=queue.
	SessionAddr string `mapstructure:"session_addr"` // Login sessions; empty disables the pages.
}

// AuthConfig holds the dashboard login settings.
type AuthConfig struct {
	Username      string `mapstructure:"username"`
	Password      string `mapstructure:"password"`
	SessionTTLSec int    `mapstructure:"session_ttl_sec"`
	CookieName    string `mapstructure:"cookie_name"`
	CookieSecure  bool   `mapstructure:"cookie_secure"`
}

// LoadConfig reads configuration from config files, environment variables, and defaults.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("No .env file found or error loading it: %v\n", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./internal/config")

	if err := v.ReadInConfig(); err != nil {
		// defaults and env are enough to run
		fmt.Printf("Config file not found: %v\n", err)
	}

	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix("FXDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Plain variable names used by existing deployments.
	_ = v.BindEnv("database.url", "FXDESK_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("alphavantage.api_key", "FXDESK_ALPHAVANTAGE_API_KEY", "ALPHA_VANTAGE_API_KEY")
	_ = v.BindEnv("news.api_key", "FXDESK_NEWS_API_KEY", "NEWS_API_KEY")
	_ = v.BindEnv("server.port", "FXDESK_SERVER_PORT", "PORT")

	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
	cfg.Ingest.Mode = strings.ToLower(strings.TrimSpace(cfg.Ingest.Mode))
	cfg.Database.DSN = buildDSN(&cfg.Database)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.serve_swagger", true)
	v.SetDefault("server.serve_asynqmon", true)
	v.SetDefault("storage.driver", StorageDriverPostgres)
	v.SetDefault("database.url", "")
	v.SetDefault("database.host", "")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "fxdesk")
	v.SetDefault("database.sslmode", "")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime_sec", 300)
	v.SetDefault("alphavantage.base_url", "https://www.alphavantage.co")
	v.SetDefault("alphavantage.api_key", "")
	v.SetDefault("alphavantage.timeout_sec", 20)
	v.SetDefault("news.base_url", "https://newsapi.org")
	v.SetDefault("news.api_key", "")
	v.SetDefault("news.query", "noticias")
	v.SetDefault("news.language", "es")
	v.SetDefault("news.page_size", 20)
	v.SetDefault("news.timeout_sec", 15)
	v.SetDefault("ingest.mode", IngestModeInline)
	v.SetDefault("ingest.timeout_sec", 5)
	v.SetDefault("ingest.max_retry", 3)
	v.SetDefault("ingest.concurrency", 2)
	v.SetDefault("redis.asynq_addr", "")
	v.SetDefault("redis.session_addr", "")
	v.SetDefault("auth.username", "admin")
	v.SetDefault("auth.password", "1234")
	v.SetDefault("auth.session_ttl_sec", 3600)
	v.SetDefault("auth.cookie_name", "fxdesk_session")
	v.SetDefault("auth.cookie_secure", false)
}

// Validate checks that all required configuration fields are set and valid.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 {
		errs = append(errs, fmt.Errorf("server.port must be positive, got %d", c.Server.Port))
	}

	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if c.Database.DSN == "" {
			errs = append(errs, fmt.Errorf("database.url or database.host is required for the postgres store (set DATABASE_URL)"))
		}
		if c.Database.MaxOpenConns <= 0 {
			errs = append(errs, fmt.Errorf("database.max_open_conns must be positive, got %d", c.Database.MaxOpenConns))
		}
	case StorageDriverMemory:
	default:
		errs = append(errs, fmt.Errorf("storage.driver must be %q or %q, got %q", StorageDriverPostgres, StorageDriverMemory, c.Storage.Driver))
	}

	if c.AlphaVantage.TimeoutSec <= 0 {
		errs = append(errs, fmt.Errorf("alphavantage.timeout_sec must be positive, got %d", c.AlphaVantage.TimeoutSec))
	}
	if c.News.TimeoutSec <= 0 {
		errs = append(errs, fmt.Errorf("news.timeout_sec must be positive, got %d", c.News.TimeoutSec))
	}
	if c.News.PageSize <= 0 || c.News.PageSize > 100 {
		errs = append(errs, fmt.Errorf("news.page_size must be in 1..100, got %d", c.News.PageSize))
	}

	switch c.Ingest.Mode {
	case IngestModeInline:
	case IngestModeQueue:
		if c.Redis.AsynqAddr == "" {
			errs = append(errs, fmt.Errorf("redis.asynq_addr is required when ingest.mode=queue (set FXDESK_REDIS_ASYNQ_ADDR)"))
		}
		if c.Ingest.Concurrency <= 0 {
			errs = append(errs, fmt.Errorf("ingest.concurrency must be positive, got %d", c.Ingest.Concurrency))
		}
		if c.Ingest.MaxRetry < 0 {
			errs = append(errs, fmt.Errorf("ingest.max_retry must be non-negative, got %d", c.Ingest.MaxRetry))
		}
	default:
		errs = append(errs, fmt.Errorf("ingest.mode must be %q or %q, got %q", IngestModeInline, IngestModeQueue, c.Ingest.Mode))
	}
	if c.Ingest.TimeoutSec <= 0 {
		errs = append(errs, fmt.Errorf("ingest.timeout_sec must be positive, got %d", c.Ingest.TimeoutSec))
	}

	if c.Redis.SessionAddr != "" {
		if c.Auth.Username == "" || c.Auth.Password == "" {
			errs = append(errs, fmt.Errorf("auth.username and auth.password are required when sessions are enabled"))
		}
		if c.Auth.SessionTTLSec <= 0 {
			errs = append(errs, fmt.Errorf("auth.session_ttl_sec must be positive, got %d", c.Auth.SessionTTLSec))
		}
		if c.Auth.CookieName == "" {
			errs = append(errs, fmt.Errorf("auth.cookie_name is required"))
		}
	}

	return errors.Join(errs...)
}

// buildDSN resolves the Postgres connection string. Hosted databases
// require TLS, so remote URLs without an explicit sslmode get sslmode=require.
func buildDSN(db *DatabaseConfig) string {
	if db.URL != "" {
		return normalizeDatabaseURL(db.URL)
	}
	if db.Host == "" {
		return ""
	}
	sslmode := db.SSLMode
	if sslmode == "" {
		sslmode = defaultSSLMode(db.Host)
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(db.User, db.Password),
		Host:     fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:     "/" + db.Name,
		RawQuery: "sslmode=" + sslmode,
	}
	return u.String()
}

func normalizeDatabaseURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		// keyword/value DSNs are handed to pgx untouched
		return raw
	}
	if u.Scheme == "postgresql" {
		u.Scheme = "postgres"
	}
	q := u.Query()
	if q.Get("sslmode") == "" && !isLocalHost(u.Hostname()) {
		q.Set("sslmode", "require")
		u.RawQuery = q.Encode()
	}
	return u.String()
}

func defaultSSLMode(host string) string {
	if isLocalHost(host) {
		return "disable"
	}
	return "require"
}

func isLocalHost(host string) bool {
	switch host {
	case "localhost", "127.0.0.1", "::1":
		return true
	default:
		return false
	}
}
