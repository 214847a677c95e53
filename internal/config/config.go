// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"net"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Data     DataConfig
	Database DatabaseConfig
	Logging  LoggingConfig
	Metrics  MetricsConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading the request (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing the response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 30s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"30s"`

	// AllowedOrigins is a comma-separated list of origins allowed to call the
	// API from a browser. Empty disables CORS headers.
	AllowedOrigins []string `env:"ALLOWED_ORIGINS"`
}

// DataConfig locates the four CSV datasets and controls how they are served.
type DataConfig struct {
	// Dir is the directory relative file names are resolved against (default: data)
	Dir string `env:"DATA_DIR" default:"data"`

	// ProvidersFile is the providers CSV (default: providers_data.csv)
	ProvidersFile string `env:"PROVIDERS_CSV" default:"providers_data.csv"`

	// ReceiversFile is the receivers CSV (default: receivers_data.csv)
	ReceiversFile string `env:"RECEIVERS_CSV" default:"receivers_data.csv"`

	// ClaimsFile is the claims CSV (default: claims_data.csv)
	ClaimsFile string `env:"CLAIMS_CSV" default:"claims_data.csv"`

	// ListingsFile is the food listings CSV (default: food_listings_data.csv)
	ListingsFile string `env:"LISTINGS_CSV" default:"food_listings_data.csv"`

	// LoadTimeout bounds the initial dataset load (default: 2m)
	LoadTimeout time.Duration `env:"DATA_LOAD_TIMEOUT" default:"2m"`

	// CacheViews memoizes the joined views after first use (default: true)
	CacheViews bool `env:"VIEWS_CACHE" default:"true"`
}

// DatabaseConfig holds the optional Postgres source settings.
// When URL is empty the CSV files are used instead.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string.
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// Schema holds the dataset tables; empty uses the search_path
	Schema string `env:"DB_SCHEMA"`

	// MaxConns is the maximum number of connections in the pool (default: 4)
	MaxConns int `env:"DB_MAX_CONNS" default:"4"`

	// MinConns is the minimum number of connections to keep open (default: 0)
	MinConns int `env:"DB_MIN_CONNS" default:"0"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`

	// MaxConnIdleTime is the maximum idle time before a connection is closed (default: 30m)
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// MetricsConfig holds Prometheus exposition settings.
type MetricsConfig struct {
	// Enabled mounts the metrics endpoint (default: true)
	Enabled bool `env:"METRICS_ENABLED" default:"true"`

	// Path is where metrics are served (default: /metrics)
	Path string `env:"METRICS_PATH" default:"/metrics"`

	// Runtime adds Go runtime and process collectors (default: true)
	Runtime bool `env:"METRICS_RUNTIME" default:"true"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// UseDatabase reports whether the Postgres source is configured.
func (c *DatabaseConfig) UseDatabase() bool {
	return c.URL != ""
}

// Path resolves a dataset file name against Dir. Absolute names are
// returned unchanged.
func (c *DataConfig) Path(file string) string {
	if filepath.IsAbs(file) || c.Dir == "" {
		return file
	}
	return filepath.Join(c.Dir, file)
}

// Paths returns the resolved providers, receivers, claims and listings paths.
func (c *DataConfig) Paths() (providers, receivers, claims, listings string) {
	return c.Path(c.ProvidersFile), c.Path(c.ReceiversFile), c.Path(c.ClaimsFile), c.Path(c.ListingsFile)
}
