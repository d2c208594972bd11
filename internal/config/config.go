package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Search    SearchConfig    `yaml:"search"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Fixtures  FixturesConfig  `yaml:"fixtures"`
	Logging   LoggingConfig   `yaml:"logging"`
	Timezone  string          `yaml:"timezone"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port         string   `yaml:"port"`
	AllowOrigins []string `yaml:"allow_origins"`
	// AdminToken guards /api/admin when set
	AdminToken string `yaml:"admin_token"`
}

// DatabaseConfig contains database settings. Type selects the listing
// store: postgres, mysql, mongo or none.
type DatabaseConfig struct {
	Type     string         `yaml:"type"`
	MySQL    MySQLConfig    `yaml:"mysql"`
	Postgres PostgresConfig `yaml:"postgres"`
	Mongo    MongoConfig    `yaml:"mongo"`
}

// MySQLConfig contains MySQL connection settings
type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// PostgresConfig contains PostgreSQL connection settings
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
}

// MongoConfig contains MongoDB connection settings
type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

// RedisConfig contains the key-value store and result cache settings
type RedisConfig struct {
	Enabled         bool   `yaml:"enabled"`
	Addr            string `yaml:"addr"`
	Password        string `yaml:"password"`
	DB              int    `yaml:"db"`
	CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
}

// SearchConfig contains search engine settings
type SearchConfig struct {
	Enabled          bool              `yaml:"enabled"`
	Meilisearch      MeilisearchConfig `yaml:"meilisearch"`
	DailyRunEnabled  bool              `yaml:"daily_run_enabled"`
	DailyRunTime     string            `yaml:"daily_run_time"`
	ReindexOnStartup bool              `yaml:"reindex_on_startup"`
}

// MeilisearchConfig contains Meilisearch connection settings
type MeilisearchConfig struct {
	Host   string `yaml:"host"`
	APIKey string `yaml:"api_key"`
}

// RateLimitConfig contains per-client limits for the lead capture routes
type RateLimitConfig struct {
	Enabled              bool `yaml:"enabled"`
	RequestsPerMinute    int  `yaml:"requests_per_minute"`
	RequestsPerHour      int  `yaml:"requests_per_hour"`
	PruneIntervalMinutes int  `yaml:"prune_interval_minutes"`
}

// FixturesConfig controls the built-in static listings
type FixturesConfig struct {
	Enabled bool `yaml:"enabled"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level       string `yaml:"level"`
	LogRequests bool   `yaml:"log_requests"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "8084",
			AllowOrigins: []string{"http://localhost:3000"},
		},
		Database: DatabaseConfig{
			Type: "postgres",
		},
		Redis: RedisConfig{
			Enabled:         true,
			Addr:            "localhost:6379",
			CacheTTLSeconds: 300,
		},
		Search: SearchConfig{
			Enabled:         true,
			DailyRunEnabled: true,
			DailyRunTime:    "02:00",
		},
		RateLimit: RateLimitConfig{
			Enabled:              true,
			RequestsPerMinute:    5,
			RequestsPerHour:      30,
			PruneIntervalMinutes: 15,
		},
		Fixtures: FixturesConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level:       "info",
			LogRequests: true,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(filepath string) (*Config, error) {
	// Start with default config
	config := DefaultConfig()

	// If file doesn't exist, return default config
	if _, err := os.Stat(filepath); os.IsNotExist(err) {
		return config, nil
	}

	// Read file
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// CacheTTL returns the result cache lifetime
func (c *RedisConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// PruneInterval returns how often idle rate limiter clients are dropped
func (c *RateLimitConfig) PruneInterval() time.Duration {
	return time.Duration(c.PruneIntervalMinutes) * time.Minute
}
