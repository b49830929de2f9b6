// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ContentSourceDatabase and ContentSourceContentful are the two operating
// modes for property/blog/notification reads. The modes are mutually
// exclusive per deployment; there is no per-record merging.
const (
	ContentSourceDatabase   = "database"
	ContentSourceContentful = "contentful"
)

// Config holds all configuration for the application.
type Config struct {
	// Server Configuration
	GinMode       string        `mapstructure:"GIN_MODE"`
	ServerHost    string        `mapstructure:"SERVER_HOST"`
	ServerPort    string        `mapstructure:"SERVER_PORT"`
	ServerTimeout time.Duration `mapstructure:"SERVER_TIMEOUT_SECONDS"`

	// Database Configuration
	DBHost            string        `mapstructure:"DB_HOST"`
	DBPort            string        `mapstructure:"DB_PORT"`
	DBUser            string        `mapstructure:"DB_USER"`
	DBPassword        string        `mapstructure:"DB_PASSWORD"`
	DBName            string        `mapstructure:"DB_NAME"`
	DBSSLMode         string        `mapstructure:"DB_SSL_MODE"`
	DBTimezone        string        `mapstructure:"DB_TIMEZONE"`
	DBMaxIdleConns    int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBMaxOpenConns    int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBConnMaxLifetime time.Duration `mapstructure:"DB_CONN_MAX_LIFETIME_MINUTES"`

	// Logging Configuration
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// Content sourcing. "database" serves properties/blogs/notifications
	// from the relational store; "contentful" serves them from the remote
	// content store via the resolver.
	ContentSource string `mapstructure:"CONTENT_SOURCE"`

	// Contentful credentials. CDA token is the read-only delivery scope,
	// CMA token is the read-write management scope. Both default to empty,
	// in which case the resolver/publisher degrade to "not configured".
	ContentfulSpaceID     string `mapstructure:"CONTENTFUL_SPACE_ID"`
	ContentfulCDAToken    string `mapstructure:"CONTENTFUL_CDA_TOKEN"`
	ContentfulCMAToken    string `mapstructure:"CONTENTFUL_CMA_TOKEN"`
	ContentfulEnvironment string `mapstructure:"CONTENTFUL_ENVIRONMENT"`

	// Asset processing is asynchronous on the Contentful side. The uploader
	// polls until the processed file URL appears, bounded by these values.
	AssetPollInterval time.Duration `mapstructure:"ASSET_POLL_INTERVAL_MS"`
	AssetPollTimeout  time.Duration `mapstructure:"ASSET_POLL_TIMEOUT_SECONDS"`

	// Cron Jobs
	ContentSyncJobSchedule string `mapstructure:"CONTENT_SYNC_JOB_SCHEDULE"`

	// Outbound mail (best-effort notifications)
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     string `mapstructure:"SMTP_PORT"`
	SMTPUser     string `mapstructure:"SMTP_USER"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	MailFrom     string `mapstructure:"MAIL_FROM"`
	MailOperator string `mapstructure:"MAIL_OPERATOR"`
}

// Load attempts to load configuration from a .env file (if present) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	v := viper.New()

	// Set default values
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_TIMEOUT_SECONDS", 30)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "password")
	v.SetDefault("DB_NAME", "propmatics_db")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_MAX_OPEN_CONNS", 100)
	v.SetDefault("DB_CONN_MAX_LIFETIME_MINUTES", 60)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("CONTENT_SOURCE", ContentSourceDatabase)

	v.SetDefault("CONTENTFUL_SPACE_ID", "")
	v.SetDefault("CONTENTFUL_CDA_TOKEN", "")
	v.SetDefault("CONTENTFUL_CMA_TOKEN", "")
	v.SetDefault("CONTENTFUL_ENVIRONMENT", "master")

	v.SetDefault("ASSET_POLL_INTERVAL_MS", 500)
	v.SetDefault("ASSET_POLL_TIMEOUT_SECONDS", 10)

	v.SetDefault("CONTENT_SYNC_JOB_SCHEDULE", "@hourly")

	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", "587")
	v.SetDefault("SMTP_USER", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("MAIL_FROM", "noreply@propmatics.local")
	v.SetDefault("MAIL_OPERATOR", "")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling configuration: %w", err)
	}

	// Convert duration fields
	cfg.ServerTimeout = time.Duration(v.GetInt("SERVER_TIMEOUT_SECONDS")) * time.Second
	cfg.DBConnMaxLifetime = time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME_MINUTES")) * time.Minute
	cfg.AssetPollInterval = time.Duration(v.GetInt("ASSET_POLL_INTERVAL_MS")) * time.Millisecond
	cfg.AssetPollTimeout = time.Duration(v.GetInt("ASSET_POLL_TIMEOUT_SECONDS")) * time.Second

	if cfg.ContentSource != ContentSourceDatabase && cfg.ContentSource != ContentSourceContentful {
		return nil, fmt.Errorf("invalid CONTENT_SOURCE %q: must be %q or %q",
			cfg.ContentSource, ContentSourceDatabase, ContentSourceContentful)
	}

	return &cfg, nil
}

// ContentfulReadConfigured reports whether the delivery (read) scope is usable.
func (c *Config) ContentfulReadConfigured() bool {
	return c.ContentfulSpaceID != "" && c.ContentfulCDAToken != ""
}

// ContentfulWriteConfigured reports whether the management (write) scope is usable.
func (c *Config) ContentfulWriteConfigured() bool {
	return c.ContentfulSpaceID != "" && c.ContentfulCMAToken != ""
}
