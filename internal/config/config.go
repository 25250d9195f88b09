// Package config loads careerview configuration from a YAML file, environment
// variables and defaults, and validates the result.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// App is the config file base name and the environment variable prefix (upper-cased).
const App = "careerview"

// Config is the full service configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	LLM     LLMConfig     `mapstructure:"llm"`
	Storage StorageConfig `mapstructure:"storage"`
	Workers WorkersConfig `mapstructure:"workers"`
	Events  EventsConfig  `mapstructure:"events"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Log     LogConfig     `mapstructure:"log"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Port          int             `mapstructure:"port" validate:"min=1,max=65535"`
	MaxUploadMB   int             `mapstructure:"max_upload_mb" validate:"min=1"`
	AllowedOrigin string          `mapstructure:"allowed_origin"`
	RateLimit     RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig sets the per-client token bucket. Expensive endpoints get their own budget.
type RateLimitConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	DefaultRPM      int           `mapstructure:"default_rpm" validate:"min=1"`
	DefaultBurst    int           `mapstructure:"default_burst" validate:"min=1"`
	LLMRPM          int           `mapstructure:"llm_rpm" validate:"min=1"`
	LLMBurst        int           `mapstructure:"llm_burst" validate:"min=1"`
	UploadRPM       int           `mapstructure:"upload_rpm" validate:"min=1"`
	UploadBurst     int           `mapstructure:"upload_burst" validate:"min=1"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	TrustProxy      bool          `mapstructure:"trust_proxy"`
}

// LLMConfig selects the Gemini models. An empty API key disables LLM features and
// every caller falls back to its built-in results.
type LLMConfig struct {
	APIKey        string `mapstructure:"api_key"`
	StandardModel string `mapstructure:"standard_model" validate:"required"`
	AdvancedModel string `mapstructure:"advanced_model" validate:"required"`
	MaxLogLength  int    `mapstructure:"max_log_length" validate:"min=0"`
}

// StorageConfig selects the object store backend.
type StorageConfig struct {
	Backend  string         `mapstructure:"backend" validate:"oneof=memory s3 postgres sqlite"`
	CacheTTL time.Duration  `mapstructure:"cache_ttl" validate:"min=0"`
	S3       S3Config       `mapstructure:"s3"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	SQLite   SQLiteConfig   `mapstructure:"sqlite"`
}

// S3Config addresses an S3 or S3-compatible (R2, MinIO) bucket.
type S3Config struct {
	Bucket          string `mapstructure:"bucket"`
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	Prefix          string `mapstructure:"prefix"`
}

// PostgresConfig holds the connection URL for the blobs table.
type PostgresConfig struct {
	URL string `mapstructure:"url"`
}

// SQLiteConfig holds the database file path.
type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

// WorkersConfig sizes the blocking-work pool.
type WorkersConfig struct {
	PoolSize int `mapstructure:"pool_size" validate:"min=1"`
}

// EventsConfig points at an AMQP broker. An empty URL disables publishing.
type EventsConfig struct {
	AMQPURL  string `mapstructure:"amqp_url"`
	Exchange string `mapstructure:"exchange" validate:"required"`
}

// AuthConfig guards the destructive admin endpoints. An empty secret leaves them open.
type AuthConfig struct {
	AdminSecret     string `mapstructure:"admin_secret"`
	ExpirationHours int    `mapstructure:"expiration_hours" validate:"min=1"`
}

// Enabled reports whether admin routes require a bearer token.
func (a AuthConfig) Enabled() bool {
	return a.AdminSecret != ""
}

// LogConfig controls the zap logger.
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// SetDefaults registers every key with its default so env overrides are visible to Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.max_upload_mb", 10)
	v.SetDefault("server.allowed_origin", "*")
	v.SetDefault("server.rate_limit.enabled", true)
	v.SetDefault("server.rate_limit.default_rpm", 120)
	v.SetDefault("server.rate_limit.default_burst", 20)
	v.SetDefault("server.rate_limit.llm_rpm", 20)
	v.SetDefault("server.rate_limit.llm_burst", 5)
	v.SetDefault("server.rate_limit.upload_rpm", 10)
	v.SetDefault("server.rate_limit.upload_burst", 3)
	v.SetDefault("server.rate_limit.cleanup_interval", 5*time.Minute)
	v.SetDefault("server.rate_limit.trust_proxy", false)

	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.standard_model", "gemini-2.0-flash")
	v.SetDefault("llm.advanced_model", "gemini-2.5-pro")
	v.SetDefault("llm.max_log_length", 500)

	v.SetDefault("storage.backend", "memory")
	v.SetDefault("storage.cache_ttl", 300*time.Second)
	v.SetDefault("storage.s3.bucket", "")
	v.SetDefault("storage.s3.endpoint", "")
	v.SetDefault("storage.s3.region", "auto")
	v.SetDefault("storage.s3.access_key_id", "")
	v.SetDefault("storage.s3.secret_access_key", "")
	v.SetDefault("storage.s3.prefix", "")
	v.SetDefault("storage.postgres.url", "")
	v.SetDefault("storage.sqlite.path", "careerview.db")

	v.SetDefault("workers.pool_size", 4)

	v.SetDefault("events.amqp_url", "")
	v.SetDefault("events.exchange", "careerview.events")

	v.SetDefault("auth.admin_secret", "")
	v.SetDefault("auth.expiration_hours", 24)

	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)
}

// Load reads configuration into v and returns the validated result.
// path may be empty, in which case careerview.yaml in the working directory is
// used when present.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(App)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	legacy := map[string]string{
		"llm.api_key":          "GEMINI_API_KEY",
		"storage.postgres.url": "DATABASE_URL",
		"server.port":          "PORT",
	}
	for key, env := range legacy {
		prefixed := strings.ToUpper(App + "_" + strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(App)
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field ranges with struct tags, then the backend-specific requirements.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	switch c.Storage.Backend {
	case "s3":
		if c.Storage.S3.Bucket == "" {
			return fmt.Errorf("config error: 'storage.s3.bucket' is required for the s3 backend")
		}
	case "postgres":
		if c.Storage.Postgres.URL == "" {
			return fmt.Errorf("config error: 'storage.postgres.url' (or DATABASE_URL) is required for the postgres backend")
		}
	case "sqlite":
		if c.Storage.SQLite.Path == "" {
			return fmt.Errorf("config error: 'storage.sqlite.path' is required for the sqlite backend")
		}
	}
	return nil
}

// Address is the listen address for the HTTP server.
func (c *Config) Address() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// MaxUploadBytes is the upload size limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Server.MaxUploadMB) << 20
}
