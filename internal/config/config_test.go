package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "careerview.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes())
	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.Equal(t, 300*time.Second, cfg.Storage.CacheTTL)
	assert.Equal(t, 4, cfg.Workers.PoolSize)
	assert.Equal(t, "careerview.events", cfg.Events.Exchange)
	assert.False(t, cfg.Auth.Enabled())
	assert.Equal(t, ":8000", cfg.Address())
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
storage:
  backend: sqlite
  sqlite:
    path: /tmp/cv.db
workers:
  pool_size: 8
auth:
  admin_secret: s3cret
`)

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "/tmp/cv.db", cfg.Storage.SQLite.Path)
	assert.Equal(t, 8, cfg.Workers.PoolSize)
	assert.True(t, cfg.Auth.Enabled())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CAREERVIEW_WORKERS_POOL_SIZE", "2")
	t.Setenv("GEMINI_API_KEY", "legacy-key")
	t.Setenv("PORT", "7000")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Workers.PoolSize)
	assert.Equal(t, "legacy-key", cfg.LLM.APIKey)
	assert.Equal(t, 7000, cfg.Server.Port)
}

func TestLoad_PrefixedEnvWinsOverLegacy(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CAREERVIEW_LLM_API_KEY", "new-key")
	t.Setenv("GEMINI_API_KEY", "legacy-key")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "new-key", cfg.LLM.APIKey)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		v := viper.New()
		SetDefaults(v)
		var cfg Config
		require.NoError(t, v.Unmarshal(&cfg))
		return &cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults are valid", func(*Config) {}, ""},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "azure" }, "Backend"},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, "Port"},
		{"empty pool", func(c *Config) { c.Workers.PoolSize = 0 }, "PoolSize"},
		{"s3 without bucket", func(c *Config) { c.Storage.Backend = "s3" }, "storage.s3.bucket"},
		{"postgres without url", func(c *Config) { c.Storage.Backend = "postgres" }, "storage.postgres.url"},
		{"s3 with bucket", func(c *Config) {
			c.Storage.Backend = "s3"
			c.Storage.S3.Bucket = "resumes"
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
