package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		API: APIConfig{
			PublicKey:  "test-public-key",
			PrivateKey: "test-private-key",
			BaseURL:    "https://gateway.marvel.com/v1/public",
			TimeoutSec: 10,
			RetryMax:   3,
		},
		Cache:  CacheConfig{TTLSec: 300},
		Search: SearchConfig{PageSize: 20},
		Log:    LogConfig{Output: "stderr", Level: "info"},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing public key",
			modify:  func(c *Config) { c.API.PublicKey = "" },
			wantErr: true,
			errMsg:  "PublicKey",
		},
		{
			name:    "missing private key",
			modify:  func(c *Config) { c.API.PrivateKey = "" },
			wantErr: true,
			errMsg:  "PrivateKey",
		},
		{
			name:    "invalid base url",
			modify:  func(c *Config) { c.API.BaseURL = "gateway" },
			wantErr: true,
			errMsg:  "BaseURL",
		},
		{
			name:    "page size above the API maximum",
			modify:  func(c *Config) { c.Search.PageSize = 101 },
			wantErr: true,
			errMsg:  "PageSize",
		},
		{
			name:    "unknown log level",
			modify:  func(c *Config) { c.Log.Level = "verbose" },
			wantErr: true,
			errMsg:  "Level",
		},
		{
			name:    "file output without a file",
			modify:  func(c *Config) { c.Log.Output = "file" },
			wantErr: true,
			errMsg:  "File",
		},
		{
			name: "file output with a file",
			modify: func(c *Config) {
				c.Log.Output = "file"
				c.Log.File = "marvel.log"
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(&cfg)
			err := cfg.Validate()

			if tt.wantErr {
				require.Error(t, err, "expected validation to fail")
				assert.Contains(t, err.Error(), tt.errMsg,
					"error message should mention the problematic field")
			} else {
				assert.NoError(t, err, "expected validation to pass")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
api:
  public_key: file-public
  private_key: file-private
cache:
  enabled: true
  ttl_sec: 60
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Run("file values and defaults", func(t *testing.T) {
		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "file-public", cfg.API.PublicKey)
		assert.Equal(t, "https://gateway.marvel.com/v1/public", cfg.API.BaseURL)
		assert.Equal(t, 10*time.Second, cfg.API.Timeout())
		assert.Equal(t, 3, cfg.API.RetryMax)
		assert.Equal(t, time.Minute, cfg.Cache.TTL())
		assert.Equal(t, 20, cfg.Search.PageSize)
		assert.Equal(t, "stderr", cfg.Log.Output)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		t.Setenv("MARVEL_PRIVATE_KEY", "env-private")
		t.Setenv("MARVEL_BASE_URL", "http://localhost:8080/v1/public")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "file-public", cfg.API.PublicKey)
		assert.Equal(t, "env-private", cfg.API.PrivateKey)
		assert.Equal(t, "http://localhost:8080/v1/public", cfg.API.BaseURL)
	})

	t.Run("environment only", func(t *testing.T) {
		t.Setenv("MARVEL_PUBLIC_KEY", "env-public")
		t.Setenv("MARVEL_PRIVATE_KEY", "env-private")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "env-public", cfg.API.PublicKey)
		assert.Zero(t, cfg.Cache.TTL())
	})

	t.Run("missing keys", func(t *testing.T) {
		t.Setenv("MARVEL_PUBLIC_KEY", "")
		t.Setenv("MARVEL_PRIVATE_KEY", "")

		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "PublicKey")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})
}
