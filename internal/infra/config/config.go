// Package config provides configuration loading from YAML files.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	API    APIConfig    `yaml:"api"`
	Cache  CacheConfig  `yaml:"cache"`
	Search SearchConfig `yaml:"search"`
	Log    LogConfig    `yaml:"log"`
}

// APIConfig represents Marvel API configuration.
type APIConfig struct {
	PublicKey  string `yaml:"public_key" validate:"required"`
	PrivateKey string `yaml:"private_key" validate:"required"`
	BaseURL    string `yaml:"base_url" default:"https://gateway.marvel.com/v1/public" validate:"url"`
	TimeoutSec int    `yaml:"timeout_sec" default:"10" validate:"gte=1,lte=120"`
	RetryMax   int    `yaml:"retry_max" default:"3" validate:"gte=0,lte=10"`
}

// CacheConfig represents response cache configuration.
type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	TTLSec  int  `yaml:"ttl_sec" default:"300" validate:"gte=1"`
}

// SearchConfig represents search defaults.
type SearchConfig struct {
	PageSize int `yaml:"page_size" default:"20" validate:"gte=1,lte=100"`
}

// LogConfig represents logging configuration.
type LogConfig struct {
	Output string `yaml:"output" default:"stderr" validate:"oneof=stdout stderr file"`
	Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn warning error"`
	File   string `yaml:"file" validate:"required_if=Output file"`
}

// Load loads configuration from a YAML file. An empty path skips the file so
// the configuration can come from the environment alone.
// Environment variables take precedence over file values.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read config file")
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, "failed to parse config file")
		}
	}

	// Override with environment variables
	cfg.overrideFromEnv()

	// Set defaults using creasty/defaults
	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() {
	if v := os.Getenv("MARVEL_PUBLIC_KEY"); v != "" {
		c.API.PublicKey = v
	}
	if v := os.Getenv("MARVEL_PRIVATE_KEY"); v != "" {
		c.API.PrivateKey = v
	}
	if v := os.Getenv("MARVEL_BASE_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("MARVEL_LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}
	return nil
}

// Timeout returns the HTTP timeout of one API request.
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// TTL returns how long responses are cached, zero when caching is disabled.
func (c CacheConfig) TTL() time.Duration {
	if !c.Enabled {
		return 0
	}
	return time.Duration(c.TTLSec) * time.Second
}
