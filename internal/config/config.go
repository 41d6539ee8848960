// Package config resolves settings for the CLI tools from an optional
// YAML file and the environment. Environment values always win; the API
// key is only ever sourced from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultModel           = "gemini-2.5-flash"
	DefaultCheckTimeout    = 10 * time.Second
	DefaultGenerateTimeout = 20 * time.Second
)

// Config holds resolved configuration for both tools.
type Config struct {
	// APIKey comes from GEMINI_API_KEY only; never from a file.
	APIKey string

	BaseURL         string
	APIVersion      string
	DefaultModel    string
	CheckTimeout    time.Duration
	GenerateTimeout time.Duration

	// DisableSDK turns the vendor-SDK path off entirely, leaving only
	// the REST fallback.
	DisableSDK bool
}

// fileConfig is the YAML file structure. Durations are strings like "10s".
type fileConfig struct {
	BaseURL         string `yaml:"base_url,omitempty"`
	APIVersion      string `yaml:"api_version,omitempty"`
	DefaultModel    string `yaml:"default_model,omitempty"`
	CheckTimeout    string `yaml:"check_timeout,omitempty"`
	GenerateTimeout string `yaml:"generate_timeout,omitempty"`
	DisableSDK      bool   `yaml:"disable_sdk,omitempty"`
}

// Load builds a Config from defaults, then the YAML file at path (if
// given and present), then the environment. A missing file at an
// explicitly given path is an error; an empty path skips the file layer.
func Load(path string) (*Config, error) {
	cfg := &Config{
		DefaultModel:    DefaultModel,
		CheckTimeout:    DefaultCheckTimeout,
		GenerateTimeout: DefaultGenerateTimeout,
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		var fc fileConfig
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
		if err := cfg.applyFile(&fc); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
	}

	cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	if v := os.Getenv("GEMINI_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	return cfg, nil
}

func (c *Config) applyFile(fc *fileConfig) error {
	if fc.BaseURL != "" {
		c.BaseURL = fc.BaseURL
	}
	if fc.APIVersion != "" {
		c.APIVersion = fc.APIVersion
	}
	if fc.DefaultModel != "" {
		c.DefaultModel = fc.DefaultModel
	}
	if fc.CheckTimeout != "" {
		d, err := time.ParseDuration(fc.CheckTimeout)
		if err != nil {
			return fmt.Errorf("check_timeout: %w", err)
		}
		if d <= 0 {
			return errors.New("check_timeout must be positive")
		}
		c.CheckTimeout = d
	}
	if fc.GenerateTimeout != "" {
		d, err := time.ParseDuration(fc.GenerateTimeout)
		if err != nil {
			return fmt.Errorf("generate_timeout: %w", err)
		}
		if d <= 0 {
			return errors.New("generate_timeout must be positive")
		}
		c.GenerateTimeout = d
	}
	c.DisableSDK = fc.DisableSDK
	return nil
}
