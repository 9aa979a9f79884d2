package config

import (
	"fmt"
	"os"
	"time"

	"github.com/prometheus/common/model"
	"gopkg.in/yaml.v3"
)

// Credential environment variables. Names are fixed; deployments have
// them baked into cron units and CI secrets.
const (
	EnvAPIKey    = "CLOUD_API_KEY"
	EnvAPISecret = "CLOUD_API_SECRET"
)

// Config represents the main configuration
type Config struct {
	APIKey          string         `yaml:"api_key,omitempty"`
	APISecret       string         `yaml:"api_secret,omitempty"`
	BaseURL         string         `yaml:"base_url"`
	TelemetryURL    string         `yaml:"telemetry_url"`
	OutputDir       string         `yaml:"output_dir"`
	ExampleConfig   string         `yaml:"example_config"`
	RefreshInterval model.Duration `yaml:"refresh_interval"`
	HTTPTimeout     time.Duration  `yaml:"http_timeout"`
	Types           []string       `yaml:"types,omitempty"`
	ExcludeTypes    []string       `yaml:"exclude_types,omitempty"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		BaseURL:         "https://api.confluent.cloud",
		TelemetryURL:    "https://api.telemetry.confluent.cloud",
		OutputDir:       "targets",
		ExampleConfig:   "prometheus.yml",
		RefreshInterval: model.Duration(30 * time.Second),
		HTTPTimeout:     30 * time.Second,
	}
}

// Load builds the effective configuration: defaults, then the optional
// YAML file, then credential env vars. Env vars always win for
// credentials so keys never have to live in the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- path is intentional user input
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvAPISecret); v != "" {
		c.APISecret = v
	}
}

// Validate ensures config has required fields
func (c *Config) Validate() error {
	if c.APIKey == "" || c.APISecret == "" {
		return fmt.Errorf("%s and %s must be set", EnvAPIKey, EnvAPISecret)
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is required")
	}
	if c.TelemetryURL == "" {
		return fmt.Errorf("telemetry URL is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}
	return nil
}
