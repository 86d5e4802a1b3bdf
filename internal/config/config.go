// Package config loads the connector configuration from a YAML file with
// environment-variable overrides. The result is validated once at startup
// and injected into clients; there is no mutable global state.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rezonia/saldeo-connector/internal/saldeo"
)

// Config represents the application configuration
type Config struct {
	Saldeo struct {
		Username         string `yaml:"username"`
		APIToken         string `yaml:"api_token"`
		CompanyProgramID string `yaml:"company_program_id"`
		BaseURL          string `yaml:"base_url"`
		Timeout          string `yaml:"timeout"`
	} `yaml:"saldeo"`

	Payments struct {
		URL string `yaml:"url"`
	} `yaml:"payments"`
}

// Environment variable overrides, applied after the file is read.
const (
	EnvUsername         = "SALDEO_USERNAME"
	EnvAPIToken         = "SALDEO_API_TOKEN"
	EnvCompanyProgramID = "SALDEO_COMPANY_PROGRAM_ID"
	EnvBaseURL          = "SALDEO_BASE_URL"
	EnvPaymentsURL      = "PAYMENTS_API_URL"
)

// Load reads configuration from path (optional, "" skips the file), applies
// environment overrides, and validates the result.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvUsername); v != "" {
		cfg.Saldeo.Username = v
	}
	if v := os.Getenv(EnvAPIToken); v != "" {
		cfg.Saldeo.APIToken = v
	}
	if v := os.Getenv(EnvCompanyProgramID); v != "" {
		cfg.Saldeo.CompanyProgramID = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.Saldeo.BaseURL = v
	}
	if v := os.Getenv(EnvPaymentsURL); v != "" {
		cfg.Payments.URL = v
	}
}

func validate(cfg *Config) error {
	if cfg.Saldeo.Username == "" {
		return fmt.Errorf("saldeo username is required")
	}
	if cfg.Saldeo.APIToken == "" {
		return fmt.Errorf("saldeo api_token is required")
	}
	if cfg.Saldeo.CompanyProgramID == "" {
		return fmt.Errorf("saldeo company_program_id is required")
	}
	if cfg.Saldeo.BaseURL == "" {
		return fmt.Errorf("saldeo base_url is required")
	}
	if cfg.Saldeo.Timeout != "" {
		if _, err := time.ParseDuration(cfg.Saldeo.Timeout); err != nil {
			return fmt.Errorf("invalid saldeo timeout: %w", err)
		}
	}
	return nil
}

// ClientConfig maps the loaded configuration onto the provider client's
// immutable credential set.
func (c *Config) ClientConfig() saldeo.Config {
	return saldeo.Config{
		Username:         c.Saldeo.Username,
		APIToken:         c.Saldeo.APIToken,
		CompanyProgramID: c.Saldeo.CompanyProgramID,
		BaseURL:          c.Saldeo.BaseURL,
	}
}

// Timeout returns the per-call HTTP timeout, or the client default when unset.
func (c *Config) Timeout() time.Duration {
	if c.Saldeo.Timeout == "" {
		return saldeo.DefaultTimeout
	}
	d, _ := time.ParseDuration(c.Saldeo.Timeout)
	return d
}
