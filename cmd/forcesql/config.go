package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/forcekit/forcesql/internal/force"
)

// Config represents the forcesql.yaml configuration file.
type Config struct {
	ClientID      string `yaml:"client_id"`
	ClientSecret  string `yaml:"client_secret"`
	LoginEndpoint string `yaml:"login_endpoint"`
	APIVersion    string `yaml:"api_version"`
	Username      string `yaml:"username"`
	Password      string `yaml:"password"`
	Dialect       string `yaml:"dialect"`
	DatabaseURL   string `yaml:"database_url"`
	CacheTTL      string `yaml:"cache_ttl"`
}

// defaultCacheTTL is used when no cache_ttl is configured.
const defaultCacheTTL = 24 * time.Hour

// loadConfig loads configuration from file, env vars, and CLI flags.
// Precedence: CLI flags > env vars > config file > defaults
func loadConfig() (*Config, error) {
	cfg := &Config{
		LoginEndpoint: force.DefaultLoginEndpoint,
		APIVersion:    force.DefaultAPIVersion,
		Dialect:       "postgres",
	}

	// Load config file if it exists
	if data, err := os.ReadFile(configFile); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		// Handle env var interpolation in credential fields
		cfg.ClientID = expandEnvVars(cfg.ClientID)
		cfg.ClientSecret = expandEnvVars(cfg.ClientSecret)
		cfg.Username = expandEnvVars(cfg.Username)
		cfg.Password = expandEnvVars(cfg.Password)
		cfg.DatabaseURL = expandEnvVars(cfg.DatabaseURL)
	}

	// Override with env vars
	if v := os.Getenv("SF_CLIENT_ID"); v != "" {
		cfg.ClientID = v
	}
	if v := os.Getenv("SF_CLIENT_SECRET"); v != "" {
		cfg.ClientSecret = v
	}
	if v := os.Getenv("SF_LOGIN_ENDPOINT"); v != "" {
		cfg.LoginEndpoint = v
	}
	if v := os.Getenv("SF_USERNAME"); v != "" {
		cfg.Username = v
	}
	if v := os.Getenv("SF_PASSWORD"); v != "" {
		cfg.Password = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" && cfg.DatabaseURL == "" {
		cfg.DatabaseURL = v
	}

	// Override with CLI flags (highest priority)
	if dialectName != "" {
		cfg.Dialect = dialectName
	}

	return cfg, nil
}

// cacheTTL parses the configured cache TTL, falling back to the default.
func (c *Config) cacheTTL() time.Duration {
	if c.CacheTTL == "" {
		return defaultCacheTTL
	}
	ttl, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return defaultCacheTTL
	}
	return ttl
}

// expandEnvVars expands ${VAR} patterns in a string.
func expandEnvVars(s string) string {
	return os.Expand(s, os.Getenv)
}

// newForceClient creates a Salesforce client from config.
func newForceClient(cfg *Config) (*force.Client, error) {
	opts := []force.Option{
		force.WithCredentials(cfg.ClientID, cfg.ClientSecret),
		force.WithLoginEndpoint(cfg.LoginEndpoint),
	}
	if cfg.APIVersion != "" {
		opts = append(opts, force.WithAPIVersion(cfg.APIVersion))
	}
	return force.NewClient(opts...)
}
