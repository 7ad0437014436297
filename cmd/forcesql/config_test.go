package main

import (
	"testing"
	"time"
)

func TestCacheTTL(t *testing.T) {
	tests := []struct {
		name string
		ttl  string
		want time.Duration
	}{
		{"empty uses default", "", defaultCacheTTL},
		{"parseable", "1h", time.Hour},
		{"complex", "1h30m", 90 * time.Minute},
		{"invalid falls back", "tomorrow", defaultCacheTTL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{CacheTTL: tt.ttl}
			if got := cfg.cacheTTL(); got != tt.want {
				t.Errorf("cacheTTL() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("FORCESQL_TEST_SECRET", "s3cret")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "literal-value", "literal-value"},
		{"variable expanded", "${FORCESQL_TEST_SECRET}", "s3cret"},
		{"embedded variable", "prefix-${FORCESQL_TEST_SECRET}", "prefix-s3cret"},
		{"unset variable empty", "${FORCESQL_TEST_UNSET_VAR}", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := expandEnvVars(tt.in); got != tt.want {
				t.Errorf("expandEnvVars(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	configFile = "does-not-exist.yaml"
	dialectName = ""

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Dialect != "postgres" {
		t.Errorf("Dialect = %q, want postgres", cfg.Dialect)
	}
	if cfg.LoginEndpoint == "" {
		t.Error("LoginEndpoint default missing")
	}
}

func TestLoadConfigFlagOverridesDialect(t *testing.T) {
	configFile = "does-not-exist.yaml"
	dialectName = "postgresql"
	defer func() { dialectName = "" }()

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Dialect != "postgresql" {
		t.Errorf("Dialect = %q, want flag value", cfg.Dialect)
	}
}
