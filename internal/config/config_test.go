package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validConfig() Config {
	cfg := Config{HTTP: HTTPConfig{Port: 8080}}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults are valid", func(*Config) {}, ""},
		{"port zero", func(c *Config) { c.HTTP.Port = 0 }, "http.port"},
		{"port too large", func(c *Config) { c.HTTP.Port = 70000 }, "http.port"},
		{"invalid budget action", func(c *Config) { c.Intent.Budget.Action = "ignore" }, `intent.budget.action must be "warn" or "reject", got "ignore"`},
		{"negative limit", func(c *Config) { c.Intent.Budget.DailyTokenLimit = -1 }, "must not be negative"},
		{"cache without addrs", func(c *Config) { c.Cache.Enabled = true }, "cache.addrs"},
		{"cache unknown driver", func(c *Config) {
			c.Cache.Enabled = true
			c.Cache.Addrs = []string{"localhost:6379"}
			c.Cache.Driver = "memcached"
		}, "cache.driver"},
		{"cache valkey", func(c *Config) {
			c.Cache.Enabled = true
			c.Cache.Addrs = []string{"localhost:6379"}
			c.Cache.Driver = "valkey"
		}, ""},
		{"disabled cache ignores addrs", func(c *Config) { c.Cache.Driver = "memcached" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.Intent.Model != "gpt-4.1-mini" {
		t.Errorf("model = %q", cfg.Intent.Model)
	}
	if cfg.Catalog.Path != "products.json" {
		t.Errorf("catalog path = %q", cfg.Catalog.Path)
	}
	if cfg.Intent.Budget.Action != "warn" {
		t.Errorf("budget action = %q", cfg.Intent.Budget.Action)
	}
	if cfg.Cache.KeyPrefix != "prodsearch:" || cfg.Cache.TTLSec != 86400 {
		t.Errorf("cache defaults = %+v", cfg.Cache)
	}
	if cfg.Intent.Enabled() {
		t.Error("intent must be disabled without an api key")
	}
}

func TestLoadFile_ExpandsEnv(t *testing.T) {
	t.Setenv("PRODSEARCH_TEST_KEY", "sk-test")

	path := filepath.Join(t.TempDir(), "test.yaml")
	content := `
http:
  port: ${PRODSEARCH_TEST_PORT:-9090}
catalog:
  path: data/products.json
intent:
  api_key: ${PRODSEARCH_TEST_KEY}
  budget:
    daily_token_limit: 1000
    action: reject
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("port = %d, want default 9090", cfg.HTTP.Port)
	}
	if cfg.Intent.APIKey != "sk-test" || !cfg.Intent.Enabled() {
		t.Errorf("api key = %q", cfg.Intent.APIKey)
	}
	if cfg.Intent.Budget.Action != "reject" || cfg.Intent.Budget.DailyTokenLimit != 1000 {
		t.Errorf("budget = %+v", cfg.Intent.Budget)
	}
	if cfg.Catalog.Path != "data/products.json" {
		t.Errorf("catalog path = %q", cfg.Catalog.Path)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("http: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(bad); err == nil {
		t.Error("expected parse error")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("http:\n  port: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(invalid); err == nil || !strings.Contains(err.Error(), "invalid config") {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("GetEnv() = %q, want local", got)
	}
	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("GetEnv() = %q, want prod", got)
	}
}

func TestLoad_ShippedConfigs(t *testing.T) {
	for _, env := range []string{"local", "prod"} {
		t.Run(env, func(t *testing.T) {
			t.Setenv("PRODSEARCH_PORT", "8080")
			if _, err := Load(env); err != nil {
				t.Fatalf("config/%s.yaml: %v", env, err)
			}
		})
	}
}
