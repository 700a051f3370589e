package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.Auth.Username = "alice"
	cfg.Auth.Password = "secret123"
	cfg.ApplyDefaults()
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Provider.TranscribeModel != "whisper-1" {
		t.Errorf("expected whisper-1, got %s", cfg.Provider.TranscribeModel)
	}
	if cfg.Provider.ParaphraseModel != "gpt-4o-mini" {
		t.Errorf("expected gpt-4o-mini, got %s", cfg.Provider.ParaphraseModel)
	}
	if cfg.Provider.Timeout != 30*time.Second {
		t.Errorf("expected 30s provider timeout, got %s", cfg.Provider.Timeout)
	}
	if cfg.RateLimit.RequestsPerDay != 200 || cfg.RateLimit.RequestsPerHour != 50 {
		t.Errorf("unexpected global budgets: %+v", cfg.RateLimit)
	}
	if cfg.RateLimit.TranscribePerMinute != 10 || cfg.RateLimit.ParaphrasePerMinute != 30 {
		t.Errorf("unexpected per-minute budgets: %+v", cfg.RateLimit)
	}
	if cfg.Storage.AuditLogFile == "" || cfg.Storage.TempDir == "" {
		t.Errorf("expected storage defaults, got %+v", cfg.Storage)
	}
}

func TestValidate(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid config should pass: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing username", func(c *Config) { c.Auth.Username = "" }},
		{"missing credentials", func(c *Config) { c.Auth.Password = ""; c.Auth.PasswordHash = "" }},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }},
		{"zero budget", func(c *Config) { c.RateLimit.TranscribePerMinute = -1 }},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yml")
	yaml := `
auth:
  username: alice
  password: secret123
server:
  port: 9000
rate_limit:
  transcribe_per_minute: 5
`
	if err := os.WriteFile(file, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("SERVER_PORT", "9100")

	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Auth.Username != "alice" {
		t.Errorf("expected username from file, got %q", cfg.Auth.Username)
	}
	if cfg.Provider.APIKey != "sk-test" {
		t.Errorf("expected api key from env alias, got %q", cfg.Provider.APIKey)
	}
	// Environment overrides the file.
	if cfg.Server.Port != 9100 {
		t.Errorf("expected env port 9100, got %d", cfg.Server.Port)
	}
	if cfg.RateLimit.TranscribePerMinute != 5 {
		t.Errorf("expected file budget 5, got %d", cfg.RateLimit.TranscribePerMinute)
	}
	// Untouched fields keep their defaults.
	if cfg.RateLimit.ParaphrasePerMinute != 30 {
		t.Errorf("expected default paraphrase budget, got %d", cfg.RateLimit.ParaphrasePerMinute)
	}
}

func TestLoad_InvalidConfigFails(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(file, []byte("auth:\n  username: alice\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	os.Unsetenv("API_PASSWORD")
	if _, err := Load(file); err == nil {
		t.Error("expected error for config without credentials")
	}
}
