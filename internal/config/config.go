// Package config loads and validates service configuration from an optional
// config.yml, an optional .env file, and environment variables, in that
// order of increasing precedence.
package config

import (
	"fmt"
	"time"

	"voicenote/internal/logger"
)

// Config is the root configuration for the voicenote service.
type Config struct {
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Auth      AuthConfig      `yaml:"auth" mapstructure:"auth"`
	Provider  ProviderConfig  `yaml:"provider" mapstructure:"provider"`
	RateLimit RateLimitConfig `yaml:"rate_limit" mapstructure:"rate_limit"`
	Storage   StorageConfig   `yaml:"storage" mapstructure:"storage"`
	Logging   logger.Config   `yaml:"logging" mapstructure:"logging"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string `yaml:"host" mapstructure:"host"`
	Port         int    `yaml:"port" mapstructure:"port"`
	ReadTimeout  int    `yaml:"read_timeout" mapstructure:"read_timeout"`   // seconds
	WriteTimeout int    `yaml:"write_timeout" mapstructure:"write_timeout"` // seconds
	IdleTimeout  int    `yaml:"idle_timeout" mapstructure:"idle_timeout"`   // seconds
}

// AuthConfig holds the Basic-Auth credential pair. When PasswordHash is set
// it takes precedence over Password and is verified as a bcrypt hash.
type AuthConfig struct {
	Username     string `yaml:"username" mapstructure:"username"`
	Password     string `yaml:"password" mapstructure:"password"`
	PasswordHash string `yaml:"password_hash" mapstructure:"password_hash"`
}

// ProviderConfig holds configuration for the external model provider.
type ProviderConfig struct {
	APIKey          string        `yaml:"api_key" mapstructure:"api_key"`
	BaseURL         string        `yaml:"base_url" mapstructure:"base_url"`
	TranscribeModel string        `yaml:"transcribe_model" mapstructure:"transcribe_model"`
	ParaphraseModel string        `yaml:"paraphrase_model" mapstructure:"paraphrase_model"`
	Timeout         time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// RateLimitConfig holds the request budgets. The global day/hour budgets
// apply to every endpoint; the per-minute budgets apply to their endpoint
// only.
type RateLimitConfig struct {
	RequestsPerDay      int `yaml:"requests_per_day" mapstructure:"requests_per_day"`
	RequestsPerHour     int `yaml:"requests_per_hour" mapstructure:"requests_per_hour"`
	TranscribePerMinute int `yaml:"transcribe_per_minute" mapstructure:"transcribe_per_minute"`
	ParaphrasePerMinute int `yaml:"paraphrase_per_minute" mapstructure:"paraphrase_per_minute"`
	LogsPerMinute       int `yaml:"logs_per_minute" mapstructure:"logs_per_minute"`
}

// StorageConfig holds filesystem locations for request-scoped temp files and
// the paraphrase audit log.
type StorageConfig struct {
	TempDir      string `yaml:"temp_dir" mapstructure:"temp_dir"`
	AuditLogFile string `yaml:"audit_log_file" mapstructure:"audit_log_file"`
}

// ApplyDefaults sets default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 30
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 120
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Provider.TranscribeModel == "" {
		c.Provider.TranscribeModel = "whisper-1"
	}
	if c.Provider.ParaphraseModel == "" {
		c.Provider.ParaphraseModel = "gpt-4o-mini"
	}
	if c.Provider.Timeout == 0 {
		c.Provider.Timeout = 30 * time.Second
	}
	if c.RateLimit.RequestsPerDay == 0 {
		c.RateLimit.RequestsPerDay = 200
	}
	if c.RateLimit.RequestsPerHour == 0 {
		c.RateLimit.RequestsPerHour = 50
	}
	if c.RateLimit.TranscribePerMinute == 0 {
		c.RateLimit.TranscribePerMinute = 10
	}
	if c.RateLimit.ParaphrasePerMinute == 0 {
		c.RateLimit.ParaphrasePerMinute = 30
	}
	if c.RateLimit.LogsPerMinute == 0 {
		c.RateLimit.LogsPerMinute = 60
	}
	if c.Storage.TempDir == "" {
		c.Storage.TempDir = "temp"
	}
	if c.Storage.AuditLogFile == "" {
		c.Storage.AuditLogFile = "logs/paraphrase_logs.jsonl"
	}
	c.Logging.ApplyDefaults()
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 0 and 65535 (got: %d)", c.Server.Port)
	}
	if c.Auth.Username == "" {
		return fmt.Errorf("auth.username is required")
	}
	if c.Auth.Password == "" && c.Auth.PasswordHash == "" {
		return fmt.Errorf("auth.password or auth.password_hash is required")
	}
	if c.Provider.Timeout <= 0 {
		return fmt.Errorf("provider.timeout must be positive (got: %s)", c.Provider.Timeout)
	}
	for name, v := range map[string]int{
		"rate_limit.requests_per_day":      c.RateLimit.RequestsPerDay,
		"rate_limit.requests_per_hour":     c.RateLimit.RequestsPerHour,
		"rate_limit.transcribe_per_minute": c.RateLimit.TranscribePerMinute,
		"rate_limit.paraphrase_per_minute": c.RateLimit.ParaphrasePerMinute,
		"rate_limit.logs_per_minute":       c.RateLimit.LogsPerMinute,
	} {
		if v < 1 {
			return fmt.Errorf("%s must be at least 1 (got: %d)", name, v)
		}
	}
	return c.Logging.Validate()
}
