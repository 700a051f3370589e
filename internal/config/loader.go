package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Env var aliases kept for compatibility with existing deployments.
var envAliases = map[string]string{
	"provider.api_key": "OPENAI_API_KEY",
	"auth.username":    "API_USERNAME",
	"auth.password":    "API_PASSWORD",
}

// Load reads configuration from the given config file (optional, "" means
// search ./config.yml), a .env file when present, and environment
// variables. Defaults are applied and the result is validated.
func Load(configFile string) (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Fprintf(os.Stderr, "[config] warning: failed to load .env: %v\n", err)
		}
	}

	v := viper.New()

	if configFile == "" {
		if _, err := os.Stat("config.yml"); err == nil {
			configFile = "config.yml"
		}
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", configFile, err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Nested keys only resolve from env once viper knows about them.
	bindKnownKeys(v)
	for key, alias := range envAliases {
		if val := os.Getenv(alias); val != "" {
			v.Set(key, val)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func bindKnownKeys(v *viper.Viper) {
	keys := []string{
		"server.host", "server.port",
		"server.read_timeout", "server.write_timeout", "server.idle_timeout",
		"auth.username", "auth.password", "auth.password_hash",
		"provider.api_key", "provider.base_url",
		"provider.transcribe_model", "provider.paraphrase_model", "provider.timeout",
		"rate_limit.requests_per_day", "rate_limit.requests_per_hour",
		"rate_limit.transcribe_per_minute", "rate_limit.paraphrase_per_minute",
		"rate_limit.logs_per_minute",
		"storage.temp_dir", "storage.audit_log_file",
		"logging.level", "logging.format", "logging.file",
		"logging.max_size", "logging.max_backups", "logging.max_age", "logging.compress",
	}
	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}
