package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// envPrefix namespaces every environment variable read by Load.
// server.port becomes DRAFTWISE_SERVER_PORT and so on.
const envPrefix = "DRAFTWISE"

// Load configuration from environment variables and optionally a config file.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// An optional config.yaml next to the binary can supply any setting;
	// a missing file is not an error.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv alone does not surface env-only keys to Unmarshal, so
	// every known key is bound explicitly.
	for _, key := range configKeys() {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.shutdown_timeout", 15)

	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 300)

	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("auth.refresh_token_lifetime_minutes", 10080)
	v.SetDefault("auth.bcrypt_cost", 10)

	v.SetDefault("llm.gemini_model", "gemini-2.0-flash")
	v.SetDefault("llm.openai_model", "gpt-4o")

	v.SetDefault("slack.state_ttl_seconds", 600)

	v.SetDefault("generation.max_retries", 2)
	v.SetDefault("generation.content_retry_delay_seconds", 2)
	v.SetDefault("generation.error_retry_delay_seconds", 3)
	v.SetDefault("generation.min_brief_length", 1000)

	v.SetDefault("task.worker_count", 4)
	v.SetDefault("task.queue_size", 100)
	v.SetDefault("task.stuck_task_age_minutes", 30)
}

// configKeys lists every dotted key Load understands. Keep in sync with the
// Config struct tags.
func configKeys() []string {
	return []string{
		"server.port",
		"server.log_level",
		"server.shutdown_timeout",
		"database.url",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"auth.jwt_secret",
		"auth.token_lifetime_minutes",
		"auth.refresh_token_lifetime_minutes",
		"auth.bcrypt_cost",
		"llm.gemini_api_key",
		"llm.gemini_model",
		"llm.openai_api_key",
		"llm.openai_model",
		"slack.client_id",
		"slack.client_secret",
		"slack.redirect_url",
		"slack.state_ttl_seconds",
		"generation.max_retries",
		"generation.content_retry_delay_seconds",
		"generation.error_retry_delay_seconds",
		"generation.min_brief_length",
		"generation.rule_set_path",
		"task.worker_count",
		"task.queue_size",
		"task.stuck_task_age_minutes",
	}
}
