package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database" validate:"required"`
	Auth       AuthConfig       `mapstructure:"auth" validate:"required"`
	LLM        LLMConfig        `mapstructure:"llm" validate:"required"`
	Slack      SlackConfig      `mapstructure:"slack"`
	Generation GenerationConfig `mapstructure:"generation" validate:"required"`
	Task       TaskConfig       `mapstructure:"task" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" validate:"gte=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL             string `mapstructure:"url" validate:"required,url"`
	MaxOpenConns    int    `mapstructure:"max_open_conns" validate:"gte=0"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime" validate:"gte=0"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`
	BcryptCost                  int    `mapstructure:"bcrypt_cost" validate:"gte=0,lte=31"`
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	// GeminiAPIKey authenticates the research brief generator.
	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required"`
	GeminiModel  string `mapstructure:"gemini_model" validate:"required"`

	// OpenAIAPIKey authenticates the article writer.
	OpenAIAPIKey string `mapstructure:"openai_api_key" validate:"required"`
	OpenAIModel  string `mapstructure:"openai_model" validate:"required"`
}

// SlackConfig contains the Slack OAuth application credentials and delivery
// settings. All fields are optional: without them Slack features are disabled
// at startup but the rest of the service runs normally.
type SlackConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURL  string `mapstructure:"redirect_url" validate:"omitempty,url"`
	// StateTTLSeconds bounds how long an OAuth state token stays valid.
	StateTTLSeconds int `mapstructure:"state_ttl_seconds" validate:"gte=0"`
}

// GenerationConfig tunes the brief generation retry loop and quality rules.
type GenerationConfig struct {
	MaxRetries               int `mapstructure:"max_retries" validate:"gte=0"`
	ContentRetryDelaySeconds int `mapstructure:"content_retry_delay_seconds" validate:"gte=0"`
	ErrorRetryDelaySeconds   int `mapstructure:"error_retry_delay_seconds" validate:"gte=0"`
	MinBriefLength           int `mapstructure:"min_brief_length" validate:"gte=0"`
	// RuleSetPath optionally points at a YAML quality rule set; empty means
	// the built-in rules.
	RuleSetPath string `mapstructure:"rule_set_path"`
}

// ContentRetryDelay returns the content retry delay as a duration.
func (g GenerationConfig) ContentRetryDelay() time.Duration {
	return time.Duration(g.ContentRetryDelaySeconds) * time.Second
}

// ErrorRetryDelay returns the error retry delay as a duration.
func (g GenerationConfig) ErrorRetryDelay() time.Duration {
	return time.Duration(g.ErrorRetryDelaySeconds) * time.Second
}

// TaskConfig contains settings for the background task processing system.
type TaskConfig struct {
	WorkerCount         int `mapstructure:"worker_count" validate:"required,gt=0"`
	QueueSize           int `mapstructure:"queue_size" validate:"required,gt=0"`
	StuckTaskAgeMinutes int `mapstructure:"stuck_task_age_minutes" validate:"required,gt=0"`
}
