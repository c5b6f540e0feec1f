package config

import "time"

// Backend providers accepted in backend.provider.
const (
	ProviderOllama = "ollama"
	ProviderGemini = "gemini"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	Backend BackendConfig `mapstructure:"backend" validate:"required"`
	Runner  RunnerConfig  `mapstructure:"runner" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// BackendConfig selects and configures the language model backend.
type BackendConfig struct {
	Provider string        `mapstructure:"provider" validate:"required,oneof=ollama gemini"`
	BaseURL  string        `mapstructure:"base_url" validate:"omitempty,url"`
	Model    string        `mapstructure:"model"`
	Timeout  time.Duration `mapstructure:"timeout" validate:"gt=0"`

	Temperature float64 `mapstructure:"temperature" validate:"gte=0,lte=2"`

	// APIKey is only used by the gemini provider.
	APIKey string `mapstructure:"api_key" validate:"required_if=Provider gemini"`

	// PromptTemplatePath overrides the built-in prompt when set.
	PromptTemplatePath string `mapstructure:"prompt_template_path" validate:"omitempty,file"`
}

// RunnerConfig controls background job execution.
type RunnerConfig struct {
	MaxConcurrent int `mapstructure:"max_concurrent" validate:"gt=0,lte=64"`
}
