// Package config loads verbiz settings from YAML, the environment and
// built-in defaults.
package config

import (
	"time"

	"github.com/abhisek/verbiz/internal/llm"
)

// Config is the root configuration.
type Config struct {
	Log   LogConfig   `yaml:"log"`
	Store StoreConfig `yaml:"store"`
	Game  GameConfig  `yaml:"game"`
	LLM   LLMConfig   `yaml:"llm"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"VERBIZ_LOG_LEVEL"  env-default:"warn"`
	Format string `yaml:"format" env:"VERBIZ_LOG_FORMAT" env-default:"text"`
}

// StoreConfig holds database settings. An empty path uses the XDG data dir.
type StoreConfig struct {
	Path string `yaml:"path" env:"VERBIZ_DB"`
}

// GameConfig holds round generation settings.
type GameConfig struct {
	MaxTries     int    `yaml:"max_tries"     env:"VERBIZ_MAX_TRIES"     env-default:"10"`
	DefaultSteps int    `yaml:"default_steps" env:"VERBIZ_DEFAULT_STEPS" env-default:"10"`
	Seed         uint64 `yaml:"seed"          env:"VERBIZ_SEED"` // 0 seeds from the clock
}

// LLMConfig holds sentence-author provider settings.
type LLMConfig struct {
	Provider string `yaml:"provider" env:"VERBIZ_LLM_PROVIDER"`

	AnthropicAPIKey  string `yaml:"anthropic_api_key"  env:"VERBIZ_ANTHROPIC_API_KEY"`
	AnthropicModel   string `yaml:"anthropic_model"    env:"VERBIZ_ANTHROPIC_MODEL"    env-default:"claude-haiku-4-5"`
	OpenAIAPIKey     string `yaml:"openai_api_key"     env:"VERBIZ_OPENAI_API_KEY"`
	OpenAIModel      string `yaml:"openai_model"       env:"VERBIZ_OPENAI_MODEL"       env-default:"gpt-4o-mini"`
	OpenAIBaseURL    string `yaml:"openai_base_url"    env:"VERBIZ_OPENAI_BASE_URL"`
	GeminiAPIKey     string `yaml:"gemini_api_key"     env:"VERBIZ_GEMINI_API_KEY"`
	GeminiModel      string `yaml:"gemini_model"       env:"VERBIZ_GEMINI_MODEL"       env-default:"gemini-2.0-flash"`
	OpenRouterAPIKey string `yaml:"openrouter_api_key" env:"VERBIZ_OPENROUTER_API_KEY"`
	OpenRouterModel  string `yaml:"openrouter_model"   env:"VERBIZ_OPENROUTER_MODEL"   env-default:"google/gemini-2.0-flash-001"`

	RetryAttempts    int           `yaml:"retry_attempts"     env:"VERBIZ_LLM_RETRY_ATTEMPTS"     env-default:"3"`
	RetryInitialWait time.Duration `yaml:"retry_initial_wait" env:"VERBIZ_LLM_RETRY_INITIAL_WAIT" env-default:"1s"`
	RetryMaxWait     time.Duration `yaml:"retry_max_wait"     env:"VERBIZ_LLM_RETRY_MAX_WAIT"     env-default:"10s"`
	Timeout          time.Duration `yaml:"timeout"            env:"VERBIZ_LLM_TIMEOUT"            env-default:"60s"`

	// Discover falls back to GEMINI_API_KEY, OPENAI_API_KEY, ... when no
	// provider is set.
	Discover bool `yaml:"discover" env:"VERBIZ_LLM_DISCOVER" env-default:"true"`
}

// ProviderConfig converts the section into an llm.Config.
func (c LLMConfig) ProviderConfig() llm.Config {
	cfg := llm.DefaultConfig()
	cfg.Provider = c.Provider
	cfg.Anthropic = llm.AnthropicConfig{APIKey: c.AnthropicAPIKey, Model: c.AnthropicModel}
	cfg.OpenAI = llm.OpenAIConfig{APIKey: c.OpenAIAPIKey, Model: c.OpenAIModel, BaseURL: c.OpenAIBaseURL}
	cfg.Gemini = llm.GeminiConfig{APIKey: c.GeminiAPIKey, Model: c.GeminiModel}
	cfg.OpenRouter = llm.OpenRouterConfig{APIKey: c.OpenRouterAPIKey, Model: c.OpenRouterModel}
	cfg.Retry.MaxAttempts = c.RetryAttempts
	cfg.Retry.InitialWait = c.RetryInitialWait
	cfg.Retry.MaxWait = c.RetryMaxWait
	if c.Discover {
		cfg.Discover()
	}
	return cfg
}
