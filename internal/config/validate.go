package config

import (
	"fmt"
	"slices"
	"strings"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)

// Validate checks limits and enumerations. Load calls it automatically.
func (c *Config) Validate() error {
	if !slices.Contains(logLevels, strings.ToLower(c.Log.Level)) {
		return fmt.Errorf("log.level must be one of %v (got %q)", logLevels, c.Log.Level)
	}
	if !slices.Contains(logFormats, strings.ToLower(c.Log.Format)) {
		return fmt.Errorf("log.format must be one of %v (got %q)", logFormats, c.Log.Format)
	}
	if c.Game.MaxTries <= 0 {
		return fmt.Errorf("game.max_tries must be > 0 (got %d)", c.Game.MaxTries)
	}
	if c.Game.DefaultSteps <= 0 {
		return fmt.Errorf("game.default_steps must be > 0 (got %d)", c.Game.DefaultSteps)
	}
	if c.LLM.RetryAttempts <= 0 {
		return fmt.Errorf("llm.retry_attempts must be > 0 (got %d)", c.LLM.RetryAttempts)
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("llm.timeout must be > 0 (got %s)", c.LLM.Timeout)
	}
	return nil
}
