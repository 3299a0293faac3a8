// Package config loads storyline settings from an optional YAML file and
// STORYLINE_-prefixed environment variables. Environment values take
// precedence over the file.
package config

import (
	"time"

	"github.com/Yates-Labs/storyline/internal/provider"
)

// Config holds all application configuration.
type Config struct {
	// Provider selects the generative-text service; empty means mock mode
	Provider string `mapstructure:"provider" validate:"omitempty,oneof=openai anthropic gemini"`

	// APIKey is the secret for Provider
	APIKey string `mapstructure:"api_key"`

	// Model overrides the provider's default model
	Model string `mapstructure:"model"`

	// UnsplashAccessKey enables image search; empty means placeholder images
	UnsplashAccessKey string `mapstructure:"unsplash_access_key"`

	LogLevel  string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	LogFormat string `mapstructure:"log_format" validate:"required,oneof=json text"`

	RequestTimeout   time.Duration `mapstructure:"request_timeout" validate:"gt=0"`
	ImageTimeout     time.Duration `mapstructure:"image_timeout" validate:"gt=0"`
	ImageConcurrency int           `mapstructure:"image_concurrency" validate:"min=1,max=64"`
}

// ProviderConfig returns the provider selection, or nil when either the
// provider or its key is missing.
func (c *Config) ProviderConfig() *provider.Config {
	if c == nil || c.Provider == "" || c.APIKey == "" {
		return nil
	}
	return &provider.Config{
		Provider: provider.ID(c.Provider),
		APIKey:   c.APIKey,
		Model:    c.Model,
	}
}
