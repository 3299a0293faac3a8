package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Yates-Labs/storyline/internal/provider"
)

const (
	envPrefix  = "STORYLINE"
	configName = "storyline"
	configType = "yaml"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// providerKeyEnv lists each provider's conventional key variable, used when
// no api_key is configured.
var providerKeyEnv = map[string]string{
	string(provider.OpenAI):    "OPENAI_API_KEY",
	string(provider.Anthropic): "ANTHROPIC_API_KEY",
	string(provider.Gemini):    "GEMINI_API_KEY",
}

// LoadDotEnv loads variables from a .env file in the working directory, if
// one exists. Variables already set are not overridden.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// Load reads configuration. When configFile is empty, storyline.yaml is
// searched for in the working directory and in $HOME/.storyline; a missing
// file is not an error.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(".")
		if dir, err := DefaultDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	if cfg.APIKey == "" && cfg.Provider != "" {
		cfg.APIKey = os.Getenv(providerKeyEnv[cfg.Provider])
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SaveProvider writes the provider record into the YAML file at path,
// keeping any other keys already stored there.
func SaveProvider(path string, p provider.Config) error {
	if err := validator.New().Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(configType)
	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read existing config: %w", err)
		}
	}

	v.Set("provider", string(p.Provider))
	v.Set("api_key", p.APIKey)
	v.Set("model", p.Model)

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return os.Chmod(path, 0o600)
}

// DefaultDir is the per-user configuration directory.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".storyline"), nil
}

// DefaultPath is where configure writes when no file is given.
func DefaultPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configName+"."+configType), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("provider", "")
	v.SetDefault("api_key", "")
	v.SetDefault("model", "")
	v.SetDefault("unsplash_access_key", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("request_timeout", provider.DefaultTimeout)
	v.SetDefault("image_timeout", "10s")
	v.SetDefault("image_concurrency", 8)
}

func validate(cfg *Config) error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
