package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "MEDFLUENT"

// Load reads configuration from an optional config.yaml in the working
// directory and from MEDFLUENT_* environment variables.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return load("")
}

// LoadFile is Load with an explicit config file. The file must exist.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config file path is empty")
	}
	return load(path)
}

func load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// Every key needs a default so AutomaticEnv can see it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.log_format", "json")

	v.SetDefault("database.driver", "memory")
	v.SetDefault("database.url", "")

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.url", "")
	v.SetDefault("cache.ttl", "10m")

	v.SetDefault("economy.max_hearts", 5)
	v.SetDefault("economy.starting_hearts", 5)
	v.SetDefault("economy.starting_coins", 0)
	v.SetDefault("economy.coin_reward_divisor", 3)
	v.SetDefault("economy.daily_xp_target", 100)
	v.SetDefault("economy.daily_lessons_target", 3)
	v.SetDefault("economy.daily_speaking_target", 1)

	v.SetDefault("evaluation.ignore_diacritics", false)
	v.SetDefault("catalog.path", "")
	v.SetDefault("learner.id", "")
}
