package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database" validate:"required"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Economy    EconomyConfig    `mapstructure:"economy" validate:"required"`
	Evaluation EvaluationConfig `mapstructure:"evaluation"`
	Catalog    CatalogConfig    `mapstructure:"catalog"`
	Learner    LearnerConfig    `mapstructure:"learner"`
}

// ServerConfig contains the HTTP adapter and logging settings.
type ServerConfig struct {
	Port      int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel  string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	LogFormat string `mapstructure:"log_format" validate:"required,oneof=json text"`
}

// DatabaseConfig selects where learner snapshots are persisted.
// The memory driver keeps state only for the life of the process.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=memory sqlite postgres"`
	// URL is a PostgreSQL connection string or a SQLite file path.
	URL string `mapstructure:"url" validate:"required_unless=Driver memory"`
}

// CacheConfig enables the Redis read-through snapshot cache.
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	URL     string        `mapstructure:"url" validate:"required_if=Enabled true,omitempty,url"`
	TTL     time.Duration `mapstructure:"ttl" validate:"gte=0"`
}

// EconomyConfig holds the starting learner profile and reward tuning.
type EconomyConfig struct {
	MaxHearts           int `mapstructure:"max_hearts" validate:"gt=0"`
	StartingHearts      int `mapstructure:"starting_hearts" validate:"gte=0,ltefield=MaxHearts"`
	StartingCoins       int `mapstructure:"starting_coins" validate:"gte=0"`
	CoinRewardDivisor   int `mapstructure:"coin_reward_divisor" validate:"gt=0"`
	DailyXPTarget       int `mapstructure:"daily_xp_target" validate:"gt=0"`
	DailyLessonsTarget  int `mapstructure:"daily_lessons_target" validate:"gt=0"`
	DailySpeakingTarget int `mapstructure:"daily_speaking_target" validate:"gt=0"`
}

// EvaluationConfig tunes answer checking.
type EvaluationConfig struct {
	IgnoreDiacritics bool `mapstructure:"ignore_diacritics"`
}

// CatalogConfig points at an optional YAML content definition. When Path is
// empty the built-in catalog is used.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// LearnerConfig identifies the learner served by this process. When ID is
// empty a stable id derived from the application name is used.
type LearnerConfig struct {
	ID string `mapstructure:"id" validate:"omitempty,uuid"`
}
