// internal/common/config/config.go
package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment" validate:"oneof=development test staging production"`
}

// ServerConfig holds the HTTP listener settings. Timeouts are in milliseconds.
type ServerConfig struct {
	Address         string `mapstructure:"address" validate:"required"`
	ReadTimeout     int    `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    int    `mapstructure:"write_timeout" validate:"gt=0"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// CatalogConfig points at the seed catalog. An empty path selects the
// embedded default catalog.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// RedisConfig configures the roster event publisher.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Address  string `mapstructure:"address" validate:"required_if=Enabled true"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"gte=0"`
	Channel  string `mapstructure:"channel" validate:"required_if=Enabled true"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
	Output string `mapstructure:"output"`
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
