// Package config loads the service configuration from defaults, an optional
// config file, AGGREGATOR_* environment variables and command-line flags.
package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Log      LogConfig      `mapstructure:"log" validate:"required"`
	Upstream UpstreamConfig `mapstructure:"upstream" validate:"required"`
}

// ServerConfig contains the HTTP listener settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

// UpstreamConfig points at the country-data API.
type UpstreamConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	// Timeout bounds each outbound call; zero disables the client timeout.
	Timeout time.Duration `mapstructure:"timeout" validate:"gte=0"`
}
