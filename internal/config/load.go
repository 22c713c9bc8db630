package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "AGGREGATOR"

// Defaults applied before any file, environment or flag override.
const (
	DefaultPort            = 5000
	DefaultShutdownTimeout = "15s"
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "json"
	DefaultUpstreamURL     = "https://restcountries.com/v3.1"
	DefaultUpstreamTimeout = "10s"
)

// flagKeys maps command-line flag names onto config keys.
var flagKeys = map[string]string{
	"port":      "server.port",
	"log-level": "log.level",
	"upstream":  "upstream.base_url",
}

// RegisterFlags declares the flags Load understands on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "Path to a config file (yaml, json, toml)")
	fs.Int("port", DefaultPort, "Port for the HTTP server to listen on")
	fs.String("log-level", DefaultLogLevel, "Log level: debug, info, warn or error")
	fs.String("upstream", DefaultUpstreamURL, "Base URL of the country-data API")
}

// Load builds the configuration. Precedence, highest first: flags set on the
// command line, environment variables, config file, defaults. fs may be nil.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.shutdown_timeout", DefaultShutdownTimeout)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)
	v.SetDefault("upstream.base_url", DefaultUpstreamURL)
	v.SetDefault("upstream.timeout", DefaultUpstreamTimeout)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %q: %w", name, err)
				}
			}
		}
		if f := fs.Lookup("config"); f != nil && f.Value.String() != "" {
			v.SetConfigFile(f.Value.String())
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
