// Package config loads dragbounds settings from defaults, an optional YAML
// file and DRAGBOUNDS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides. Nested keys use '_' in
// place of '.', e.g. DRAGBOUNDS_LAYOUT_VIEWPORT_WIDTH.
const EnvPrefix = "DRAGBOUNDS"

// Config holds the whole application configuration.
type Config struct {
	Logger  LoggerConfig  `mapstructure:"logger" yaml:"logger"`
	Layout  LayoutConfig  `mapstructure:"layout" yaml:"layout"`
	View    ViewConfig    `mapstructure:"view" yaml:"view"`
	Network NetworkConfig `mapstructure:"network" yaml:"network"`
}

// LoggerConfig configures the zap logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
}

// LayoutConfig sets the viewport the layout engine lays documents out in.
type LayoutConfig struct {
	ViewportWidth  float64 `mapstructure:"viewport_width" yaml:"viewport_width"`
	ViewportHeight float64 `mapstructure:"viewport_height" yaml:"viewport_height"`
}

// ViewConfig configures the playground window.
type ViewConfig struct {
	Title  string `mapstructure:"title" yaml:"title"`
	Width  int    `mapstructure:"width" yaml:"width"`
	Height int    `mapstructure:"height" yaml:"height"`
}

// NetworkConfig configures fetching of remote documents and stylesheets.
type NetworkConfig struct {
	Timeout      time.Duration `mapstructure:"timeout" yaml:"timeout"`
	UserAgent    string        `mapstructure:"user_agent" yaml:"user_agent"`
	MaxRedirects int           `mapstructure:"max_redirects" yaml:"max_redirects"`
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "dragbounds")

	// -- Layout --
	v.SetDefault("layout.viewport_width", 800)
	v.SetDefault("layout.viewport_height", 600)

	// -- View --
	v.SetDefault("view.title", "dragbounds")
	v.SetDefault("view.width", 800)
	v.SetDefault("view.height", 600)

	// -- Network --
	v.SetDefault("network.timeout", "30s")
	v.SetDefault("network.user_agent", "dragbounds/1.0")
	v.SetDefault("network.max_redirects", 10)
}

// NewDefaultConfig returns a configuration holding only the defaults.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// Load prepares v with defaults and environment bindings, reads file (or
// ./dragbounds.yaml when file is empty and one exists) and decodes the result.
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("dragbounds")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return NewConfigFromViper(v)
}

// NewConfigFromViper decodes and validates the configuration held by v.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for sane values.
func (c *Config) Validate() error {
	switch c.Logger.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logger.format must be \"json\" or \"console\", got %q", c.Logger.Format)
	}
	if c.Layout.ViewportWidth <= 0 || c.Layout.ViewportHeight <= 0 {
		return errors.New("layout.viewport_width and layout.viewport_height must be positive")
	}
	if c.View.Width <= 0 || c.View.Height <= 0 {
		return errors.New("view.width and view.height must be positive")
	}
	if c.Network.Timeout <= 0 {
		return errors.New("network.timeout must be positive")
	}
	if c.Network.MaxRedirects < 0 {
		return errors.New("network.max_redirects must not be negative")
	}
	return nil
}
