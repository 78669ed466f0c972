// Package config handles configuration loading for the bridge service.
//
// Configuration is loaded from a YAML file with support for environment
// variable expansion (${VAR} or $VAR syntax), so per-developer paths
// and tenant URLs can be injected at runtime.
//
// # Example Configuration
//
//	server:
//	  port: 8090
//	  basePath: "/"
//
//	webIDE:
//	  baseURL: https://groovyide.com/cpi
//	  openBrowser: true
//
//	dump:
//	  enabled: true
//	  dir: ${HOME}/cpi-debug
//
//	codec:
//	  maxDecodedBytes: 8388608
//
//	logging:
//	  level: info
//
// See [Load] for loading configuration from a file.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	WebIDE  WebIDEConfig  `yaml:"webIDE"`
	Dump    DumpConfig    `yaml:"dump"`
	Codec   CodecConfig   `yaml:"codec"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port     int    `yaml:"port"`
	BasePath string `yaml:"basePath"`
}

// WebIDEConfig holds settings for the remote web IDE the bridge
// targets
type WebIDEConfig struct {
	// BaseURL is the web IDE page the transport string is appended to
	BaseURL string `yaml:"baseURL"`
	// OpenBrowser controls whether a successful encode also opens the
	// resulting URL in the local browser
	OpenBrowser bool `yaml:"openBrowser"`
}

// DumpConfig holds settings for the decoded-field file dump
type DumpConfig struct {
	Enabled bool `yaml:"enabled"`
	// Dir is the directory session dumps are written under
	Dir string `yaml:"dir"`
}

// CodecConfig holds codec tuning
type CodecConfig struct {
	// MaxDecodedBytes caps inflated payload size; zero means the codec
	// default
	MaxDecodedBytes int64 `yaml:"maxDecodedBytes"`
}

// LoggingConfig holds log output settings
type LoggingConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8090
	}
	if c.Server.BasePath == "" {
		c.Server.BasePath = "/"
	}
	if c.WebIDE.BaseURL == "" {
		c.WebIDE.BaseURL = "https://groovyide.com/cpi"
	}
	if c.Dump.Dir == "" {
		c.Dump.Dir = os.TempDir()
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Codec.MaxDecodedBytes < 0 {
		return fmt.Errorf("codec.maxDecodedBytes must not be negative")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		// Valid levels
	default:
		return fmt.Errorf("logging.level must be 'debug', 'info', 'warn', or 'error', got '%s'", c.Logging.Level)
	}
	return nil
}

// LogLevel maps the configured level name to a slog level.
func (c *Config) LogLevel() slog.Level {
	switch c.Logging.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
