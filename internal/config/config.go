// Package config manages the netkit CLI configuration using koanf/v2.
//
// Supports YAML files and environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// -------------------------------------------------------------------------
// Configuration Structures
// -------------------------------------------------------------------------

// Config holds the complete netkit CLI configuration.
type Config struct {
	Log LogConfig `koanf:"log"`
	OUI OUIConfig `koanf:"oui"`
}

// LogConfig holds the logging configuration.
type LogConfig struct {
	// Level is the log level: "debug", "info", "warn", "error".
	Level string `koanf:"level"`
	// Format is the log output format: "json" or "text".
	Format string `koanf:"format"`
}

// OUIConfig holds the OUI registry ingestion and store configuration.
type OUIConfig struct {
	// Sources is a list of IEEE OUI CSV/TXT files. The oui ingest
	// command does not read it; it ingests the files named on its
	// command line.
	Sources []string `koanf:"sources"`
	// StorePath is the path to the persisted gob-encoded OUI store.
	StorePath string `koanf:"store_path"`
}

// -------------------------------------------------------------------------
// Defaults
// -------------------------------------------------------------------------

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		OUI: OUIConfig{
			StorePath: "netkit-oui.gob",
		},
	}
}

// -------------------------------------------------------------------------
// Loader
// -------------------------------------------------------------------------

// envPrefix is the environment variable prefix for netkit configuration.
// Variables are named NETKIT_<section>_<key>, e.g., NETKIT_LOG_LEVEL.
const envPrefix = "NETKIT_"

// Load reads configuration from a YAML file at path, overlays environment
// variable overrides (NETKIT_ prefix), and merges on top of DefaultConfig().
// Missing fields inherit defaults. An empty path skips the file layer.
//
// Environment variable mapping:
//
//	NETKIT_LOG_LEVEL      -> log.level
//	NETKIT_LOG_FORMAT     -> log.format
//	NETKIT_OUI_STORE_PATH -> oui.store_path
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	defaults := DefaultConfig()
	if err := loadDefaults(k, defaults); err != nil {
		return nil, fmt.Errorf("load config defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config from %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKeyMapper), nil); err != nil {
		return nil, fmt.Errorf("load env overrides: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config from %s: %w", path, err)
	}

	return cfg, nil
}

// envKeyMapper transforms NETKIT_LOG_LEVEL -> log.level. Only the first
// underscore after the prefix separates section from key, so
// NETKIT_OUI_STORE_PATH -> oui.store_path.
func envKeyMapper(s string) string {
	s = strings.TrimPrefix(s, envPrefix)
	s = strings.ToLower(s)
	return strings.Replace(s, "_", ".", 1)
}

// loadDefaults marshals the default config into koanf as the base layer.
func loadDefaults(k *koanf.Koanf, defaults *Config) error {
	defaultMap := map[string]any{
		"log.level":      defaults.Log.Level,
		"log.format":     defaults.Log.Format,
		"oui.store_path": defaults.OUI.StorePath,
	}

	for key, val := range defaultMap {
		if err := k.Set(key, val); err != nil {
			return fmt.Errorf("set default %s: %w", key, err)
		}
	}

	return nil
}

// -------------------------------------------------------------------------
// Validation
// -------------------------------------------------------------------------

// Validation errors.
var (
	// ErrEmptyStorePath indicates the OUI store path is empty.
	ErrEmptyStorePath = errors.New("oui.store_path must not be empty")

	// ErrInvalidLogFormat indicates the log format is neither json nor text.
	ErrInvalidLogFormat = errors.New("log.format must be json or text")
)

// Validate checks the configuration for logical errors.
func Validate(cfg *Config) error {
	if cfg.OUI.StorePath == "" {
		return ErrEmptyStorePath
	}

	switch strings.ToLower(cfg.Log.Format) {
	case "json", "text":
	default:
		return ErrInvalidLogFormat
	}

	return nil
}

// -------------------------------------------------------------------------
// Log Level Parsing
// -------------------------------------------------------------------------

// ParseLogLevel maps a configuration log level string to the corresponding
// slog.Level. Unknown values default to slog.LevelInfo.
//
// Recognized values: "debug", "info", "warn", "error" (case-insensitive).
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
