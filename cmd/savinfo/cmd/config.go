package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/savkit/compress"
)

// Config is the savinfo configuration file.
type Config struct {
	// Types is the type table file (JSON or YAML).
	Types string `yaml:"types"`
	// Names is an optional field name list used to label hashes.
	Names string `yaml:"names"`
	// Markers maps location identifiers to display names.
	Markers string `yaml:"markers"`
	// Locations maps location identifiers to region notes.
	Locations string `yaml:"locations"`
	// Color is one of auto, always or never.
	Color string `yaml:"color"`
	// Backup is the snapshot compression used while previewing patches: none, zstd, s2 or lz4.
	Backup  string  `yaml:"backup"`
	Logging Logging `yaml:"logging"`
}

// Logging contains logging configuration
type Logging struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Types:  "gamedata.json",
		Color:  "auto",
		Backup: "none",
		Logging: Logging{
			Level: "warn",
		},
	}
}

// LoadConfig loads configuration from the specified path. Unset fields keep their defaults
// and relative file paths are resolved against the directory of the config file.
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	dir := filepath.Dir(configPath)
	for _, p := range []*string{&config.Types, &config.Names, &config.Markers, &config.Locations} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}

	return config, config.Validate()
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color mode %q (want auto, always or never)", c.Color)
	}

	if _, err := compress.ParseCompression(c.Backup); err != nil {
		return fmt.Errorf("invalid backup compression: %w", err)
	}

	if _, err := parseLevel(c.Logging.Level); err != nil {
		return err
	}

	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}

	return level, nil
}
