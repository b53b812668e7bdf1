package app

import (
	"errors"
	"fmt"
	"strings"
)

// Config holds all the necessary configuration for an App instance.
type Config struct {
	AssemblyPaths []string // .hcl/.yaml files or directories
	ConfigDir     string   // overrides config_dir from the definitions

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.AssemblyPaths) == 0 {
		return nil, errors.New("at least one assembly path is required")
	}
	for _, p := range cfg.AssemblyPaths {
		if strings.TrimSpace(p) == "" {
			return nil, errors.New("assembly paths cannot be empty")
		}
	}

	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}

	return &cfg, nil
}
