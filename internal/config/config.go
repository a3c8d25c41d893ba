package config

import (
	"fmt"
	"os"

	"dario.cat/mergo"
	yaml "gopkg.in/yaml.v3"

	"github.com/altafino/mailauth/internal/types"
	"github.com/altafino/mailauth/internal/validation"
)

// Default returns the built-in configuration defaults.
func Default() *types.Config {
	cfg := &types.Config{}
	cfg.Meta.ID = "default"
	cfg.Credentials.Source = "static"
	cfg.TokenEndpoint.Timeout = 30
	cfg.Logging.Level = "info"
	cfg.Logging.Format = "text"
	return cfg
}

// Load reads a configuration file, expands environment variables in
// it, merges it over the defaults and validates the result.
func Load(path string) (*types.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the config file
	expandedData := os.ExpandEnv(string(data))

	cfg := &types.Config{}
	if err := yaml.Unmarshal([]byte(expandedData), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := mergo.Merge(cfg, Default()); err != nil {
		return nil, fmt.Errorf("failed to apply config defaults: %w", err)
	}

	if err := validation.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}
