package validation

import (
	"fmt"

	"github.com/altafino/mailauth/internal/types"
)

// ValidateConfig performs validation on a single configuration
func ValidateConfig(cfg *types.Config) error {
	if err := validateCredentials(cfg); err != nil {
		return fmt.Errorf("credentials validation failed: %w", err)
	}

	if err := validateTokenEndpoint(cfg); err != nil {
		return fmt.Errorf("token endpoint validation failed: %w", err)
	}

	if err := validateLogging(cfg); err != nil {
		return fmt.Errorf("logging validation failed: %w", err)
	}

	return nil
}

func validateCredentials(cfg *types.Config) error {
	switch cfg.Credentials.Source {
	case "static":
		s := cfg.Credentials.Static
		if s.TokenURL == "" && s.Provider == "" {
			return fmt.Errorf("static credentials require token_url or provider")
		}
	case "file":
		if cfg.Credentials.File.Path == "" {
			return fmt.Errorf("file credentials require a path")
		}
	case "pass":
		if cfg.Credentials.Pass.StoreDir == "" {
			return fmt.Errorf("pass credentials require a store_dir")
		}
	default:
		return fmt.Errorf("unknown credentials source: %s", cfg.Credentials.Source)
	}
	return nil
}

func validateTokenEndpoint(cfg *types.Config) error {
	if cfg.TokenEndpoint.Timeout < 0 {
		return fmt.Errorf("token endpoint timeout must not be negative")
	}
	return nil
}

func validateLogging(cfg *types.Config) error {
	switch cfg.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	switch cfg.Logging.Format {
	case "", "text", "json", "pretty":
	default:
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
