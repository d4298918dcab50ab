package config

import (
	"fmt"
	"strings"
)

// ValidateConfig checks that the configuration is usable in the current
// environment. Secrets are mandatory in production; development and test
// fall back to permissive defaults.
func ValidateConfig(cfg *Config) error {
	var errors []string

	if cfg.JWTSecret == "" {
		if IsProduction() {
			errors = append(errors, "JWT_SECRET is required in production")
		} else {
			cfg.JWTSecret = "dev-insecure-secret"
		}
	}

	if IsProduction() && cfg.DBPassword == "" {
		errors = append(errors, "DB_PASSWORD is required in production")
	}

	if cfg.ServerPort == "" {
		errors = append(errors, "SERVER_PORT must not be empty")
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "\n"))
	}

	return nil
}
