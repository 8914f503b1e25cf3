package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DotEnvPath is the optional file loaded into the process environment before
// env overrides are applied.
var DotEnvPath = ".env"

// loadFromEnv overrides configuration with environment variables. Variables
// already set in the process win over values from the .env file.
func loadFromEnv(config *Config) error {
	if err := godotenv.Load(DotEnvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error reading %s: %w", DotEnvPath, err)
	}

	if err := env.Parse(config); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
