// Package config loads the lvdiff command configuration from the environment.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is the environment variable prefix. Nested structs add their own
// segment: LVDIFF_SOLVER_METHOD, LVDIFF_LOG_LEVEL, ...
const Prefix = "LVDIFF"

// Config holds all command configuration.
type Config struct {
	Solver  SolverConfig `envconfig:"SOLVER"`
	Logging LogConfig    `envconfig:"LOG"`
}

// SolverConfig holds factorization defaults. A method named in the problem
// file takes precedence over Method.
type SolverConfig struct {
	Method            string  `envconfig:"METHOD" default:"lu"`
	SymmetryTolerance float64 `envconfig:"SYMMETRY_TOLERANCE" default:"1e-9"`
	ValidateNaNInf    bool    `envconfig:"VALIDATE_NAN_INF" default:"true"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LEVEL" default:"info"`
	Development bool   `envconfig:"DEV" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration used when the environment is empty.
func Default() *Config {
	return &Config{
		Solver: SolverConfig{
			Method:            "lu",
			SymmetryTolerance: 1e-9,
			ValidateNaNInf:    true,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}
