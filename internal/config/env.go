// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

var (
	ErrEnvVariablesNotValid = errors.New("environment variables not valid")
)

// Config holds the settings read from the environment.
type Config struct {
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"json"`
	JobFile         string        `env:"ELT_JOB_FILE"`
	MaxExtractDelay time.Duration `env:"ELT_MAX_EXTRACT_DELAY" envDefault:"5s"`
	MetricsTextfile string        `env:"METRICS_TEXTFILE"`
}

func Load() (*Config, error) {
	var envVars Config
	if err := env.Parse(&envVars); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrEnvVariablesNotValid, err.Error())
	}

	if err := validateEnvironmentVariables(&envVars); err != nil {
		return nil, err
	}
	return &envVars, nil
}

func validateEnvironmentVariables(envVars *Config) error {
	envError := make([]string, 0)

	switch strings.ToLower(envVars.LogFormat) {
	case "json", "text":
	default:
		envError = append(envError, "LOG_FORMAT must be one of json, text")
	}

	if envVars.MaxExtractDelay < 0 {
		envError = append(envError, "ELT_MAX_EXTRACT_DELAY cannot be negative")
	}

	if len(envError) > 0 {
		return fmt.Errorf("%w: %s", ErrEnvVariablesNotValid, strings.Join(envError, ", "))
	}
	return nil
}
