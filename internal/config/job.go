// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultJobName is the name used when a job file does not set one.
	DefaultJobName = "daily ELT"

	NameField     = "name"
	SourcesField  = "sources"
	MaxDelayField = "maxDelay"
)

var (
	// ErrParsing reports failures that occur while decoding job files.
	ErrParsing = errors.New("error parsing")

	// DefaultSources are extracted when no job file is provided.
	DefaultSources = []string{"pos_system", "mobile_events", "web_events"}
)

// JobConfig describes one run of the ELT process.
type JobConfig struct {
	Name    string         `yaml:"name"`
	Sources []SourceConfig `yaml:"sources"`
}

// SourceConfig holds the settings of a single data source.
type SourceConfig struct {
	Name string `yaml:"name"`
	// MaxDelay overrides the maximum simulated extraction time when greater than zero.
	MaxDelay time.Duration `yaml:"maxDelay,omitempty"`
}

// DefaultJobConfig returns the job extracting every DefaultSources entry.
func DefaultJobConfig() *JobConfig {
	sources := make([]SourceConfig, 0, len(DefaultSources))
	for _, name := range DefaultSources {
		sources = append(sources, SourceConfig{Name: name})
	}

	return &JobConfig{
		Name:    DefaultJobName,
		Sources: sources,
	}
}

// NewJobConfigFromPath parses the YAML job file at path.
func NewJobConfigFromPath(path string) (*JobConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	config := new(JobConfig)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrParsing, path, err)
	}

	if config.Name == "" {
		config.Name = DefaultJobName
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrParsing, path, err)
	}

	return config, nil
}

// validate reports missing, duplicated or negative values in the job sources.
func (c *JobConfig) validate() error {
	if len(c.Sources) == 0 {
		return fmt.Errorf("missing required fields: %s", SourcesField)
	}

	errorsList := []string{}
	seen := make(map[string]struct{}, len(c.Sources))
	for idx, source := range c.Sources {
		switch _, duplicated := seen[source.Name]; {
		case source.Name == "":
			errorsList = append(errorsList, fmt.Sprintf("missing field '%s' in source %d", NameField, idx))
		case duplicated:
			errorsList = append(errorsList, fmt.Sprintf("duplicated source '%s'", source.Name))
		}
		seen[source.Name] = struct{}{}

		if source.MaxDelay < 0 {
			errorsList = append(errorsList, fmt.Sprintf("negative '%s' in source '%s'", MaxDelayField, source.Name))
		}
	}

	if len(errorsList) > 0 {
		return errors.New(strings.Join(errorsList, "; "))
	}

	return nil
}
