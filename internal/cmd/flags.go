// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/J-sephB-lt-n/logsetup/internal/config"
)

const (
	jobFileFlagName  = "job-file"
	jobFileFlagShort = "f"
	jobFileFlagUsage = "Path to a YAML file describing the job sources. Overrides ELT_JOB_FILE."

	maxDelayFlagName  = "max-delay"
	maxDelayFlagUsage = "Maximum simulated extraction time of sources without their own. Overrides ELT_MAX_EXTRACT_DELAY."

	metricsFileFlagName  = "metrics-file"
	metricsFileFlagUsage = "If set, writes the section timings to this file in the Prometheus text format. Overrides METRICS_TEXTFILE."
)

// flags collects the CLI options of the run command.
type flags struct {
	jobFile     string
	maxDelay    time.Duration
	metricsFile string
}

// addFlags registers the CLI flags on cmd.
func (f *flags) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.jobFile, jobFileFlagName, jobFileFlagShort, "", jobFileFlagUsage)
	cmd.Flags().DurationVar(&f.maxDelay, maxDelayFlagName, 0, maxDelayFlagUsage)
	cmd.Flags().StringVar(&f.metricsFile, metricsFileFlagName, "", metricsFileFlagUsage)
}

// toOptions builds an options instance from the environment, the parsed flags and the
// CLI arguments. Flags set on the command line win over the environment.
func (f *flags) toOptions(cmd *cobra.Command, args []string) (*options, error) {
	envConfig, err := config.Load()
	if err != nil {
		return nil, err
	}

	jobFile := envConfig.JobFile
	if cmd.Flags().Changed(jobFileFlagName) {
		jobFile = f.jobFile
	}

	jobConfig := config.DefaultJobConfig()
	if jobFile != "" {
		jobConfig, err = config.NewJobConfigFromPath(jobFile)
		if err != nil {
			return nil, err
		}
	}

	maxDelay := envConfig.MaxExtractDelay
	if cmd.Flags().Changed(maxDelayFlagName) {
		maxDelay = f.maxDelay
	}

	metricsFile := envConfig.MetricsTextfile
	if cmd.Flags().Changed(metricsFileFlagName) {
		metricsFile = f.metricsFile
	}

	return &options{
		jobConfig:       jobConfig,
		selectedSources: args,
		maxDelay:        maxDelay,
		metricsFile:     metricsFile,
	}, nil
}
