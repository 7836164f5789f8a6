// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/J-sephB-lt-n/logsetup/internal/config"
	"github.com/J-sephB-lt-n/logsetup/internal/elt"
	"github.com/J-sephB-lt-n/logsetup/internal/logger"
	"github.com/J-sephB-lt-n/logsetup/internal/metrics"
	"github.com/J-sephB-lt-n/logsetup/internal/timer"
)

const (
	runIDKey = "runId"
)

// options configures a single run of the ELT process.
type options struct {
	jobConfig       *config.JobConfig
	selectedSources []string
	maxDelay        time.Duration
	metricsFile     string

	lock sync.Mutex
}

// validate checks the configured values and reports invalid setups.
func (o *options) validate() error {
	if o.maxDelay < 0 {
		return fmt.Errorf("%w: %s", errNegativeDelay, o.maxDelay)
	}

	for _, name := range o.selectedSources {
		if !slices.ContainsFunc(o.jobConfig.Sources, func(source config.SourceConfig) bool {
			return source.Name == name
		}) {
			return fmt.Errorf("%w: %s", errInvalidSource, name)
		}
	}

	return nil
}

// execute runs the job described by the options and exports its timings when requested.
func (o *options) execute(ctx context.Context) error {
	if !o.lock.TryLock() {
		return nil
	}
	defer o.lock.Unlock()

	log := logger.FromContext(ctx).With(runIDKey, uuid.NewString())
	recorder := metrics.NewRecorder()
	sectionTimer := timer.New(timer.WithSink(log), timer.WithObserver(recorder))

	job, err := elt.New(o.job(), sectionTimer, elt.WithMaxDelay(o.maxDelay))
	if err != nil {
		return err
	}

	_, runErr := job.Run(logger.WithContext(ctx, log))
	if o.metricsFile == "" {
		return runErr
	}

	if err := recorder.WriteTextfile(o.metricsFile); err != nil {
		return errors.Join(runErr, fmt.Errorf("%w %q: %w", errMetricsExport, o.metricsFile, err))
	}

	log.Debug("section timings exported", "path", o.metricsFile)
	return runErr
}

// job returns the job configuration restricted to the selected sources, if any.
func (o *options) job() *config.JobConfig {
	if len(o.selectedSources) == 0 {
		return o.jobConfig
	}

	sources := make([]config.SourceConfig, 0, len(o.selectedSources))
	for _, source := range o.jobConfig.Sources {
		if slices.Contains(o.selectedSources, source.Name) {
			sources = append(sources, source)
		}
	}

	return &config.JobConfig{
		Name:    o.jobConfig.Name,
		Sources: sources,
	}
}
