// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package elt

import (
	"context"
	"fmt"
	"time"

	"github.com/J-sephB-lt-n/logsetup/internal/config"
	"github.com/J-sephB-lt-n/logsetup/internal/logger"
	"github.com/J-sephB-lt-n/logsetup/internal/timer"
)

const (
	loggerName = "elt"

	// ProcessSection times the whole run.
	ProcessSection = "Daily ELT process"
	// ExtractSection times the extraction of every source.
	ExtractSection = "Extract"

	processFailedMessage = "Error in daily ELT process"
)

// Option configures a Job.
type Option func(*Job)

// WithMaxDelay sets the maximum simulated extraction time of sources without their own.
func WithMaxDelay(maxDelay time.Duration) Option {
	return func(j *Job) {
		j.maxDelay = maxDelay
	}
}

// WithClock replaces time.Now when computing the extraction period.
func WithClock(clock func() time.Time) Option {
	return func(j *Job) {
		j.now = clock
	}
}

// withSleep replaces the context aware sleep used by the extractors.
func withSleep(sleep func(context.Context, time.Duration) error) Option {
	return func(j *Job) {
		j.extractor.sleep = sleep
	}
}

// Job is one configured daily ELT process.
type Job struct {
	name      string
	sources   []config.SourceConfig
	maxDelay  time.Duration
	timer     *timer.Timer
	extractor extractor
	now       func() time.Time
}

// New validates jobConfig and returns a Job timing its sections with sectionTimer.
func New(jobConfig *config.JobConfig, sectionTimer *timer.Timer, opts ...Option) (*Job, error) {
	for _, source := range jobConfig.Sources {
		if _, ok := outcomes[source.Name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSource, source.Name)
		}
	}

	job := &Job{
		name:     jobConfig.Name,
		sources:  jobConfig.Sources,
		maxDelay: 5 * time.Second,
		timer:    sectionTimer,
		extractor: extractor{
			sleep:  sleepContext,
			random: randomDelay,
		},
		now: time.Now,
	}

	for _, opt := range opts {
		opt(job)
	}

	return job, nil
}

// Run extracts every source of the job. When the run fails the process section is
// closed at ERROR level and the error is returned together with the results collected
// so far.
func (j *Job) Run(ctx context.Context) ([]Result, error) {
	log := logger.FromContext(ctx).WithName(loggerName)

	process := j.timer.Section(ProcessSection)
	process.Start()

	results, err := j.extract(ctx, log)
	if err != nil {
		if _, endErr := process.EndWithLevel(logger.ERROR); endErr != nil {
			log.Debug("process section already closed", "error", endErr)
		}
		log.Error(processFailedMessage, "job", j.name, "error", err)
		return results, err
	}

	if _, err := process.End(); err != nil {
		return results, err
	}

	return results, nil
}

func (j *Job) extract(ctx context.Context, log logger.Logger) ([]Result, error) {
	section := j.timer.Section(ExtractSection)
	section.Start()

	period := StandardPeriod(j.now())
	results := make([]Result, 0, len(j.sources))
	for _, source := range j.sources {
		maxDelay := j.maxDelay
		if source.MaxDelay > 0 {
			maxDelay = source.MaxDelay
		}

		log.Info("extracting source",
			"source", source.Name,
			"periodStart", period.Start.Format(time.RFC3339),
			"periodEnd", period.End.Format(time.RFC3339),
		)

		result, err := j.extractor.extract(ctx, source.Name, maxDelay, period)
		if err != nil {
			return results, err
		}
		results = append(results, result)

		if result.Status != StatusSuccess {
			log.Warn("source extraction reported a failure", "source", result.Source, "status", result.Status)
			continue
		}

		args := []interface{}{"source", result.Source, "status", result.Status}
		if result.Rows != nil {
			args = append(args, "rows", *result.Rows)
		}
		log.Info("source extracted", args...)
	}

	if _, err := section.End(); err != nil {
		return results, err
	}

	return results, nil
}
