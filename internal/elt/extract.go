// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package elt

import (
	"context"
	"maps"
	"math/rand/v2"
	"slices"
	"time"
)

// Status is the outcome reported by an extractor.
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusFailure Status = "FAILURE"
)

// Period is the half-open time interval [Start, End) a run extracts.
type Period struct {
	Start time.Time
	End   time.Time
}

// StandardPeriod returns the whole UTC day before now.
func StandardPeriod(now time.Time) Period {
	now = now.UTC()
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return Period{
		Start: end.AddDate(0, 0, -1),
		End:   end,
	}
}

// Result is what a single source extraction produced.
type Result struct {
	Source string
	Status Status
	// Rows is nil when the source did not report a row count.
	Rows *int
}

// outcomes are the simulated results of each known source.
var outcomes = map[string]func() Result{
	"pos_system": func() Result {
		return Result{Status: StatusSuccess, Rows: rows(6_239)}
	},
	"mobile_events": func() Result {
		return Result{Status: StatusFailure}
	},
	"web_events": func() Result {
		return Result{Status: StatusSuccess, Rows: rows(867_111)}
	},
}

func rows(n int) *int {
	return &n
}

// KnownSources returns the sorted names of the sources that can be extracted.
func KnownSources() []string {
	return slices.Sorted(maps.Keys(outcomes))
}

// extractor simulates the extraction of one source by waiting for a random delay.
type extractor struct {
	sleep  func(context.Context, time.Duration) error
	random func(time.Duration) time.Duration
}

func (e extractor) extract(ctx context.Context, source string, maxDelay time.Duration, _ Period) (Result, error) {
	outcome, ok := outcomes[source]
	if !ok {
		return Result{}, &extractError{Source: source, Err: ErrUnknownSource}
	}

	if err := e.sleep(ctx, e.random(maxDelay)); err != nil {
		return Result{}, &extractError{Source: source, Err: err}
	}

	result := outcome()
	result.Source = source
	return result, nil
}

// randomDelay returns a duration in [0, maxDelay].
func randomDelay(maxDelay time.Duration) time.Duration {
	if maxDelay <= 0 {
		return 0
	}

	return rand.N(maxDelay + 1)
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
