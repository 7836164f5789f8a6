// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package metrics turns finished timer sections into Prometheus metrics that batch
// runs can leave behind as a node exporter textfile.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace  = "logsetup"
	sectionKey = "section"
)

// Recorder collects section durations on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	durations    *prometheus.HistogramVec
	finished     *prometheus.CounterVec
	lastDuration *prometheus.GaugeVec
}

// NewRecorder creates a Recorder with an empty registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		durations: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "section_duration_seconds",
				Help:      "Wall-clock time spent in a named section",
				Buckets:   prometheus.ExponentialBuckets(0.1, 2, 14),
			},
			[]string{sectionKey},
		),
		finished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sections_finished_total",
				Help:      "Number of sections that have been ended",
			},
			[]string{sectionKey},
		),
		lastDuration: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "section_last_duration_seconds",
				Help:      "Duration of the last run of a named section",
			},
			[]string{sectionKey},
		),
	}

	r.registry.MustRegister(r.durations, r.finished, r.lastDuration)
	return r
}

// ObserveSection records one finished section.
func (r *Recorder) ObserveSection(name string, elapsed time.Duration) {
	seconds := elapsed.Seconds()
	r.durations.WithLabelValues(name).Observe(seconds)
	r.finished.WithLabelValues(name).Inc()
	r.lastDuration.WithLabelValues(name).Set(seconds)
}

// Gatherer exposes the registry backing the Recorder.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile atomically writes every metric to path in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
