// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package timer measures the wall-clock time spent between named checkpoints.
// A Timer keeps a registry of sections keyed by name; sections can overlap, nest or
// interleave freely and every start and finish is reported to a leveled Sink.
package timer
