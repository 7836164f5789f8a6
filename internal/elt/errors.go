// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package elt

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownSource is returned for source names without an extractor.
	ErrUnknownSource = errors.New("unknown source name")
)

// extractError carries the source whose extraction failed.
type extractError struct {
	Source string
	Err    error
}

func (e *extractError) Error() string {
	return fmt.Sprintf("extract %s: %s", e.Source, e.Err)
}

func (e *extractError) Unwrap() error {
	return e.Err
}
