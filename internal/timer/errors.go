// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package timer

import (
	"errors"
	"fmt"
)

var (
	// ErrSectionNotRunning is wrapped by every StateError.
	ErrSectionNotRunning = errors.New("section is not currently running")
)

// StateError signals that a section was ended while it was not running.
type StateError struct {
	Section string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("section '%s' is not currently running", e.Section)
}

func (e *StateError) Unwrap() error {
	return ErrSectionNotRunning
}
