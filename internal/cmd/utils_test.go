// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/J-sephB-lt-n/logsetup/internal/logger"
)

// testContext returns the test context carrying a JSON logger writing to buffer.
func testContext(t *testing.T, buffer *bytes.Buffer) context.Context {
	t.Helper()

	return logger.WithContext(t.Context(), logger.NewLogger(buffer))
}
