// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerInContext(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		ctx      func(*testing.T, Logger) context.Context
		expected func(Logger) Logger
	}{
		"nil context returns the null logger": {
			ctx: func(*testing.T, Logger) context.Context {
				return nil
			},
			expected: func(Logger) Logger { return nullLogger },
		},
		"empty context returns the null logger": {
			ctx: func(t *testing.T, _ Logger) context.Context {
				return t.Context()
			},
			expected: func(Logger) Logger { return nullLogger },
		},
		"context with a logger returns that logger": {
			ctx: func(t *testing.T, log Logger) context.Context {
				return WithContext(t.Context(), log)
			},
			expected: func(log Logger) Logger { return log },
		},
	}

	for name, test := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			log := NewLogger(new(bytes.Buffer))
			assert.Equal(t, test.expected(log), FromContext(test.ctx(t, log)))
		})
	}
}

func TestNullLoggerDiscards(t *testing.T) {
	t.Parallel()

	log := FromContext(t.Context())
	assert.NotPanics(t, func() {
		log.SetLevel(TRACE)
		log.WithName("discarded").With("key", "value").Log(ERROR, "dropped")
	})
}
