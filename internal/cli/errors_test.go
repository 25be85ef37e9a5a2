// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package cli

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/janderssonse/actstore/internal/catalog"
)

func TestExitErrorFormatting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ExitError
		expected string
	}{
		{"message only", NewExitError(ExitUsageError, "bad usage", nil), "bad usage"},
		{"message and cause", NewExitError(ExitCatalogError, "failed to load catalog", catalog.ErrCatalogLoad), "failed to load catalog: failed to load catalog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil", nil, ExitSuccess},
		{"plain error", errors.New("boom"), ExitGeneralError},
		{"exit error", NewExitError(ExitNotFoundError, "missing", nil), ExitNotFoundError},
		{"wrapped exit error", fmt.Errorf("outer: %w", NewExitError(ExitConfigError, "config", nil)), ExitConfigError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, ExitCode(tt.err))
		})
	}
}

func TestInterrupted(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ExitInterruptError, ExitCode(interrupted(context.Canceled)))
	assert.Equal(t, ExitGeneralError, ExitCode(interrupted(errors.New("loop stopped"))))
	assert.ErrorIs(t, interrupted(context.Canceled), context.Canceled)
}

func TestFindActivity(t *testing.T) {
	t.Parallel()

	entries, err := catalog.Parse([]byte(testCatalog))
	assert.NoError(t, err)

	tests := []struct {
		name     string
		query    string
		expected string
		wantCode int
	}{
		{"exact name", "Chat", "Chat", ExitSuccess},
		{"exact name any case", "TURTLE ART", "Turtle Art", ExitSuccess},
		{"unique partial", "pict", "Paint", ExitSuccess},
		{"ambiguous", "draw", "", ExitUsageError},
		{"unknown", "zebra", "", ExitNotFoundError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			entry, err := findActivity(entries, tt.query)

			assert.Equal(t, tt.wantCode, ExitCode(err))
			assert.Equal(t, tt.expected, entry.Name)
		})
	}
}
