// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package console

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBuffered(tty bool) (*Output, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer

	return New(&stdout, &stderr, tty), &stdout, &stderr
}

func TestOutput_SetMode(t *testing.T) {
	t.Parallel()

	output, _, _ := newBuffered(false)
	output.SetMode(true, true, false)

	assert.True(t, output.Verbose)
	assert.True(t, output.JSON)
	assert.False(t, output.Plain)
}

func TestOutput_BoldOnlyWhenStyled(t *testing.T) {
	t.Parallel()

	piped, _, _ := newBuffered(false)
	assert.Equal(t, "Paint", piped.Bold("Paint"))

	plain, _, _ := newBuffered(true)
	plain.SetMode(false, false, true)
	assert.Equal(t, "Paint", plain.Bold("Paint"))
}

func TestOutput_Messages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		verbose    bool
		plain      bool
		jsonMode   bool
		write      func(o *Output)
		wantStderr string
	}{
		{"progress hidden without verbose", false, false, false, func(o *Output) { o.Progressf("step %d", 1) }, ""},
		{"progress shown with verbose", true, false, false, func(o *Output) { o.Progressf("step %d", 1) }, "step 1\n"},
		{"status shown in plain", false, true, false, func(o *Output) { o.Statusf("Paint: %s", "Installing...") }, "Paint: Installing...\n"},
		{"status hidden in json", false, false, true, func(o *Output) { o.Statusf("Paint") }, ""},
		{"success decorated", false, false, false, func(o *Output) { o.Successf("done") }, "✓ done\n"},
		{"success hidden in json", false, false, true, func(o *Output) { o.Successf("done") }, ""},
		{"warning decorated", false, false, false, func(o *Output) { o.Warningf("slow") }, "⚠ slow\n"},
		{"warning plain", false, true, false, func(o *Output) { o.Warningf("slow") }, "warning: slow\n"},
		{"error decorated", false, false, false, func(o *Output) { o.Errorf("bad") }, "✗ bad\n"},
		{"error plain", false, true, false, func(o *Output) { o.Errorf("bad") }, "error: bad\n"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			output, stdout, stderr := newBuffered(false)
			output.SetMode(testCase.verbose, testCase.jsonMode, testCase.plain)

			testCase.write(output)

			assert.Equal(t, testCase.wantStderr, stderr.String())
			assert.Empty(t, stdout.String())
		})
	}
}

func TestOutput_JSONResult(t *testing.T) {
	t.Parallel()

	output, stdout, _ := newBuffered(false)
	output.JSONResult("success", map[string]any{"count": 2})

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &decoded))
	assert.Equal(t, "success", decoded["status"])
	assert.InDelta(t, 2, decoded["count"], 0)
}

func TestOutput_TableAlignsColumns(t *testing.T) {
	t.Parallel()

	output, stdout, _ := newBuffered(false)
	output.Table([]string{"NAME", "STATUS"}, [][]string{
		{"Paint", "Public"},
		{"Turtle Art", "Experimental"},
	})

	assert.Equal(t, "NAME        STATUS\nPaint       Public\nTurtle Art  Experimental\n", stdout.String())
}

func TestOutput_TablePlain(t *testing.T) {
	t.Parallel()

	output, stdout, _ := newBuffered(false)
	output.SetMode(false, false, true)
	output.Table([]string{"NAME", "STATUS"}, [][]string{{"Paint", "Public"}})

	assert.Equal(t, "Paint:Public\n", stdout.String())
}

func TestIsTTY(t *testing.T) {
	t.Parallel()

	file, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)

	defer file.Close()

	assert.False(t, IsTTY(file.Fd()))
}
