// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package console formats command output for terminals, pipes and scripts.
package console

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// columnGap separates aligned columns.
const columnGap = "  "

// Output writes results to stdout and messages to stderr.
type Output struct {
	Verbose bool
	JSON    bool
	Plain   bool

	stdout io.Writer
	stderr io.Writer
	tty    bool
}

// New creates an output over the given writers. tty enables ANSI styling.
func New(stdout, stderr io.Writer, tty bool) *Output {
	return &Output{stdout: stdout, stderr: stderr, tty: tty}
}

// NewStd creates an output over the process stdout and stderr.
func NewStd() *Output {
	return New(os.Stdout, os.Stderr, IsTTY(os.Stdout.Fd()))
}

// IsTTY checks if fd is a terminal (not piped/redirected).
func IsTTY(fd uintptr) bool {
	return term.IsTerminal(int(fd)) //nolint:gosec // file descriptors fit in int
}

// SetMode configures output mode.
func (o *Output) SetMode(verbose, json, plain bool) {
	o.Verbose = verbose
	o.JSON = json
	o.Plain = plain
}

// Styled reports whether ANSI styling is in effect.
func (o *Output) Styled() bool {
	if o.JSON || o.Plain || !o.tty {
		return false
	}

	// Check no-color.org standards
	return os.Getenv("NO_COLOR") == "" && os.Getenv("TERM") != "dumb"
}

// Bold formats text with bold when styled.
func (o *Output) Bold(text string) string {
	if !o.Styled() {
		return text
	}

	return "\033[1m" + text + "\033[0m"
}

// Progressf writes progress messages to stderr (only if verbose and not JSON/Plain).
func (o *Output) Progressf(format string, args ...any) {
	if o.Verbose && !o.JSON && !o.Plain {
		fmt.Fprintf(o.stderr, format+"\n", args...)
	}
}

// Statusf writes a status line to stderr (only if not JSON).
func (o *Output) Statusf(format string, args ...any) {
	if !o.JSON {
		fmt.Fprintf(o.stderr, format+"\n", args...)
	}
}

// Successf writes success messages to stderr (only if not JSON/Plain).
func (o *Output) Successf(format string, args ...any) {
	if !o.JSON && !o.Plain {
		fmt.Fprintf(o.stderr, "✓ "+format+"\n", args...)
	}
}

// Warningf writes warning messages to stderr.
func (o *Output) Warningf(format string, args ...any) {
	if o.Plain {
		fmt.Fprintf(o.stderr, "warning: "+format+"\n", args...)

		return
	}

	fmt.Fprintf(o.stderr, "⚠ "+format+"\n", args...)
}

// Errorf writes error messages to stderr (always visible).
func (o *Output) Errorf(format string, args ...any) {
	if o.Plain {
		fmt.Fprintf(o.stderr, "error: "+format+"\n", args...)

		return
	}

	fmt.Fprintf(o.stderr, "✗ "+format+"\n", args...)
}

// Line writes one line of primary output to stdout.
func (o *Output) Line(text string) {
	_, _ = fmt.Fprintln(o.stdout, text)
}

// JSONResult writes structured JSON results to stdout.
func (o *Output) JSONResult(status string, data map[string]any) {
	result := map[string]any{
		"status": status,
	}
	maps.Copy(result, data)

	if err := json.NewEncoder(o.stdout).Encode(result); err != nil {
		// Best effort - output encoding errors shouldn't crash the program
		fmt.Fprintf(o.stderr, "error encoding JSON: %v\n", err)
	}
}

// Table writes rows as aligned columns. The header is bolded when styled and
// skipped in plain mode, where cells are joined with ':' for machine parsing.
func (o *Output) Table(header []string, rows [][]string) {
	if o.Plain {
		for _, row := range rows {
			o.Line(strings.Join(row, ":"))
		}

		return
	}

	widths := columnWidths(append([][]string{header}, rows...))

	o.Line(o.Bold(formatRow(header, widths)))

	for _, row := range rows {
		o.Line(formatRow(row, widths))
	}
}

func columnWidths(rows [][]string) []int {
	var widths []int

	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}

			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	return widths
}

func formatRow(row []string, widths []int) string {
	cells := make([]string, len(row))

	for i, cell := range row {
		if i == len(row)-1 {
			cells[i] = cell

			continue
		}

		cells[i] = runewidth.FillRight(cell, widths[i])
	}

	return strings.Join(cells, columnGap)
}
