// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janderssonse/actstore/internal/catalog"
	"github.com/janderssonse/actstore/internal/tui/styles"
)

type fakeSearcher struct {
	rows      []catalog.Row
	queries   []string
	searching bool
	stops     int
}

func (f *fakeSearcher) StopSearch() {
	f.stops++
	f.searching = false
}

func (f *fakeSearcher) OnQueryChanged(text string) {
	f.queries = append(f.queries, text)
}

func (f *fakeSearcher) DisplayModel() []catalog.Row {
	return f.rows
}

func (f *fakeSearcher) Searching() bool {
	return f.searching
}

func testRows() []catalog.Row {
	return []catalog.Row{
		catalog.Render(catalog.Entry{ID: 0, Name: "Paint", Description: "Draw pictures with brushes and stamps", Icon: "paint"}, "paint"),
		catalog.Render(catalog.Entry{ID: 1, Name: "Turtle Art", Description: "Program a turtle to draw", Status: catalog.StatusExperimental}, ""),
		catalog.Render(catalog.Entry{ID: 2, Name: "Music Keyboard", Description: "Play notes on a piano"}, ""),
	}
}

func typeText(model tea.Model, text string) {
	for _, r := range text {
		model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func newTestResults(t *testing.T, width int) (*Results, *fakeSearcher) {
	t.Helper()

	searcher := &fakeSearcher{rows: testRows()}
	results := NewResults(styles.New(), searcher)
	results.SetSize(width, 20)
	results.Refresh()

	return results, searcher
}

func TestResultsTypingStartsSearch(t *testing.T) {
	t.Parallel()

	results, searcher := newTestResults(t, 100)

	typeText(results, "pa")

	assert.Equal(t, []string{"p", "pa"}, searcher.queries)
	assert.Equal(t, "pa", results.Query())

	results.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, []string{"p", "pa", "p"}, searcher.queries)
}

func TestResultsCursorAndInstall(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		keys     []tea.KeyType
		expected int
	}{
		{"first row by default", nil, 0},
		{"down moves to second", []tea.KeyType{tea.KeyDown}, 1},
		{"down stops at the end", []tea.KeyType{tea.KeyDown, tea.KeyDown, tea.KeyDown, tea.KeyDown}, 2},
		{"up stops at the top", []tea.KeyType{tea.KeyUp, tea.KeyUp}, 0},
		{"page down jumps to the end", []tea.KeyType{tea.KeyPgDown}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			results, _ := newTestResults(t, 100)

			for _, keyType := range tt.keys {
				results.Update(tea.KeyMsg{Type: keyType})
			}

			_, cmd := results.Update(tea.KeyMsg{Type: tea.KeyEnter})
			require.NotNil(t, cmd)

			msg, ok := cmd().(InstallRequestMsg)
			require.True(t, ok)
			assert.Equal(t, tt.expected, msg.EntryID)
			assert.Equal(t, testRows()[tt.expected].Name, msg.Name)
		})
	}
}

func TestResultsInstallWithoutRows(t *testing.T) {
	t.Parallel()

	results := NewResults(styles.New(), &fakeSearcher{})
	results.SetSize(100, 20)
	results.Refresh()

	_, cmd := results.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Contains(t, ansi.Strip(results.View()), "No matching activities")
}

func TestResultsRefreshClampsCursor(t *testing.T) {
	t.Parallel()

	results, searcher := newTestResults(t, 100)

	results.Update(tea.KeyMsg{Type: tea.KeyDown})
	results.Update(tea.KeyMsg{Type: tea.KeyDown})

	searcher.rows = searcher.rows[:1]
	results.Refresh()

	row, ok := results.Selected()
	require.True(t, ok)
	assert.Equal(t, "Paint", row.Name)
}

func TestResultsRowsFitTheList(t *testing.T) {
	t.Parallel()

	for _, width := range []int{40, 60, 79} {
		results, _ := newTestResults(t, width)

		view := ansi.Strip(results.View())
		for _, line := range strings.Split(view, "\n") {
			assert.LessOrEqual(t, runewidth.StringWidth(line), width, "line %q", line)
		}

		assert.Contains(t, view, "Turtle Art")
	}
}

func TestResultsStatusLine(t *testing.T) {
	t.Parallel()

	results, searcher := newTestResults(t, 100)
	assert.Contains(t, ansi.Strip(results.View()), "3 activities")

	searcher.rows = searcher.rows[:1]
	results.Refresh()
	assert.Contains(t, ansi.Strip(results.View()), "1 activity")

	searcher.searching = true
	assert.Contains(t, ansi.Strip(results.View()), "Searching...")
}

func TestResultsDetailsPane(t *testing.T) {
	t.Parallel()

	wide, _ := newTestResults(t, 120)
	wide.Update(tea.KeyMsg{Type: tea.KeyDown})

	view := ansi.Strip(wide.View())
	assert.Contains(t, view, "Works with")
	assert.Contains(t, view, "Experimental")

	narrow, _ := newTestResults(t, 60)
	assert.NotContains(t, ansi.Strip(narrow.View()), "Works with")
}

func TestResultsEscStopsSearch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		searching bool
		stops     int
	}{
		{"running search is stopped", true, 1},
		{"idle search is left alone", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			results, searcher := newTestResults(t, 60)
			searcher.searching = tt.searching

			assert.Equal(t, tt.searching, len(results.Bindings()) == 4, "stop binding shown only while searching")

			results.Update(tea.KeyMsg{Type: tea.KeyEsc})

			assert.Equal(t, tt.stops, searcher.stops)
			assert.Empty(t, searcher.queries)
		})
	}
}

func TestResultsQuestionMarkIsTyped(t *testing.T) {
	t.Parallel()

	results, searcher := newTestResults(t, 60)
	typeText(results, "?")

	assert.Equal(t, "?", results.Query())
	assert.Equal(t, []string{"?"}, searcher.queries)
}
