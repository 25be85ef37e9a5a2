// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/janderssonse/actstore/internal/catalog"
	"github.com/janderssonse/actstore/internal/tui/styles"
)

// Layout of a result row and the page.
const (
	nameWidth       = 18
	minDetailsWidth = 80 // below this terminal width the details pane is hidden
	headerLines     = 2  // search input and status line

	iconGlyph   = "◆"
	noIconGlyph = "·"
)

// Searcher is the part of the core the results page drives.
type Searcher interface {
	OnQueryChanged(text string)
	StopSearch()
	DisplayModel() []catalog.Row
	Searching() bool
}

// Results is the search page: the query input, the result list and the
// details of the selected activity.
type Results struct {
	styles   *styles.Styles
	searcher Searcher
	keys     KeyMap

	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	details  *Details

	rows   []catalog.Row
	cursor int
	width  int
	height int
}

// NewResults creates the search page.
func NewResults(styleConfig *styles.Styles, searcher Searcher) *Results {
	input := textinput.New()
	input.Prompt = "/ "
	input.Placeholder = "Search activities"
	input.CharLimit = 128
	input.Focus()

	return &Results{
		styles:   styleConfig,
		searcher: searcher,
		keys:     DefaultKeyMap(),
		input:    input,
		spinner:  spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(styleConfig.PrimaryText)),
		viewport: viewport.New(0, 0),
		details:  NewDetails(styleConfig),
	}
}

// Init implements tea.Model.
func (m *Results) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Update implements tea.Model.
//
//nolint:ireturn // Bubble Tea framework requires returning tea.Model interface
func (m *Results) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)

		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd

		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

// View implements tea.Model.
func (m *Results) View() string {
	body := m.viewport.View()

	if m.showDetails() {
		row, selected := m.Selected()
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, " ", m.details.View(row, selected))
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.input.View(), m.statusLine(), body)
}

// SetSize lays the page out for the given size.
func (m *Results) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(width-runewidth.StringWidth(m.input.Prompt)-1, 1)

	listHeight := max(height-headerLines, 1)
	listWidth := width

	if m.showDetails() {
		listWidth = width * 3 / 5
		m.details.SetSize(width-listWidth-1, listHeight)
	}

	m.viewport.Width = listWidth
	m.viewport.Height = listHeight
	m.renderList()
}

// Refresh reloads the rows from the searcher. The app calls it whenever the
// core reports a change.
func (m *Results) Refresh() {
	m.rows = m.searcher.DisplayModel()
	m.cursor = min(m.cursor, max(len(m.rows)-1, 0))
	m.renderList()
}

// Selected returns the row under the cursor.
func (m *Results) Selected() (catalog.Row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return catalog.Row{}, false
	}

	return m.rows[m.cursor], true
}

// Query returns the text of the search input.
func (m *Results) Query() string {
	return m.input.Value()
}

// Bindings returns the bindings shown in the footer.
func (m *Results) Bindings() []key.Binding {
	bindings := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Install}
	if m.searcher.Searching() {
		bindings = append(bindings, m.keys.StopSearch)
	}

	return bindings
}

func (m *Results) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)

		return nil
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)

		return nil
	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-m.viewport.Height)

		return nil
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(m.viewport.Height)

		return nil
	case key.Matches(msg, m.keys.Install):
		return m.installSelected()
	case key.Matches(msg, m.keys.StopSearch):
		if m.searcher.Searching() {
			m.searcher.StopSearch()
		}

		return nil
	}

	before := m.input.Value()

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	if query := m.input.Value(); query != before {
		m.cursor = 0
		m.viewport.GotoTop()
		m.searcher.OnQueryChanged(query)
	}

	return cmd
}

func (m *Results) installSelected() tea.Cmd {
	row, selected := m.Selected()
	if !selected {
		return nil
	}

	return func() tea.Msg {
		return InstallRequestMsg{EntryID: row.EntryID, Name: row.Name}
	}
}

func (m *Results) moveCursor(delta int) {
	if len(m.rows) == 0 {
		return
	}

	m.cursor = max(0, min(m.cursor+delta, len(m.rows)-1))
	m.renderList()
}

func (m *Results) renderList() {
	if len(m.rows) == 0 {
		m.viewport.SetContent(m.styles.MutedText.Render("No matching activities"))

		return
	}

	lines := make([]string, 0, len(m.rows))
	for i, row := range m.rows {
		lines = append(lines, m.renderRow(row, i == m.cursor))
	}

	m.viewport.SetContent(strings.Join(lines, "\n"))

	switch {
	case m.cursor < m.viewport.YOffset:
		m.viewport.SetYOffset(m.cursor)
	case m.cursor >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

func (m *Results) renderRow(row catalog.Row, selected bool) string {
	icon := noIconGlyph
	if row.Icon != "" {
		icon = iconGlyph
	}

	// icon, name, description and status separated by single spaces
	descWidth := max(m.viewport.Width-1-nameWidth-runewidth.StringWidth(row.Status)-3, 0)
	name := fit(row.Name, nameWidth)
	desc := fit(row.Description(), descWidth)

	if selected {
		return m.styles.Selected.Render(strings.Join([]string{icon, name, desc, row.Status}, " "))
	}

	return strings.Join([]string{
		icon,
		m.styles.Row.Render(name),
		m.styles.MutedText.Render(desc),
		m.styles.StatusBadge(row.Status),
	}, " ")
}

func (m *Results) statusLine() string {
	if m.searcher.Searching() {
		return m.spinner.View() + m.styles.MutedText.Render(" Searching...")
	}

	noun := "activities"
	if len(m.rows) == 1 {
		noun = "activity"
	}

	return m.styles.MutedText.Render(fmt.Sprintf("%d %s", len(m.rows), noun))
}

func (m *Results) showDetails() bool {
	return m.width >= minDetailsWidth
}

// fit truncates or pads text to exactly width cells.
func fit(text string, width int) string {
	if width <= 0 {
		return ""
	}

	return runewidth.FillRight(runewidth.Truncate(text, width, "…"), width)
}
