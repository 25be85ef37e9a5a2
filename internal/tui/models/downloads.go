// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/janderssonse/actstore/internal/download"
	"github.com/janderssonse/actstore/internal/tui/styles"
)

const (
	labelWidth    = 22
	minBarWidth   = 10
	linesPerEntry = 3
)

// DownloadLister is the part of the core the downloads page reads.
type DownloadLister interface {
	Downloads() []download.Record
}

// Downloads lists every install started in this session with its progress bar.
type Downloads struct {
	styles   *styles.Styles
	lister   DownloadLister
	keys     KeyMap
	viewport viewport.Model
	bars     map[download.Handle]progress.Model
	records  []download.Record
	width    int
	height   int
}

// NewDownloads creates the downloads page.
func NewDownloads(styleConfig *styles.Styles, lister DownloadLister) *Downloads {
	return &Downloads{
		styles:   styleConfig,
		lister:   lister,
		keys:     DefaultKeyMap(),
		viewport: viewport.New(0, 0),
		bars:     make(map[download.Handle]progress.Model),
	}
}

// Init implements tea.Model.
func (m *Downloads) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
//
//nolint:ireturn // Bubble Tea framework requires returning tea.Model interface
func (m *Downloads) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Up):
			m.viewport.ScrollUp(linesPerEntry)
		case key.Matches(msg, m.keys.Down):
			m.viewport.ScrollDown(linesPerEntry)
		case key.Matches(msg, m.keys.PageUp):
			m.viewport.PageUp()
		case key.Matches(msg, m.keys.PageDown):
			m.viewport.PageDown()
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m *Downloads) View() string {
	return m.viewport.View()
}

// SetSize lays the page out for the given size.
func (m *Downloads) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(height, 1)

	for handle, bar := range m.bars {
		bar.Width = m.barWidth()
		m.bars[handle] = bar
	}

	m.render()
}

// Refresh reloads the records from the lister.
func (m *Downloads) Refresh() {
	m.records = m.lister.Downloads()

	for _, record := range m.records {
		if _, exists := m.bars[record.Handle]; !exists {
			m.bars[record.Handle] = progress.New(
				progress.WithDefaultGradient(),
				progress.WithWidth(m.barWidth()),
			)
		}
	}

	m.render()
}

// Bindings returns the bindings shown in the footer.
func (m *Downloads) Bindings() []key.Binding {
	return []key.Binding{m.keys.Up, m.keys.Down}
}

func (m *Downloads) render() {
	if len(m.records) == 0 {
		m.viewport.SetContent(m.styles.MutedText.Render("No downloads yet. Press enter on a search result to install it."))

		return
	}

	blocks := make([]string, 0, len(m.records))
	for _, record := range m.records {
		blocks = append(blocks, m.renderRecord(record))
	}

	m.viewport.SetContent(strings.Join(blocks, "\n\n"))
}

func (m *Downloads) renderRecord(record download.Record) string {
	stalled := record.Err != nil

	label := record.Label()
	labelStyle := m.styles.MutedText

	switch {
	case stalled:
		label = "Stalled: " + record.Err.Error()
		labelStyle = m.styles.ErrorText
	case record.Done():
		labelStyle = m.styles.SuccessText
	}

	title := m.styles.DownloadIcon(record.Status.State, stalled) + " " +
		m.styles.Row.Bold(true).Render(fit(record.Name, labelWidth)) + " " +
		labelStyle.Render(label)

	bar := m.bars[record.Handle]

	return title + "\n  " + bar.ViewAs(float64(record.Status.Percent)/100)
}

func (m *Downloads) barWidth() int {
	return max(m.width-4, minBarWidth)
}
