// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package styles defines the colours and lipgloss styles of the activity browser.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/janderssonse/actstore/internal/download"
)

// Styles contains all the styles used in the TUI.
type Styles struct {
	// Color palette
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Muted     lipgloss.Color

	Header    lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Selected  lipgloss.Style
	Row       lipgloss.Style
	Pane      lipgloss.Style
	Modal     lipgloss.Style

	MutedText   lipgloss.Style
	PrimaryText lipgloss.Style
	SuccessText lipgloss.Style
	ErrorText   lipgloss.Style
	WarningText lipgloss.Style
}

// New creates the default Tokyo Night styles.
func New() *Styles {
	primary := lipgloss.Color("#7aa2f7")
	secondary := lipgloss.Color("#bb9af7")
	success := lipgloss.Color("#9ece6a")
	warning := lipgloss.Color("#e0af68")
	errorColor := lipgloss.Color("#f7768e")
	muted := lipgloss.Color("#565f89")

	background := lipgloss.Color("#1a1b26")
	foreground := lipgloss.Color("#c0caf5")

	return &Styles{
		Primary:   primary,
		Secondary: secondary,
		Success:   success,
		Warning:   warning,
		Error:     errorColor,
		Muted:     muted,

		Header: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			Padding(0, 1),

		Tab: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 1),

		ActiveTab: lipgloss.NewStyle().
			Background(primary).
			Foreground(background).
			Bold(true).
			Padding(0, 1),

		Selected: lipgloss.NewStyle().
			Background(primary).
			Foreground(background),

		Row: lipgloss.NewStyle().
			Foreground(foreground),

		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(1, 2),

		MutedText:   lipgloss.NewStyle().Foreground(muted),
		PrimaryText: lipgloss.NewStyle().Foreground(primary),
		SuccessText: lipgloss.NewStyle().Foreground(success),
		ErrorText:   lipgloss.NewStyle().Foreground(errorColor),
		WarningText: lipgloss.NewStyle().Foreground(warning),
	}
}

// StatusBadge renders the catalog status of an activity.
func (s *Styles) StatusBadge(status string) string {
	if status == "Experimental" {
		return s.WarningText.Render(status)
	}

	return s.MutedText.Render(status)
}

// DownloadIcon returns the styled icon for a download row. A stalled row
// shows a cross whatever its state.
func (s *Styles) DownloadIcon(state download.State, stalled bool) string {
	switch {
	case stalled:
		return s.ErrorText.Render("✗")
	case state == download.StateInstalled:
		return s.SuccessText.Render("✓")
	case state == download.StateStarting:
		return s.MutedText.Render("○")
	default:
		return s.PrimaryText.Render("⚬")
	}
}

// Keybinding returns styled keybinding text.
func (s *Styles) Keybinding(key, desc string) string {
	keyStyle := lipgloss.NewStyle().
		Foreground(s.Primary).
		Bold(true)

	return keyStyle.Render("["+key+"]") + " " + s.MutedText.Render(desc)
}
