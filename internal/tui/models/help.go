// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/glamour"

	"github.com/janderssonse/actstore/internal/tui/styles"
)

const helpIntro = `# actstore

Type to filter the catalog. Every keystroke starts a new search; the
previous one is cancelled and results appear as they are found. Press
**esc** to stop a search that is still running.

Press **enter** on a result to download and install it. Installs run in the
background and keep going while you search; follow them on the downloads page.
`

// Help is the key binding overlay.
type Help struct {
	styles   *styles.Styles
	keys     KeyMap
	visible  bool
	width    int
	rendered string
}

// NewHelp creates a hidden help overlay.
func NewHelp(styleConfig *styles.Styles) *Help {
	return &Help{styles: styleConfig, keys: DefaultKeyMap()}
}

// Toggle shows or hides the overlay.
func (h *Help) Toggle() {
	h.visible = !h.visible
}

// Hide hides the overlay.
func (h *Help) Hide() {
	h.visible = false
}

// IsVisible reports whether the overlay is shown.
func (h *Help) IsVisible() bool {
	return h.visible
}

// SetSize sets the available width.
func (h *Help) SetSize(width int) {
	if width != h.width {
		h.rendered = ""
	}

	h.width = width
}

// Markdown returns the help text.
func (h *Help) Markdown() string {
	var builder strings.Builder

	builder.WriteString(helpIntro)
	builder.WriteString("\n## Keys\n\n| Key | Action |\n|---|---|\n")

	for _, binding := range []key.Binding{
		h.keys.Up, h.keys.Down, h.keys.PageUp, h.keys.PageDown,
		h.keys.Install, h.keys.StopSearch, h.keys.SwitchPage, h.keys.Help, h.keys.HelpAlt,
		h.keys.Close, h.keys.Quit,
	} {
		help := binding.Help()
		builder.WriteString("| `" + help.Key + "` | " + help.Desc + " |\n")
	}

	return builder.String()
}

// View renders the overlay.
func (h *Help) View() string {
	if h.rendered == "" {
		h.rendered = h.render()
	}

	return h.styles.Modal.Render(h.rendered)
}

func (h *Help) render() string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(min(h.width-8, 80), minWrapWidth)),
	)
	if err != nil {
		return h.Markdown()
	}

	out, err := renderer.Render(h.Markdown())
	if err != nil {
		return h.Markdown()
	}

	return strings.Trim(out, "\n")
}
