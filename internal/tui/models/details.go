// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/janderssonse/actstore/internal/catalog"
	"github.com/janderssonse/actstore/internal/tui/styles"
)

const minWrapWidth = 20

// Details renders the selected activity as markdown in a bordered pane.
type Details struct {
	styles   *styles.Styles
	renderer *glamour.TermRenderer
	width    int
	height   int

	// last rendered markdown and its output
	source   string
	rendered string
}

// NewDetails creates an empty details pane.
func NewDetails(styleConfig *styles.Styles) *Details {
	return &Details{styles: styleConfig}
}

// SetSize sets the outer size of the pane. A width change drops the renderer
// so the text is wrapped again.
func (d *Details) SetSize(width, height int) {
	if width != d.width {
		d.renderer = nil
		d.source = ""
	}

	d.width = width
	d.height = height
}

// View renders row, or a placeholder when nothing is selected.
func (d *Details) View(row catalog.Row, selected bool) string {
	pane := d.styles.Pane.
		Width(max(d.width-2, 0)).
		Height(max(d.height-2, 0))

	if !selected {
		return pane.Render(d.styles.MutedText.Render("No activity selected"))
	}

	markdown := row.Markdown()
	if markdown != d.source {
		d.source = markdown
		d.rendered = d.render(markdown)
	}

	return pane.Render(d.rendered)
}

func (d *Details) render(markdown string) string {
	if d.renderer == nil {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(max(d.width-4, minWrapWidth)),
		)
		if err != nil {
			return markdown
		}

		d.renderer = renderer
	}

	out, err := d.renderer.Render(markdown)
	if err != nil {
		return markdown
	}

	return strings.Trim(out, "\n")
}
