// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package models implements the pages of the activity browser.
package models

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/janderssonse/actstore/internal/tui/styles"
)

// RenderFooter renders the bindings as a one-line footer.
func RenderFooter(styleConfig *styles.Styles, width int, bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))

	for _, binding := range bindings {
		if !binding.Enabled() {
			continue
		}

		help := binding.Help()
		parts = append(parts, styleConfig.Keybinding(help.Key, help.Desc))
	}

	return lipgloss.NewStyle().
		Padding(0, 1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(styleConfig.Muted).
		Width(width).
		Render(strings.Join(parts, "   "))
}
