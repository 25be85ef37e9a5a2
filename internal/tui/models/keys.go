// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the activity browser.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Install    key.Binding
	SwitchPage key.Binding
	Help       key.Binding
	HelpAlt    key.Binding
	StopSearch key.Binding
	Close      key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default key bindings. Printable keys are left to
// the search input, so HelpAlt only applies on pages without one.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "previous activity"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "next activity"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),
		Install: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "install"),
		),
		SwitchPage: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "results/downloads"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		HelpAlt: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help on the downloads page"),
		),
		StopSearch: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "stop search"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close help or downloads"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}
