// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package catalog

import (
	"strings"
)

// Field is one labelled line of an activity's details.
type Field struct {
	Label string
	Value string
}

// Row is the rendered form of an entry shown in the result list.
type Row struct {
	EntryID int
	Icon    string // empty when the icon could not be loaded
	Name    string
	Details []Field
	Status  string
}

// Render builds the display row for entry. icon may be empty.
func Render(entry Entry, icon string) Row {
	return Row{
		EntryID: entry.ID,
		Icon:    icon,
		Name:    entry.Name,
		Details: []Field{
			{Label: "Description", Value: entry.Description},
			{Label: "Version", Value: entry.Version},
			{Label: "Works with", Value: entry.WorksWith()},
			{Label: "Updated", Value: entry.Updated},
			{Label: "Downloads", Value: entry.Downloads},
			{Label: "Homepage", Value: entry.Homepage},
		},
		Status: entry.Status.String(),
	}
}

// Field returns the value of the detail labelled label, or "".
func (r Row) Field(label string) string {
	for _, field := range r.Details {
		if field.Label == label {
			return field.Value
		}
	}

	return ""
}

// Description returns the description field of the row.
func (r Row) Description() string {
	return r.Field("Description")
}

// Markdown renders the row as markdown with bold labels.
func (r Row) Markdown() string {
	var builder strings.Builder

	builder.WriteString("## " + r.Name + "\n\n")

	for _, field := range r.Details {
		builder.WriteString("**" + field.Label + ":** " + field.Value + "  \n")
	}

	builder.WriteString("\n_" + r.Status + "_\n")

	return builder.String()
}
