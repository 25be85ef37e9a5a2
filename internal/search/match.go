// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package search

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/janderssonse/actstore/internal/catalog"
)

// Normalize lower-cases text for matching. A Caser is stateful, so each call
// builds its own.
func Normalize(text string) string {
	return cases.Lower(language.Und).String(text)
}

// indexedEntry is a catalog entry with its searchable fields lower-cased.
type indexedEntry struct {
	entry       catalog.Entry
	name        string
	description string
}

func buildIndex(entries []catalog.Entry) []indexedEntry {
	index := make([]indexedEntry, len(entries))

	for i, entry := range entries {
		index[i] = indexedEntry{
			entry:       entry,
			name:        Normalize(entry.Name),
			description: Normalize(entry.Description),
		}
	}

	return index
}

// matches reports whether the normalized query occurs in the name or the
// description. The empty query matches everything.
func (e indexedEntry) matches(query string) bool {
	return strings.Contains(e.name, query) || strings.Contains(e.description, query)
}

// Filter returns the entries matching query, in catalog order.
func Filter(entries []catalog.Entry, query string) []catalog.Entry {
	normalized := Normalize(query)

	var matched []catalog.Entry

	for _, indexed := range buildIndex(entries) {
		if indexed.matches(normalized) {
			matched = append(matched, indexed.entry)
		}
	}

	return matched
}
