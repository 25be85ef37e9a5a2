// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/janderssonse/actstore/internal/catalog"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"Paint", "paint"},
		{"TURTLE ART", "turtle art"},
		{"Straße", "straße"},
		{"ÄPFEL", "äpfel"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestFilter(t *testing.T) {
	t.Parallel()

	entries := []catalog.Entry{
		{ID: 0, Name: "Paint", Description: "Draw pictures"},
		{ID: 1, Name: "Straßenbahn", Description: "Drive a tram"},
		{ID: 2, Name: "Chat", Description: ""},
	}

	tests := []struct {
		name     string
		query    string
		expected []int
	}{
		{"empty query matches all", "", []int{0, 1, 2}},
		{"name substring", "ain", []int{0}},
		{"description substring", "tram", []int{1}},
		{"upper-case query", "DRAW", []int{0}},
		{"upper-case SS does not match sharp s", "STRASSENBAHN", nil},
		{"sharp s kept", "straßen", []int{1}},
		{"ss does not match sharp s", "ss", nil},
		{"no match", "zebra", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var ids []int
			for _, entry := range Filter(entries, tt.query) {
				ids = append(ids, entry.ID)
			}

			assert.Equal(t, tt.expected, ids)
		})
	}
}
