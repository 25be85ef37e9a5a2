// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package search

import (
	"github.com/janderssonse/actstore/internal/catalog"
)

// Model is the displayed result list. It belongs to one session at a time,
// identified by its version, and is only touched from the dispatch loop.
type Model struct {
	version uint64
	rows    []catalog.Row
}

// NewModel creates an empty model owned by no session.
func NewModel() *Model {
	return &Model{}
}

// Version returns the id of the session that owns the rows.
func (m *Model) Version() uint64 {
	return m.version
}

// Reset discards all rows and hands the model to session version.
func (m *Model) Reset(version uint64) {
	m.version = version
	m.rows = nil
}

// Append adds row if version still owns the model. It reports whether the
// row was added.
func (m *Model) Append(version uint64, row catalog.Row) bool {
	if version != m.version {
		return false
	}

	m.rows = append(m.rows, row)

	return true
}

// Len returns the number of rows.
func (m *Model) Len() int {
	return len(m.rows)
}

// Rows returns a copy of the rows in insertion order.
func (m *Model) Rows() []catalog.Row {
	return append([]catalog.Row(nil), m.rows...)
}

// Row returns the row at index i.
func (m *Model) Row(i int) (catalog.Row, bool) {
	if i < 0 || i >= len(m.rows) {
		return catalog.Row{}, false
	}

	return m.rows[i], true
}
