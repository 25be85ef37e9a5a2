// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package catalog

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

var (
	// ErrIconUnavailable is returned when an activity has no icon.
	ErrIconUnavailable = errors.New("icon not available")
	// ErrCatalogLoad is returned when the catalog file cannot be read or parsed.
	ErrCatalogLoad = errors.New("failed to load catalog")
)

//go:embed data/default.toml
var defaultCatalog []byte

// Store provides the catalog snapshot and per-activity icons.
type Store interface {
	Entries(ctx context.Context) ([]Entry, error)
	Icon(id int) (string, error)
}

// catalogFile represents the structure of a catalog TOML file.
type catalogFile struct {
	Activities []Entry `toml:"activity"`
}

// FileStore reads the catalog from a TOML file. An empty path selects the
// catalog bundled with the binary.
type FileStore struct {
	path string

	mu      sync.RWMutex
	entries []Entry
}

// NewFileStore creates a store for the catalog at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the catalog file path, or "" for the bundled catalog.
func (s *FileStore) Path() string {
	return s.path
}

// Entries loads the catalog and returns it in file order. IDs are the
// position of each entry in that order.
func (s *FileStore) Entries(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := defaultCatalog

	if s.path != "" {
		fileData, err := os.ReadFile(s.path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCatalogLoad, err)
		}

		data = fileData
	}

	entries, err := Parse(data)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()

	return append([]Entry(nil), entries...), nil
}

// Icon returns the icon handle of the activity with the given id.
func (s *FileStore) Icon(id int) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if id < 0 || id >= len(s.entries) || s.entries[id].Icon == "" {
		return "", fmt.Errorf("%w: activity %d", ErrIconUnavailable, id)
	}

	return s.entries[id].Icon, nil
}

// Parse decodes catalog TOML and assigns entry IDs in order.
func Parse(data []byte) ([]Entry, error) {
	var file catalogFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogLoad, err)
	}

	for i := range file.Activities {
		file.Activities[i].ID = i
	}

	return file.Activities, nil
}

// StaticStore serves a fixed set of entries. Icons come from the entries
// themselves.
type StaticStore struct {
	entries []Entry
}

// NewStaticStore creates a store over entries, renumbering IDs by position.
func NewStaticStore(entries []Entry) *StaticStore {
	owned := make([]Entry, len(entries))
	for i, entry := range entries {
		entry.ID = i
		owned[i] = entry
	}

	return &StaticStore{entries: owned}
}

// Entries returns a copy of the entries.
func (s *StaticStore) Entries(_ context.Context) ([]Entry, error) {
	return append([]Entry(nil), s.entries...), nil
}

// Icon returns the icon of entry id.
func (s *StaticStore) Icon(id int) (string, error) {
	if id < 0 || id >= len(s.entries) || s.entries[id].Icon == "" {
		return "", fmt.Errorf("%w: activity %d", ErrIconUnavailable, id)
	}

	return s.entries[id].Icon, nil
}
