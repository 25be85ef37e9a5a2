// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package catalog holds the activity catalog: entries, the store they are
// loaded from and the rows they render to.
package catalog

import (
	"strings"
)

// Status is the publication status of an activity.
type Status int

// Publication states.
const (
	StatusPublic Status = iota
	StatusExperimental
)

// statusExperimentalCode is the catalog code for experimental activities.
const statusExperimentalCode = "E"

// String returns the user-facing status label.
func (s Status) String() string {
	if s == StatusExperimental {
		return "Experimental"
	}

	return "Public"
}

// UnmarshalText decodes a catalog status code. "E" (or "experimental") is
// experimental, everything else is public.
func (s *Status) UnmarshalText(text []byte) error {
	code := strings.TrimSpace(string(text))
	if code == statusExperimentalCode || strings.EqualFold(code, "experimental") {
		*s = StatusExperimental

		return nil
	}

	*s = StatusPublic

	return nil
}

// MarshalText encodes the status as its catalog code.
func (s Status) MarshalText() ([]byte, error) {
	if s == StatusExperimental {
		return []byte(statusExperimentalCode), nil
	}

	return []byte("P"), nil
}

// Entry is one activity in the catalog. Entries are immutable once loaded.
type Entry struct {
	ID          int    `toml:"-"`
	Name        string `toml:"name"`
	Description string `toml:"description"`
	Version     string `toml:"version"`
	MinVersion  string `toml:"min_version"`
	MaxVersion  string `toml:"max_version"`
	Updated     string `toml:"updated"`
	Downloads   string `toml:"downloads"`
	Homepage    string `toml:"homepage"`
	Status      Status `toml:"status"`
	Icon        string `toml:"icon"`
}

// WorksWith returns the compatibility range as "min - max".
func (e Entry) WorksWith() string {
	return e.MinVersion + " - " + e.MaxVersion
}
