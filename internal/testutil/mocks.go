// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package testutil holds mocks and fixtures shared by package tests.
package testutil

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/janderssonse/actstore/internal/catalog"
	"github.com/janderssonse/actstore/internal/download"
)

// MockStore mocks catalog.Store.
type MockStore struct {
	mock.Mock
}

// Entries mocks loading the catalog.
func (m *MockStore) Entries(ctx context.Context) ([]catalog.Entry, error) {
	args := m.Called(ctx)
	if result := args.Get(0); result != nil {
		entries, ok := result.([]catalog.Entry)
		if !ok {
			return nil, args.Error(1)
		}

		return entries, args.Error(1)
	}

	return nil, args.Error(1)
}

// Icon mocks an icon lookup.
func (m *MockStore) Icon(id int) (string, error) {
	args := m.Called(id)

	return args.String(0), args.Error(1)
}

// MockDownloader mocks download.Downloader. The first return value is the
// list of progress values to report before returning the error.
type MockDownloader struct {
	mock.Mock
}

// Download reports the configured progress values, then returns the
// configured error.
func (m *MockDownloader) Download(ctx context.Context, entry catalog.Entry, onProgress download.ProgressFunc) error {
	args := m.Called(ctx, entry)

	if values, ok := args.Get(0).([]int); ok {
		for _, value := range values {
			onProgress(value)
		}
	}

	return args.Error(1)
}

// Test helpers

// CreateTestEntries returns a small catalog: an icon-less entry, an
// experimental one and one with every field set.
func CreateTestEntries() []catalog.Entry {
	return []catalog.Entry{
		{
			ID: 0, Name: "Paint", Description: "Draw pictures", Version: "23",
			MinVersion: "0.86", MaxVersion: "0.116", Updated: "2016-03-02",
			Downloads: "182,511", Homepage: "https://example.org/paint", Icon: "paint",
		},
		{ID: 1, Name: "Turtle Art", Description: "Program a turtle", Status: catalog.StatusExperimental, Icon: "turtle"},
		{ID: 2, Name: "Chat", Description: "Talk with friends"},
	}
}

// WaitWithTimeout polls fn until it returns true or the timeout passes.
func WaitWithTimeout(fn func() bool, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return true
		}

		time.Sleep(time.Millisecond)
	}

	return false
}
