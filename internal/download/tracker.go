// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package download

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrUnknownHandle is returned when a handle does not name a record.
var ErrUnknownHandle = errors.New("unknown download handle")

// Handle addresses one download record.
type Handle string

// Record is one install attempt.
type Record struct {
	Handle    Handle
	EntryID   int
	Name      string
	Progress  int // last accepted raw progress value
	Status    Status
	Err       error // last transport or install error; the row stalls
	StartedAt time.Time
	UpdatedAt time.Time
}

// Label returns the user-facing label of the record.
func (r Record) Label() string {
	return r.Status.Label()
}

// Done reports whether the install completed.
func (r Record) Done() bool {
	return r.Status.State == StateInstalled
}

// Tracker keeps one record per download, in the order they were added.
type Tracker struct {
	mu      sync.RWMutex
	records map[Handle]*Record
	order   []Handle
	now     func() time.Time
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		records: make(map[Handle]*Record),
		now:     time.Now,
	}
}

// Add creates a record for name at progress 0 and returns its handle.
func (t *Tracker) Add(entryID int, name string) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	handle := newHandle()
	for t.records[handle] != nil {
		handle = newHandle()
	}

	now := t.now()
	t.records[handle] = &Record{
		Handle:    handle,
		EntryID:   entryID,
		Name:      name,
		Status:    Status{State: StateStarting},
		StartedAt: now,
		UpdatedAt: now,
	}
	t.order = append(t.order, handle)

	return handle
}

// Update applies progress to the record behind handle. Regressions are
// applied and reported; out of range values leave the record untouched.
func (t *Tracker) Update(handle Handle, progress int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	record, exists := t.records[handle]
	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownHandle, handle)
	}

	next, err := Transition(record.Status, progress)
	if errors.Is(err, ErrProgressOutOfRange) {
		return err
	}

	record.Status = next
	record.Progress = progress
	record.UpdatedAt = t.now()

	return err
}

// Fail records err against handle. The record keeps its last status.
func (t *Tracker) Fail(handle Handle, err error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	record, exists := t.records[handle]
	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownHandle, handle)
	}

	record.Err = err
	record.UpdatedAt = t.now()

	return nil
}

// Get returns a copy of the record behind handle.
func (t *Tracker) Get(handle Handle) (Record, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	record, exists := t.records[handle]
	if !exists {
		return Record{}, false
	}

	return *record, true
}

// Records returns copies of all records in insertion order.
func (t *Tracker) Records() []Record {
	t.mu.RLock()
	defer t.mu.RUnlock()

	records := make([]Record, 0, len(t.order))
	for _, handle := range t.order {
		records = append(records, *t.records[handle])
	}

	return records
}

// Active returns the number of records neither installed nor failed.
func (t *Tracker) Active() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	active := 0

	for _, record := range t.records {
		if !record.Done() && record.Err == nil {
			active++
		}
	}

	return active
}

func newHandle() Handle {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}

	return Handle(id.String())
}
