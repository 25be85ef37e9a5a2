// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package core ties the catalog search and the download tracker together
// behind the handful of calls a shell needs.
package core

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/janderssonse/actstore/internal/catalog"
	"github.com/janderssonse/actstore/internal/dispatch"
	"github.com/janderssonse/actstore/internal/download"
	"github.com/janderssonse/actstore/internal/search"
)

// ErrUnknownEntry is returned when an activity id is not in the catalog.
var ErrUnknownEntry = errors.New("unknown activity")

// Core is the state behind the shell. Every method except Close and
// WaitDownloads must be called from the dispatch loop.
//
//nolint:containedctx // downloads share one lifetime, cancelled by Close
type Core struct {
	entries    []catalog.Entry
	search     *search.Controller
	tracker    *download.Tracker
	downloader download.Downloader
	dispatcher dispatch.Dispatcher
	logger     *log.Logger
	onChange   func()

	ctx       context.Context
	cancel    context.CancelFunc
	downloads sync.WaitGroup
}

// New loads the catalog snapshot from store and builds the core.
func New(ctx context.Context, store catalog.Store, downloader download.Downloader, dispatcher dispatch.Dispatcher, logger *log.Logger) (*Core, error) {
	entries, err := store.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	logger.Info("catalog loaded", "activities", len(entries))

	downloadCtx, cancel := context.WithCancel(context.Background())

	core := &Core{
		entries:    entries,
		search:     search.NewController(entries, store, dispatcher, logger),
		tracker:    download.NewTracker(),
		downloader: downloader,
		dispatcher: dispatcher,
		logger:     logger,
		ctx:        downloadCtx,
		cancel:     cancel,
	}

	core.search.SetChangeHandler(core.notify)

	return core, nil
}

// SetChangeHandler sets a function called on the loop whenever the result
// list or a download row changes.
func (c *Core) SetChangeHandler(fn func()) {
	c.onChange = fn
}

// OnQueryChanged filters the catalog against text.
func (c *Core) OnQueryChanged(text string) {
	c.search.Search(text)
}

// StopSearch cancels the running filter pass.
func (c *Core) StopSearch() {
	c.search.Stop()
}

// Searching reports whether a filter pass is still running.
func (c *Core) Searching() bool {
	return c.search.Running()
}

// Query returns the normalized query of the latest pass.
func (c *Core) Query() string {
	return c.search.Query()
}

// DisplayModel returns the rows currently displayed.
func (c *Core) DisplayModel() []catalog.Row {
	return c.search.Model().Rows()
}

// Entries returns the catalog snapshot.
func (c *Core) Entries() []catalog.Entry {
	return append([]catalog.Entry(nil), c.entries...)
}

// Entry returns the activity with the given id.
func (c *Core) Entry(id int) (catalog.Entry, bool) {
	if id < 0 || id >= len(c.entries) {
		return catalog.Entry{}, false
	}

	return c.entries[id], true
}

// Downloads returns the download rows in the order they were started.
func (c *Core) Downloads() []download.Record {
	return c.tracker.Records()
}

// ActiveDownloads returns the number of downloads neither installed nor
// stalled.
func (c *Core) ActiveDownloads() int {
	return c.tracker.Active()
}

// Download returns one download row.
func (c *Core) Download(handle download.Handle) (download.Record, bool) {
	return c.tracker.Get(handle)
}

// OnInstallClicked starts downloading and installing the activity entryID.
// Progress is applied on the loop as the downloader reports it.
func (c *Core) OnInstallClicked(entryID int) (download.Handle, error) {
	entry, exists := c.Entry(entryID)
	if !exists {
		return "", fmt.Errorf("%w: %d", ErrUnknownEntry, entryID)
	}

	handle := c.tracker.Add(entry.ID, entry.Name)
	c.logger.Info("install requested", "activity", entry.Name, "handle", handle)
	c.notify()

	c.downloads.Add(1)

	go func() {
		defer c.downloads.Done()

		err := c.downloader.Download(c.ctx, entry, func(progress int) {
			c.dispatcher.Post(func() { c.applyProgress(handle, progress) })
		})
		if err != nil {
			c.dispatcher.Post(func() { c.applyFailure(handle, err) })
		}
	}()

	return handle, nil
}

// WaitDownloads blocks until every download worker has returned. Their last
// posts may still be queued on the loop.
func (c *Core) WaitDownloads() {
	c.downloads.Wait()
}

// Close cancels any download still in flight and waits for the download
// workers. Downloads have no other way to be cancelled.
func (c *Core) Close() {
	c.cancel()
	c.downloads.Wait()
}

func (c *Core) applyProgress(handle download.Handle, progress int) {
	err := c.tracker.Update(handle, progress)

	switch {
	case errors.Is(err, download.ErrRegression):
		c.logger.Warn("progress went backwards", "handle", handle, "progress", progress, "err", err)
	case err != nil:
		c.logger.Warn("progress ignored", "handle", handle, "progress", progress, "err", err)

		return
	}

	if record, ok := c.tracker.Get(handle); ok && record.Done() {
		c.logger.Info("activity installed", "activity", record.Name, "handle", handle)
	}

	c.notify()
}

func (c *Core) applyFailure(handle download.Handle, err error) {
	if failErr := c.tracker.Fail(handle, err); failErr != nil {
		c.logger.Error("failed to record download failure", "handle", handle, "err", failErr)

		return
	}

	c.logger.Warn("download stalled", "handle", handle, "err", err)
	c.notify()
}

func (c *Core) notify() {
	if c.onChange != nil {
		c.onChange()
	}
}
