// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package search filters the activity catalog against live queries in the
// background and keeps the displayed result list in step with the latest one.
package search

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/janderssonse/actstore/internal/catalog"
	"github.com/janderssonse/actstore/internal/dispatch"
)

// IconSource looks up activity icons. catalog.Store satisfies it.
type IconSource interface {
	Icon(id int) (string, error)
}

// Session is one filter pass over the catalog.
type Session struct {
	ID    uint64
	Query string

	ctx    context.Context //nolint:containedctx // cancellation token polled by the worker
	cancel context.CancelFunc
}

// Cancelled reports whether a newer search has stopped this session.
func (s *Session) Cancelled() bool {
	return s.ctx.Err() != nil
}

// Controller owns the catalog snapshot and the displayed result list.
// Search, Stop and the accessors must be called from the dispatch loop; the
// scan itself runs on a worker goroutine that only posts back to the loop.
type Controller struct {
	index      []indexedEntry
	icons      IconSource
	dispatcher dispatch.Dispatcher
	logger     *log.Logger

	model    *Model
	onChange func()

	generation uint64
	session    *Session
	running    bool
	pending    *pendingSearch
}

// pendingSearch is the query waiting for a cancelled worker to report.
type pendingSearch struct {
	generation uint64
	query      string
}

// NewController creates a controller over entries. icons may be nil.
func NewController(entries []catalog.Entry, icons IconSource, dispatcher dispatch.Dispatcher, logger *log.Logger) *Controller {
	return &Controller{
		index:      buildIndex(entries),
		icons:      icons,
		dispatcher: dispatcher,
		logger:     logger.WithPrefix("search"),
		model:      NewModel(),
	}
}

// SetChangeHandler sets a function called on the loop after every change to
// the model.
func (c *Controller) SetChangeHandler(fn func()) {
	c.onChange = fn
}

// Search starts a filter pass for query. A running pass is cancelled first
// and the query starts once its worker reports back; only the latest query
// waiting that way is kept.
func (c *Controller) Search(query string) {
	c.generation++
	normalized := Normalize(query)

	if c.running {
		c.session.cancel()
		c.pending = &pendingSearch{generation: c.generation, query: normalized}

		return
	}

	c.start(c.generation, normalized)
}

// Stop cancels the active pass and drops any query waiting for it. Rows
// appended so far stay until the next pass.
func (c *Controller) Stop() {
	c.pending = nil

	if c.session != nil {
		c.session.cancel()
	}
}

// Running reports whether a worker is still scanning.
func (c *Controller) Running() bool {
	return c.running
}

// Query returns the normalized query of the most recent pass.
func (c *Controller) Query() string {
	if c.session == nil {
		return ""
	}

	return c.session.Query
}

// Model returns the displayed result list.
func (c *Controller) Model() *Model {
	return c.model
}

func (c *Controller) start(generation uint64, query string) {
	ctx, cancel := context.WithCancel(context.Background())

	session := &Session{
		ID:     generation,
		Query:  query,
		ctx:    ctx,
		cancel: cancel,
	}

	c.session = session
	c.running = true
	c.model.Reset(session.ID)
	c.notify()

	c.logger.Debug("search started", "session", session.ID, "query", query)

	go c.scan(session)
}

// scan runs on the worker goroutine.
func (c *Controller) scan(session *Session) {
	started := time.Now()
	matched := 0

	for _, indexed := range c.index {
		if session.Cancelled() {
			break
		}

		if !indexed.matches(session.Query) {
			continue
		}

		row := catalog.Render(indexed.entry, c.icon(indexed.entry.ID))
		matched++

		c.dispatcher.Post(func() {
			if c.model.Append(session.ID, row) {
				c.notify()
			}
		})
	}

	cancelled := session.Cancelled()
	elapsed := time.Since(started)

	c.dispatcher.Post(func() { c.finish(session, matched, cancelled, elapsed) })
}

func (c *Controller) finish(session *Session, matched int, cancelled bool, elapsed time.Duration) {
	session.cancel()

	if c.session != session {
		return
	}

	c.running = false

	if cancelled {
		c.logger.Debug("search cancelled", "session", session.ID, "query", session.Query, "matched", matched)
	} else {
		c.logger.Debug("search finished", "session", session.ID, "query", session.Query, "matched", matched, "elapsed", elapsed)
	}

	if next := c.pending; next != nil {
		c.pending = nil
		c.start(next.generation, next.query)

		return
	}

	c.notify()
}

// icon runs on the worker. A missing icon never aborts the scan.
func (c *Controller) icon(id int) string {
	if c.icons == nil {
		return ""
	}

	icon, err := c.icons.Icon(id)
	if err != nil {
		c.logger.Debug("icon unavailable", "activity", id, "err", err)

		return ""
	}

	return icon
}

func (c *Controller) notify() {
	if c.onChange != nil {
		c.onChange()
	}
}
