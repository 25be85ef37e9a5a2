// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/janderssonse/actstore/internal/dispatch"
)

// dispatchMsg asks the update loop to run everything posted so far.
type dispatchMsg struct{}

// Bridge is the dispatcher of the TUI. Posted functions queue up and run
// inside App.Update, so the bubbletea loop is the only goroutine that touches
// the search model and the download tracker.
type Bridge struct {
	queue *dispatch.Queue
}

// NewBridge creates an empty bridge.
func NewBridge() *Bridge {
	return &Bridge{queue: dispatch.NewQueue()}
}

// Post queues fn for the update loop. It never blocks, so it is safe to call
// from Update itself.
func (b *Bridge) Post(fn func()) {
	b.queue.Post(fn)
}

// Pending returns the number of queued functions.
func (b *Bridge) Pending() int {
	return b.queue.Len()
}

// Drain runs the queued functions. Only the update loop calls it.
func (b *Bridge) Drain() int {
	return b.queue.Drain()
}

// Forward wakes the update loop through send whenever something is posted,
// until ctx is done. Wake-ups that arrive while a drain is pending collapse
// into one message.
func (b *Bridge) Forward(ctx context.Context, send func(tea.Msg)) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-b.queue.Ready():
			send(dispatchMsg{})
		}
	}
}
