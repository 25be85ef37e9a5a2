// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package dispatch marshals work from background goroutines onto the single
// loop that owns display state.
package dispatch

import (
	"context"
	"sync"
)

// Dispatcher runs posted functions on the owning loop, in post order.
// Post must never block, since it is called from that loop as well as from
// workers.
type Dispatcher interface {
	Post(fn func())
}

// Func adapts an ordinary function to the Dispatcher interface.
type Func func(fn func())

// Post calls f(fn).
func (f Func) Post(fn func()) {
	f(fn)
}

// Queue is an unbounded FIFO of posted functions. It is the building block of
// Loop and doubles as a manually pumped dispatcher.
type Queue struct {
	mu      sync.Mutex
	pending []func()
	signal  chan struct{}
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{signal: make(chan struct{}, 1)}
}

// Post appends fn to the queue.
func (q *Queue) Post(fn func()) {
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()

	select {
	case q.signal <- struct{}{}:
	default:
	}
}

// Len returns the number of queued functions.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.pending)
}

// Drain runs every function queued at the time of the call and returns how
// many ran. Functions posted while draining wait for the next call.
func (q *Queue) Drain() int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, fn := range batch {
		fn()
	}

	return len(batch)
}

// Ready is signalled after a Post.
func (q *Queue) Ready() <-chan struct{} {
	return q.signal
}

// Loop runs posted functions on one goroutine.
type Loop struct {
	queue *Queue
}

// NewLoop creates a loop. Call Run to start processing.
func NewLoop() *Loop {
	return &Loop{queue: NewQueue()}
}

// Post schedules fn on the loop.
func (l *Loop) Post(fn func()) {
	l.queue.Post(fn)
}

// Run processes posted functions until ctx is done.
func (l *Loop) Run(ctx context.Context) {
	for {
		l.queue.Drain()

		select {
		case <-ctx.Done():
			return
		case <-l.queue.Ready():
		}
	}
}

// Do runs fn on the loop and waits for it to return. It must not be called
// from the loop itself.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})

	l.Post(func() {
		defer close(done)
		fn()
	})

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
