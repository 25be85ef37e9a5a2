// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package cli

import (
	"context"
	"fmt"
	"sync"

	"github.com/janderssonse/actstore/internal/catalog"
	"github.com/janderssonse/actstore/internal/core"
	"github.com/janderssonse/actstore/internal/dispatch"
	"github.com/janderssonse/actstore/internal/download"
)

// session runs a core on a private dispatch loop for the commands that print
// instead of drawing the TUI. Core methods only run inside loop.Do.
type session struct {
	core *core.Core
	loop *dispatch.Loop
	stop context.CancelFunc
	done chan struct{}
}

func (app *CLI) openSession(ctx context.Context) (*session, error) {
	loop := dispatch.NewLoop()
	loopCtx, stop := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)
		loop.Run(loopCtx)
	}()

	c, err := core.New(ctx, app.store(), app.downloader(), loop, app.logger)
	if err != nil {
		stop()
		<-done

		return nil, NewExitError(ExitCatalogError, fmt.Sprintf("failed to load catalog: %v", err), err)
	}

	return &session{core: c, loop: loop, stop: stop, done: done}, nil
}

// Close cancels running downloads and stops the loop.
func (s *session) Close() {
	s.core.Close()
	s.stop()
	<-s.done
}

func (s *session) entries(ctx context.Context) ([]catalog.Entry, error) {
	var entries []catalog.Entry

	err := s.loop.Do(ctx, func() { entries = s.core.Entries() })

	return entries, err
}

// search runs one filter pass to completion and returns its rows.
func (s *session) search(ctx context.Context, query string) ([]catalog.Row, error) {
	finished := make(chan struct{})

	var once sync.Once

	err := s.loop.Do(ctx, func() {
		s.core.SetChangeHandler(func() {
			if !s.core.Searching() {
				once.Do(func() { close(finished) })
			}
		})
		s.core.OnQueryChanged(query)
	})
	if err != nil {
		return nil, err
	}

	select {
	case <-finished:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	var rows []catalog.Row

	if err := s.loop.Do(ctx, func() { rows = s.core.DisplayModel() }); err != nil {
		return nil, err
	}

	return rows, nil
}

// install installs entryID and waits until it is installed or stalls.
// onChange sees the record on the loop each time its label changes.
func (s *session) install(ctx context.Context, entryID int, onChange func(download.Record)) (download.Record, error) {
	finished := make(chan download.Record, 1)

	var (
		handle    download.Handle
		lastLabel string
		startErr  error
	)

	err := s.loop.Do(ctx, func() {
		s.core.SetChangeHandler(func() {
			record, ok := s.core.Download(handle)
			if !ok {
				return
			}

			if label := record.Label(); label != lastLabel || record.Err != nil {
				lastLabel = label
				onChange(record)
			}

			if record.Done() || record.Err != nil {
				select {
				case finished <- record:
				default:
				}
			}
		})

		handle, startErr = s.core.OnInstallClicked(entryID)
	})
	if err != nil {
		return download.Record{}, err
	}

	if startErr != nil {
		return download.Record{}, startErr
	}

	select {
	case record := <-finished:
		return record, nil
	case <-ctx.Done():
		return download.Record{}, ctx.Err()
	}
}
