// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package download

import (
	"context"
	"time"

	"github.com/janderssonse/actstore/internal/catalog"
)

// ProgressFunc receives progress values in 0-200.
type ProgressFunc func(progress int)

// Downloader fetches and installs an activity, reporting progress as it goes.
// onProgress is called from the downloader's goroutine.
type Downloader interface {
	Download(ctx context.Context, entry catalog.Entry, onProgress ProgressFunc) error
}

// Default staging parameters.
const (
	DefaultStepDelay = 150 * time.Millisecond
	DefaultSteps     = 10
)

// Staged is a Downloader that walks through the download and install phases
// in fixed steps without touching the network.
type Staged struct {
	StepDelay time.Duration
	Steps     int
}

// NewStaged creates a staged downloader. Non-positive values select the
// defaults.
func NewStaged(stepDelay time.Duration, steps int) *Staged {
	if stepDelay <= 0 {
		stepDelay = DefaultStepDelay
	}

	if steps <= 0 {
		steps = DefaultSteps
	}

	return &Staged{StepDelay: stepDelay, Steps: steps}
}

// Download reports 0, the download steps up to 100, then the install steps
// from 150 to 200.
func (s *Staged) Download(ctx context.Context, _ catalog.Entry, onProgress ProgressFunc) error {
	onProgress(ProgressStart)

	for step := 1; step <= s.Steps; step++ {
		if err := s.wait(ctx); err != nil {
			return err
		}

		onProgress(step * ProgressDownloaded / s.Steps)
	}

	installSpan := ProgressInstalled - ProgressInstallStart

	for step := 0; step <= s.Steps; step++ {
		if err := s.wait(ctx); err != nil {
			return err
		}

		onProgress(ProgressInstallStart + step*installSpan/s.Steps)
	}

	return nil
}

func (s *Staged) wait(ctx context.Context) error {
	timer := time.NewTimer(s.StepDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
