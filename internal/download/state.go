// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package download tracks activity downloads and installs. A single progress
// value from 0 to 200 encodes both phases: 0-100 is the download, 150-199 the
// install and 200 completion.
package download

import (
	"errors"
	"fmt"
)

// Progress value boundaries.
const (
	ProgressStart        = 0
	ProgressDownloaded   = 100
	ProgressInstallStart = 150
	ProgressInstalled    = 200
)

var (
	// ErrProgressOutOfRange is returned for progress values outside 0-200.
	ErrProgressOutOfRange = errors.New("progress out of range")
	// ErrRegression is returned when a progress value moves a record backwards.
	ErrRegression = errors.New("progress went backwards")
)

// State is the phase a download is in.
type State int

// Download states in the order they are reached.
const (
	StateStarting State = iota
	StateDownloading
	StateInstalling
	StateInstalled
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateStarting:
		return "starting"
	case StateDownloading:
		return "downloading"
	case StateInstalling:
		return "installing"
	case StateInstalled:
		return "installed"
	default:
		return "unknown"
	}
}

// Status is what a download row shows: its state and the bar percentage.
type Status struct {
	State   State
	Percent int
}

// Label returns the user-facing label for the status.
func (s Status) Label() string {
	switch s.State {
	case StateDownloading:
		return "Downloading..."
	case StateInstalling:
		return "Installing..."
	case StateInstalled:
		return "Installed!"
	default:
		return "Starting download..."
	}
}

// Transition computes the status after receiving progress. Only the latest
// value matters; prev supplies the bar percentage held while the value sits
// between the download and install phases.
//
// Out of range values return prev unchanged with ErrProgressOutOfRange.
// A value that moves the status backwards is still applied and returned with
// ErrRegression so callers can report it.
func Transition(prev Status, progress int) (Status, error) {
	var next Status

	switch {
	case progress < ProgressStart || progress > ProgressInstalled:
		return prev, fmt.Errorf("%w: %d", ErrProgressOutOfRange, progress)
	case progress == ProgressStart:
		next = Status{State: StateStarting, Percent: 0}
	case progress <= ProgressDownloaded:
		next = Status{State: StateDownloading, Percent: progress}
	case progress < ProgressInstallStart:
		next = Status{State: StateDownloading, Percent: prev.Percent}
	case progress < ProgressInstalled:
		next = Status{State: StateInstalling, Percent: ProgressDownloaded}
	default:
		next = Status{State: StateInstalled, Percent: ProgressDownloaded}
	}

	if next.State < prev.State || (next.State == prev.State && next.Percent < prev.Percent) {
		return next, fmt.Errorf("%w: %s %d%% -> %s %d%%", ErrRegression, prev.State, prev.Percent, next.State, next.Percent)
	}

	return next, nil
}
