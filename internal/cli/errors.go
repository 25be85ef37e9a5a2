// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package cli

import (
	"errors"
	"fmt"
)

// Exit codes follow standard Unix conventions for better scripting support.
// Range 0-125 are safe to use (126+ have special meaning in shells).
const (
	ExitSuccess       = 0 // Operation completed successfully
	ExitGeneralError  = 1 // Generic failure (catch-all)
	ExitUsageError    = 2 // Invalid command line usage
	ExitConfigError   = 3 // Configuration file error
	ExitNotFoundError = 5 // Requested activity not found

	ExitSystemError    = 12 // System call failed
	ExitInterruptError = 14 // User interrupted (Ctrl+C)

	ExitCatalogError = 20 // Catalog could not be loaded
	ExitInstallError = 22 // Activity download or install failed
)

var (
	// ErrNoActivity is returned when install has no activity to work on.
	ErrNoActivity = errors.New("no activity specified")
	// ErrAborted is returned when the user declines a confirmation.
	ErrAborted = errors.New("aborted by user")
)

// ExitError carries the process exit code for a failure. Message is what the
// user sees; Err keeps the cause for errors.Is.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

// NewExitError creates an ExitError with the specified code and message.
func NewExitError(code int, message string, err error) *ExitError {
	return &ExitError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps any error returned by Run to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	return ExitGeneralError
}
