// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/janderssonse/actstore/internal/catalog"
)

const pickerHeight = 12

// pickActivity asks which activity to install and for confirmation.
func (app *CLI) pickActivity(ctx context.Context, entries []catalog.Entry) (catalog.Entry, error) {
	if len(entries) == 0 {
		return catalog.Entry{}, NewExitError(ExitNotFoundError, "the catalog is empty", ErrNoActivity)
	}

	var (
		selected  int
		confirmed = true
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Install which activity?").
				Options(activityOptions(entries)...).
				Height(pickerHeight).
				Value(&selected),
		),
		huh.NewGroup(
			huh.NewConfirm().
				TitleFunc(func() string {
					return fmt.Sprintf("Download and install %s?", entries[selected].Name)
				}, &selected).
				Affirmative("Install").
				Negative("Cancel").
				Value(&confirmed),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return catalog.Entry{}, NewExitError(ExitInterruptError, "aborted", ErrAborted)
		}

		return catalog.Entry{}, NewExitError(ExitGeneralError, fmt.Sprintf("picker failed: %v", err), err)
	}

	if !confirmed {
		return catalog.Entry{}, NewExitError(ExitSuccess, "nothing installed", ErrAborted)
	}

	return entries[selected], nil
}

func activityOptions(entries []catalog.Entry) []huh.Option[int] {
	options := make([]huh.Option[int], 0, len(entries))

	for _, entry := range entries {
		label := entry.Name
		if entry.Status == catalog.StatusExperimental {
			label += " (experimental)"
		}

		if entry.Description != "" {
			label += " - " + entry.Description
		}

		options = append(options, huh.NewOption(label, entry.ID))
	}

	return options
}
