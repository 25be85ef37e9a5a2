// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/janderssonse/actstore/internal/catalog"
	"github.com/janderssonse/actstore/internal/core"
	"github.com/janderssonse/actstore/internal/download"
	"github.com/janderssonse/actstore/internal/search"
	"github.com/janderssonse/actstore/internal/tui"
)

const statusSuccess = "success"

// createTUICommand creates the tui command.
func (app *CLI) createTUICommand() *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Open the interactive browser (default in a terminal)",
		Action: func(ctx context.Context, _ *cli.Command) error {
			return app.runTUI(ctx)
		},
	}
}

func (app *CLI) createSearchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "List activities whose name or description contains the query",
		ArgsUsage: "<query>",
		Description: `Matching ignores case. Multiple words are searched as one phrase.

EXAMPLES:
  actstore search paint
  actstore search "turtle art" --plain`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			query := strings.Join(cmd.Args().Slice(), " ")
			if strings.TrimSpace(query) == "" {
				return NewExitError(ExitUsageError, "search needs a query, use 'actstore list' to show every activity", nil)
			}

			return app.runSearch(ctx, query)
		},
	}
}

func (app *CLI) createListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List every activity in the catalog",
		Action: func(ctx context.Context, _ *cli.Command) error {
			return app.runSearch(ctx, "")
		},
	}
}

func (app *CLI) createInstallCommand() *cli.Command {
	return &cli.Command{
		Name:      "install",
		Usage:     "Download and install an activity",
		ArgsUsage: "[name]",
		Description: `The name is matched without case. A partial name works when it
matches exactly one activity. Without a name a picker opens in a terminal.

EXAMPLES:
  actstore install Paint
  actstore install turtle
  actstore install`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return app.runInstall(ctx, strings.Join(cmd.Args().Slice(), " "))
		},
	}
}

func (app *CLI) createVersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show the actstore version",
		Action: func(_ context.Context, _ *cli.Command) error {
			if app.json {
				app.out.JSONResult(statusSuccess, map[string]any{"version": Version})

				return nil
			}

			app.out.Line("actstore " + Version)

			return nil
		},
	}
}

func (app *CLI) runTUI(ctx context.Context) error {
	if !app.interactive {
		return NewExitError(ExitUsageError, "the browser needs a terminal, try 'actstore list'", tui.ErrNoTerminal)
	}

	bridge := tui.NewBridge()

	c, err := core.New(ctx, app.store(), app.downloader(), bridge, app.logger)
	if err != nil {
		return NewExitError(ExitCatalogError, fmt.Sprintf("failed to load catalog: %v", err), err)
	}
	defer c.Close()

	if err := tui.Run(ctx, c, bridge, app.logger); err != nil {
		if app.verbose {
			return NewExitError(ExitGeneralError, fmt.Sprintf("Failed to launch TUI: %v", err), err)
		}

		return NewExitError(ExitGeneralError, "Failed to launch interactive interface (terminal required)", err)
	}

	return nil
}

func (app *CLI) runSearch(ctx context.Context, query string) error {
	sess, err := app.openSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	rows, err := sess.search(ctx, query)
	if err != nil {
		return interrupted(err)
	}

	app.printRows(query, rows)

	return nil
}

func (app *CLI) printRows(query string, rows []catalog.Row) {
	if app.json {
		activities := make([]map[string]any, 0, len(rows))
		for _, row := range rows {
			activities = append(activities, map[string]any{
				"id":          row.EntryID,
				"name":        row.Name,
				"description": row.Description(),
				"version":     row.Field("Version"),
				"works_with":  row.Field("Works with"),
				"homepage":    row.Field("Homepage"),
				"status":      row.Status,
				"icon":        row.Icon,
			})
		}

		app.out.JSONResult(statusSuccess, map[string]any{
			"query":      query,
			"count":      len(rows),
			"activities": activities,
		})

		return
	}

	if len(rows) == 0 {
		app.out.Warningf("no activities match %q", query)

		return
	}

	table := make([][]string, 0, len(rows))
	for _, row := range rows {
		table = append(table, []string{row.Name, row.Field("Version"), row.Status, row.Description()})
	}

	app.out.Table([]string{"NAME", "VERSION", "STATUS", "DESCRIPTION"}, table)
}

func (app *CLI) runInstall(ctx context.Context, name string) error {
	sess, err := app.openSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	entries, err := sess.entries(ctx)
	if err != nil {
		return interrupted(err)
	}

	entry, err := app.chooseActivity(ctx, entries, name)
	if err != nil {
		return err
	}

	record, err := sess.install(ctx, entry.ID, func(record download.Record) {
		if record.Err != nil {
			return
		}

		app.out.Statusf("%s: %s", record.Name, record.Label())
	})
	if err != nil {
		return interrupted(err)
	}

	if record.Err != nil {
		return NewExitError(ExitInstallError, fmt.Sprintf("failed to install %s: %v", entry.Name, record.Err), record.Err)
	}

	if app.json {
		app.out.JSONResult(statusSuccess, map[string]any{
			"activity": entry.Name,
			"handle":   string(record.Handle),
			"state":    record.Status.State.String(),
		})

		return nil
	}

	app.out.Successf("Installed %s", entry.Name)

	return nil
}

// chooseActivity resolves name against the catalog, or asks when name is
// empty.
func (app *CLI) chooseActivity(ctx context.Context, entries []catalog.Entry, name string) (catalog.Entry, error) {
	if strings.TrimSpace(name) == "" {
		if !app.interactive || app.json || app.plain {
			return catalog.Entry{}, NewExitError(ExitUsageError, "specify the activity to install", ErrNoActivity)
		}

		return app.pickActivity(ctx, entries)
	}

	entry, err := findActivity(entries, name)
	if err != nil {
		return catalog.Entry{}, err
	}

	return entry, nil
}

// findActivity matches name exactly, ignoring case, then falls back to a
// search that must find exactly one activity.
func findActivity(entries []catalog.Entry, name string) (catalog.Entry, error) {
	lowered := search.Normalize(name)

	for _, entry := range entries {
		if search.Normalize(entry.Name) == lowered {
			return entry, nil
		}
	}

	matches := search.Filter(entries, name)

	switch len(matches) {
	case 0:
		return catalog.Entry{}, NewExitError(ExitNotFoundError, fmt.Sprintf("activity not found: %s", name), nil)
	case 1:
		return matches[0], nil
	}

	names := make([]string, 0, len(matches))
	for _, match := range matches {
		names = append(names, match.Name)
	}

	return catalog.Entry{}, NewExitError(ExitUsageError,
		fmt.Sprintf("%q matches %d activities: %s", name, len(matches), strings.Join(names, ", ")), nil)
}

func interrupted(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return NewExitError(ExitInterruptError, "interrupted", err)
	}

	return NewExitError(ExitGeneralError, err.Error(), err)
}
