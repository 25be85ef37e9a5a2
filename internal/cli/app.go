// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package cli provides the actstore command line.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/janderssonse/actstore/internal/catalog"
	"github.com/janderssonse/actstore/internal/config"
	"github.com/janderssonse/actstore/internal/console"
	"github.com/janderssonse/actstore/internal/download"
	"github.com/janderssonse/actstore/internal/logging"
)

// Version is stamped at build time with -ldflags "-X".
var Version = "dev"

// CLI is the command tree and the state its flags fill in.
type CLI struct {
	app         *cli.Command
	out         *console.Output
	interactive bool // stdin and stdout are terminals

	configPath  string
	catalogPath string
	verbose     bool
	json        bool
	plain       bool

	cfg       config.Config
	logger    *log.Logger
	logCloser io.Closer
}

// NewCLI creates the command tree writing to stdout and stderr. interactive
// enables the TUI and the install picker.
func NewCLI(stdout, stderr io.Writer, interactive bool) *CLI {
	app := &CLI{
		out:         console.New(stdout, stderr, interactive),
		interactive: interactive,
		cfg:         config.Default(),
		logger:      logging.Discard(),
	}

	app.app = &cli.Command{
		Name:    "actstore",
		Usage:   "Browse, search and install activities",
		Version: Version,
		Suggest: true,
		Description: `Browse the activity catalog in a terminal UI, or script it.

EXAMPLES:
  actstore                  Open the browser
  actstore search paint     List activities matching "paint"
  actstore install Paint    Download and install an activity
  actstore list --json      Dump the catalog as JSON

FILES:
  $XDG_CONFIG_HOME/actstore/config.toml   Settings
  $XDG_STATE_HOME/actstore/actstore.log   Log`,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Usage:       "path to config.toml",
				Value:       config.DefaultPath(),
				Destination: &app.configPath,
			},
			&cli.StringFlag{
				Name:        "catalog",
				Usage:       "catalog TOML file (overrides the config)",
				Destination: &app.catalogPath,
			},
			&cli.BoolFlag{
				Name:        "verbose",
				Usage:       "show progress messages and log at debug level",
				Aliases:     []string{"v"},
				Destination: &app.verbose,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output structured JSON results",
				Aliases:     []string{"j"},
				Destination: &app.json,
			},
			&cli.BoolFlag{
				Name:        "plain",
				Usage:       "output plain text without formatting for scripts",
				Destination: &app.plain,
			},
		},
		Before:   app.initConfig,
		After:    app.closeLog,
		Action:   app.defaultAction,
		Commands: app.createAllCommands(),
	}

	return app
}

// Run executes the CLI application.
func (app *CLI) Run(ctx context.Context, args []string) error {
	return app.app.Run(ctx, args)
}

// createAllCommands creates the subcommands.
func (app *CLI) createAllCommands() []*cli.Command {
	return []*cli.Command{
		app.createTUICommand(),
		app.createSearchCommand(),
		app.createListCommand(),
		app.createInstallCommand(),
		app.createVersionCommand(),
	}
}

// defaultAction runs when no command is provided.
func (app *CLI) defaultAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() > 0 {
		return NewExitError(ExitUsageError, fmt.Sprintf("'%s' is not a command, see 'actstore --help'", cmd.Args().First()), nil)
	}

	if !app.interactive {
		return NewExitError(ExitUsageError, "no terminal for the browser, see 'actstore --help' for the scripting commands", nil)
	}

	return app.runTUI(ctx)
}

// initConfig validates the global flags, loads the config and opens the log.
func (app *CLI) initConfig(ctx context.Context, _ *cli.Command) (context.Context, error) {
	if app.json && app.plain {
		return ctx, NewExitError(ExitUsageError, "cannot use both --json and --plain flags simultaneously", nil)
	}

	app.out.SetMode(app.verbose, app.json, app.plain)

	cfg, err := config.Load(config.ExpandPath(app.configPath))
	if err != nil {
		return ctx, NewExitError(ExitConfigError, fmt.Sprintf("failed to load configuration: %v", err), err)
	}

	if app.catalogPath != "" {
		cfg.Catalog = config.ExpandPath(app.catalogPath)
	}

	if app.verbose {
		cfg.LogLevel = "debug"
	}

	app.cfg = cfg

	logger, closer, err := logging.OpenFile(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		app.out.Warningf("logging disabled: %v", err)

		return ctx, nil
	}

	app.logger = logger
	app.logCloser = closer

	return ctx, nil
}

func (app *CLI) closeLog(_ context.Context, _ *cli.Command) error {
	if app.logCloser == nil {
		return nil
	}

	err := app.logCloser.Close()
	app.logCloser = nil

	if err != nil {
		return NewExitError(ExitSystemError, fmt.Sprintf("failed to close log: %v", err), err)
	}

	return nil
}

func (app *CLI) store() catalog.Store {
	return catalog.NewFileStore(app.cfg.Catalog)
}

func (app *CLI) downloader() download.Downloader {
	return download.NewStaged(app.cfg.Download.StepDelay.Duration, app.cfg.Download.Steps)
}
