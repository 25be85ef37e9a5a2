// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package tui implements the terminal activity browser.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/janderssonse/actstore/internal/console"
	"github.com/janderssonse/actstore/internal/core"
	"github.com/janderssonse/actstore/internal/tui/models"
	"github.com/janderssonse/actstore/internal/tui/styles"
)

// ErrNoTerminal is returned when the TUI is launched in a non-terminal environment.
var ErrNoTerminal = errors.New("TUI requires a terminal environment")

// Page is one of the two pages of the browser.
type Page int

// Pages, in tab order.
const (
	ResultsPage Page = iota
	DownloadsPage
)

// App is the root model. It owns the header and footer and delegates the
// content area to the current page.
type App struct {
	core   *core.Core
	bridge *Bridge
	logger *log.Logger
	styles *styles.Styles
	keys   models.KeyMap

	results   *models.Results
	downloads *models.Downloads
	help      *models.Help

	page     Page
	width    int
	height   int
	status   string
	quitting bool
}

// NewApp creates the browser on top of c, which must dispatch through bridge.
// It starts the initial search so the whole catalog is listed.
func NewApp(c *core.Core, bridge *Bridge, logger *log.Logger) *App {
	styleConfig := styles.New()

	app := &App{
		core:      c,
		bridge:    bridge,
		logger:    logger,
		styles:    styleConfig,
		keys:      models.DefaultKeyMap(),
		results:   models.NewResults(styleConfig, c),
		downloads: models.NewDownloads(styleConfig, c),
		help:      models.NewHelp(styleConfig),
	}

	c.SetChangeHandler(app.refresh)
	c.OnQueryChanged("")

	return app
}

// Run starts the browser and blocks until the user quits.
func Run(ctx context.Context, c *core.Core, bridge *Bridge, logger *log.Logger) error {
	if !console.IsTTY(os.Stdout.Fd()) {
		return ErrNoTerminal
	}

	program := tea.NewProgram(
		NewApp(c, bridge, logger),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	forwardCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go bridge.Forward(forwardCtx, program.Send)

	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("TUI application failed: %w", err)
	}

	return nil
}

// Init implements the tea.Model interface.
func (a *App) Init() tea.Cmd {
	return a.results.Init()
}

// Update implements the tea.Model interface.
//
//nolint:ireturn // Bubble Tea framework requires returning tea.Model interface
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dispatchMsg:
		a.bridge.Drain()

		return a, nil
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()

		return a, nil
	case models.InstallRequestMsg:
		return a, a.install(msg)
	case tea.KeyMsg:
		return a, a.handleKey(msg)
	}

	_, cmd := a.results.Update(msg)

	return a, cmd
}

// View implements the tea.Model interface.
func (a *App) View() string {
	if a.quitting {
		return ""
	}

	header := a.renderHeader()
	footer := a.renderFooter()
	contentHeight := max(a.height-lipgloss.Height(header)-lipgloss.Height(footer), 1)

	var content string

	switch {
	case a.help.IsVisible():
		content = lipgloss.Place(a.width, contentHeight, lipgloss.Center, lipgloss.Center, a.help.View())
	case a.page == DownloadsPage:
		content = a.downloads.View()
	default:
		content = a.results.View()
	}

	content = lipgloss.NewStyle().Height(contentHeight).MaxHeight(contentHeight).Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

// CurrentPage returns the page on display.
func (a *App) CurrentPage() Page {
	return a.page
}

// Status returns the last status message.
func (a *App) Status() string {
	return a.status
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Quit):
		a.quitting = true

		return tea.Quit
	case a.help.IsVisible():
		if key.Matches(msg, a.keys.Help, a.keys.HelpAlt, a.keys.Close) {
			a.help.Hide()
		}

		return nil
	case key.Matches(msg, a.keys.Help),
		a.page == DownloadsPage && key.Matches(msg, a.keys.HelpAlt):
		a.help.Toggle()

		return nil
	case key.Matches(msg, a.keys.SwitchPage):
		a.page = (a.page + 1) % 2

		return nil
	case a.page == DownloadsPage:
		if key.Matches(msg, a.keys.Close) {
			a.page = ResultsPage

			return nil
		}

		_, cmd := a.downloads.Update(msg)

		return cmd
	}

	_, cmd := a.results.Update(msg)

	return cmd
}

func (a *App) install(msg models.InstallRequestMsg) tea.Cmd {
	handle, err := a.core.OnInstallClicked(msg.EntryID)
	if err != nil {
		a.logger.Error("install failed to start", "activity", msg.Name, "err", err)
		a.status = a.styles.ErrorText.Render("Could not install " + msg.Name)

		return nil
	}

	a.logger.Debug("install started", "activity", msg.Name, "handle", handle)
	a.status = a.styles.SuccessText.Render("Installing " + msg.Name)

	return nil
}

// refresh runs on the loop whenever the core reports a change.
func (a *App) refresh() {
	a.results.Refresh()
	a.downloads.Refresh()
}

func (a *App) resize() {
	contentHeight := max(a.height-lipgloss.Height(a.renderHeader())-lipgloss.Height(a.renderFooter()), 1)

	a.results.SetSize(a.width, contentHeight)
	a.downloads.SetSize(a.width, contentHeight)
	a.help.SetSize(a.width)
}

func (a *App) renderHeader() string {
	resultsTab, downloadsTab := a.styles.Tab, a.styles.Tab
	if a.page == ResultsPage {
		resultsTab = a.styles.ActiveTab
	} else {
		downloadsTab = a.styles.ActiveTab
	}

	downloads := "Downloads"
	if active := a.core.ActiveDownloads(); active > 0 {
		downloads = fmt.Sprintf("Downloads (%d)", active)
	}

	line := lipgloss.JoinHorizontal(lipgloss.Top,
		a.styles.Header.Render("actstore"),
		resultsTab.Render("Results"),
		downloadsTab.Render(downloads),
	)

	if a.status != "" {
		line += "  " + a.status
	}

	return line
}

func (a *App) renderFooter() string {
	bindings := a.results.Bindings()
	if a.page == DownloadsPage {
		bindings = a.downloads.Bindings()
	}

	bindings = append(bindings, a.keys.SwitchPage, a.keys.Help)
	if a.page == DownloadsPage {
		bindings = append(bindings, a.keys.HelpAlt)
	}

	bindings = append(bindings, a.keys.Quit)

	return models.RenderFooter(a.styles, a.width, bindings...)
}
