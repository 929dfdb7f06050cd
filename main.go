// taskdeck - a terminal client for the taskdeck todo and assistant backend.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/taskdeck/internal/api"
	"github.com/morganforge/taskdeck/internal/auth"
	"github.com/morganforge/taskdeck/internal/cache"
	"github.com/morganforge/taskdeck/internal/cli"
	"github.com/morganforge/taskdeck/internal/config"
	"github.com/morganforge/taskdeck/internal/model"
	"github.com/morganforge/taskdeck/internal/ui/chat"
	"github.com/morganforge/taskdeck/internal/ui/components"
	"github.com/morganforge/taskdeck/internal/ui/dashboard"
	"github.com/morganforge/taskdeck/internal/ui/login"
	"github.com/morganforge/taskdeck/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Global program reference for async callbacks (session expiry, config
// reloads) that originate outside the Bubble Tea event loop.
var (
	programRef *tea.Program
	programMu  sync.Mutex
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdLogin:
		runCommand("login", args, cli.HandleLogin)
	case cli.CmdRegister:
		runCommand("register", args, cli.HandleRegister)
	case cli.CmdLogout:
		runCommand("logout", args, cli.HandleLogout)
	case cli.CmdWhoami:
		runCommand("whoami", args, cli.HandleWhoami)
	case cli.CmdTodo:
		runCommand("todo", args, cli.HandleTodo)
	case cli.CmdAsk:
		runCommand("ask", args, cli.HandleAsk)
	case cli.CmdConversations:
		runCommand("conversations", args, cli.HandleConversations)
	case cli.CmdConfig:
		runCommand("config", args, cli.HandleConfig)
	case cli.CmdVersion:
		cli.PrintVersion()
	case cli.CmdHelp:
		cli.PrintUsage()
	}
}

// runCommand loads configuration and dispatches a one-shot CLI handler.
// Handlers return errors rather than printing them; display and exit code
// mapping happen exactly once, here.
func runCommand(name string, args cli.Args, handler func(*config.Config, cli.Args) error) {
	cfg := loadConfig()
	if err := handler(cfg, args); err != nil {
		cli.DisplayError(name, err, args.JSON)
		os.Exit(cli.ExitCodeFor(err))
	}
}

// loadConfig loads the config file, falling back to defaults when the file
// is missing or unreadable. A broken config never blocks startup.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		return config.Default()
	}
	return cfg
}

// =============================================================================
// TUI ENTRY POINT
// =============================================================================

func runTUI(args cli.Args) {
	cfg := loadConfig()
	if args.Server != "" {
		cfg.Server.BaseURL = args.Server
	}

	theme := styles.NewTheme()

	// Credential store and gateway client. Credentials live in process
	// memory only and are never written to disk.
	store := auth.NewStore()
	client := api.NewClient(cfg.Server.BaseURL).
		WithTimeout(cfg.Server.Timeout()).
		WithTokenSource(store)
	flow := auth.NewFlow(client, store)
	client.WithUnauthorizedHandler(flow)

	// Diagnostic request log, opt-in via config or TASKDECK_LOG
	var logFile *os.File
	if cfg.Log.Enabled {
		if path, err := cfg.LogPath(); err == nil {
			f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
			if err == nil {
				logFile = f
				client.WithLogger(log.New(f, "", log.LstdFlags))
			}
		}
	}
	if logFile != nil {
		defer logFile.Close()
	}

	m := NewModel(theme, cfg, client, flow)

	// A pre-issued token skips the login screen. The server remains the
	// authority on whether it is still valid; the first request bounces
	// back to login if it is not.
	if token := os.Getenv("TASKDECK_TOKEN"); token != "" {
		store.SetCredential(token, model.UserProfile{})
		m.state = StateDashboard
	}

	// Session expiry arrives from the gateway on a request goroutine, so
	// it is delivered into the event loop through the program reference.
	flow.SetExpiredFunc(func(notice string) {
		programMu.Lock()
		p := programRef
		programMu.Unlock()
		if p != nil {
			p.Send(sessionExpiredMsg{notice: notice})
		}
	})

	// Live-reload UI settings when the config file changes on disk.
	watcher, err := config.NewWatcher(func(next *config.Config) {
		programMu.Lock()
		p := programRef
		programMu.Unlock()
		if p != nil {
			p.Send(configReloadedMsg{cfg: next})
		}
	})
	if err == nil && watcher.Watch() == nil {
		defer watcher.Close()
	}

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	programMu.Lock()
	programRef = p
	programMu.Unlock()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running taskdeck: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// APPLICATION MODEL
// =============================================================================

// State represents the screen currently shown.
type State int

const (
	StateLogin State = iota
	StateDashboard
	StateChat
)

// sessionExpiredMsg is delivered when the gateway reports an unauthorized
// episode and the auth flow redirects to login.
type sessionExpiredMsg struct {
	notice string
}

// configReloadedMsg carries a freshly loaded config after a file change.
type configReloadedMsg struct {
	cfg *config.Config
}

// Model is the root Bubble Tea model. It owns the screen switch, the toast
// stack, and the shared auth flow; each screen manages its own collection.
type Model struct {
	state State

	theme *styles.Theme
	cfg   *config.Config

	client *api.Client
	flow   *auth.Flow

	login     login.Model
	dashboard dashboard.Model
	chat      chat.Model

	toasts *components.ToastManager

	width  int
	height int
}

// NewModel creates the root application model.
func NewModel(theme *styles.Theme, cfg *config.Config, client *api.Client, flow *auth.Flow) *Model {
	m := &Model{
		state:  StateLogin,
		theme:  theme,
		cfg:    cfg,
		client: client,
		flow:   flow,
		login:  login.New(theme, flow),
		toasts: components.NewToastManager(),
	}
	m.rebuildScreens()
	return m
}

// rebuildScreens creates fresh dashboard and chat screens with empty
// collections. Called at startup and again on logout, so nothing from a
// previous session leaks into the next one.
func (m *Model) rebuildScreens() {
	host := serverHost(m.client.BaseURL())

	m.dashboard = dashboard.New(m.theme, m.client, cache.NewTodoCache())
	m.dashboard.SetFilter(model.Filter(m.cfg.UI.DefaultFilter))
	m.dashboard.SetServerHost(host)

	m.chat = chat.New(m.theme, m.client, cache.NewConversationCache())
	m.chat.SetOptions(m.cfg.UI.Markdown, m.cfg.UI.ShowToolCalls)
	m.chat.SetServerHost(host)

	if m.width > 0 {
		m.dashboard.SetSize(m.width, m.height)
		m.chat.SetSize(m.width, m.height)
	}
}

// Init starts the toast ticker and either the login cursor blink or, when a
// token was adopted from the environment, the initial collection loads.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{components.ToastTickCmd()}
	if m.state == StateLogin {
		cmds = append(cmds, m.login.Init())
	} else {
		cmds = append(cmds, m.dashboard.Refresh(), m.chat.Refresh())
	}
	return tea.Batch(cmds...)
}

// Update routes messages between the root concerns and the active screen.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.theme.SetSize(msg.Width, msg.Height)
		m.login.SetSize(msg.Width, msg.Height)
		m.dashboard.SetSize(msg.Width, msg.Height)
		m.chat.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case login.AuthenticatedMsg:
		return m.handleAuthenticated(msg)

	case dashboard.SwitchToChatMsg:
		m.state = StateChat
		return m, nil

	case chat.SwitchToDashboardMsg:
		m.state = StateDashboard
		return m, nil

	case dashboard.LogoutMsg:
		return m.logout()

	case chat.LogoutMsg:
		return m.logout()

	case sessionExpiredMsg:
		m.resetToLogin(msg.notice)
		return m, m.login.Init()

	case configReloadedMsg:
		m.cfg = msg.cfg
		m.chat.SetOptions(m.cfg.UI.Markdown, m.cfg.UI.ShowToolCalls)
		m.toasts.AddStatus("Configuration reloaded")
		return m, nil

	case components.ToastAddMsg:
		m.addToast(msg)
		return m, nil

	case components.ToastDismissMsg:
		m.toasts.RemoveToast(msg.ID)
		return m, nil

	case components.ToastTickMsg:
		m.toasts.TickToasts()
		return m, components.ToastTickCmd()
	}

	// Async results are routed to every screen. Each screen ignores what
	// it did not ask for, and results still land when they arrive after
	// the user has switched away.
	return m, m.forwardToAll(msg)
}

// handleKey dispatches keyboard input.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	if keyStr == "ctrl+c" {
		return m, tea.Quit
	}

	// Dismiss the oldest visible toast. Handled before screen input so it
	// works everywhere, matching the hint rendered on the toast itself.
	if keyStr == "x" && m.toasts.HasToasts() {
		toasts := m.toasts.GetToasts()
		m.toasts.RemoveToast(toasts[len(toasts)-1].ID)
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case StateLogin:
		m.login, cmd = m.login.Update(msg)
	case StateDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	case StateChat:
		m.chat, cmd = m.chat.Update(msg)
	}
	return m, cmd
}

// forwardToAll delivers a message to every screen and batches the commands.
func (m *Model) forwardToAll(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.login, cmd = m.login.Update(msg)
	cmds = append(cmds, cmd)
	m.dashboard, cmd = m.dashboard.Update(msg)
	cmds = append(cmds, cmd)
	m.chat, cmd = m.chat.Update(msg)
	cmds = append(cmds, cmd)

	return tea.Batch(cmds...)
}

// handleAuthenticated switches to the dashboard and loads both collections.
func (m *Model) handleAuthenticated(msg login.AuthenticatedMsg) (tea.Model, tea.Cmd) {
	m.state = StateDashboard
	m.dashboard.SetUser(msg.Profile.Email)
	m.chat.SetUser(msg.Profile.Email)
	m.toasts.AddSuccess("Signed in as " + msg.Profile.Email)
	return m, tea.Batch(m.dashboard.Refresh(), m.chat.Refresh())
}

// logout discards the credential and returns to a clean login screen.
func (m *Model) logout() (tea.Model, tea.Cmd) {
	m.flow.Logout()
	m.resetToLogin("")
	m.toasts.AddStatus("Signed out")
	return m, m.login.Init()
}

// resetToLogin tears down both screens, shows the login form with an
// optional notice, and reopens the redirect guard for the next expiry.
func (m *Model) resetToLogin(notice string) {
	m.rebuildScreens()
	m.state = StateLogin
	m.login.Reset()
	m.login.SetNotice(notice)
	m.flow.ResetRedirect()
}

func (m *Model) addToast(msg components.ToastAddMsg) {
	switch msg.Kind {
	case components.ToastKindError:
		m.toasts.AddError(msg.Message)
	case components.ToastKindWarning:
		m.toasts.AddWarning(msg.Message)
	case components.ToastKindSuccess:
		m.toasts.AddSuccess(msg.Message)
	default:
		m.toasts.AddStatus(msg.Message)
	}
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the active screen with the toast stack layered on top.
func (m *Model) View() string {
	var base string
	switch m.state {
	case StateLogin:
		base = m.login.View()
	case StateDashboard:
		base = m.dashboard.View()
	case StateChat:
		base = m.chat.View()
	}

	if m.toasts.HasToasts() {
		return m.overlayToasts(base, m.renderToastStack())
	}
	return base
}

// renderToastStack renders the toast stack as a compact block, newest at
// the top, without padding it out to the full screen.
func (m *Model) renderToastStack() string {
	toasts := m.toasts.GetToasts()
	rendered := make([]string, 0, len(toasts))
	for _, toast := range toasts {
		rendered = append(rendered, components.RenderToast(toast, m.width))
	}
	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}

// overlayToasts merges the toast block into the bottom-right corner of the
// base view without blocking interaction with the screen underneath.
func (m *Model) overlayToasts(baseView, toastView string) string {
	baseLines := strings.Split(baseView, "\n")
	toastLines := strings.Split(toastView, "\n")

	toastHeight := len(toastLines)

	// Leave room for the status bar below the stack
	startRow := m.height - toastHeight - 2
	if startRow < 0 {
		startRow = 0
	}

	result := make([]string, len(baseLines))
	for i, baseLine := range baseLines {
		toastLineIdx := i - startRow
		if toastLineIdx < 0 || toastLineIdx >= len(toastLines) {
			result[i] = baseLine
			continue
		}

		toastLine := toastLines[toastLineIdx]
		toastLineWidth := lipgloss.Width(toastLine)
		if toastLineWidth == 0 {
			result[i] = baseLine
			continue
		}

		avail := m.width - toastLineWidth - 1
		if avail < 0 {
			avail = 0
		}

		baseWidth := lipgloss.Width(baseLine)
		if baseWidth > avail {
			baseLine = truncateToWidth(baseLine, avail)
			baseWidth = lipgloss.Width(baseLine)
		}
		if baseWidth < avail {
			baseLine += strings.Repeat(" ", avail-baseWidth)
		}

		result[i] = baseLine + toastLine
	}

	return strings.Join(result, "\n")
}

// truncateToWidth truncates a string to fit within a given visible width.
func truncateToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}

	currentWidth := 0
	var result strings.Builder

	for _, r := range s {
		runeWidth := lipgloss.Width(string(r))
		if currentWidth+runeWidth > width {
			break
		}
		result.WriteRune(r)
		currentWidth += runeWidth
	}

	return result.String()
}

// serverHost extracts the host shown in screen status bars.
func serverHost(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return baseURL
	}
	return u.Host
}
