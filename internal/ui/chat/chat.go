// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the assistant chat screen for the TUI.
package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/morganforge/taskdeck/internal/api"
	"github.com/morganforge/taskdeck/internal/cache"
	"github.com/morganforge/taskdeck/internal/model"
	"github.com/morganforge/taskdeck/internal/ui/components"
	"github.com/morganforge/taskdeck/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// SwitchToDashboardMsg asks the root model to show the todo screen.
type SwitchToDashboardMsg struct{}

// LogoutMsg asks the root model to log out and show the login screen.
type LogoutMsg struct{}

// exchangeResultMsg carries the outcome of a sent chat message.
type exchangeResultMsg struct {
	Seq  int
	Resp *model.ChatResponse
	Err  error
}

// conversationsLoadedMsg carries the conversation list.
type conversationsLoadedMsg struct {
	Seq  int
	List *model.ConversationList
	Err  error
}

// conversationOpenedMsg carries a full conversation with its transcript.
type conversationOpenedMsg struct {
	Seq  int
	Conv *model.Conversation
	Err  error
}

// conversationDeletedMsg carries the outcome of a conversation delete.
type conversationDeletedMsg struct {
	ID  int
	Err error
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat screen.
type Model struct {
	theme  *styles.Theme
	client *api.Client
	convs  *cache.ConversationCache

	viewport viewport.Model
	input    textarea.Model
	spinner  components.Spinner

	statusBar *components.StatusBar

	// Assistant replies render through glamour when markdown is enabled.
	// The renderer is rebuilt on resize; nil means plain text.
	renderer        *glamour.TermRenderer
	markdownEnabled bool
	showToolCalls   bool

	// Conversation sidebar
	showSidebar   bool
	sidebarCursor int

	thinking bool
	seq      int // Discards results of superseded requests

	width  int
	height int
}

// New creates the chat screen model.
func New(theme *styles.Theme, client *api.Client, convs *cache.ConversationCache) Model {
	input := textarea.New()
	input.Placeholder = "Ask the assistant..."
	input.CharLimit = 4096
	input.SetHeight(3)
	input.ShowLineNumbers = false
	input.Focus()

	vp := viewport.New(80, 20)

	bar := components.NewStatusBar(theme)
	bar.ScreenName = "Chat"

	return Model{
		theme:           theme,
		client:          client,
		convs:           convs,
		viewport:        vp,
		input:           input,
		spinner:         components.NewThinkingSpinner(theme),
		statusBar:       bar,
		markdownEnabled: true,
		showToolCalls:   true,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// SetSize updates the screen dimensions and rebuilds the renderer.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.statusBar.SetWidth(width)

	inputHeight := m.input.Height() + 2
	chromeHeight := 2 // header + status bar
	vpHeight := height - inputHeight - chromeHeight - 2
	if vpHeight < 3 {
		vpHeight = 3
	}
	m.viewport.Width = width
	m.viewport.Height = vpHeight
	m.input.SetWidth(width - 2)

	if m.markdownEnabled {
		wrap := width - 12
		if wrap < 20 {
			wrap = 20
		}
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wrap),
		)
		if err == nil {
			m.renderer = renderer
		}
	}

	m.refreshViewport()
}

// SetUser sets the logged-in user shown in the status bar.
func (m *Model) SetUser(email string) {
	m.statusBar.SetUser(email)
}

// SetServerHost sets the server shown in the status bar.
func (m *Model) SetServerHost(host string) {
	m.statusBar.ServerHost = host
}

// SetOptions applies UI preferences.
func (m *Model) SetOptions(markdown, showToolCalls bool) {
	m.markdownEnabled = markdown
	m.showToolCalls = showToolCalls
	if !markdown {
		m.renderer = nil
	}
}

// Refresh starts a reload of the conversation list.
func (m *Model) Refresh() tea.Cmd {
	m.seq++
	m.statusBar.SetStatus(components.StatusLoading)
	return loadConversationsCmd(m.client, m.seq)
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages for the chat screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case exchangeResultMsg:
		return m.handleExchangeResult(msg)

	case conversationsLoadedMsg:
		return m.handleConversationsLoaded(msg)

	case conversationOpenedMsg:
		return m.handleConversationOpened(msg)

	case conversationDeletedMsg:
		return m.handleConversationDeleted(msg)
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	cmds = append(cmds, cmd)
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.showSidebar {
		return m.handleSidebarKey(msg)
	}

	switch msg.String() {
	case "enter":
		return m.send()

	case "ctrl+j":
		// Insert a newline into the multi-line input
		m.input.InsertString("\n")
		return m, nil

	case "ctrl+n":
		m.convs.StartNew()
		m.refreshViewport()
		return m, nil

	case "ctrl+s":
		m.showSidebar = true
		m.sidebarCursor = 0
		return m, m.Refresh()

	case "pgup":
		m.viewport.HalfViewUp()
		return m, nil

	case "pgdown":
		m.viewport.HalfViewDown()
		return m, nil

	case "tab":
		return m, func() tea.Msg { return SwitchToDashboardMsg{} }

	case "ctrl+g":
		return m, func() tea.Msg { return LogoutMsg{} }
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleSidebarKey processes keys while the conversation sidebar is open.
func (m Model) handleSidebarKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	list := m.convs.List()

	switch msg.String() {
	case "esc", "ctrl+s":
		m.showSidebar = false
		return m, nil

	case "up", "k":
		if m.sidebarCursor > 0 {
			m.sidebarCursor--
		}
		return m, nil

	case "down", "j":
		if m.sidebarCursor < len(list)-1 {
			m.sidebarCursor++
		}
		return m, nil

	case "enter":
		if m.sidebarCursor < len(list) {
			m.seq++
			m.showSidebar = false
			m.statusBar.SetStatus(components.StatusLoading)
			return m, openConversationCmd(m.client, list[m.sidebarCursor].ID, m.seq)
		}
		return m, nil

	case "d", "delete":
		if m.sidebarCursor < len(list) {
			// Retire any in-flight list snapshot that still has the
			// conversation.
			m.seq++
			return m, deleteConversationCmd(m.client, list[m.sidebarCursor].ID)
		}
		return m, nil

	case "ctrl+g":
		return m, func() tea.Msg { return LogoutMsg{} }
	}

	return m, nil
}

// send fires the typed message at the assistant.
func (m Model) send() (Model, tea.Cmd) {
	if m.thinking {
		return m, nil // One exchange at a time
	}
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}

	m.input.Reset()
	m.thinking = true
	m.seq++
	m.statusBar.SetStatus(components.StatusThinking)

	convID := m.convs.ActiveID()
	return m, tea.Batch(
		m.spinner.Start(),
		sendMessageCmd(m.client, text, convID, m.seq),
	)
}

// =============================================================================
// RESULT HANDLERS
// =============================================================================

func (m Model) handleExchangeResult(msg exchangeResultMsg) (Model, tea.Cmd) {
	if msg.Seq != m.seq {
		return m, nil // Superseded request; drop
	}
	m.thinking = false
	m.spinner.Stop()

	if msg.Err != nil {
		m.statusBar.SetStatus(components.StatusError)
		return m, toastError(msg.Err)
	}

	m.convs.AppendExchange(*msg.Resp)
	m.statusBar.SetStatus(components.StatusReady)
	m.statusBar.SetConnected(true)
	m.refreshViewport()
	return m, nil
}

func (m Model) handleConversationsLoaded(msg conversationsLoadedMsg) (Model, tea.Cmd) {
	if msg.Seq != m.seq {
		return m, nil
	}
	if msg.Err != nil {
		m.statusBar.SetStatus(components.StatusError)
		m.showSidebar = false
		return m, toastError(msg.Err)
	}
	m.convs.ResetList(msg.List.Conversations)
	m.statusBar.SetStatus(components.StatusReady)
	m.statusBar.SetConnected(true)
	if m.sidebarCursor >= len(msg.List.Conversations) {
		m.sidebarCursor = 0
	}
	return m, nil
}

func (m Model) handleConversationOpened(msg conversationOpenedMsg) (Model, tea.Cmd) {
	if msg.Seq != m.seq {
		return m, nil
	}
	if msg.Err != nil {
		m.statusBar.SetStatus(components.StatusError)
		return m, toastError(msg.Err)
	}
	m.convs.Open(*msg.Conv)
	m.statusBar.SetStatus(components.StatusReady)
	m.refreshViewport()
	return m, nil
}

// Confirmed deletes always fold in; RemoveConversation is idempotent, so
// arrival order does not matter. Only list and transcript loads carry a
// seq guard against superseded snapshots.
func (m Model) handleConversationDeleted(msg conversationDeletedMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		return m, toastError(msg.Err)
	}
	m.convs.RemoveConversation(msg.ID)
	list := m.convs.List()
	if m.sidebarCursor >= len(list) && m.sidebarCursor > 0 {
		m.sidebarCursor--
	}
	m.refreshViewport()
	return m, toastSuccess("Conversation deleted")
}

// toastError wraps an error into a toast request for the root model.
func toastError(err error) tea.Cmd {
	message := api.UserMessageFor(err)
	return func() tea.Msg {
		return components.ToastAddMsg{Message: message, Kind: components.ToastKindError}
	}
}

// toastSuccess wraps a confirmation into a toast request.
func toastSuccess(message string) tea.Cmd {
	return func() tea.Msg {
		return components.ToastAddMsg{Message: message, Kind: components.ToastKindSuccess}
	}
}
