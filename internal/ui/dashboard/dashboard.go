// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dashboard provides the todo list screen for the TUI.
package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/taskdeck/internal/api"
	"github.com/morganforge/taskdeck/internal/cache"
	"github.com/morganforge/taskdeck/internal/model"
	"github.com/morganforge/taskdeck/internal/ui/components"
	"github.com/morganforge/taskdeck/internal/ui/styles"
)

// =============================================================================
// SCREEN STATE
// =============================================================================

// State represents what the dashboard is currently showing.
type State int

const (
	StateList State = iota // Browsing the todo list
	StateForm              // Add or edit form is open
)

// Form field indices.
const (
	formTitle = iota
	formDescription
)

// =============================================================================
// MESSAGES
// =============================================================================

// SwitchToChatMsg asks the root model to show the chat screen.
type SwitchToChatMsg struct{}

// LogoutMsg asks the root model to log out and show the login screen.
type LogoutMsg struct{}

// todosLoadedMsg carries the result of a list fetch.
type todosLoadedMsg struct {
	Seq  int
	List *model.TodoList
	Err  error
}

// todoSavedMsg carries the result of a create or update.
type todoSavedMsg struct {
	Seq     int
	Todo    *model.Todo
	Created bool
	Err     error
}

// todoToggledMsg carries the result of a completion toggle.
type todoToggledMsg struct {
	Todo *model.Todo
	Err  error
}

// todoDeletedMsg carries the result of a delete.
type todoDeletedMsg struct {
	ID  int
	Err error
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the dashboard screen.
type Model struct {
	theme  *styles.Theme
	client *api.Client
	todos  *cache.TodoCache

	state  State
	cursor int
	filter model.Filter

	// Form state. editID is 0 for the add form, else the id being edited.
	editID     int
	formFocus  int
	titleInput textinput.Model
	descInput  textinput.Model
	formError  string

	statusBar *components.StatusBar
	spinner   components.Spinner

	loading bool
	seq     int // Discards results of superseded requests

	width  int
	height int
}

// New creates the dashboard model.
func New(theme *styles.Theme, client *api.Client, todos *cache.TodoCache) Model {
	title := textinput.New()
	title.Prompt = "> "
	title.Placeholder = "What needs doing?"
	title.CharLimit = model.MaxTitleLength

	desc := textinput.New()
	desc.Prompt = "> "
	desc.Placeholder = "Details (optional)"
	desc.CharLimit = 1000

	bar := components.NewStatusBar(theme)
	bar.ScreenName = "Todos"

	return Model{
		theme:      theme,
		client:     client,
		todos:      todos,
		filter:     model.FilterAll,
		titleInput: title,
		descInput:  desc,
		statusBar:  bar,
		spinner:    components.NewSpinner(theme),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetSize updates the screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.statusBar.SetWidth(width)
}

// SetUser sets the logged-in user shown in the status bar.
func (m *Model) SetUser(email string) {
	m.statusBar.SetUser(email)
}

// SetServerHost sets the server shown in the status bar.
func (m *Model) SetServerHost(host string) {
	m.statusBar.ServerHost = host
}

// SetFilter sets the active completion filter. Unknown values fall back
// to showing everything.
func (m *Model) SetFilter(f model.Filter) {
	switch f {
	case model.FilterAll, model.FilterPending, model.FilterCompleted:
		m.filter = f
	default:
		m.filter = model.FilterAll
	}
	m.clampCursor()
}

// Visible returns the todos passing the current filter.
func (m *Model) Visible() []model.Todo {
	return m.todos.Filtered(m.filter)
}

// Refresh starts a reload of the todo collection.
func (m *Model) Refresh() tea.Cmd {
	m.seq++
	m.loading = true
	m.statusBar.SetStatus(components.StatusLoading)
	return tea.Batch(m.spinner.Start(), loadTodosCmd(m.client, m.seq))
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages for the dashboard screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.state == StateForm {
			return m.handleFormKey(msg)
		}
		return m.handleListKey(msg)

	case todosLoadedMsg:
		return m.handleTodosLoaded(msg)

	case todoSavedMsg:
		return m.handleTodoSaved(msg)

	case todoToggledMsg:
		return m.handleTodoToggled(msg)

	case todoDeletedMsg:
		return m.handleTodoDeleted(msg)
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	cmds = append(cmds, cmd)
	if m.state == StateForm {
		m = m.updateFormInputs(msg, &cmds)
	}
	return m, tea.Batch(cmds...)
}

// handleListKey processes keys while browsing the list.
func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	visible := m.Visible()

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(visible)-1 {
			m.cursor++
		}
		return m, nil

	case "g", "home":
		m.cursor = 0
		return m, nil

	case "G", "end":
		if len(visible) > 0 {
			m.cursor = len(visible) - 1
		}
		return m, nil

	case "f":
		m.filter = m.filter.Next()
		m.clampCursor()
		return m, nil

	case "1":
		m.filter = model.FilterAll
		m.clampCursor()
		return m, nil

	case "2":
		m.filter = model.FilterPending
		m.clampCursor()
		return m, nil

	case "3":
		m.filter = model.FilterCompleted
		m.clampCursor()
		return m, nil

	case "a":
		return m.openForm(0)

	case "e":
		if m.cursor < len(visible) {
			return m.openForm(visible[m.cursor].ID)
		}
		return m, nil

	case " ", "enter":
		if m.cursor < len(visible) {
			return m.toggleTodo(visible[m.cursor])
		}
		return m, nil

	case "d", "delete":
		if m.cursor < len(visible) {
			return m.deleteTodo(visible[m.cursor].ID)
		}
		return m, nil

	case "r":
		cmd := m.Refresh()
		return m, cmd

	case "tab":
		return m, func() tea.Msg { return SwitchToChatMsg{} }

	case "ctrl+g":
		return m, func() tea.Msg { return LogoutMsg{} }
	}

	return m, nil
}

// handleFormKey processes keys while the add/edit form is open.
func (m Model) handleFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeForm()
		return m, nil

	case "tab", "down":
		m.focusFormField((m.formFocus + 1) % 2)
		return m, nil

	case "shift+tab", "up":
		m.focusFormField((m.formFocus + 1) % 2)
		return m, nil

	case "enter":
		return m.submitForm()
	}

	var cmds []tea.Cmd
	m = m.updateFormInputs(msg, &cmds)
	return m, tea.Batch(cmds...)
}

// updateFormInputs forwards a message to the focused form input.
func (m Model) updateFormInputs(msg tea.Msg, cmds *[]tea.Cmd) Model {
	var cmd tea.Cmd
	if m.formFocus == formTitle {
		m.titleInput, cmd = m.titleInput.Update(msg)
	} else {
		m.descInput, cmd = m.descInput.Update(msg)
	}
	*cmds = append(*cmds, cmd)
	return m
}

// openForm opens the add form (id 0) or the edit form prefilled from the
// cached todo.
func (m Model) openForm(id int) (Model, tea.Cmd) {
	m.state = StateForm
	m.editID = id
	m.formError = ""

	if id != 0 {
		if todo, ok := m.todos.Get(id); ok {
			m.titleInput.SetValue(todo.Title)
			m.descInput.SetValue(todo.Description)
		}
	} else {
		m.titleInput.SetValue("")
		m.descInput.SetValue("")
	}

	m.focusFormField(formTitle)
	return m, textinput.Blink
}

// closeForm returns to the list without saving.
func (m *Model) closeForm() {
	m.state = StateList
	m.editID = 0
	m.formError = ""
	m.titleInput.Blur()
	m.descInput.Blur()
}

// focusFormField moves form focus.
func (m *Model) focusFormField(idx int) {
	m.formFocus = idx
	if idx == formTitle {
		m.titleInput.Focus()
		m.descInput.Blur()
	} else {
		m.descInput.Focus()
		m.titleInput.Blur()
	}
}

// submitForm validates and fires the create or update request.
func (m Model) submitForm() (Model, tea.Cmd) {
	in := model.TodoInput{
		Title:       m.titleInput.Value(),
		Description: m.descInput.Value(),
	}
	if err := in.Validate(); err != nil {
		m.formError = err.Error()
		return m, nil
	}
	in.Normalize()

	m.seq++
	m.loading = true
	m.statusBar.SetStatus(components.StatusLoading)

	var cmd tea.Cmd
	if m.editID == 0 {
		cmd = createTodoCmd(m.client, in, m.seq)
	} else {
		cmd = updateTodoCmd(m.client, m.editID, in, m.seq)
	}
	return m, tea.Batch(m.spinner.Start(), cmd)
}

// toggleTodo flips completion on the selected todo. The seq bump retires
// any in-flight collection load whose snapshot predates the mutation.
func (m Model) toggleTodo(todo model.Todo) (Model, tea.Cmd) {
	m.seq++
	m.statusBar.SetStatus(components.StatusLoading)
	return m, toggleTodoCmd(m.client, todo.ID, !todo.IsCompleted)
}

// deleteTodo removes the selected todo.
func (m Model) deleteTodo(id int) (Model, tea.Cmd) {
	m.seq++
	m.statusBar.SetStatus(components.StatusLoading)
	return m, deleteTodoCmd(m.client, id)
}

// =============================================================================
// RESULT HANDLERS
// =============================================================================

func (m Model) handleTodosLoaded(msg todosLoadedMsg) (Model, tea.Cmd) {
	if msg.Seq != m.seq {
		return m, nil // Superseded request; drop
	}
	m.loading = false
	m.spinner.Stop()

	if msg.Err != nil {
		m.todos.ResetFailed()
		m.statusBar.SetStatus(components.StatusError)
		m.statusBar.SetConnected(!isNetworkDown(msg.Err))
		return m, toastError(msg.Err)
	}

	m.todos.Reset(msg.List.Todos)
	m.statusBar.SetStatus(components.StatusReady)
	m.statusBar.SetConnected(true)
	m.clampCursor()
	return m, nil
}

// Mutation results are never dropped: every confirmed save, toggle, and
// delete folds into the cache in arrival order, and every failure surfaces
// exactly once. The seq guard applies only to full-collection loads, where
// a superseded snapshot would clobber newer state. For mutations the cache
// is last-write-wins by arrival, matching the server.

func (m Model) handleTodoSaved(msg todoSavedMsg) (Model, tea.Cmd) {
	if msg.Seq == m.seq {
		m.loading = false
		m.spinner.Stop()
	}

	if msg.Err != nil {
		m.statusBar.SetStatus(components.StatusError)
		if m.state == StateForm {
			m.formError = api.UserMessageFor(msg.Err)
		}
		return m, toastError(msg.Err)
	}

	m.todos.Upsert(*msg.Todo)
	if msg.Seq == m.seq {
		m.closeForm()
	}
	m.statusBar.SetStatus(components.StatusReady)
	m.statusBar.SetConnected(true)

	note := "Todo updated"
	if msg.Created {
		note = "Todo added"
	}
	return m, toastSuccess(note)
}

func (m Model) handleTodoToggled(msg todoToggledMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		m.statusBar.SetStatus(components.StatusError)
		return m, toastError(msg.Err)
	}
	m.todos.Upsert(*msg.Todo)
	m.statusBar.SetStatus(components.StatusReady)
	m.statusBar.SetConnected(true)
	return m, nil
}

func (m Model) handleTodoDeleted(msg todoDeletedMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		m.statusBar.SetStatus(components.StatusError)
		return m, toastError(msg.Err)
	}

	m.todos.Remove(msg.ID)

	// Deleting the todo that is open in the edit form resets the form,
	// otherwise a save would recreate a deleted item.
	if m.state == StateForm && m.editID == msg.ID {
		m.closeForm()
	}

	m.clampCursor()
	m.statusBar.SetStatus(components.StatusReady)
	m.statusBar.SetConnected(true)
	return m, toastSuccess("Todo deleted")
}

// clampCursor keeps the cursor inside the visible list.
func (m *Model) clampCursor() {
	visible := m.todos.Filtered(m.filter)
	if m.cursor >= len(visible) {
		m.cursor = len(visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// statsDetail renders the status bar detail segment.
func (m *Model) statsDetail() string {
	stats := m.todos.Stats()
	return fmt.Sprintf("%s · %d/%d done", strings.ToLower(string(m.filter)), stats.Completed, stats.Total)
}

// isNetworkDown reports whether the failure means the server is unreachable.
func isNetworkDown(err error) bool {
	switch api.KindOf(err) {
	case api.KindNetworkError, api.KindTimeout:
		return true
	}
	return false
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
