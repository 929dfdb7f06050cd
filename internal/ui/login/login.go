// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package login provides the sign-in and sign-up screen for the TUI.
package login

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/taskdeck/internal/api"
	"github.com/morganforge/taskdeck/internal/auth"
	"github.com/morganforge/taskdeck/internal/model"
	"github.com/morganforge/taskdeck/internal/ui/components"
	"github.com/morganforge/taskdeck/internal/ui/styles"
)

// =============================================================================
// FORM MODE
// =============================================================================

// Mode selects between the sign-in and sign-up variants of the form.
type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
)

// Field indices within the form.
const (
	fieldEmail = iota
	fieldPassword
	fieldConfirm // sign-up only
)

// ErrPasswordMismatch indicates the confirm field does not match.
var ErrPasswordMismatch = errors.New("passwords do not match")

// =============================================================================
// MESSAGES
// =============================================================================

// AuthenticatedMsg is emitted when a login or registration succeeds.
// The root model switches to the dashboard on receipt.
type AuthenticatedMsg struct {
	Profile model.UserProfile
}

// submitResultMsg carries the outcome of an async login/register request.
type submitResultMsg struct {
	Seq     int
	Profile model.UserProfile
	Err     error
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the login screen.
type Model struct {
	theme *styles.Theme
	flow  *auth.Flow

	mode    Mode
	inputs  []textinput.Model
	focus   int
	spinner components.Spinner

	submitting bool
	seq        int // Discards results of superseded submissions

	errText string // Validation or request failure shown in the form
	notice  string // Expiry notice carried over from a redirect

	width  int
	height int
}

// New creates the login screen model.
func New(theme *styles.Theme, flow *auth.Flow) Model {
	email := textinput.New()
	email.Prompt = "> "
	email.Placeholder = "you@example.com"
	email.CharLimit = 254
	email.Focus()

	password := textinput.New()
	password.Prompt = "> "
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'
	password.CharLimit = 128

	confirm := textinput.New()
	confirm.Prompt = "> "
	confirm.Placeholder = "confirm password"
	confirm.EchoMode = textinput.EchoPassword
	confirm.EchoCharacter = '*'
	confirm.CharLimit = 128

	return Model{
		theme:   theme,
		flow:    flow,
		mode:    ModeLogin,
		inputs:  []textinput.Model{email, password, confirm},
		spinner: components.NewSpinner(theme),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize updates the screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetNotice shows a one-line notice above the form. Used for the
// session-expired and login-required redirects.
func (m *Model) SetNotice(notice string) {
	m.notice = notice
}

// Reset clears the password fields and errors, keeping the email so a
// re-login after expiry only needs the password typed again.
func (m *Model) Reset() {
	m.inputs[fieldPassword].SetValue("")
	m.inputs[fieldConfirm].SetValue("")
	m.errText = ""
	m.submitting = false
	m.seq++
	m.focusField(fieldEmail)
}

// fieldCount returns the number of visible fields for the current mode.
func (m *Model) fieldCount() int {
	if m.mode == ModeRegister {
		return 3
	}
	return 2
}

// focusField moves focus to the given field.
func (m *Model) focusField(idx int) {
	m.focus = idx
	for i := range m.inputs {
		if i == idx {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

// toggleMode switches between sign-in and sign-up.
func (m *Model) toggleMode() {
	if m.mode == ModeLogin {
		m.mode = ModeRegister
	} else {
		m.mode = ModeLogin
	}
	m.errText = ""
	m.inputs[fieldConfirm].SetValue("")
	if m.focus >= m.fieldCount() {
		m.focusField(m.fieldCount() - 1)
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages for the login screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case submitResultMsg:
		if msg.Seq != m.seq {
			return m, nil // Superseded submission; drop
		}
		m.submitting = false
		m.spinner.Stop()
		if msg.Err != nil {
			m.errText = errorText(msg.Err)
			return m, nil
		}
		m.notice = ""
		profile := msg.Profile
		return m, func() tea.Msg { return AuthenticatedMsg{Profile: profile} }
	}

	// Spinner ticks and blink messages
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	cmds = append(cmds, cmd)
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.submitting {
		// Form is locked while the request is in flight
		return m, nil
	}

	switch msg.String() {
	case "tab", "down":
		m.focusField((m.focus + 1) % m.fieldCount())
		return m, nil

	case "shift+tab", "up":
		m.focusField((m.focus - 1 + m.fieldCount()) % m.fieldCount())
		return m, nil

	case "ctrl+t":
		m.toggleMode()
		return m, nil

	case "enter":
		return m.submit()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// submit validates the form locally and fires the async request.
// Local failures never reach the network.
func (m Model) submit() (Model, tea.Cmd) {
	creds := model.Credentials{
		Email:    strings.TrimSpace(m.inputs[fieldEmail].Value()),
		Password: m.inputs[fieldPassword].Value(),
	}

	var err error
	if m.mode == ModeRegister {
		err = creds.ValidateForRegister()
		if err == nil && m.inputs[fieldConfirm].Value() != creds.Password {
			err = ErrPasswordMismatch
		}
	} else {
		err = creds.Validate()
	}
	if err != nil {
		m.errText = err.Error()
		return m, nil
	}

	m.errText = ""
	m.submitting = true
	m.seq++

	flow := m.flow
	mode := m.mode
	seq := m.seq
	submitCmd := func() tea.Msg {
		var profile model.UserProfile
		var submitErr error
		if mode == ModeRegister {
			profile, submitErr = flow.Register(context.Background(), creds)
		} else {
			profile, submitErr = flow.Login(context.Background(), creds)
		}
		return submitResultMsg{Seq: seq, Profile: profile, Err: submitErr}
	}

	return m, tea.Batch(m.spinner.Start(), submitCmd)
}

// errorText maps a submission failure to the line shown in the form.
func errorText(err error) string {
	if errors.Is(err, api.ErrInvalidCredentials) {
		return "Invalid email or password"
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		if apiErr.Kind == api.KindValidation {
			return apiErr.Message
		}
		return apiErr.UserMessage()
	}
	return err.Error()
}
