// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package login

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/taskdeck/internal/auth"
	"github.com/morganforge/taskdeck/internal/model"
	"github.com/morganforge/taskdeck/internal/ui/styles"
)

func newTestModel() Model {
	flow := auth.NewFlow(nil, auth.NewStore())
	return New(styles.NewTheme(), flow)
}

func typeInto(m Model, field int, text string) Model {
	m.focusField(field)
	for _, r := range text {
		m2, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = m2
	}
	return m
}

func TestSubmitEmptyFormShowsValidationError(t *testing.T) {
	m := newTestModel()

	m2, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m2.errText == "" {
		t.Fatal("expected validation error for empty form")
	}
	if m2.submitting {
		t.Error("local validation failure must not start a request")
	}
}

func TestRegisterRejectsMismatchedConfirm(t *testing.T) {
	m := newTestModel()
	m.toggleMode()
	if m.mode != ModeRegister {
		t.Fatal("toggleMode should switch to register")
	}

	m = typeInto(m, fieldEmail, "alice@example.com")
	m = typeInto(m, fieldPassword, "password123")
	m = typeInto(m, fieldConfirm, "password456")

	m2, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m2.errText != ErrPasswordMismatch.Error() {
		t.Errorf("errText = %q, want %q", m2.errText, ErrPasswordMismatch.Error())
	}
	if m2.submitting {
		t.Error("mismatched confirm must not start a request")
	}
}

func TestRegisterEnforcesPasswordLength(t *testing.T) {
	m := newTestModel()
	m.toggleMode()

	m = typeInto(m, fieldEmail, "alice@example.com")
	m = typeInto(m, fieldPassword, "short")
	m = typeInto(m, fieldConfirm, "short")

	m2, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m2.errText == "" {
		t.Error("expected short-password validation error")
	}
}

func TestStaleSubmitResultIsDropped(t *testing.T) {
	m := newTestModel()
	m.seq = 5
	m.submitting = true

	m2, cmd := m.Update(submitResultMsg{Seq: 4, Profile: model.UserProfile{ID: 1}})
	if !m2.submitting {
		t.Error("stale result must not clear the in-flight state")
	}
	if cmd != nil {
		t.Error("stale result must not emit any message")
	}
}

func TestSubmitResultEmitsAuthenticatedMsg(t *testing.T) {
	m := newTestModel()
	m.seq = 3
	m.submitting = true
	m.notice = "Your session has expired. Please log in again."

	profile := model.UserProfile{ID: 7, Email: "alice@example.com"}
	m2, cmd := m.Update(submitResultMsg{Seq: 3, Profile: profile})
	if m2.submitting {
		t.Error("matching result should clear the in-flight state")
	}
	if m2.notice != "" {
		t.Error("success should clear the expiry notice")
	}
	if cmd == nil {
		t.Fatal("expected AuthenticatedMsg command")
	}
	msg, ok := cmd().(AuthenticatedMsg)
	if !ok {
		t.Fatalf("got %T, want AuthenticatedMsg", cmd())
	}
	if msg.Profile != profile {
		t.Errorf("profile = %+v, want %+v", msg.Profile, profile)
	}
}

func TestResetKeepsEmailClearsPasswords(t *testing.T) {
	m := newTestModel()
	m = typeInto(m, fieldEmail, "alice@example.com")
	m = typeInto(m, fieldPassword, "password123")
	m.errText = "Invalid email or password"

	m.Reset()
	if got := m.inputs[fieldEmail].Value(); got != "alice@example.com" {
		t.Errorf("email after reset = %q, want preserved", got)
	}
	if m.inputs[fieldPassword].Value() != "" {
		t.Error("password should be cleared on reset")
	}
	if m.errText != "" {
		t.Error("error text should be cleared on reset")
	}
}

func TestViewShowsNoticeAndMode(t *testing.T) {
	m := newTestModel()
	m.SetSize(80, 24)
	m.SetNotice(auth.NoticeSessionExpired)

	out := m.View()
	if !strings.Contains(out, "expired") {
		t.Errorf("view missing expiry notice: %q", out)
	}
	if !strings.Contains(out, "Sign in") {
		t.Errorf("view missing sign-in title")
	}

	m.toggleMode()
	out = m.View()
	if !strings.Contains(out, "Confirm password") {
		t.Error("register view missing confirm field")
	}
}
