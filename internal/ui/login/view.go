// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package login

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the login screen.
func (m Model) View() string {
	var b strings.Builder

	title := "Sign in to taskdeck"
	hint := "ctrl+t to create an account"
	if m.mode == ModeRegister {
		title = "Create a taskdeck account"
		hint = "ctrl+t to sign in instead"
	}

	b.WriteString(m.theme.FormTitle.Render(title))
	b.WriteString("\n\n")

	if m.notice != "" {
		b.WriteString(m.theme.FormNotice.Render(m.notice))
		b.WriteString("\n\n")
	}

	b.WriteString(m.theme.FormLabel.Render("Email"))
	b.WriteString("\n")
	b.WriteString(m.inputs[fieldEmail].View())
	b.WriteString("\n\n")

	b.WriteString(m.theme.FormLabel.Render("Password"))
	b.WriteString("\n")
	b.WriteString(m.inputs[fieldPassword].View())
	b.WriteString("\n")

	if m.mode == ModeRegister {
		b.WriteString("\n")
		b.WriteString(m.theme.FormLabel.Render("Confirm password"))
		b.WriteString("\n")
		b.WriteString(m.inputs[fieldConfirm].View())
		b.WriteString("\n")
	}

	if m.errText != "" {
		b.WriteString("\n")
		b.WriteString(m.theme.FormError.Render(m.errText))
		b.WriteString("\n")
	}

	if m.submitting {
		b.WriteString("\n")
		b.WriteString(m.spinner.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.FormHint.Render("enter to submit · " + hint))

	form := m.theme.FormBox.Render(b.String())

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, form)
	}
	return form
}
