// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the taskdeck TUI.
package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/taskdeck/internal/ui/styles"
)

// =============================================================================
// SPINNER
// =============================================================================

// Spinner is a loading spinner with a message and an elapsed-time readout.
// Used while a request is in flight: loading todos, waiting on the
// assistant, submitting a login.
type Spinner struct {
	spinner   spinner.Model
	message   string
	startTime time.Time
	isActive  bool
	showTimer bool
	theme     *styles.Theme
}

// NewSpinner creates a new spinner with ASCII-compatible animation.
func NewSpinner(theme *styles.Theme) Spinner {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}
	if theme != nil {
		s.Style = theme.Spinner
	}

	return Spinner{
		spinner:   s,
		message:   "Loading",
		showTimer: false,
		theme:     theme,
	}
}

// NewThinkingSpinner creates a spinner for the assistant "thinking" state.
// The timer is shown because assistant replies can take several seconds.
func NewThinkingSpinner(theme *styles.Theme) Spinner {
	s := NewSpinner(theme)
	s.message = "Thinking"
	s.showTimer = true
	return s
}

// Start activates the spinner and resets the timer.
func (s *Spinner) Start() tea.Cmd {
	s.isActive = true
	s.startTime = time.Now()
	return s.spinner.Tick
}

// Stop deactivates the spinner.
func (s *Spinner) Stop() {
	s.isActive = false
}

// IsActive returns whether the spinner is running.
func (s *Spinner) IsActive() bool {
	return s.isActive
}

// SetMessage updates the spinner message.
func (s *Spinner) SetMessage(message string) {
	s.message = message
}

// Update handles spinner tick messages.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	if !s.isActive {
		return s, nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// View renders the spinner line, or an empty string when inactive.
func (s Spinner) View() string {
	if !s.isActive {
		return ""
	}

	out := s.spinner.View() + " "
	if s.theme != nil {
		out += s.theme.ThinkingText.Render(s.message + "...")
	} else {
		out += s.message + "..."
	}

	if s.showTimer {
		elapsed := time.Since(s.startTime).Round(time.Second)
		timer := fmt.Sprintf(" (%s)", elapsed)
		if s.theme != nil {
			timer = s.theme.ThinkingTime.Render(timer)
		}
		out += timer
	}

	return out
}
