// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the taskdeck TUI.
package components

import (
	"fmt"
	"strings"

	"github.com/morganforge/taskdeck/internal/ui/styles"
	"github.com/morganforge/taskdeck/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Status represents the current application status.
type Status int

const (
	StatusReady Status = iota
	StatusLoading
	StatusThinking
	StatusError
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusLoading:
		return "Loading..."
	case StatusThinking:
		return "Thinking..."
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Icon returns an icon for the status.
// ACCESSIBILITY: Uses distinct shapes alongside colors for colorblind users.
func (s Status) Icon() string {
	switch s {
	case StatusReady:
		return styles.StatusIndicators.Success
	case StatusLoading, StatusThinking:
		return styles.StatusIndicators.Pending
	case StatusError:
		return styles.StatusIndicators.Error
	default:
		return "?"
	}
}

// StatusBar is the bottom status bar shown on every authenticated screen.
// It shows where the client is pointed, who is logged in, and what the
// current screen is doing.
type StatusBar struct {
	ScreenName    string // "Todos" or "Chat"
	UserEmail     string // Logged-in user; empty when only a raw token is held
	ServerHost    string // Host portion of the server base URL
	Connected     bool   // False after a network failure until the next success
	Status        Status // Current activity state
	Detail        string // Screen-specific detail (filter, conversation title)
	Width         int    // Available width
	ShowShortcuts bool   // Show keyboard shortcuts on wide layouts
	theme         *styles.Theme
}

// NewStatusBar creates a new StatusBar component.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Connected:     true,
		Status:        StatusReady,
		Width:         80,
		ShowShortcuts: true,
		theme:         theme,
	}
}

// SetWidth updates the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetStatus updates the current status.
func (s *StatusBar) SetStatus(status Status) {
	s.Status = status
}

// SetDetail sets the screen-specific detail segment.
func (s *StatusBar) SetDetail(detail string) {
	s.Detail = detail
}

// SetConnected records connection state from the last request outcome.
func (s *StatusBar) SetConnected(connected bool) {
	s.Connected = connected
}

// SetUser sets the logged-in user email.
func (s *StatusBar) SetUser(email string) {
	s.UserEmail = email
}

// View renders the status bar.
func (s *StatusBar) View() string {
	if s.theme == nil {
		return ""
	}

	var segments []string

	// Connection segment
	if s.Connected {
		segments = append(segments, s.theme.StatusOnline.Render(styles.StatusIndicators.Active+" "+s.ServerHost))
	} else {
		segments = append(segments, s.theme.StatusOffline.Render(styles.StatusIndicators.Error+" offline"))
	}

	// User segment
	if s.UserEmail != "" {
		segments = append(segments, util.TruncateWidth(s.UserEmail, 30))
	}

	// Screen and detail
	if s.ScreenName != "" {
		seg := s.ScreenName
		if s.Detail != "" {
			seg = fmt.Sprintf("%s: %s", s.ScreenName, s.Detail)
		}
		segments = append(segments, seg)
	}

	// Activity
	segments = append(segments, s.Status.Icon()+" "+s.Status.String())

	left := strings.Join(segments, "  |  ")

	// Shortcut hints on the right when there is room
	right := ""
	if s.ShowShortcuts && s.Width >= 100 {
		right = s.shortcutHints()
	}

	gap := s.Width - util.StringWidth(stripForWidth(left)) - util.StringWidth(stripForWidth(right)) - 2
	if gap < 1 {
		gap = 1
		right = ""
	}

	line := left + strings.Repeat(" ", gap) + right
	return s.theme.StatusBar.Width(s.Width).Render(util.TruncateWidth(line, s.Width-2))
}

// shortcutHints renders the keyboard shortcut reminder.
func (s *StatusBar) shortcutHints() string {
	key := s.theme.ShortcutKey
	desc := s.theme.ShortcutDesc
	parts := []string{
		key.Render("tab") + desc.Render(" switch"),
		key.Render("ctrl+g") + desc.Render(" logout"),
		key.Render("ctrl+c") + desc.Render(" quit"),
	}
	return strings.Join(parts, "  ")
}

// stripForWidth approximates printable width for layout math.
// Styled segments carry ANSI escapes; lipgloss.Width would be exact but
// plain len over the unstyled text is close enough for the gap estimate.
func stripForWidth(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		if inEscape {
			if r == 'm' {
				inEscape = false
			}
			continue
		}
		if r == 0x1b {
			inEscape = true
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
