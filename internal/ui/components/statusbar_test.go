// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/morganforge/taskdeck/internal/ui/styles"
)

func TestStatusStrings(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusReady, "Ready"},
		{StatusLoading, "Loading..."},
		{StatusThinking, "Thinking..."},
		{StatusError, "Error"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestStatusBarViewSegments(t *testing.T) {
	theme := styles.NewTheme()
	bar := NewStatusBar(theme)
	bar.ScreenName = "Todos"
	bar.ServerHost = "localhost:8000"
	bar.SetUser("alice@example.com")
	bar.SetDetail("pending")
	bar.SetWidth(120)

	out := bar.View()
	for _, want := range []string{"localhost:8000", "alice@example.com", "Todos", "pending", "Ready"} {
		if !strings.Contains(out, want) {
			t.Errorf("status bar missing %q: %q", want, out)
		}
	}
}

func TestStatusBarOffline(t *testing.T) {
	theme := styles.NewTheme()
	bar := NewStatusBar(theme)
	bar.ServerHost = "localhost:8000"
	bar.SetConnected(false)
	bar.SetWidth(80)

	out := bar.View()
	if !strings.Contains(out, "offline") {
		t.Errorf("disconnected bar should say offline: %q", out)
	}
	if strings.Contains(out, "localhost:8000") {
		t.Errorf("disconnected bar should not show host: %q", out)
	}
}
