// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"
)

func TestNewThemeInitializesStyles(t *testing.T) {
	theme := NewTheme()
	if theme == nil {
		t.Fatal("NewTheme returned nil")
	}

	// A few representative styles must render without panicking and
	// produce non-empty output for non-empty input.
	samples := []string{
		theme.HeaderTitle.Render("taskdeck"),
		theme.TodoItemSelected.Render("buy milk"),
		theme.FilterTabActive.Render("pending"),
		theme.StatusBar.Render("ready"),
	}
	for i, s := range samples {
		if s == "" {
			t.Errorf("style %d rendered empty output", i)
		}
	}
}

func TestLayoutModeThresholds(t *testing.T) {
	theme := NewTheme()

	tests := []struct {
		width int
		want  LayoutMode
	}{
		{40, LayoutNarrow},
		{59, LayoutNarrow},
		{60, LayoutMedium},
		{99, LayoutMedium},
		{100, LayoutWide},
		{200, LayoutWide},
	}

	for _, tt := range tests {
		theme.SetSize(tt.width, 24)
		if got := theme.GetLayoutMode(); got != tt.want {
			t.Errorf("width %d: got layout %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestStatusIndicatorsAreASCII(t *testing.T) {
	indicators := []string{
		StatusIndicators.Success,
		StatusIndicators.Error,
		StatusIndicators.Warning,
		StatusIndicators.Info,
		StatusIndicators.Pending,
		StatusIndicators.Active,
	}
	for _, ind := range indicators {
		for _, r := range ind {
			if r > 127 {
				t.Errorf("indicator %q contains non-ASCII rune %q", ind, r)
			}
		}
	}
}

func TestRenderStatusIncludesIndicator(t *testing.T) {
	ok := RenderStatus(true, "saved")
	if !strings.Contains(ok, StatusIndicators.Success) {
		t.Errorf("success render missing indicator: %q", ok)
	}
	fail := RenderStatus(false, "failed")
	if !strings.Contains(fail, StatusIndicators.Error) {
		t.Errorf("error render missing indicator: %q", fail)
	}
}
