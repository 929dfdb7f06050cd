// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the taskdeck TUI.
//
// The palette is a set of lipgloss.AdaptiveColor values that pick a light
// or dark variant based on the detected terminal background. Theme bundles
// the concrete lipgloss styles the screens render with; a single Theme is
// created at startup and shared by every view.
//
// Status indicators intentionally carry ASCII shapes ([OK], [X], [!], [i])
// alongside color so state remains readable for colorblind users and on
// terminals without color support.
package styles
