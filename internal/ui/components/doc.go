// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the taskdeck TUI.
//
// Components are small, screen-agnostic pieces: the bottom status bar, the
// loading spinner, and the non-blocking toast stack. Screens emit
// ToastAddMsg and the root model owns the single ToastManager so
// notifications survive screen switches.
package components
