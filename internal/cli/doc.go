// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements taskdeck's one-shot command-line interface.
//
// The CLI covers the same operations as the TUI: authentication, todo
// management, and assistant chat, each as a single invocation suitable
// for scripting. Every command supports --json for machine-readable
// output.
//
// Credentials are never persisted; each invocation establishes its own
// session from TASKDECK_TOKEN or TASKDECK_EMAIL/TASKDECK_PASSWORD, or by
// prompting when a terminal is attached.
package cli
