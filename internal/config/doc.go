// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for
// taskdeck.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - ServerConfig: Backend connection settings
//   - UIConfig: Terminal UI behavior
//   - LogConfig: Diagnostic logging settings
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (TASKDECK_*)
//   - ~/.taskdeck/config.toml
//   - ~/.taskdeck/config.json
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Watch for changes:
//
//	w, err := config.NewWatcher(func(cfg *config.Config) {
//	    // apply the new config
//	})
//	if err == nil {
//	    w.Watch()
//	    defer w.Close()
//	}
package config
