// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - config show/set/path command handlers.
package cli

import (
	"fmt"

	"github.com/morganforge/taskdeck/internal/config"
)

// HandleConfig dispatches the config subcommands.
func HandleConfig(cfg *config.Config, args Args) error {
	parser := NewArgParser(args.Raw)

	switch parser.Subcommand() {
	case "", "show":
		return configShow(cfg, args)
	case "set":
		return configSet(cfg, parser, args)
	case "path":
		return configPath(args)
	default:
		return NewUsageError("unknown config subcommand: %s", parser.Subcommand())
	}
}

func configShow(cfg *config.Config, args Args) error {
	path, _ := config.ConfigPathTOML()

	if args.JSON {
		return NewJSONResponse("config show", ConfigShowData{
			ServerURL:     cfg.Server.BaseURL,
			TimeoutSecs:   cfg.Server.TimeoutSecs,
			Theme:         cfg.UI.Theme,
			CompactMode:   cfg.UI.CompactMode,
			Markdown:      cfg.UI.Markdown,
			ShowToolCalls: cfg.UI.ShowToolCalls,
			DefaultFilter: cfg.UI.DefaultFilter,
			LogEnabled:    cfg.Log.Enabled,
			ConfigPath:    path,
		}).Print()
	}

	fmt.Println(TitleStyle.Render("taskdeck configuration"))
	fmt.Printf("%s %s\n", LabelStyle.Render("Server"), ValueStyle.Render(cfg.Server.BaseURL))
	fmt.Printf("%s %ds\n", LabelStyle.Render("Timeout"), cfg.Server.TimeoutSecs)
	fmt.Printf("%s %s\n", LabelStyle.Render("Theme"), ValueStyle.Render(cfg.UI.Theme))
	fmt.Printf("%s %v\n", LabelStyle.Render("Compact"), cfg.UI.CompactMode)
	fmt.Printf("%s %v\n", LabelStyle.Render("Markdown"), cfg.UI.Markdown)
	fmt.Printf("%s %v\n", LabelStyle.Render("Tool calls"), cfg.UI.ShowToolCalls)
	fmt.Printf("%s %s\n", LabelStyle.Render("Filter"), ValueStyle.Render(cfg.UI.DefaultFilter))
	fmt.Printf("%s %v\n", LabelStyle.Render("Logging"), cfg.Log.Enabled)
	fmt.Printf("%s %s\n", LabelStyle.Render("Path"), DimStyle.Render(path))
	return nil
}

// configSet updates one setting and saves the file.
func configSet(cfg *config.Config, parser *ArgParser, args Args) error {
	key := parser.Positional(1)
	val := parser.Positional(2)
	if key == "" || val == "" {
		return NewUsageError("usage: taskdeck config set <key> <value>")
	}

	switch key {
	case "server.base_url", "server_url":
		cfg.Server.BaseURL = val
	case "server.timeout_secs", "timeout_secs":
		n, err := ParseID(val, "timeout_secs")
		if err != nil {
			return NewUsageError("%v", err)
		}
		cfg.Server.TimeoutSecs = n
	case "ui.theme", "theme":
		cfg.UI.Theme = val
	case "ui.compact_mode", "compact_mode":
		cfg.UI.CompactMode = val == "true" || val == "1"
	case "ui.markdown", "markdown":
		cfg.UI.Markdown = val == "true" || val == "1"
	case "ui.show_tool_calls", "show_tool_calls":
		cfg.UI.ShowToolCalls = val == "true" || val == "1"
	case "ui.default_filter", "default_filter":
		cfg.UI.DefaultFilter = val
	case "log.enabled", "log":
		cfg.Log.Enabled = val == "true" || val == "1"
	case "log.path", "log_path":
		cfg.Log.Path = val
	default:
		return NewUsageError("unknown config key: %s", key)
	}

	if err := cfg.Validate(); err != nil {
		return NewUsageError("invalid value for %s: %v", key, err)
	}
	if err := config.Save(cfg); err != nil {
		return err
	}

	if args.JSON {
		return NewJSONResponse("config set", map[string]string{"key": key, "value": val}).Print()
	}
	fmt.Printf("%s %s = %s\n", SuccessStyle.Render("[OK]"), key, val)
	return nil
}

func configPath(args Args) error {
	path, err := config.ConfigPathTOML()
	if err != nil {
		return err
	}

	if args.JSON {
		return NewJSONResponse("config path", map[string]string{"path": path}).Print()
	}
	fmt.Println(path)
	return nil
}
