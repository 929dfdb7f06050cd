// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command dispatch for taskdeck.
package cli

import (
	"fmt"
	"os"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdLogin
	CmdRegister
	CmdLogout
	CmdWhoami
	CmdTodo
	CmdAsk
	CmdConversations
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	JSON    bool   // Output in JSON format
	Quiet   bool   // Minimal output
	Verbose bool   // Debug output
	Server  string // Override backend base URL

	// Raw args remaining after the command token
	Raw []string
}

const usageText = `taskdeck - terminal client for your todo backend

Taskdeck manages your todos and talks to the built-in AI assistant
from the terminal, either interactively (TUI) or as one-shot commands.

Usage:
  taskdeck                     Start TUI (default)
  taskdeck login               Verify credentials against the backend
  taskdeck register            Create an account
  taskdeck logout              End the current session
  taskdeck whoami              Show the authenticated user
  taskdeck todo <subcommand>   Manage todos
  taskdeck ask "message"       Ask the AI assistant
  taskdeck conversations       Browse assistant conversations
  taskdeck config [show|set]   Configuration
  taskdeck version             Show version information

Todo Commands:
  taskdeck todo list                List todos
    --filter all|pending|completed  Filter by completion state
  taskdeck todo add <title>         Create a todo
    --desc TEXT                     Optional description
  taskdeck todo done <id>           Mark a todo completed
  taskdeck todo reopen <id>         Mark a todo pending again
  taskdeck todo edit <id>           Edit a todo
    --title TEXT                    New title
    --desc TEXT                     New description
  taskdeck todo rm <id>             Delete a todo
  taskdeck todo stats               Show completion counters

Assistant Commands:
  taskdeck ask "message"            Send one message, print the reply
    --conversation ID               Continue an existing conversation
    --plain                         Print the reply without markdown styling
  taskdeck conversations list       List past conversations
  taskdeck conversations show <id>  Print a conversation transcript
  taskdeck conversations rm <id>    Delete a conversation

Authentication:
  Credentials are never written to disk. One-shot commands read them
  from the environment, or prompt when running in a terminal:

    TASKDECK_TOKEN       Bearer token from a previous login
    TASKDECK_EMAIL       Account email
    TASKDECK_PASSWORD    Account password

  taskdeck login prints the short-lived token so it can be exported:

    export TASKDECK_TOKEN=$(taskdeck login --print-token)

Global Flags:
  --server URL    Override the backend base URL
  --json          Output machine-readable JSON
  -q, --quiet     Minimal output
  -v, --verbose   Debug output

Examples:
  taskdeck                              Start the TUI
  taskdeck todo add "Buy milk"          Create a todo
  taskdeck todo list --filter pending   List open todos
  taskdeck todo done 3                  Complete todo 3
  taskdeck ask "What's left for today?" Ask the assistant
  taskdeck conversations show 7         Reread a conversation
  taskdeck config show                  Show current configuration

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("taskdeck version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
}

// Parse parses command-line arguments and returns the command and args.
func Parse() (Command, Args) {
	args := os.Args[1:]

	remaining, parsedArgs := parseGlobalFlags(args)

	// If no remaining args, default to TUI
	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsedArgs

	case "login":
		return CmdLogin, parsedArgs

	case "register", "signup":
		return CmdRegister, parsedArgs

	case "logout":
		return CmdLogout, parsedArgs

	case "whoami":
		return CmdWhoami, parsedArgs

	case "todo", "todos", "t":
		return CmdTodo, parsedArgs

	case "ask", "a":
		return CmdAsk, parsedArgs

	case "conversations", "conversation", "convs":
		return CmdConversations, parsedArgs

	case "config":
		return CmdConfig, parsedArgs

	case "version", "--version", "-V":
		return CmdVersion, parsedArgs

	case "help", "--help", "-h":
		return CmdHelp, parsedArgs

	default:
		// Unknown command falls through to help
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		return CmdHelp, parsedArgs
	}
}

// parseGlobalFlags extracts global flags, returning the remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	parsed := Args{}
	remaining := make([]string, 0, len(args))

	i := 0
	for i < len(args) {
		switch args[i] {
		case "--json":
			parsed.JSON = true
		case "-q", "--quiet":
			parsed.Quiet = true
		case "-v", "--verbose":
			parsed.Verbose = true
		case "--server":
			if i+1 < len(args) {
				parsed.Server = args[i+1]
				i++
			}
		default:
			if strings.HasPrefix(args[i], "--server=") {
				parsed.Server = strings.TrimPrefix(args[i], "--server=")
			} else {
				remaining = append(remaining, args[i])
			}
		}
		i++
	}

	return remaining, parsed
}
