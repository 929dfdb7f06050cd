// json_output.go - JSON output support for scripting and automation.
//
// Provides a standardized JSON envelope for all CLI commands so their
// output can be piped into jq or other tooling.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/morganforge/taskdeck/internal/model"
)

// JSONResponse is the standardized response format for all CLI commands.
type JSONResponse struct {
	// Success indicates whether the command completed successfully
	Success bool `json:"success"`

	// Data contains the command-specific response data
	Data interface{} `json:"data"`

	// Error contains the error message if Success is false, null otherwise
	Error *string `json:"error"`

	// Timestamp is the ISO8601 timestamp when the response was generated
	Timestamp string `json:"timestamp"`

	// Command is the command that was executed
	Command string `json:"command,omitempty"`
}

// NewJSONResponse creates a new successful JSON response.
func NewJSONResponse(command string, data interface{}) *JSONResponse {
	return &JSONResponse{
		Success:   true,
		Data:      data,
		Error:     nil,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// NewJSONErrorResponse creates a new error JSON response.
func NewJSONErrorResponse(command string, err error) *JSONResponse {
	errStr := err.Error()
	return &JSONResponse{
		Success:   false,
		Data:      nil,
		Error:     &errStr,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// Print outputs the JSON response to stdout.
// Human-readable messages should go to stderr when JSON mode is enabled.
func (r *JSONResponse) Print() error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// String returns the JSON response as a string.
func (r *JSONResponse) String() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"success":false,"error":"failed to marshal response: %s","timestamp":"%s"}`,
			err.Error(), time.Now().UTC().Format(time.RFC3339))
	}
	return string(data)
}

// OutputJSON runs the handler and, in JSON mode, wraps its result in the
// standard envelope. In normal mode the handler does its own printing.
func OutputJSON(jsonMode bool, command string, handler func() (interface{}, error)) error {
	if !jsonMode {
		_, err := handler()
		return err
	}

	data, err := handler()
	if err != nil {
		resp := NewJSONErrorResponse(command, err)
		resp.Print()
		return err
	}

	resp := NewJSONResponse(command, data)
	return resp.Print()
}

// =============================================================================
// COMMAND-SPECIFIC DATA STRUCTURES
// =============================================================================

// WhoamiData represents the data returned by the whoami command.
type WhoamiData struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
}

// LoginData represents the data returned by login/register.
type LoginData struct {
	User  WhoamiData `json:"user"`
	Token string     `json:"token,omitempty"`
}

// LogoutData represents the data returned by logout.
type LogoutData struct {
	TokenInEnvironment bool `json:"token_in_environment"`
}

// TodoListData represents the data returned by todo list.
type TodoListData struct {
	Todos  []model.Todo `json:"todos"`
	Total  int          `json:"total"`
	Filter string       `json:"filter"`
}

// TodoStatsData represents the data returned by todo stats.
type TodoStatsData struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

// AskData represents the data returned by the ask command.
type AskData struct {
	ConversationID int    `json:"conversation_id"`
	Reply          string `json:"reply"`
	ToolCalls      int    `json:"tool_calls"`
	DurationMs     int64  `json:"duration_ms"`
}

// ConversationListData represents the data returned by conversations list.
type ConversationListData struct {
	Conversations []model.Conversation `json:"conversations"`
	Total         int                  `json:"total"`
}

// VersionData represents the data returned by the version command.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
}

// ConfigShowData represents the data returned by config show.
type ConfigShowData struct {
	ServerURL     string `json:"server_url"`
	TimeoutSecs   int    `json:"timeout_secs"`
	Theme         string `json:"theme"`
	CompactMode   bool   `json:"compact_mode"`
	Markdown      bool   `json:"markdown"`
	ShowToolCalls bool   `json:"show_tool_calls"`
	DefaultFilter string `json:"default_filter"`
	LogEnabled    bool   `json:"log_enabled"`
	ConfigPath    string `json:"config_path"`
}
