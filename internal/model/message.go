// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"encoding/json"
	"time"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is a single chat message as persisted by the backend.
// Within a conversation, messages form a strictly append-only,
// chronologically ordered sequence; the client never reorders or edits
// them once received.
type Message struct {
	ID        int       `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`

	// ToolCalls carries the assistant's tool invocations. The client
	// treats them as opaque and only surfaces their count.
	ToolCalls []json.RawMessage `json:"tool_calls,omitempty"`
}

// DisplayContent returns the message content with executable markup
// stripped, ready for rendering.
func (m *Message) DisplayContent() string {
	return SanitizeContent(m.Content)
}

// ToolCallCount returns the number of tool invocations behind this message.
func (m *Message) ToolCallCount() int {
	return len(m.ToolCalls)
}

// Preview returns a single-line truncated preview of the message.
// Rune-based truncation keeps multi-byte characters intact.
func (m *Message) Preview(maxLen int) string {
	content := m.DisplayContent()
	runes := []rune(content)
	if len(runes) <= maxLen {
		return content
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
