// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds a chat conversation with its server-assigned identity.
// A conversation is created implicitly by the backend on the first chat
// message when no id is supplied.
type Conversation struct {
	ID        int       `json:"id"`
	Title     string    `json:"title,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`

	// Messages preserve chronological insertion order.
	Messages []Message `json:"messages,omitempty"`
}

// DisplayTitle returns the conversation title or a fallback.
func (c *Conversation) DisplayTitle() string {
	if c.Title != "" {
		return c.Title
	}
	if len(c.Messages) > 0 {
		return c.Messages[0].Preview(50)
	}
	return "New conversation"
}

// LastMessage returns the most recent message, or nil if empty.
func (c *Conversation) LastMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return &c.Messages[len(c.Messages)-1]
}

// MessageCount returns the number of messages.
func (c *Conversation) MessageCount() int {
	return len(c.Messages)
}

// ConversationList is the wire shape of GET /api/conversations.
type ConversationList struct {
	Conversations []Conversation `json:"conversations"`
}

// =============================================================================
// CHAT EXCHANGE
// =============================================================================

// ChatRequest is the POST /api/chat payload. ConversationID is nil for a
// new conversation.
type ChatRequest struct {
	Message        string `json:"message"`
	ConversationID *int   `json:"conversation_id"`
}

// ChatResponse is the backend's reply to a chat message. The conversation
// id is authoritative and may differ from the request when a new
// conversation was created.
type ChatResponse struct {
	ConversationID   int     `json:"conversation_id"`
	UserMessage      Message `json:"user_message"`
	AssistantMessage Message `json:"assistant_message"`
}
