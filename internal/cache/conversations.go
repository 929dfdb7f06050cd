// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cache

import (
	"sync"
	"time"

	"github.com/morganforge/taskdeck/internal/model"
)

// ConversationCache mirrors the chat history: the sidebar listing of past
// conversations plus the message log of the one currently open. The
// message log is append-only within a conversation; messages are never
// edited or reordered after the server confirms them.
type ConversationCache struct {
	mu       sync.RWMutex
	list     []model.Conversation
	activeID int
	messages []model.Message
}

// NewConversationCache creates an empty cache with no open conversation.
func NewConversationCache() *ConversationCache {
	return &ConversationCache{}
}

// ResetList replaces the conversation listing from a full fetch.
func (c *ConversationCache) ResetList(convs []model.Conversation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.list = make([]model.Conversation, len(convs))
	copy(c.list, convs)
}

// List returns a copy of the conversation listing in server order.
func (c *ConversationCache) List() []model.Conversation {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Conversation, len(c.list))
	copy(out, c.list)
	return out
}

// Open replaces the active message log with a fully fetched conversation.
func (c *ConversationCache) Open(conv model.Conversation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.activeID = conv.ID
	c.messages = make([]model.Message, len(conv.Messages))
	copy(c.messages, conv.Messages)
}

// StartNew clears the active conversation. The next exchange will carry no
// conversation id and the server will mint one.
func (c *ConversationCache) StartNew() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.activeID = 0
	c.messages = nil
}

// ActiveID returns the open conversation's id, or nil when the next
// message should start a new conversation. The nil form is what the chat
// request wants.
func (c *ConversationCache) ActiveID() *int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.activeID == 0 {
		return nil
	}
	id := c.activeID
	return &id
}

// Messages returns a copy of the active conversation's log in order.
func (c *ConversationCache) Messages() []model.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// AppendExchange folds a confirmed chat exchange into the log and adopts
// the server's conversation id, which matters when the exchange started a
// new conversation. Both messages are appended in order, user first.
func (c *ConversationCache) AppendExchange(resp model.ChatResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	started := c.activeID == 0
	c.activeID = resp.ConversationID
	c.messages = append(c.messages, resp.UserMessage, resp.AssistantMessage)
	if started {
		c.list = append([]model.Conversation{{
			ID:        resp.ConversationID,
			Title:     resp.UserMessage.Preview(50),
			UpdatedAt: time.Now(),
		}}, c.list...)
	}
}

// RemoveConversation drops a conversation from the listing after a
// confirmed delete. Deleting the open conversation also clears the log.
func (c *ConversationCache) RemoveConversation(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.list {
		if c.list[i].ID == id {
			c.list = append(c.list[:i], c.list[i+1:]...)
			break
		}
	}
	if c.activeID == id {
		c.activeID = 0
		c.messages = nil
	}
}
