// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/morganforge/taskdeck/internal/model"
)

// =============================================================================
// CHAT ENDPOINTS
// =============================================================================

// SendMessage posts a chat message and returns the assistant's reply.
// conversationID is nil for a new conversation; the response carries the
// authoritative conversation id either way.
//
// The call requires a stored credential and fails fast without touching
// the network when none is present.
func (c *Client) SendMessage(ctx context.Context, text string, conversationID *int) (*model.ChatResponse, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &Error{Kind: KindValidation, Err: fmt.Errorf("message is empty")}
	}
	if !c.hasToken() {
		return nil, &Error{Kind: KindUnauthenticated, Err: ErrUnauthenticated}
	}

	req := model.ChatRequest{
		Message:        text,
		ConversationID: conversationID,
	}
	var resp model.ChatResponse
	if err := c.do(ctx, http.MethodPost, "/api/chat", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListConversations fetches the user's conversation index.
func (c *Client) ListConversations(ctx context.Context) (*model.ConversationList, error) {
	if !c.hasToken() {
		return nil, &Error{Kind: KindUnauthenticated, Err: ErrUnauthenticated}
	}
	var list model.ConversationList
	if err := c.do(ctx, http.MethodGet, "/api/conversations", nil, &list); err != nil {
		return nil, err
	}
	if list.Conversations == nil {
		list.Conversations = []model.Conversation{}
	}
	return &list, nil
}

// GetConversation fetches one conversation with its full message history.
func (c *Client) GetConversation(ctx context.Context, id int) (*model.Conversation, error) {
	if !c.hasToken() {
		return nil, &Error{Kind: KindUnauthenticated, Err: ErrUnauthenticated}
	}
	var conv model.Conversation
	path := fmt.Sprintf("/api/conversations/%d", id)
	if err := c.do(ctx, http.MethodGet, path, nil, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

// DeleteConversation removes a conversation by id.
func (c *Client) DeleteConversation(ctx context.Context, id int) error {
	if !c.hasToken() {
		return &Error{Kind: KindUnauthenticated, Err: ErrUnauthenticated}
	}
	path := fmt.Sprintf("/api/conversations/%d", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
