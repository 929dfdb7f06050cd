// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/morganforge/taskdeck/internal/model"
)

// =============================================================================
// TODO ENDPOINTS
// =============================================================================

// ListTodos fetches the full todo collection for the authenticated user.
func (c *Client) ListTodos(ctx context.Context) (*model.TodoList, error) {
	var list model.TodoList
	if err := c.do(ctx, http.MethodGet, "/todos/", nil, &list); err != nil {
		return nil, err
	}
	if list.Todos == nil {
		list.Todos = []model.Todo{}
	}
	return &list, nil
}

// CreateTodo creates a todo and returns the server's authoritative echo,
// carrying the server-assigned id and timestamps.
func (c *Client) CreateTodo(ctx context.Context, in model.TodoInput) (*model.Todo, error) {
	if err := in.Validate(); err != nil {
		return nil, &Error{Kind: KindValidation, Err: err}
	}
	in.Normalize()

	var todo model.Todo
	if err := c.do(ctx, http.MethodPost, "/todos/", in, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

// UpdateTodo replaces a todo's title and description.
func (c *Client) UpdateTodo(ctx context.Context, id int, in model.TodoInput) (*model.Todo, error) {
	if err := in.Validate(); err != nil {
		return nil, &Error{Kind: KindValidation, Err: err}
	}
	in.Normalize()

	var todo model.Todo
	path := fmt.Sprintf("/todos/%d/", id)
	if err := c.do(ctx, http.MethodPut, path, in, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

// ToggleTodo sets a todo's completion state. The returned todo is the
// server's view; the client never computes the transition locally.
func (c *Client) ToggleTodo(ctx context.Context, id int, isCompleted bool) (*model.Todo, error) {
	var todo model.Todo
	path := fmt.Sprintf("/todos/%d/", id)
	if err := c.do(ctx, http.MethodPatch, path, model.ToggleInput{IsCompleted: isCompleted}, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

// DeleteTodo removes a todo by id.
func (c *Client) DeleteTodo(ctx context.Context, id int) error {
	path := fmt.Sprintf("/todos/%d/", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
