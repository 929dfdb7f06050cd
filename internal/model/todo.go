// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures exchanged with the taskdeck backend.
package model

import (
	"errors"
	"strings"
	"time"
)

// =============================================================================
// TODO TYPE
// =============================================================================

// Todo represents a single todo item as returned by the backend.
// The id and both timestamps are server-assigned; the client never
// fabricates or recomputes them.
type Todo struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TodoInput is the payload for creating or updating a todo.
type TodoInput struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// ErrTitleRequired indicates the todo title is empty after trimming.
var ErrTitleRequired = errors.New("title is required")

// MaxTitleLength caps the todo title length accepted by the client.
const MaxTitleLength = 200

// ErrTitleTooLong indicates the todo title exceeds MaxTitleLength runes.
var ErrTitleTooLong = errors.New("title is too long")

// Validate checks the local form constraints for a todo payload.
// Validation failures never reach the network layer.
func (in *TodoInput) Validate() error {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return ErrTitleRequired
	}
	if len([]rune(title)) > MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

// Normalize trims surrounding whitespace from the payload fields.
// Call after Validate; the trimmed title is what goes on the wire.
func (in *TodoInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
}

// ToggleInput is the payload for the completion toggle endpoint.
type ToggleInput struct {
	IsCompleted bool `json:"is_completed"`
}

// =============================================================================
// TODO LIST RESPONSE
// =============================================================================

// TodoList is the wire shape of GET /todos/.
type TodoList struct {
	Todos []Todo `json:"todos"`
	Total int    `json:"total"`
}

// =============================================================================
// FILTERING
// =============================================================================

// Filter selects a subset of todos by completion state.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterPending   Filter = "pending"
	FilterCompleted Filter = "completed"
)

// Matches reports whether the todo passes the filter.
func (f Filter) Matches(t Todo) bool {
	switch f {
	case FilterPending:
		return !t.IsCompleted
	case FilterCompleted:
		return t.IsCompleted
	default:
		return true
	}
}

// Next cycles all -> pending -> completed -> all.
func (f Filter) Next() Filter {
	switch f {
	case FilterAll:
		return FilterPending
	case FilterPending:
		return FilterCompleted
	default:
		return FilterAll
	}
}
