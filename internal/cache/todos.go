// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cache keeps the client-side views of server collections. The
// caches are response-driven: they mutate only from server responses,
// never optimistically, so the view can drift from the server only
// between a mutation and its response.
package cache

import (
	"sync"

	"github.com/morganforge/taskdeck/internal/model"
)

// TodoStats summarizes the cached todo collection.
type TodoStats struct {
	Total     int
	Completed int
	Pending   int
}

// TodoCache mirrors the user's todo collection. Newest-first ordering:
// full fetches adopt the server order, and a created todo is prepended.
type TodoCache struct {
	mu     sync.RWMutex
	todos  []model.Todo
	loaded bool
}

// NewTodoCache creates an empty, not-yet-loaded cache.
func NewTodoCache() *TodoCache {
	return &TodoCache{}
}

// Reset replaces the whole collection with a fresh server listing.
func (c *TodoCache) Reset(todos []model.Todo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.todos = make([]model.Todo, len(todos))
	copy(c.todos, todos)
	c.loaded = true
}

// ResetFailed marks the cache as unloaded after a failed full fetch so the
// view shows an error state instead of a stale list.
func (c *TodoCache) ResetFailed() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.todos = nil
	c.loaded = false
}

// Loaded reports whether at least one full fetch has succeeded.
func (c *TodoCache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Upsert folds a server-confirmed todo into the collection: a known id is
// replaced in place, an unknown one is prepended. Toggling or editing the
// same todo twice with the same response is therefore a no-op the second
// time.
func (c *TodoCache) Upsert(todo model.Todo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.todos {
		if c.todos[i].ID == todo.ID {
			c.todos[i] = todo
			return
		}
	}
	c.todos = append([]model.Todo{todo}, c.todos...)
}

// Remove drops the todo with the given id. Unknown ids are ignored, which
// makes a confirmed delete idempotent.
func (c *TodoCache) Remove(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.todos {
		if c.todos[i].ID == id {
			c.todos = append(c.todos[:i], c.todos[i+1:]...)
			return
		}
	}
}

// Get returns the cached todo with the given id.
func (c *TodoCache) Get(id int) (model.Todo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, t := range c.todos {
		if t.ID == id {
			return t, true
		}
	}
	return model.Todo{}, false
}

// All returns a copy of the collection in cache order.
func (c *TodoCache) All() []model.Todo {
	return c.Filtered(model.FilterAll)
}

// Filtered returns a copy of the todos matching the filter, preserving
// cache order.
func (c *TodoCache) Filtered(f model.Filter) []model.Todo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Todo, 0, len(c.todos))
	for _, t := range c.todos {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// Stats derives the counters from the collection itself, so they can
// never disagree with the list they describe.
func (c *TodoCache) Stats() TodoStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := TodoStats{Total: len(c.todos)}
	for _, t := range c.todos {
		if t.IsCompleted {
			s.Completed++
		}
	}
	s.Pending = s.Total - s.Completed
	return s
}
