// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/taskdeck/internal/api"
	"github.com/morganforge/taskdeck/internal/model"
)

// All I/O runs inside tea.Cmd closures; results come back as messages on
// the update loop. Collection loads carry the sequence number they were
// issued under so superseded snapshots can be dropped; mutation results
// always fold in, whatever order they land.

// loadTodosCmd fetches the full todo collection.
func loadTodosCmd(client *api.Client, seq int) tea.Cmd {
	return func() tea.Msg {
		list, err := client.ListTodos(context.Background())
		return todosLoadedMsg{Seq: seq, List: list, Err: err}
	}
}

// createTodoCmd creates a new todo.
func createTodoCmd(client *api.Client, in model.TodoInput, seq int) tea.Cmd {
	return func() tea.Msg {
		todo, err := client.CreateTodo(context.Background(), in)
		return todoSavedMsg{Seq: seq, Todo: todo, Created: true, Err: err}
	}
}

// updateTodoCmd replaces an existing todo. The backend replaces the whole
// resource on PUT, so the input must carry every field.
func updateTodoCmd(client *api.Client, id int, in model.TodoInput, seq int) tea.Cmd {
	return func() tea.Msg {
		todo, err := client.UpdateTodo(context.Background(), id, in)
		return todoSavedMsg{Seq: seq, Todo: todo, Err: err}
	}
}

// toggleTodoCmd flips the completion flag.
func toggleTodoCmd(client *api.Client, id int, isCompleted bool) tea.Cmd {
	return func() tea.Msg {
		todo, err := client.ToggleTodo(context.Background(), id, isCompleted)
		return todoToggledMsg{Todo: todo, Err: err}
	}
}

// deleteTodoCmd removes a todo.
func deleteTodoCmd(client *api.Client, id int) tea.Cmd {
	return func() tea.Msg {
		err := client.DeleteTodo(context.Background(), id)
		return todoDeletedMsg{ID: id, Err: err}
	}
}
