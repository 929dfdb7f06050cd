// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/taskdeck/internal/api"
	"github.com/morganforge/taskdeck/internal/cache"
	"github.com/morganforge/taskdeck/internal/model"
	"github.com/morganforge/taskdeck/internal/ui/components"
	"github.com/morganforge/taskdeck/internal/ui/styles"
)

func newTestModel() Model {
	todos := cache.NewTodoCache()
	todos.Reset([]model.Todo{
		{ID: 1, Title: "write report"},
		{ID: 2, Title: "ship release", IsCompleted: true},
		{ID: 3, Title: "review patch"},
	})
	m := New(styles.NewTheme(), api.NewClient("http://127.0.0.1:1"), todos)
	m.SetSize(100, 30)
	return m
}

func key(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestFilterCycling(t *testing.T) {
	m := newTestModel()

	if m.filter != model.FilterAll {
		t.Fatalf("initial filter = %q, want all", m.filter)
	}

	m, _ = m.Update(key("f"))
	if m.filter != model.FilterPending {
		t.Errorf("after one cycle filter = %q, want pending", m.filter)
	}
	if got := len(m.Visible()); got != 2 {
		t.Errorf("pending todos = %d, want 2", got)
	}

	m, _ = m.Update(key("f"))
	if m.filter != model.FilterCompleted {
		t.Errorf("after two cycles filter = %q, want completed", m.filter)
	}

	m, _ = m.Update(key("f"))
	if m.filter != model.FilterAll {
		t.Errorf("after three cycles filter = %q, want all", m.filter)
	}
}

func TestFilterSwitchClampsCursor(t *testing.T) {
	m := newTestModel()
	m.cursor = 2 // last of three

	m, _ = m.Update(key("3")) // completed: only one todo
	if m.cursor != 0 {
		t.Errorf("cursor = %d after narrowing filter, want 0", m.cursor)
	}
}

func TestStaleLoadResultIsDropped(t *testing.T) {
	m := newTestModel()
	m.seq = 9

	stale := todosLoadedMsg{Seq: 8, List: &model.TodoList{Todos: []model.Todo{{ID: 99, Title: "stale"}}}}
	m, _ = m.Update(stale)

	if _, ok := m.todos.Get(99); ok {
		t.Error("stale load result must not replace the cache")
	}
}

func TestOverlappingToggleResultsBothFold(t *testing.T) {
	m := newTestModel()

	// Two toggles in flight at once; the first confirmation lands after
	// the second request was issued. Both echoes must reach the cache.
	m, _ = m.toggleTodo(model.Todo{ID: 1})
	m, _ = m.toggleTodo(model.Todo{ID: 3})

	m, _ = m.Update(todoToggledMsg{Todo: &model.Todo{ID: 1, Title: "write report", IsCompleted: true}})
	m, _ = m.Update(todoToggledMsg{Todo: &model.Todo{ID: 3, Title: "review patch", IsCompleted: true}})

	for _, id := range []int{1, 3} {
		got, ok := m.todos.Get(id)
		if !ok || !got.IsCompleted {
			t.Errorf("todo %d = %+v after confirmed toggle, want completed", id, got)
		}
	}
}

func TestOverlappingDeleteAndToggleBothFold(t *testing.T) {
	m := newTestModel()
	m, _ = m.deleteTodo(1)
	m, _ = m.toggleTodo(model.Todo{ID: 2, IsCompleted: true})

	// Confirmations land in request order even though the delete was
	// issued under an older sequence number.
	m, _ = m.Update(todoDeletedMsg{ID: 1})
	m, _ = m.Update(todoToggledMsg{Todo: &model.Todo{ID: 2, Title: "ship release"}})

	if _, ok := m.todos.Get(1); ok {
		t.Error("confirmed delete must leave the cache")
	}
	got, ok := m.todos.Get(2)
	if !ok || got.IsCompleted {
		t.Errorf("todo 2 = %+v, want pending after confirmed toggle", got)
	}
}

func TestEarlierToggleFailureStillToasts(t *testing.T) {
	m := newTestModel()
	m, _ = m.toggleTodo(model.Todo{ID: 1})
	m, _ = m.toggleTodo(model.Todo{ID: 3})

	_, cmd := m.Update(todoToggledMsg{Err: &api.Error{Kind: api.KindServerError}})
	if cmd == nil {
		t.Fatal("a failed toggle must surface an error toast")
	}
	if toast, ok := cmd().(components.ToastAddMsg); !ok || toast.Kind != components.ToastKindError {
		t.Errorf("got %+v, want error toast", cmd())
	}
}

func TestLoadResultResetsCache(t *testing.T) {
	m := newTestModel()
	m.seq = 2
	m.loading = true

	fresh := todosLoadedMsg{Seq: 2, List: &model.TodoList{
		Todos: []model.Todo{{ID: 10, Title: "new world"}},
		Total: 1,
	}}
	m, _ = m.Update(fresh)

	if m.loading {
		t.Error("matching load result should clear loading")
	}
	all := m.todos.All()
	if len(all) != 1 || all[0].ID != 10 {
		t.Errorf("cache = %+v, want single todo 10", all)
	}
}

func TestLoadFailureEmitsErrorToast(t *testing.T) {
	m := newTestModel()
	m.seq = 1

	failure := todosLoadedMsg{Seq: 1, Err: &api.Error{Kind: api.KindNetworkError}}
	m, cmd := m.Update(failure)
	if cmd == nil {
		t.Fatal("expected toast command on failure")
	}
	toast, ok := cmd().(components.ToastAddMsg)
	if !ok {
		t.Fatalf("got %T, want ToastAddMsg", cmd())
	}
	if toast.Kind != components.ToastKindError {
		t.Errorf("toast kind = %d, want error", toast.Kind)
	}
	if m.statusBar.Connected {
		t.Error("network failure should mark the status bar disconnected")
	}
	if m.todos.Loaded() {
		t.Error("failed load should leave the cache unloaded")
	}
}

func TestSubmitEmptyTitleStaysLocal(t *testing.T) {
	m := newTestModel()
	m, _ = m.Update(key("a"))
	if m.state != StateForm {
		t.Fatal("a should open the add form")
	}

	m, _ = m.Update(key("enter"))
	if m.formError == "" {
		t.Error("empty title should produce a form error")
	}
	if m.loading {
		t.Error("validation failure must not start a request")
	}
}

func TestEditFormPrefillsFromCache(t *testing.T) {
	m := newTestModel()
	m.cursor = 1 // "ship release"

	m, _ = m.Update(key("e"))
	if m.state != StateForm {
		t.Fatal("e should open the edit form")
	}
	if m.editID != 2 {
		t.Errorf("editID = %d, want 2", m.editID)
	}
	if got := m.titleInput.Value(); got != "ship release" {
		t.Errorf("prefilled title = %q", got)
	}
}

func TestDeleteResetsOpenEditForm(t *testing.T) {
	m := newTestModel()
	m.cursor = 0
	m, _ = m.Update(key("e")) // editing todo 1

	m, _ = m.Update(todoDeletedMsg{ID: 1})
	if m.state != StateList {
		t.Error("deleting the todo open in the edit form should close the form")
	}
	if m.editID != 0 {
		t.Errorf("editID = %d after delete, want 0", m.editID)
	}
	if _, ok := m.todos.Get(1); ok {
		t.Error("deleted todo should leave the cache")
	}
}

func TestDeleteOtherTodoKeepsEditForm(t *testing.T) {
	m := newTestModel()
	m.cursor = 0
	m, _ = m.Update(key("e")) // editing todo 1

	m, _ = m.Update(todoDeletedMsg{ID: 3})
	if m.state != StateForm {
		t.Error("deleting an unrelated todo must not close the edit form")
	}
	if m.editID != 1 {
		t.Errorf("editID = %d, want 1", m.editID)
	}
}

func TestSavedResultUpsertsAndCloses(t *testing.T) {
	m := newTestModel()
	m.cursor = 0
	m, _ = m.Update(key("e"))
	m.seq = 6
	m.loading = true

	saved := todoSavedMsg{Seq: 6, Todo: &model.Todo{ID: 1, Title: "write better report"}}
	m, cmd := m.Update(saved)
	if m.state != StateList {
		t.Error("successful save should close the form")
	}
	got, ok := m.todos.Get(1)
	if !ok || got.Title != "write better report" {
		t.Errorf("cache after save = %+v", got)
	}
	if cmd == nil {
		t.Fatal("expected success toast command")
	}
	if toast, ok := cmd().(components.ToastAddMsg); !ok || toast.Kind != components.ToastKindSuccess {
		t.Errorf("expected success toast, got %+v", cmd())
	}
}

func TestTabRequestsChatScreen(t *testing.T) {
	m := newTestModel()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if cmd == nil {
		t.Fatal("tab should emit a switch command")
	}
	if _, ok := cmd().(SwitchToChatMsg); !ok {
		t.Errorf("got %T, want SwitchToChatMsg", cmd())
	}
}

func TestCtrlGRequestsLogout(t *testing.T) {
	m := newTestModel()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	if cmd == nil {
		t.Fatal("ctrl+g should emit a logout command")
	}
	if _, ok := cmd().(LogoutMsg); !ok {
		t.Errorf("got %T, want LogoutMsg", cmd())
	}
}
