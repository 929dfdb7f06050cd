// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cache

import (
	"testing"

	"github.com/morganforge/taskdeck/internal/model"
)

func todo(id int, title string, done bool) model.Todo {
	return model.Todo{ID: id, Title: title, IsCompleted: done}
}

func TestTodoCacheResetAdoptsServerOrder(t *testing.T) {
	c := NewTodoCache()
	if c.Loaded() {
		t.Error("fresh cache should not be loaded")
	}

	c.Reset([]model.Todo{todo(3, "c", false), todo(1, "a", true)})

	if !c.Loaded() {
		t.Error("cache should be loaded after Reset")
	}
	all := c.All()
	if len(all) != 2 || all[0].ID != 3 || all[1].ID != 1 {
		t.Errorf("All() = %+v, want server order [3, 1]", all)
	}
}

func TestTodoCacheResetFailed(t *testing.T) {
	c := NewTodoCache()
	c.Reset([]model.Todo{todo(1, "a", false)})
	c.ResetFailed()

	if c.Loaded() {
		t.Error("cache should be unloaded after a failed fetch")
	}
	if got := c.All(); len(got) != 0 {
		t.Errorf("All() after ResetFailed = %+v, want empty", got)
	}
}

func TestTodoCacheUpsertPrependsNew(t *testing.T) {
	c := NewTodoCache()
	c.Reset([]model.Todo{todo(1, "a", false)})

	c.Upsert(todo(42, "created", false))

	all := c.All()
	if len(all) != 2 || all[0].ID != 42 {
		t.Errorf("created todo should be prepended, got %+v", all)
	}
}

func TestTodoCacheUpsertReplacesInPlace(t *testing.T) {
	c := NewTodoCache()
	c.Reset([]model.Todo{todo(2, "b", false), todo(1, "a", false)})

	c.Upsert(todo(1, "a", true))
	c.Upsert(todo(1, "a", true))

	all := c.All()
	if len(all) != 2 {
		t.Fatalf("replaying the same response must not duplicate, got %d todos", len(all))
	}
	if all[1].ID != 1 || !all[1].IsCompleted {
		t.Errorf("todo 1 should be completed in place, got %+v", all[1])
	}
}

func TestTodoCacheRemoveIdempotent(t *testing.T) {
	c := NewTodoCache()
	c.Reset([]model.Todo{todo(1, "a", false), todo(2, "b", false)})

	c.Remove(1)
	c.Remove(1)

	all := c.All()
	if len(all) != 1 || all[0].ID != 2 {
		t.Errorf("All() = %+v, want only todo 2", all)
	}
}

func TestTodoCacheStatsMatchCollection(t *testing.T) {
	c := NewTodoCache()
	c.Reset([]model.Todo{todo(1, "a", true), todo(2, "b", false), todo(3, "c", false)})

	s := c.Stats()
	if s.Total != 3 || s.Completed != 1 || s.Pending != 2 {
		t.Errorf("Stats() = %+v", s)
	}

	c.Upsert(todo(2, "b", true))
	c.Remove(3)

	s = c.Stats()
	if s.Total != 2 || s.Completed != 2 || s.Pending != 0 {
		t.Errorf("Stats() after mutations = %+v", s)
	}
	if s.Completed+s.Pending != s.Total {
		t.Error("counters must always sum to the total")
	}
}

func TestTodoCacheFiltered(t *testing.T) {
	c := NewTodoCache()
	c.Reset([]model.Todo{todo(1, "a", true), todo(2, "b", false)})

	pending := c.Filtered(model.FilterPending)
	if len(pending) != 1 || pending[0].ID != 2 {
		t.Errorf("pending = %+v", pending)
	}
	completed := c.Filtered(model.FilterCompleted)
	if len(completed) != 1 || completed[0].ID != 1 {
		t.Errorf("completed = %+v", completed)
	}
}

func TestTodoCacheGet(t *testing.T) {
	c := NewTodoCache()
	c.Reset([]model.Todo{todo(1, "a", false)})

	if got, ok := c.Get(1); !ok || got.Title != "a" {
		t.Errorf("Get(1) = %+v, %v", got, ok)
	}
	if _, ok := c.Get(99); ok {
		t.Error("Get(99) should miss")
	}
}

func msg(id int, role model.Role, content string) model.Message {
	return model.Message{ID: id, Role: role, Content: content}
}

func TestConversationCacheNewConversationExchange(t *testing.T) {
	c := NewConversationCache()

	if c.ActiveID() != nil {
		t.Error("fresh cache should have no active conversation")
	}

	c.AppendExchange(model.ChatResponse{
		ConversationID:   7,
		UserMessage:      msg(1, model.RoleUser, "hello"),
		AssistantMessage: msg(2, model.RoleAssistant, "hi there"),
	})

	id := c.ActiveID()
	if id == nil || *id != 7 {
		t.Fatalf("ActiveID() = %v, want 7", id)
	}
	msgs := c.Messages()
	if len(msgs) != 2 || msgs[0].Role != model.RoleUser || msgs[1].Role != model.RoleAssistant {
		t.Errorf("Messages() = %+v, want [user, assistant]", msgs)
	}
	list := c.List()
	if len(list) != 1 || list[0].ID != 7 {
		t.Errorf("new conversation should appear in the listing, got %+v", list)
	}
}

func TestConversationCacheAppendIsOrdered(t *testing.T) {
	c := NewConversationCache()
	c.Open(model.Conversation{ID: 3, Messages: []model.Message{
		msg(1, model.RoleUser, "first"),
		msg(2, model.RoleAssistant, "reply"),
	}})

	c.AppendExchange(model.ChatResponse{
		ConversationID:   3,
		UserMessage:      msg(3, model.RoleUser, "second"),
		AssistantMessage: msg(4, model.RoleAssistant, "another reply"),
	})

	msgs := c.Messages()
	if len(msgs) != 4 {
		t.Fatalf("got %d messages, want 4", len(msgs))
	}
	for i, want := range []int{1, 2, 3, 4} {
		if msgs[i].ID != want {
			t.Errorf("msgs[%d].ID = %d, want %d", i, msgs[i].ID, want)
		}
	}
}

func TestConversationCacheStartNew(t *testing.T) {
	c := NewConversationCache()
	c.Open(model.Conversation{ID: 3, Messages: []model.Message{msg(1, model.RoleUser, "x")}})

	c.StartNew()

	if c.ActiveID() != nil {
		t.Error("StartNew should clear the active conversation")
	}
	if len(c.Messages()) != 0 {
		t.Error("StartNew should clear the message log")
	}
}

func TestConversationCacheRemoveActive(t *testing.T) {
	c := NewConversationCache()
	c.ResetList([]model.Conversation{{ID: 3}, {ID: 5}})
	c.Open(model.Conversation{ID: 3, Messages: []model.Message{msg(1, model.RoleUser, "x")}})

	c.RemoveConversation(3)

	list := c.List()
	if len(list) != 1 || list[0].ID != 5 {
		t.Errorf("List() = %+v, want only 5", list)
	}
	if c.ActiveID() != nil {
		t.Error("removing the open conversation should clear the log")
	}
}

func TestConversationCacheRemoveInactiveKeepsLog(t *testing.T) {
	c := NewConversationCache()
	c.ResetList([]model.Conversation{{ID: 3}, {ID: 5}})
	c.Open(model.Conversation{ID: 3, Messages: []model.Message{msg(1, model.RoleUser, "x")}})

	c.RemoveConversation(5)

	if id := c.ActiveID(); id == nil || *id != 3 {
		t.Errorf("ActiveID() = %v, want 3", id)
	}
	if len(c.Messages()) != 1 {
		t.Error("removing another conversation must not touch the open log")
	}
}
