// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/taskdeck/internal/api"
	"github.com/morganforge/taskdeck/internal/cache"
	"github.com/morganforge/taskdeck/internal/model"
	"github.com/morganforge/taskdeck/internal/ui/components"
	"github.com/morganforge/taskdeck/internal/ui/styles"
)

func newTestModel() Model {
	convs := cache.NewConversationCache()
	m := New(styles.NewTheme(), api.NewClient("http://127.0.0.1:1"), convs)
	m.SetSize(100, 30)
	return m
}

func exchange(id int, userText, assistantText string) model.ChatResponse {
	now := time.Now()
	return model.ChatResponse{
		ConversationID:   id,
		UserMessage:      model.Message{ID: 1, Role: model.RoleUser, Content: userText, CreatedAt: now},
		AssistantMessage: model.Message{ID: 2, Role: model.RoleAssistant, Content: assistantText, CreatedAt: now},
	}
}

func TestSendIgnoresEmptyInput(t *testing.T) {
	m := newTestModel()

	m2, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m2.thinking {
		t.Error("empty input must not start an exchange")
	}
	if cmd != nil {
		t.Error("empty input must not emit a command")
	}
}

func TestSendClearsInputAndSetsThinking(t *testing.T) {
	m := newTestModel()
	m.input.SetValue("hello there")

	m2, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m2.thinking {
		t.Error("send should enter the thinking state")
	}
	if m2.input.Value() != "" {
		t.Error("send should clear the input")
	}
	if cmd == nil {
		t.Error("send should emit the request command")
	}
}

func TestSendWhileThinkingIsIgnored(t *testing.T) {
	m := newTestModel()
	m.thinking = true
	m.input.SetValue("second question")

	m2, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("a second send while one is in flight must be ignored")
	}
	if m2.input.Value() != "second question" {
		t.Error("ignored send must not clear the input")
	}
}

func TestStaleExchangeResultIsDropped(t *testing.T) {
	m := newTestModel()
	m.seq = 5
	m.thinking = true

	resp := exchange(1, "q", "a")
	m2, _ := m.Update(exchangeResultMsg{Seq: 4, Resp: &resp})
	if !m2.thinking {
		t.Error("stale result must not clear the thinking state")
	}
	if len(m2.convs.Messages()) != 0 {
		t.Error("stale result must not append to the log")
	}
}

func TestExchangeResultAppendsInOrder(t *testing.T) {
	m := newTestModel()
	m.seq = 1
	m.thinking = true

	resp := exchange(7, "what is pending?", "You have two pending todos.")
	m2, _ := m.Update(exchangeResultMsg{Seq: 1, Resp: &resp})

	if m2.thinking {
		t.Error("matching result should clear the thinking state")
	}
	msgs := m2.convs.Messages()
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if msgs[0].Role != model.RoleUser || msgs[1].Role != model.RoleAssistant {
		t.Errorf("message order = %s, %s; want user, assistant", msgs[0].Role, msgs[1].Role)
	}
	if id := m2.convs.ActiveID(); id == nil || *id != 7 {
		t.Errorf("active conversation = %v, want 7", id)
	}
}

func TestExchangeFailureEmitsErrorToast(t *testing.T) {
	m := newTestModel()
	m.seq = 2
	m.thinking = true

	m2, cmd := m.Update(exchangeResultMsg{Seq: 2, Err: &api.Error{Kind: api.KindServerError}})
	if m2.thinking {
		t.Error("failure should clear the thinking state")
	}
	if cmd == nil {
		t.Fatal("expected toast command on failure")
	}
	toast, ok := cmd().(components.ToastAddMsg)
	if !ok || toast.Kind != components.ToastKindError {
		t.Errorf("expected error toast, got %+v", cmd())
	}
	if len(m2.convs.Messages()) != 0 {
		t.Error("failed exchange must not append to the log")
	}
}

func TestNewConversationKey(t *testing.T) {
	m := newTestModel()
	m.seq = 1
	m.thinking = true
	resp := exchange(3, "q", "a")
	m, _ = m.Update(exchangeResultMsg{Seq: 1, Resp: &resp})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	if m.convs.ActiveID() != nil {
		t.Error("ctrl+n should start a new conversation")
	}
	if len(m.convs.Messages()) != 0 {
		t.Error("new conversation should clear the visible log")
	}
}

func TestSidebarDeleteAdjustsCursor(t *testing.T) {
	m := newTestModel()
	m.convs.ResetList([]model.Conversation{{ID: 1, Title: "a"}, {ID: 2, Title: "b"}})
	m.showSidebar = true
	m.sidebarCursor = 1

	m, _ = m.Update(conversationDeletedMsg{ID: 2})
	if m.sidebarCursor != 0 {
		t.Errorf("cursor = %d after deleting last entry, want 0", m.sidebarCursor)
	}
	if len(m.convs.List()) != 1 {
		t.Errorf("list length = %d, want 1", len(m.convs.List()))
	}
}

func TestDeleteConfirmationFoldsAfterNewerRequest(t *testing.T) {
	m := newTestModel()
	m.convs.ResetList([]model.Conversation{{ID: 1, Title: "a"}, {ID: 2, Title: "b"}})

	// A list refresh was issued after the delete; the delete confirmation
	// must still remove the conversation when it lands.
	m.seq = 7
	m, _ = m.Update(conversationDeletedMsg{ID: 1})
	list := m.convs.List()
	if len(list) != 1 || list[0].ID != 2 {
		t.Errorf("list = %+v, want only conversation 2 after confirmed delete", list)
	}
}

func TestTabRequestsDashboard(t *testing.T) {
	m := newTestModel()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if cmd == nil {
		t.Fatal("tab should emit a switch command")
	}
	if _, ok := cmd().(SwitchToDashboardMsg); !ok {
		t.Errorf("got %T, want SwitchToDashboardMsg", cmd())
	}
}

func TestTranscriptRendersToolCallNote(t *testing.T) {
	m := newTestModel()
	m.renderer = nil // plain text keeps the assertion simple
	m.seq = 1
	resp := exchange(1, "add milk", "Done, added it.")
	resp.AssistantMessage.ToolCalls = []json.RawMessage{json.RawMessage(`{}`), json.RawMessage(`{}`)}
	m.convs.AppendExchange(resp)

	out := m.renderTranscript()
	if !strings.Contains(out, "used 2 tool call(s)") {
		t.Errorf("transcript missing tool call note: %q", out)
	}
}
