// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/taskdeck/internal/api"
)

// sendMessageCmd posts a chat message. conversationID is nil for a new
// conversation; the server's response carries the authoritative id.
func sendMessageCmd(client *api.Client, text string, conversationID *int, seq int) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.SendMessage(context.Background(), text, conversationID)
		return exchangeResultMsg{Seq: seq, Resp: resp, Err: err}
	}
}

// loadConversationsCmd fetches the conversation list.
func loadConversationsCmd(client *api.Client, seq int) tea.Cmd {
	return func() tea.Msg {
		list, err := client.ListConversations(context.Background())
		return conversationsLoadedMsg{Seq: seq, List: list, Err: err}
	}
}

// openConversationCmd fetches a conversation transcript.
func openConversationCmd(client *api.Client, id int, seq int) tea.Cmd {
	return func() tea.Msg {
		conv, err := client.GetConversation(context.Background(), id)
		return conversationOpenedMsg{Seq: seq, Conv: conv, Err: err}
	}
}

// deleteConversationCmd removes a conversation.
func deleteConversationCmd(client *api.Client, id int) tea.Cmd {
	return func() tea.Msg {
		err := client.DeleteConversation(context.Background(), id)
		return conversationDeletedMsg{ID: id, Err: err}
	}
}
