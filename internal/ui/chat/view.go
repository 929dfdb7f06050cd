// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/taskdeck/internal/model"
	"github.com/morganforge/taskdeck/internal/util"
)

// View renders the chat screen.
func (m Model) View() string {
	if m.showSidebar {
		return m.renderSidebar()
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.thinking {
		b.WriteString(m.spinner.View())
		b.WriteString("\n")
	}

	b.WriteString(m.theme.InputContainer.Render(m.input.View()))
	b.WriteString("\n")

	m.statusBar.SetDetail(m.conversationDetail())
	b.WriteString(m.statusBar.View())

	return b.String()
}

// renderHeader renders the screen title line.
func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("Assistant")
	detail := m.theme.HeaderSubtitle.Render("  " + m.conversationDetail() +
		" · enter send · ctrl+j newline · ctrl+n new · ctrl+s conversations")
	return title + detail
}

// conversationDetail names the active conversation for display.
func (m Model) conversationDetail() string {
	id := m.convs.ActiveID()
	if id == nil {
		return "new conversation"
	}
	for _, conv := range m.convs.List() {
		if conv.ID == *id {
			return util.TruncateWidth(conv.DisplayTitle(), 40)
		}
	}
	return fmt.Sprintf("conversation %d", *id)
}

// refreshViewport rebuilds the transcript content and scrolls to the end.
// The log is append-only, so jumping to the bottom always lands on the
// newest exchange.
func (m *Model) refreshViewport() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

// renderTranscript renders all messages of the active conversation.
func (m *Model) renderTranscript() string {
	messages := m.convs.Messages()
	if len(messages) == 0 {
		return m.theme.FormHint.Render("Ask anything about your todos. The assistant can read and change them.")
	}

	var b strings.Builder
	for i := range messages {
		b.WriteString(m.renderMessage(&messages[i]))
		b.WriteString("\n\n")
	}
	return b.String()
}

// renderMessage renders a single chat bubble.
func (m *Model) renderMessage(msg *model.Message) string {
	bubbleWidth := m.width - 8
	if bubbleWidth < 20 {
		bubbleWidth = 20
	}

	switch msg.Role {
	case model.RoleUser:
		bubble := m.theme.UserBubble.MaxWidth(bubbleWidth).Render(msg.DisplayContent())
		if m.width > 0 {
			return lipgloss.PlaceHorizontal(m.width, lipgloss.Right, bubble)
		}
		return bubble

	case model.RoleAssistant:
		content := msg.DisplayContent()
		if m.renderer != nil {
			if rendered, err := m.renderer.Render(content); err == nil {
				content = strings.TrimRight(rendered, "\n")
			}
		}
		bubble := m.theme.AssistantBubble.MaxWidth(bubbleWidth).Render(content)
		if m.showToolCalls && msg.ToolCallCount() > 0 {
			note := fmt.Sprintf("(used %d tool call(s))", msg.ToolCallCount())
			bubble += "\n" + m.theme.ConversationMeta.Render(note)
		}
		return bubble

	default:
		return m.theme.SystemBubble.MaxWidth(bubbleWidth).Render(msg.DisplayContent())
	}
}

// renderSidebar renders the conversation list overlay.
func (m Model) renderSidebar() string {
	list := m.convs.List()

	var b strings.Builder
	b.WriteString(m.theme.ConversationTitle.Render("Conversations"))
	b.WriteString("\n\n")

	if len(list) == 0 {
		b.WriteString(m.theme.FormHint.Render("No conversations yet."))
	}

	active := m.convs.ActiveID()
	for i, conv := range list {
		title := util.TruncateWidth(conv.DisplayTitle(), 50)
		marker := "  "
		if active != nil && conv.ID == *active {
			marker = "* "
		}
		line := marker + title
		if i == m.sidebarCursor {
			b.WriteString(m.theme.ConversationItemSelected.Render(line))
		} else {
			b.WriteString(m.theme.ConversationItem.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.FormHint.Render("enter open · d delete · esc close"))

	box := m.theme.ConversationList.Render(b.String())
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}
