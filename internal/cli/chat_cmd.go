// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat_cmd.go - ask and conversations command handlers.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/morganforge/taskdeck/internal/config"
	"github.com/morganforge/taskdeck/internal/model"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdownRenderer renders assistant replies as styled terminal markdown.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fallback to plain text if renderer initialization fails
		markdownRenderer = nil
	}
}

// renderMarkdown renders content as markdown, falling back to plain text.
func renderMarkdown(content string) string {
	if markdownRenderer == nil || !IsStdoutTTY() {
		return content
	}
	out, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return out
}

// =============================================================================
// ASK COMMAND
// =============================================================================

// HandleAsk sends one message to the assistant and prints the reply.
func HandleAsk(cfg *config.Config, args Args) error {
	parser := NewArgParser(args.Raw)
	message := JoinPositionalArgs(parser, 0)
	if message == "" {
		return NewUsageError(`usage: taskdeck ask "message" [--conversation ID]`)
	}

	var convID *int
	if parser.HasFlag("conversation") {
		id, err := parser.FlagInt("conversation")
		if err != nil || id <= 0 {
			return NewUsageError("--conversation must be a positive integer")
		}
		convID = &id
	}

	sess := NewSession(cfg, args)
	ctx := context.Background()
	if err := sess.EnsureAuthenticated(ctx); err != nil {
		return err
	}

	start := time.Now()
	resp, err := sess.Client.SendMessage(ctx, message, convID)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	reply := resp.AssistantMessage.DisplayContent()
	toolCalls := resp.AssistantMessage.ToolCallCount()

	if args.JSON {
		return NewJSONResponse("ask", AskData{
			ConversationID: resp.ConversationID,
			Reply:          reply,
			ToolCalls:      toolCalls,
			DurationMs:     elapsed.Milliseconds(),
		}).Print()
	}

	if toolCalls > 0 && cfg.UI.ShowToolCalls {
		fmt.Println(DimStyle.Render(fmt.Sprintf("(used %d tool call(s))", toolCalls)))
	}
	if cfg.UI.Markdown && !parser.BoolFlag("plain") {
		fmt.Print(renderMarkdown(reply))
	} else {
		fmt.Println(reply)
	}
	if !args.Quiet {
		fmt.Println(DimStyle.Render(fmt.Sprintf("conversation %d · %s", resp.ConversationID, elapsed.Round(time.Millisecond))))
	}
	return nil
}

// =============================================================================
// CONVERSATIONS COMMAND
// =============================================================================

// HandleConversations dispatches the conversations subcommands.
func HandleConversations(cfg *config.Config, args Args) error {
	parser := NewArgParser(args.Raw)

	sess := NewSession(cfg, args)
	ctx := context.Background()
	if err := sess.EnsureAuthenticated(ctx); err != nil {
		return err
	}

	switch parser.Subcommand() {
	case "", "list", "ls":
		return conversationsList(ctx, sess, args)
	case "show":
		return conversationsShow(ctx, sess, parser, args, cfg)
	case "rm", "delete", "del":
		return conversationsRemove(ctx, sess, parser, args)
	default:
		return NewUsageError("unknown conversations subcommand: %s", parser.Subcommand())
	}
}

func conversationsList(ctx context.Context, sess *Session, args Args) error {
	list, err := sess.Client.ListConversations(ctx)
	if err != nil {
		return err
	}

	if args.JSON {
		return NewJSONResponse("conversations list", ConversationListData{
			Conversations: list.Conversations,
			Total:         len(list.Conversations),
		}).Print()
	}

	if len(list.Conversations) == 0 {
		fmt.Println(DimStyle.Render("No conversations."))
		return nil
	}

	for _, c := range list.Conversations {
		fmt.Printf("%4d  %s  %s\n", c.ID,
			ValueStyle.Render(c.DisplayTitle()),
			DimStyle.Render(c.UpdatedAt.Local().Format("2006-01-02 15:04")))
	}
	return nil
}

func conversationsShow(ctx context.Context, sess *Session, parser *ArgParser, args Args, cfg *config.Config) error {
	id, err := ParseID(parser.Positional(1), "conversation id")
	if err != nil {
		return NewUsageError("%v", err)
	}

	conv, err := sess.Client.GetConversation(ctx, id)
	if err != nil {
		return err
	}

	if args.JSON {
		return NewJSONResponse("conversations show", conv).Print()
	}

	fmt.Println(TitleStyle.Render(conv.DisplayTitle()))
	for _, m := range conv.Messages {
		printTranscriptMessage(m, cfg)
	}
	return nil
}

func printTranscriptMessage(m model.Message, cfg *config.Config) {
	name := m.Role.DisplayName()
	switch m.Role {
	case model.RoleUser:
		fmt.Println(PendingStyle.Render(name + ":"))
		fmt.Println(m.DisplayContent())
	case model.RoleAssistant:
		fmt.Println(DoneStyle.Render(name + ":"))
		if cfg.UI.ShowToolCalls && m.ToolCallCount() > 0 {
			fmt.Println(DimStyle.Render(fmt.Sprintf("(used %d tool call(s))", m.ToolCallCount())))
		}
		if cfg.UI.Markdown {
			fmt.Print(renderMarkdown(m.DisplayContent()))
		} else {
			fmt.Println(m.DisplayContent())
		}
	default:
		fmt.Println(name + ":")
		fmt.Println(m.DisplayContent())
	}
	fmt.Println()
}

func conversationsRemove(ctx context.Context, sess *Session, parser *ArgParser, args Args) error {
	id, err := ParseID(parser.Positional(1), "conversation id")
	if err != nil {
		return NewUsageError("%v", err)
	}

	if err := sess.Client.DeleteConversation(ctx, id); err != nil {
		return err
	}

	if args.JSON {
		return NewJSONResponse("conversations rm", map[string]int{"id": id}).Print()
	}
	fmt.Printf("%s Deleted conversation %d\n", SuccessStyle.Render("[OK]"), id)
	return nil
}
