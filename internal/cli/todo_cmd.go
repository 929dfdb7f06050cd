// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// todo_cmd.go - todo list/add/done/reopen/edit/rm/stats command handlers.
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/morganforge/taskdeck/internal/cache"
	"github.com/morganforge/taskdeck/internal/config"
	"github.com/morganforge/taskdeck/internal/model"
	"github.com/morganforge/taskdeck/internal/util"
)

// HandleTodo dispatches the todo subcommands.
func HandleTodo(cfg *config.Config, args Args) error {
	parser := NewArgParser(args.Raw)

	sess := NewSession(cfg, args)
	ctx := context.Background()
	if err := sess.EnsureAuthenticated(ctx); err != nil {
		return err
	}

	switch parser.Subcommand() {
	case "", "list", "ls", "l":
		return todoList(ctx, sess, parser, args)
	case "add", "new":
		return todoAdd(ctx, sess, parser, args)
	case "done", "complete":
		return todoSetCompleted(ctx, sess, parser, args, true)
	case "reopen", "undone":
		return todoSetCompleted(ctx, sess, parser, args, false)
	case "edit":
		return todoEdit(ctx, sess, parser, args)
	case "rm", "delete", "del":
		return todoRemove(ctx, sess, parser, args)
	case "stats":
		return todoStats(ctx, sess, args)
	default:
		return NewUsageError("unknown todo subcommand: %s", parser.Subcommand())
	}
}

func parseFilter(s string) (model.Filter, error) {
	switch strings.ToLower(s) {
	case "", "all":
		return model.FilterAll, nil
	case "pending", "open":
		return model.FilterPending, nil
	case "completed", "done":
		return model.FilterCompleted, nil
	default:
		return model.FilterAll, NewUsageError("unknown filter %q, want all, pending, or completed", s)
	}
}

func todoList(ctx context.Context, sess *Session, parser *ArgParser, args Args) error {
	filter, err := parseFilter(parser.FlagOrDefault("filter", "all"))
	if err != nil {
		return err
	}

	list, err := sess.Client.ListTodos(ctx)
	if err != nil {
		return err
	}

	todos := cache.NewTodoCache()
	todos.Reset(list.Todos)
	visible := todos.Filtered(filter)

	if args.JSON {
		return NewJSONResponse("todo list", TodoListData{
			Todos:  visible,
			Total:  len(visible),
			Filter: string(filter),
		}).Print()
	}

	if len(visible) == 0 {
		fmt.Println(DimStyle.Render("No todos."))
		return nil
	}

	width := GetTerminalWidth()
	for _, t := range visible {
		printTodoLine(t, width)
	}
	s := todos.Stats()
	fmt.Println(DimStyle.Render(fmt.Sprintf("%d total, %d completed, %d pending", s.Total, s.Completed, s.Pending)))
	return nil
}

func printTodoLine(t model.Todo, width int) {
	mark := PendingStyle.Render("[ ]")
	title := t.Title
	if t.IsCompleted {
		mark = DoneStyle.Render("[x]")
	}
	line := fmt.Sprintf("%s %4d  %s", mark, t.ID, title)
	fmt.Println(util.TruncateWidth(line, width))
	if t.Description != "" {
		fmt.Println(DimStyle.Render(util.TruncateWidth("         "+t.Description, width)))
	}
}

func todoAdd(ctx context.Context, sess *Session, parser *ArgParser, args Args) error {
	title := JoinPositionalArgs(parser, 1)
	if title == "" {
		return NewUsageError("usage: taskdeck todo add <title> [--desc TEXT]")
	}

	todo, err := sess.Client.CreateTodo(ctx, model.TodoInput{
		Title:       title,
		Description: parser.Flag("desc"),
	})
	if err != nil {
		return err
	}

	if args.JSON {
		return NewJSONResponse("todo add", todo).Print()
	}
	fmt.Printf("%s Created todo %d: %s\n", SuccessStyle.Render("[OK]"), todo.ID, todo.Title)
	return nil
}

func todoSetCompleted(ctx context.Context, sess *Session, parser *ArgParser, args Args, completed bool) error {
	action := "done"
	if !completed {
		action = "reopen"
	}

	id, err := ParseID(parser.Positional(1), "todo id")
	if err != nil {
		return NewUsageError("%v", err)
	}

	todo, err := sess.Client.ToggleTodo(ctx, id, completed)
	if err != nil {
		return err
	}

	if args.JSON {
		return NewJSONResponse("todo "+action, todo).Print()
	}
	state := "pending"
	if todo.IsCompleted {
		state = "completed"
	}
	fmt.Printf("%s Todo %d is now %s\n", SuccessStyle.Render("[OK]"), todo.ID, state)
	return nil
}

func todoEdit(ctx context.Context, sess *Session, parser *ArgParser, args Args) error {
	id, err := ParseID(parser.Positional(1), "todo id")
	if err != nil {
		return NewUsageError("%v", err)
	}
	if !parser.HasFlag("title") && !parser.HasFlag("desc") {
		return NewUsageError("usage: taskdeck todo edit <id> --title TEXT [--desc TEXT]")
	}

	// The backend replaces the whole todo on PUT, so unspecified fields
	// keep their current values by reading them first.
	list, err := sess.Client.ListTodos(ctx)
	if err != nil {
		return err
	}
	var current *model.Todo
	for i := range list.Todos {
		if list.Todos[i].ID == id {
			current = &list.Todos[i]
			break
		}
	}
	if current == nil {
		err := fmt.Errorf("todo %d not found", id)
		return err
	}

	in := model.TodoInput{
		Title:       current.Title,
		Description: current.Description,
	}
	if parser.HasFlag("title") {
		in.Title = parser.Flag("title")
	}
	if parser.HasFlag("desc") {
		in.Description = parser.Flag("desc")
	}

	todo, err := sess.Client.UpdateTodo(ctx, id, in)
	if err != nil {
		return err
	}

	if args.JSON {
		return NewJSONResponse("todo edit", todo).Print()
	}
	fmt.Printf("%s Updated todo %d\n", SuccessStyle.Render("[OK]"), todo.ID)
	return nil
}

func todoRemove(ctx context.Context, sess *Session, parser *ArgParser, args Args) error {
	id, err := ParseID(parser.Positional(1), "todo id")
	if err != nil {
		return NewUsageError("%v", err)
	}

	if err := sess.Client.DeleteTodo(ctx, id); err != nil {
		return err
	}

	if args.JSON {
		return NewJSONResponse("todo rm", map[string]int{"id": id}).Print()
	}
	fmt.Printf("%s Deleted todo %d\n", SuccessStyle.Render("[OK]"), id)
	return nil
}

func todoStats(ctx context.Context, sess *Session, args Args) error {
	list, err := sess.Client.ListTodos(ctx)
	if err != nil {
		return err
	}

	todos := cache.NewTodoCache()
	todos.Reset(list.Todos)
	s := todos.Stats()

	if args.JSON {
		return NewJSONResponse("todo stats", TodoStatsData{
			Total:     s.Total,
			Completed: s.Completed,
			Pending:   s.Pending,
		}).Print()
	}

	fmt.Printf("%s %d\n", LabelStyle.Render("Total"), s.Total)
	fmt.Printf("%s %s\n", LabelStyle.Render("Completed"), DoneStyle.Render(fmt.Sprintf("%d", s.Completed)))
	fmt.Printf("%s %s\n", LabelStyle.Render("Pending"), PendingStyle.Render(fmt.Sprintf("%d", s.Pending)))
	return nil
}
