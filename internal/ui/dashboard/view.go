// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/taskdeck/internal/model"
	"github.com/morganforge/taskdeck/internal/ui/styles"
	"github.com/morganforge/taskdeck/internal/util"
)

// View renders the dashboard screen.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderFilterTabs())
	b.WriteString("\n\n")

	if m.state == StateForm {
		b.WriteString(m.renderForm())
	} else {
		b.WriteString(m.renderList())
	}

	content := b.String()

	// Pin the status bar to the bottom
	m.statusBar.SetDetail(m.statsDetail())
	bar := m.statusBar.View()
	contentHeight := m.height - lipgloss.Height(bar)
	if contentHeight > 0 {
		content = lipgloss.NewStyle().Height(contentHeight).Render(content)
	}

	return content + "\n" + bar
}

// renderHeader renders the screen title line.
func (m Model) renderHeader() string {
	stats := m.todos.Stats()
	title := m.theme.HeaderTitle.Render("Todos")
	counts := m.theme.HeaderSubtitle.Render(
		fmt.Sprintf("  %d total · %d pending · %d completed", stats.Total, stats.Pending, stats.Completed))
	return title + counts
}

// renderFilterTabs renders the all/pending/completed tab row.
func (m Model) renderFilterTabs() string {
	tabs := []model.Filter{model.FilterAll, model.FilterPending, model.FilterCompleted}
	parts := make([]string, 0, len(tabs))
	for _, f := range tabs {
		label := string(f)
		if f == m.filter {
			parts = append(parts, m.theme.FilterTabActive.Render(label))
		} else {
			parts = append(parts, m.theme.FilterTab.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

// renderList renders the filtered todo rows.
func (m Model) renderList() string {
	visible := m.Visible()

	if m.loading && !m.todos.Loaded() {
		return m.spinner.View()
	}

	if len(visible) == 0 {
		switch m.filter {
		case model.FilterPending:
			return m.theme.FormHint.Render("Nothing pending. Press a to add a todo.")
		case model.FilterCompleted:
			return m.theme.FormHint.Render("Nothing completed yet.")
		default:
			return m.theme.FormHint.Render("No todos yet. Press a to add one.")
		}
	}

	var b strings.Builder
	for i, todo := range visible {
		b.WriteString(m.renderRow(todo, i == m.cursor))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.FormHint.Render("a add · e edit · space toggle · d delete · f filter · r reload"))
	return b.String()
}

// renderRow renders one todo line plus its description when selected.
func (m Model) renderRow(todo model.Todo, selected bool) string {
	maxTitle := m.width - 10
	if maxTitle < 20 {
		maxTitle = 20
	}

	// Truncate before styling so the ANSI escapes stay intact.
	titleText := util.TruncateWidth(todo.Title, maxTitle)
	check := m.theme.TodoCheckPending.Render(styles.StatusIndicators.Pending)
	title := m.theme.TodoTitlePending.Render(titleText)
	if todo.IsCompleted {
		check = m.theme.TodoCheckDone.Render(styles.StatusIndicators.Success)
		title = m.theme.TodoTitleDone.Render(titleText)
	}
	line := check + " " + title

	rowStyle := m.theme.TodoItem
	if selected {
		rowStyle = m.theme.TodoItemSelected
	}
	row := rowStyle.Render(line)

	if selected && todo.Description != "" {
		row += "\n" + m.theme.TodoDescription.Render(util.TruncateWidth(todo.Description, maxTitle))
	}
	return row
}

// renderForm renders the add/edit form.
func (m Model) renderForm() string {
	var b strings.Builder

	title := "Add todo"
	if m.editID != 0 {
		title = "Edit todo"
	}
	b.WriteString(m.theme.FormTitle.Render(title))
	b.WriteString("\n\n")

	b.WriteString(m.theme.FormLabel.Render("Title"))
	b.WriteString("\n")
	b.WriteString(m.titleInput.View())
	b.WriteString("\n\n")

	b.WriteString(m.theme.FormLabel.Render("Description"))
	b.WriteString("\n")
	b.WriteString(m.descInput.View())
	b.WriteString("\n")

	if m.formError != "" {
		b.WriteString("\n")
		b.WriteString(m.theme.FormError.Render(m.formError))
		b.WriteString("\n")
	}

	if m.loading {
		b.WriteString("\n")
		b.WriteString(m.spinner.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.FormHint.Render("enter save · esc cancel · tab next field"))

	return m.theme.FormBox.Render(b.String())
}
