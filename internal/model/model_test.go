// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

// =============================================================================
// TODO VALIDATION TESTS
// =============================================================================

func TestTodoInputValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   TodoInput
		wantErr error
	}{
		{"valid", TodoInput{Title: "Buy milk"}, nil},
		{"valid with description", TodoInput{Title: "Buy milk", Description: "2L"}, nil},
		{"empty title", TodoInput{Title: ""}, ErrTitleRequired},
		{"whitespace title", TodoInput{Title: "   \t "}, ErrTitleRequired},
		{"too long", TodoInput{Title: strings.Repeat("x", MaxTitleLength+1)}, ErrTitleTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTodoInputNormalize(t *testing.T) {
	in := TodoInput{Title: "  Buy milk  ", Description: " 2L \n"}
	in.Normalize()
	if in.Title != "Buy milk" {
		t.Errorf("Title = %q, want %q", in.Title, "Buy milk")
	}
	if in.Description != "2L" {
		t.Errorf("Description = %q, want %q", in.Description, "2L")
	}
}

// =============================================================================
// FILTER TESTS
// =============================================================================

func TestFilterMatches(t *testing.T) {
	done := Todo{ID: 1, Title: "done", IsCompleted: true}
	open := Todo{ID: 2, Title: "open", IsCompleted: false}

	if !FilterAll.Matches(done) || !FilterAll.Matches(open) {
		t.Error("FilterAll should match everything")
	}
	if FilterPending.Matches(done) {
		t.Error("FilterPending matched a completed todo")
	}
	if !FilterPending.Matches(open) {
		t.Error("FilterPending should match an open todo")
	}
	if !FilterCompleted.Matches(done) {
		t.Error("FilterCompleted should match a completed todo")
	}
	if FilterCompleted.Matches(open) {
		t.Error("FilterCompleted matched an open todo")
	}
}

func TestFilterNextCycles(t *testing.T) {
	f := FilterAll
	seen := []Filter{f}
	for i := 0; i < 3; i++ {
		f = f.Next()
		seen = append(seen, f)
	}
	want := []Filter{FilterAll, FilterPending, FilterCompleted, FilterAll}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("cycle[%d] = %q, want %q", i, seen[i], want[i])
		}
	}
}

// =============================================================================
// CREDENTIALS TESTS
// =============================================================================

func TestCredentialsValidate(t *testing.T) {
	tests := []struct {
		name    string
		creds   Credentials
		wantErr error
	}{
		{"valid", Credentials{Email: "a@b.com", Password: "secret123"}, nil},
		{"missing email", Credentials{Password: "secret123"}, ErrEmailRequired},
		{"bad email", Credentials{Email: "not-an-email", Password: "x"}, ErrEmailInvalid},
		{"no domain dot", Credentials{Email: "a@localhost", Password: "x"}, ErrEmailInvalid},
		{"missing password", Credentials{Email: "a@b.com"}, ErrPasswordRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.creds.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCredentialsValidateForRegister(t *testing.T) {
	short := Credentials{Email: "a@b.com", Password: "short"}
	if err := short.ValidateForRegister(); !errors.Is(err, ErrPasswordTooShort) {
		t.Errorf("ValidateForRegister() = %v, want ErrPasswordTooShort", err)
	}

	ok := Credentials{Email: "a@b.com", Password: "secret123"}
	if err := ok.ValidateForRegister(); err != nil {
		t.Errorf("ValidateForRegister() = %v, want nil", err)
	}
}

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestMessagePreview(t *testing.T) {
	m := Message{Role: RoleUser, Content: "hello world, this is a long message"}
	got := m.Preview(14)
	if got != "hello world," && len([]rune(got)) > 14 {
		t.Errorf("Preview(14) = %q, exceeds limit", got)
	}

	short := Message{Role: RoleUser, Content: "hi"}
	if short.Preview(10) != "hi" {
		t.Errorf("Preview should return short content untouched")
	}
}

func TestMessageToolCallCount(t *testing.T) {
	m := Message{
		Role:      RoleAssistant,
		Content:   "done",
		ToolCalls: []json.RawMessage{json.RawMessage(`{"name":"add_todo"}`)},
	}
	if m.ToolCallCount() != 1 {
		t.Errorf("ToolCallCount() = %d, want 1", m.ToolCallCount())
	}
}

func TestRoleDisplayName(t *testing.T) {
	if RoleUser.DisplayName() != "You" {
		t.Errorf("RoleUser.DisplayName() = %q", RoleUser.DisplayName())
	}
	if RoleAssistant.DisplayName() != "Assistant" {
		t.Errorf("RoleAssistant.DisplayName() = %q", RoleAssistant.DisplayName())
	}
}

// =============================================================================
// CONVERSATION TESTS
// =============================================================================

func TestConversationDisplayTitle(t *testing.T) {
	c := Conversation{ID: 7, Title: "Groceries"}
	if c.DisplayTitle() != "Groceries" {
		t.Errorf("DisplayTitle() = %q", c.DisplayTitle())
	}

	untitled := Conversation{ID: 8, Messages: []Message{{Role: RoleUser, Content: "add a task to call mom"}}}
	if untitled.DisplayTitle() != "add a task to call mom" {
		t.Errorf("DisplayTitle() = %q, want first message preview", untitled.DisplayTitle())
	}

	empty := Conversation{ID: 9}
	if empty.DisplayTitle() != "New conversation" {
		t.Errorf("DisplayTitle() = %q, want fallback", empty.DisplayTitle())
	}
}
