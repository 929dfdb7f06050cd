// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"regexp"
	"strings"
)

// Message content is rendered into the terminal after passing through a
// markdown renderer. The server is not trusted to have fully sanitized
// assistant output, and the renderer is not trusted alone either, so
// executable markup constructs are stripped here before display.

var (
	// scriptTagPattern matches <script ...>...</script> fragments,
	// including unterminated openings.
	scriptTagPattern = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>|<script\b[^>]*>`)

	// eventHandlerPattern matches inline event-handler attributes such as
	// onclick="..." or onerror='...'.
	eventHandlerPattern = regexp.MustCompile(`(?i)\bon\w+\s*=\s*("[^"]*"|'[^']*')`)
)

// SanitizeContent strips script-tag fragments and inline event-handler
// attributes from untrusted message content and trims surrounding
// whitespace. Plain text and markdown pass through unchanged.
func SanitizeContent(content string) string {
	if content == "" {
		return ""
	}
	cleaned := scriptTagPattern.ReplaceAllString(content, "")
	cleaned = eventHandlerPattern.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}
