// Copyright (c) 2026 Bigganboloy Project
// SPDX-License-Identifier: GPL-3.0-or-later

// Package markdown converts post content to sanitized HTML. Post bodies
// are user-generated Markdown, so the rendered output always passes
// through the sanitizer before reaching a page.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// htmlSanitizer allows safe HTML tags for user-generated content while
// stripping dangerous elements like <script> and event handlers.
var htmlSanitizer = bluemonday.UGCPolicy()

var renderer = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// Render converts Markdown to sanitized HTML.
func Render(content string) (string, error) {
	var buf bytes.Buffer
	if err := renderer.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return htmlSanitizer.Sanitize(buf.String()), nil
}
