// Copyright (c) 2026 Bigganboloy Project
// SPDX-License-Identifier: GPL-3.0-or-later

// Package assist provides the AI writing assistant used during post
// authoring: draft generation and tag suggestion. The assistant is best
// effort; every failure maps to a reader-facing Bengali fallback so the
// authoring flow never breaks on model errors.
package assist

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Reader-facing fallback strings.
const (
	MsgEmptyDraft       = "দুঃখিত, কন্টেন্ট জেনারেট করা সম্ভব হয়নি।"
	MsgDraftUnavailable = "নেটওয়ার্ক সমস্যা বা API কোটার কারণে কন্টেন্ট জেনারেট করা যায়নি। দয়া করে কিছুক্ষণ পর চেষ্টা করুন।"
)

// DefaultTags is suggested when the model yields nothing usable.
var DefaultTags = []string{"বিজ্ঞান", "প্রযুক্তি"}

// tagContextLimit is how many runes of post content go into the tag
// suggestion prompt.
const tagContextLimit = 500

// ChatClient is the completion backend.
type ChatClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Generator produces drafts and tag suggestions.
type Generator struct {
	chat    ChatClient
	timeout time.Duration
	retries int
	logger  *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithTimeout sets the per-attempt timeout.
func WithTimeout(d time.Duration) Option {
	return func(g *Generator) { g.timeout = d }
}

// WithRetries sets how many times a failed attempt is retried.
func WithRetries(n int) Option {
	return func(g *Generator) { g.retries = n }
}

// NewGenerator creates a Generator backed by chat.
func NewGenerator(chat ChatClient, logger *slog.Logger, opts ...Option) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	g := &Generator{
		chat:    chat,
		timeout: 30 * time.Second,
		retries: 2,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Draft generates a Bengali blog section about topic. It always returns
// usable text: model failures yield the fallback message instead of an
// error.
func (g *Generator) Draft(ctx context.Context, topic string) string {
	prompt := fmt.Sprintf("Write a comprehensive and engaging blog post section about %q "+
		"in Bengali language. Keep it scientific but easy to understand. "+
		"Use Markdown formatting. Max 300 words.", topic)

	text, err := g.complete(ctx, prompt)
	if err != nil {
		g.logger.Warn("draft generation failed", "topic", topic, "error", err)
		return MsgDraftUnavailable
	}
	if strings.TrimSpace(text) == "" {
		return MsgEmptyDraft
	}
	return text
}

// Tags suggests 3-5 single-word Bengali tags for content. Failures and
// unusable responses fall back to DefaultTags.
func (g *Generator) Tags(ctx context.Context, content string) []string {
	excerpt := content
	if runes := []rune(content); len(runes) > tagContextLimit {
		excerpt = string(runes[:tagContextLimit])
	}
	prompt := "Analyze the following Bengali text and suggest 3-5 relevant single-word tags " +
		"in Bengali. Return ONLY a comma-separated list. Text: " + excerpt

	text, err := g.complete(ctx, prompt)
	if err != nil {
		g.logger.Warn("tag suggestion failed", "error", err)
		return DefaultTags
	}

	tags := ParseTags(text)
	if len(tags) == 0 {
		return DefaultTags
	}
	return tags
}

// complete runs one prompt with per-attempt timeouts and retries.
func (g *Generator) complete(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= g.retries; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		attemptCtx, cancel := context.WithTimeout(ctx, g.timeout)
		text, err := g.chat.Complete(attemptCtx, prompt)
		cancel()

		if err == nil {
			return text, nil
		}
		lastErr = err
		g.logger.Debug("completion attempt failed",
			"attempt", attempt+1,
			"error", err,
		)
	}
	return "", lastErr
}

// ParseTags splits a comma-separated model response into clean tags.
func ParseTags(s string) []string {
	var tags []string
	for _, part := range strings.Split(s, ",") {
		tag := strings.TrimSpace(part)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
