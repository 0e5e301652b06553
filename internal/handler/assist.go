// Copyright (c) 2026 Bigganboloy Project
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/bigganboloy/bigganboloy/internal/assist"
	"github.com/bigganboloy/bigganboloy/internal/middleware"
)

// AssistHandler exposes the AI writing helpers. The generator handles
// timeouts, retries and fallbacks itself, so these handlers never
// surface an AI failure as an HTTP error.
type AssistHandler struct {
	generator *assist.Generator
	logger    *slog.Logger
}

// NewAssistHandler creates a new AssistHandler. generator may be nil
// when no API key is configured; the routes then report unavailability.
func NewAssistHandler(generator *assist.Generator, logger *slog.Logger) *AssistHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AssistHandler{generator: generator, logger: logger}
}

type draftRequest struct {
	Topic string `json:"topic"`
}

type tagsRequest struct {
	Content string `json:"content"`
}

// Draft generates a Bengali post section about the given topic. The
// returned fragment is meant to be appended to the author's existing
// content, never to replace it.
func (h *AssistHandler) Draft(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}

	var req draftRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		writeInvalidInput(w, MsgTopicRequired, map[string]string{"field": "topic"})
		return
	}

	draft := h.generator.Draft(r.Context(), topic)
	h.logger.Info("draft generated", "topic", topic, "category", "assist")
	writeJSON(w, http.StatusOK, map[string]any{"draft": draft})
}

// Tags suggests Bengali tags for the given content. Suggestions are
// merged client-side into the author's existing tag set.
func (h *AssistHandler) Tags(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}

	var req tagsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeInvalidInput(w, MsgContentRequired, map[string]string{"field": "content"})
		return
	}

	tags := h.generator.Tags(r.Context(), req.Content)
	h.logger.Info("tags suggested", "count", len(tags), "category", "assist")
	writeJSON(w, http.StatusOK, map[string]any{"tags": tags})
}

func (h *AssistHandler) available(w http.ResponseWriter) bool {
	if h.generator == nil {
		middleware.WriteAPIError(w, http.StatusServiceUnavailable, "unavailable", MsgAssistDisabled, nil)
		return false
	}
	return true
}
