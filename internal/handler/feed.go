// Copyright (c) 2026 Bigganboloy Project
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bigganboloy/bigganboloy/internal/cache"
	"github.com/bigganboloy/bigganboloy/internal/feed"
	"github.com/bigganboloy/bigganboloy/internal/model"
)

// FeedHandler serves the public post feed.
type FeedHandler struct {
	sync   *feed.Synchronizer
	cache  cache.Cache
	logger *slog.Logger
}

// NewFeedHandler creates a new FeedHandler.
func NewFeedHandler(sync *feed.Synchronizer, c cache.Cache, logger *slog.Logger) *FeedHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &FeedHandler{sync: sync, cache: c, logger: logger}
}

type feedResponse struct {
	Posts    []model.Post     `json:"posts"`
	Category string           `json:"category"`
	Query    string           `json:"query,omitempty"`
	Fallback bool             `json:"fallback"`
	Count    int              `json:"count"`
	Filters  []model.Category `json:"categories"`
}

// Feed returns published posts, optionally narrowed by category and a
// search query. Responses are cached per filter combination; the feed
// synchronizer clears the cache whenever the underlying data changes.
func (h *FeedHandler) Feed(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		category = model.CategoryAll
	}
	query := r.URL.Query().Get("q")

	key := "feed:" + category + ":" + query
	if h.cache != nil {
		if body, err := h.cache.Get(r.Context(), key); err == nil {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			_, _ = w.Write(body)
			return
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			h.logger.Warn("feed cache read failed", "error", err, "category", "cache")
		}
	}

	posts := feed.Filter(h.sync.Posts(), category, query)
	resp := feedResponse{
		Posts:    posts,
		Category: category,
		Query:    query,
		Fallback: h.sync.UsingPlaceholders(),
		Count:    len(posts),
		Filters:  model.Categories,
	}

	body, err := json.Marshal(resp)
	if err != nil {
		h.logger.Error("feed response encoding failed", "error", err)
		writeInternalError(w, MsgGenericError)
		return
	}

	if h.cache != nil {
		if err := h.cache.Set(r.Context(), key, body, 0); err != nil {
			h.logger.Warn("feed cache write failed", "error", err, "category", "cache")
		}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write(body)
}
