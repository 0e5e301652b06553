// Copyright (c) 2026 Bigganboloy Project
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bigganboloy/bigganboloy/internal/bus"
	"github.com/bigganboloy/bigganboloy/internal/feed"
	"github.com/bigganboloy/bigganboloy/internal/gate"
	"github.com/bigganboloy/bigganboloy/internal/markdown"
	"github.com/bigganboloy/bigganboloy/internal/middleware"
	"github.com/bigganboloy/bigganboloy/internal/model"
	"github.com/bigganboloy/bigganboloy/internal/store"
	"github.com/bigganboloy/bigganboloy/internal/util"
)

// PostHandler handles post detail, submission and engagement routes.
type PostHandler struct {
	queries *store.Queries
	sync    *feed.Synchronizer
	bus     *bus.Bus
	logger  *slog.Logger
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(db *sql.DB, sync *feed.Synchronizer, b *bus.Bus, logger *slog.Logger) *PostHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostHandler{queries: store.New(db), sync: sync, bus: b, logger: logger}
}

type createPostRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

type postDetailResponse struct {
	Post model.Post `json:"post"`
	HTML string     `json:"html"`
}

// Get returns a single post with its content rendered to sanitized HTML.
// Pending posts are visible only to their author and to admins.
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	post, err := h.queries.GetPostByID(r.Context(), id)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			h.logger.Error("post lookup failed", "error", err, "post_id", id, "category", "post")
			writeInternalError(w, MsgGenericError)
			return
		}
		// Placeholder posts live only in the feed snapshot.
		var ok bool
		post, ok = h.sync.Get(id)
		if !ok {
			writeNotFound(w, MsgPostNotFound)
			return
		}
	}

	if post.IsPending() {
		user := middleware.GetUser(r)
		if user == nil || (user.ID != post.AuthorID && !user.IsAdmin()) {
			writeNotFound(w, MsgPostNotFound)
			return
		}
	}

	html, err := markdown.Render(post.Content)
	if err != nil {
		h.logger.Error("markdown render failed", "error", err, "post_id", post.ID, "category", "post")
		writeInternalError(w, MsgGenericError)
		return
	}

	writeJSON(w, http.StatusOK, postDetailResponse{Post: post, HTML: html})
}

// View records a post view. Public and fire-and-forget on the client
// side, so it never reports a missing post as an error.
func (h *PostHandler) View(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.queries.IncrementViews(r.Context(), id); err != nil {
		h.logger.Warn("view increment failed", "error", err, "post_id", id, "category", "post")
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// Create submits a new post. Admin submissions publish immediately;
// everyone else lands in the moderation queue.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if d := gate.Check(user, gate.ActionCreate); !d.Allowed() {
		middleware.WriteAPIError(w, http.StatusUnauthorized, "login_required", d.Reason, nil)
		return
	}

	var req createPostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" {
		writeInvalidInput(w, MsgTitleRequired, map[string]string{"field": "title"})
		return
	}
	if content == "" {
		writeInvalidInput(w, MsgContentRequired, map[string]string{"field": "content"})
		return
	}

	category := req.Category
	if category == "" {
		category = model.Categories[0].ID
	}
	if !model.ValidCategory(category) {
		writeInvalidInput(w, MsgInvalidCategory, map[string]string{"field": "category"})
		return
	}

	now := time.Now()
	post, err := h.queries.CreatePost(r.Context(), store.CreatePostParams{
		ID:           uuid.NewString(),
		Title:        title,
		Slug:         util.Slugify(title),
		Excerpt:      model.MakeExcerpt(content),
		Content:      content,
		AuthorID:     user.ID,
		AuthorName:   user.Name,
		AuthorAvatar: user.Avatar,
		CoverImage:   fmt.Sprintf("https://picsum.photos/seed/%d/800/400", now.UnixMilli()),
		Category:     category,
		Tags:         dedupeTags(req.Tags),
		Status:       gate.StatusForAuthor(*user),
		CreatedAt:    now,
	})
	if err != nil {
		h.logger.Error("post save failed", "error", err, "user_id", user.ID, "category", "post")
		writeInternalError(w, MsgPostSaveError)
		return
	}

	h.bus.Publish(bus.NewEvent(bus.EventPostCreated, post.ID))
	h.logger.Info("post submitted",
		"post_id", post.ID,
		"user_id", user.ID,
		"status", post.Status,
		"category", "post",
	)
	writeJSON(w, http.StatusCreated, map[string]any{"post": post})
}

// Like atomically increments a post's like counter. Only published
// posts can be liked.
func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if d := gate.Check(user, gate.ActionLike); !d.Allowed() {
		middleware.WriteAPIError(w, http.StatusUnauthorized, "login_required", d.Reason, nil)
		return
	}

	id := chi.URLParam(r, "id")
	likes, err := h.queries.LikePost(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeNotFound(w, MsgPostNotFound)
			return
		}
		h.logger.Error("like failed", "error", err, "post_id", id, "category", "post")
		writeInternalError(w, MsgGenericError)
		return
	}

	h.bus.Publish(bus.NewEvent(bus.EventPostLiked, id))
	writeJSON(w, http.StatusOK, map[string]any{"likes": likes})
}

// dedupeTags removes duplicate and empty tags, preserving first-seen
// order. Comparison is case-sensitive; Bengali has no case folding.
func dedupeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
