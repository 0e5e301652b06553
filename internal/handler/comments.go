// Copyright (c) 2026 Bigganboloy Project
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bigganboloy/bigganboloy/internal/bus"
	"github.com/bigganboloy/bigganboloy/internal/feed"
	"github.com/bigganboloy/bigganboloy/internal/gate"
	"github.com/bigganboloy/bigganboloy/internal/middleware"
	"github.com/bigganboloy/bigganboloy/internal/model"
	"github.com/bigganboloy/bigganboloy/internal/store"
)

// CommentHandler handles listing and adding comments on posts.
type CommentHandler struct {
	queries *store.Queries
	sync    *feed.Synchronizer
	bus     *bus.Bus
	logger  *slog.Logger
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(db *sql.DB, sync *feed.Synchronizer, b *bus.Bus, logger *slog.Logger) *CommentHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CommentHandler{queries: store.New(db), sync: sync, bus: b, logger: logger}
}

type createCommentRequest struct {
	Text string `json:"text"`
}

// List returns a post's comments, oldest first. Placeholder posts have
// no stored comments and always return an empty list.
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	post, _, ok := h.publishedPost(w, r)
	if !ok {
		return
	}

	comments, err := h.queries.ListCommentsByPost(r.Context(), post.ID)
	if err != nil {
		h.logger.Error("comment list failed", "error", err, "post_id", post.ID, "category", "comment")
		writeInternalError(w, MsgGenericError)
		return
	}
	if comments == nil {
		comments = []model.Comment{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"comments": comments})
}

// Create adds a comment to a published post.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if d := gate.Check(user, gate.ActionComment); !d.Allowed() {
		middleware.WriteAPIError(w, http.StatusUnauthorized, "login_required", d.Reason, nil)
		return
	}

	post, stored, ok := h.publishedPost(w, r)
	if !ok {
		return
	}
	if !stored {
		// Placeholder posts are read-only samples.
		writeNotFound(w, MsgPostNotFound)
		return
	}

	var req createCommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		writeInvalidInput(w, MsgCommentRequired, map[string]string{"field": "text"})
		return
	}

	comment, err := h.queries.CreateComment(r.Context(), store.CreateCommentParams{
		ID:         uuid.NewString(),
		PostID:     post.ID,
		UserID:     user.ID,
		UserName:   user.Name,
		UserAvatar: user.Avatar,
		Text:       text,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		h.logger.Error("comment save failed", "error", err, "post_id", post.ID, "user_id", user.ID, "category", "comment")
		writeInternalError(w, MsgGenericError)
		return
	}

	h.bus.Publish(bus.NewEvent(bus.EventCommentAdded, post.ID))
	h.logger.Info("comment added", "post_id", post.ID, "user_id", user.ID, "category", "comment")
	writeJSON(w, http.StatusCreated, map[string]any{"comment": comment})
}

// publishedPost resolves the {id} route parameter to a published post,
// falling back to the feed snapshot for placeholder entries. stored is
// false when the post exists only as a built-in placeholder. Writes the
// error response itself when the post is unavailable.
func (h *CommentHandler) publishedPost(w http.ResponseWriter, r *http.Request) (post model.Post, stored, ok bool) {
	id := chi.URLParam(r, "id")

	post, err := h.queries.GetPostByID(r.Context(), id)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			h.logger.Error("post lookup failed", "error", err, "post_id", id, "category", "comment")
			writeInternalError(w, MsgGenericError)
			return model.Post{}, false, false
		}
		post, ok = h.sync.Get(id)
		if !ok {
			writeNotFound(w, MsgPostNotFound)
			return model.Post{}, false, false
		}
		if !post.IsPublished() {
			writeNotFound(w, MsgPostNotFound)
			return model.Post{}, false, false
		}
		return post, false, true
	}

	if !post.IsPublished() {
		writeNotFound(w, MsgPostNotFound)
		return model.Post{}, false, false
	}
	return post, true, true
}
