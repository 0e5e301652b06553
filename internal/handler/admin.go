// Copyright (c) 2026 Bigganboloy Project
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bigganboloy/bigganboloy/internal/bus"
	"github.com/bigganboloy/bigganboloy/internal/gate"
	"github.com/bigganboloy/bigganboloy/internal/middleware"
	"github.com/bigganboloy/bigganboloy/internal/model"
	"github.com/bigganboloy/bigganboloy/internal/store"
)

// AdminHandler handles the moderation and statistics routes. Routing
// already requires the admin role; handlers re-check it so a wiring
// mistake cannot expose these endpoints.
type AdminHandler struct {
	queries *store.Queries
	bus     *bus.Bus
	logger  *slog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(db *sql.DB, b *bus.Bus, logger *slog.Logger) *AdminHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminHandler{queries: store.New(db), bus: b, logger: logger}
}

type adminStatsResponse struct {
	TotalPosts      int64            `json:"totalPosts"`
	PublishedPosts  int64            `json:"publishedPosts"`
	PendingPosts    int64            `json:"pendingPosts"`
	TotalUsers      int64            `json:"totalUsers"`
	TotalComments   int64            `json:"totalComments"`
	TotalLikes      int64            `json:"totalLikes"`
	TotalViews      int64            `json:"totalViews"`
	PostsByCategory map[string]int64 `json:"postsByCategory"`
}

// Posts lists every post regardless of status, newest first.
func (h *AdminHandler) Posts(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	posts, err := h.queries.ListAllPosts(r.Context())
	if err != nil {
		h.logger.Error("admin post list failed", "error", err, "category", "admin")
		writeInternalError(w, MsgGenericError)
		return
	}
	if posts == nil {
		posts = []model.Post{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"posts": posts})
}

// Stats returns aggregate counters for the dashboard.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	ctx := r.Context()
	var resp adminStatsResponse
	queries := []struct {
		dst  *int64
		load func() (int64, error)
	}{
		{&resp.PublishedPosts, func() (int64, error) { return h.queries.CountPostsByStatus(ctx, model.PostStatusPublished) }},
		{&resp.PendingPosts, func() (int64, error) { return h.queries.CountPostsByStatus(ctx, model.PostStatusPending) }},
		{&resp.TotalUsers, func() (int64, error) { return h.queries.CountUsers(ctx) }},
		{&resp.TotalComments, func() (int64, error) { return h.queries.CountComments(ctx) }},
		{&resp.TotalLikes, func() (int64, error) { return h.queries.SumLikes(ctx) }},
		{&resp.TotalViews, func() (int64, error) { return h.queries.SumViews(ctx) }},
	}
	for _, q := range queries {
		v, err := q.load()
		if err != nil {
			h.logger.Error("stats query failed", "error", err, "category", "admin")
			writeInternalError(w, MsgGenericError)
			return
		}
		*q.dst = v
	}
	resp.TotalPosts = resp.PublishedPosts + resp.PendingPosts

	byCategory, err := h.queries.CountPostsByCategory(ctx)
	if err != nil {
		h.logger.Error("stats query failed", "error", err, "category", "admin")
		writeInternalError(w, MsgGenericError)
		return
	}
	resp.PostsByCategory = byCategory

	writeJSON(w, http.StatusOK, resp)
}

// Approve publishes a pending post. Approving an already published
// post succeeds without changing anything.
func (h *AdminHandler) Approve(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	id := chi.URLParam(r, "id")
	changed, err := h.queries.ApprovePost(r.Context(), id)
	if err != nil {
		h.logger.Error("approve failed", "error", err, "post_id", id, "category", "admin")
		writeInternalError(w, MsgGenericError)
		return
	}

	if changed == 0 {
		// Either already published (idempotent success) or gone.
		if _, err := h.queries.GetPostByID(r.Context(), id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				writeNotFound(w, MsgPostNotFound)
				return
			}
			h.logger.Error("post lookup failed", "error", err, "post_id", id, "category", "admin")
			writeInternalError(w, MsgGenericError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "changed": false})
		return
	}

	h.bus.Publish(bus.NewEvent(bus.EventPostUpdated, id))
	h.logger.Info("post approved",
		"post_id", id,
		"user_id", middleware.GetUser(r).ID,
		"category", "admin",
	)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "changed": true})
}

// Delete permanently removes a post and its comments.
func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	id := chi.URLParam(r, "id")
	deleted, err := h.queries.DeletePost(r.Context(), id)
	if err != nil {
		h.logger.Error("delete failed", "error", err, "post_id", id, "category", "admin")
		writeInternalError(w, MsgGenericError)
		return
	}
	if deleted == 0 {
		writeNotFound(w, MsgPostNotFound)
		return
	}

	h.bus.Publish(bus.NewEvent(bus.EventPostDeleted, id))
	h.logger.Warn("post deleted",
		"post_id", id,
		"user_id", middleware.GetUser(r).ID,
		"category", "admin",
	)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// requireAdmin re-verifies the admin role inside the handler. Denied
// callers go back to the home feed, same as at the routing layer.
func (h *AdminHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	d := gate.Check(middleware.GetUser(r), gate.ActionModerate)
	if d.Allowed() {
		return true
	}
	http.Redirect(w, r, gate.HomePath, http.StatusSeeOther)
	return false
}
