// Copyright (c) 2026 Bigganboloy Project
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bigganboloy/bigganboloy/internal/gate"
	"github.com/bigganboloy/bigganboloy/internal/middleware"
	"github.com/bigganboloy/bigganboloy/internal/model"
	"github.com/bigganboloy/bigganboloy/internal/store"
)

// ProfileHandler serves the authenticated user's profile page data.
type ProfileHandler struct {
	queries *store.Queries
	logger  *slog.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(db *sql.DB, logger *slog.Logger) *ProfileHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfileHandler{queries: store.New(db), logger: logger}
}

type updateProfileRequest struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Bio    string `json:"bio"`
}

// Get returns the user's own profile together with all their posts,
// pending ones included.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if !gate.Check(user, gate.ActionProfile).Allowed() {
		http.Redirect(w, r, gate.HomePath, http.StatusSeeOther)
		return
	}

	posts, err := h.queries.ListPostsByAuthor(r.Context(), user.ID)
	if err != nil {
		h.logger.Error("author post list failed", "error", err, "user_id", user.ID)
		writeInternalError(w, MsgGenericError)
		return
	}
	if posts == nil {
		posts = []model.Post{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": user, "posts": posts})
}

// Update edits the profile's display fields. The email and role are
// fixed after account creation.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if !gate.Check(user, gate.ActionProfile).Allowed() {
		http.Redirect(w, r, gate.HomePath, http.StatusSeeOther)
		return
	}

	var req updateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = user.Name
	}
	avatar := strings.TrimSpace(req.Avatar)
	if avatar == "" {
		avatar = user.Avatar
	}

	updated, err := h.queries.UpdateUserProfile(r.Context(), store.UpdateUserProfileParams{
		ID:     user.ID,
		Name:   name,
		Avatar: avatar,
		Bio:    strings.TrimSpace(req.Bio),
	})
	if err != nil {
		h.logger.Error("profile update failed", "error", err, "user_id", user.ID)
		writeInternalError(w, MsgGenericError)
		return
	}

	h.logger.Info("profile updated", "user_id", user.ID)
	writeJSON(w, http.StatusOK, map[string]any{"user": updated})
}
