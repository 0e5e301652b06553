// Copyright (c) 2026 Bigganboloy Project
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"net/mail"
	"time"
	"unicode/utf8"

	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"

	"github.com/bigganboloy/bigganboloy/internal/auth"
	"github.com/bigganboloy/bigganboloy/internal/gate"
	"github.com/bigganboloy/bigganboloy/internal/identity"
	"github.com/bigganboloy/bigganboloy/internal/middleware"
	"github.com/bigganboloy/bigganboloy/internal/model"
	"github.com/bigganboloy/bigganboloy/internal/session"
	"github.com/bigganboloy/bigganboloy/internal/store"
)

// AuthHandler handles registration, login, logout and the current-user
// endpoint.
type AuthHandler struct {
	queries        *store.Queries
	sessionManager *scs.SessionManager
	resolver       *identity.Resolver
	logger         *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *sql.DB, sm *scs.SessionManager, resolver *identity.Resolver, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		queries:        store.New(db),
		sessionManager: sm,
		resolver:       resolver,
		logger:         logger,
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account and signs the new user in.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if _, err := mail.ParseAddress(req.Email); err != nil {
		writeInvalidInput(w, MsgInvalidEmail, map[string]string{"field": "email"})
		return
	}
	if utf8.RuneCountInString(req.Password) < auth.MinPasswordLength {
		writeInvalidInput(w, MsgPasswordTooShort, map[string]string{"field": "password"})
		return
	}

	if _, err := h.queries.GetUserByEmail(r.Context(), req.Email); err == nil {
		middleware.WriteAPIError(w, http.StatusConflict, "invalid_input", MsgEmailTaken, nil)
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		h.logger.Error("email lookup failed during registration", "error", err, "category", "auth")
		writeInternalError(w, MsgGenericError)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("password hashing failed", "error", err, "category", "auth")
		writeInternalError(w, MsgGenericError)
		return
	}

	user, err := h.resolver.Resolve(r.Context(), identity.Identity{
		ID:          uuid.NewString(),
		Email:       req.Email,
		DisplayName: req.Name,
	}, hash)
	if err != nil {
		h.logger.Error("profile creation failed", "error", err, "category", "auth")
		writeInternalError(w, MsgGenericError)
		return
	}

	if !h.signIn(w, r, user) {
		return
	}

	h.logger.Info("user registered", "user_id", user.ID, "category", "auth")
	writeJSON(w, http.StatusCreated, map[string]any{"user": user})
}

// Login verifies credentials and starts a session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.queries.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			h.logger.Error("user lookup failed during login", "error", err, "category", "auth")
		}
		// Same response for unknown email and bad password to avoid
		// account enumeration.
		middleware.WriteAPIError(w, http.StatusUnauthorized, "invalid_input", MsgInvalidCredentials, nil)
		return
	}

	valid, err := auth.CheckPassword(req.Password, user.PasswordHash)
	if err != nil || !valid {
		if err != nil {
			h.logger.Error("password check failed", "error", err, "category", "auth")
		} else {
			h.logger.Warn("login failed", "user_id", user.ID, "category", "auth")
		}
		middleware.WriteAPIError(w, http.StatusUnauthorized, "invalid_input", MsgInvalidCredentials, nil)
		return
	}

	if auth.NeedsRehash(user.PasswordHash) {
		if newHash, err := auth.HashPassword(req.Password); err == nil {
			if err := h.queries.UpdateUserPassword(r.Context(), user.ID, newHash); err != nil {
				h.logger.Warn("password rehash failed", "error", err, "user_id", user.ID, "category", "auth")
			}
		}
	}

	if err := h.queries.UpdateLastLogin(r.Context(), user.ID, time.Now()); err != nil {
		h.logger.Warn("last login update failed", "error", err, "user_id", user.ID, "category", "auth")
	}

	if !h.signIn(w, r, user) {
		return
	}

	h.logger.Info("user logged in", "user_id", user.ID, "category", "auth")
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

// Logout destroys the session. Safe to call when not signed in.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if user := middleware.GetUser(r); user != nil {
		h.logger.Info("user logged out", "user_id", user.ID, "category", "auth")
	}
	if err := h.sessionManager.Destroy(r.Context()); err != nil {
		h.logger.Error("session destroy failed", "error", err, "category", "auth")
		writeInternalError(w, MsgGenericError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		middleware.WriteAPIError(w, http.StatusUnauthorized, "login_required", gate.MsgLoginRequired, nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

// signIn rotates the session token and binds it to the user. Token
// rotation on privilege change prevents session fixation.
func (h *AuthHandler) signIn(w http.ResponseWriter, r *http.Request, user model.User) bool {
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		h.logger.Error("session renew failed", "error", err, "category", "auth")
		writeInternalError(w, MsgGenericError)
		return false
	}
	h.sessionManager.Put(r.Context(), session.KeyUserID, user.ID)
	h.sessionManager.Put(r.Context(), session.KeyRole, user.Role)
	return true
}
