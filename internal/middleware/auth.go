// Copyright (c) 2026 Bigganboloy Project
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// authorization, rate limiting and security headers.
package middleware

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/bigganboloy/bigganboloy/internal/gate"
	"github.com/bigganboloy/bigganboloy/internal/model"
	"github.com/bigganboloy/bigganboloy/internal/session"
	"github.com/bigganboloy/bigganboloy/internal/store"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeyUser is the context key for the authenticated user.
const ContextKeyUser ContextKey = "user"

// LoadUser creates middleware that loads the session user into the
// request context. Requests without a valid session continue without a
// user; a session pointing at a missing profile is destroyed so the
// client cannot act on a half-deleted account.
func LoadUser(sm *scs.SessionManager, db *sql.DB) func(http.Handler) http.Handler {
	queries := store.New(db)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sm.GetString(r.Context(), session.KeyUserID)
			if userID == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := queries.GetUserByID(r.Context(), userID)
			if err != nil {
				// Fail closed: stale session, no user context.
				_ = sm.Destroy(r.Context())
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser retrieves the current user from the request context.
// Returns nil if no user is in context.
func GetUser(r *http.Request) *model.User {
	user, ok := r.Context().Value(ContextKeyUser).(model.User)
	if !ok {
		return nil
	}
	return &user
}

// RequireUser creates middleware that rejects unauthenticated requests
// with 401 and the gate's inline login message.
func RequireUser() func(http.Handler) http.Handler {
	return requireAction(gate.ActionCreate)
}

// RequireProfile creates middleware for the profile page: callers
// without a session are redirected to the home feed.
func RequireProfile() func(http.Handler) http.Handler {
	return requireAction(gate.ActionProfile)
}

// RequireAdmin creates middleware for the admin page: any caller whose
// role is not admin is redirected to the home feed.
func RequireAdmin() func(http.Handler) http.Handler {
	return requireAction(gate.ActionModerate)
}

func requireAction(action gate.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetUser(r)
			d := gate.Check(user, action)

			switch d.Outcome {
			case gate.OutcomeAllow:
				next.ServeHTTP(w, r)

			case gate.OutcomeLoginMessage:
				WriteAPIError(w, http.StatusUnauthorized, "login_required", d.Reason, nil)

			case gate.OutcomeRedirectHome:
				if user != nil {
					slog.Warn("access denied",
						"method", r.Method,
						"path", r.URL.Path,
						"user_id", user.ID,
						"user_role", user.Role,
						"remote_addr", r.RemoteAddr,
					)
				}
				http.Redirect(w, r, gate.HomePath, http.StatusSeeOther)
			}
		})
	}
}
