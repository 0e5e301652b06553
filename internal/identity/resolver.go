// Copyright (c) 2026 Bigganboloy Project
// SPDX-License-Identifier: GPL-3.0-or-later

// Package identity resolves authenticated identities to stored profiles.
// A profile row is created lazily on the first successful authentication
// and is never overwritten by later identity data; the stored record is
// the source of truth from then on.
package identity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/bigganboloy/bigganboloy/internal/model"
	"github.com/bigganboloy/bigganboloy/internal/store"
)

// FallbackName is used when neither a display name nor an email local
// part is available.
const FallbackName = "Unknown"

// Identity is the authenticated subject before profile resolution.
type Identity struct {
	ID          string
	Email       string
	DisplayName string
}

// Resolver turns identities into stored profiles.
type Resolver struct {
	queries    *store.Queries
	adminEmail string
	logger     *slog.Logger
}

// NewResolver creates a Resolver. adminEmail designates the account that
// receives the admin role at creation time.
func NewResolver(queries *store.Queries, adminEmail string, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{queries: queries, adminEmail: adminEmail, logger: logger}
}

// Resolve returns the stored profile for id, creating it on first sight.
// Resolution fails closed: any storage error is returned to the caller,
// which must treat the subject as signed out rather than serving a
// partial profile.
func (r *Resolver) Resolve(ctx context.Context, ident Identity, passwordHash string) (model.User, error) {
	user, err := r.queries.GetUserByID(ctx, ident.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return model.User{}, fmt.Errorf("looking up profile: %w", err)
	}

	user, err = r.queries.CreateUser(ctx, store.CreateUserParams{
		ID:           ident.ID,
		Name:         DeriveName(ident),
		Email:        ident.Email,
		Avatar:       AvatarURL(ident.Email),
		Role:         r.RoleFor(ident.Email),
		PasswordHash: passwordHash,
		JoinedAt:     time.Now(),
	})
	if err != nil {
		return model.User{}, fmt.Errorf("creating profile: %w", err)
	}

	r.logger.Info("profile created",
		"user_id", user.ID,
		"role", user.Role,
	)
	return user, nil
}

// RoleFor returns the role a fresh profile gets for the given email.
func (r *Resolver) RoleFor(email string) string {
	if r.adminEmail != "" && email == r.adminEmail {
		return model.RoleAdmin
	}
	return model.RoleUser
}

// DeriveName picks the profile name for a new account: the display name
// if present, otherwise the email local part, otherwise FallbackName.
func DeriveName(ident Identity) string {
	if ident.DisplayName != "" {
		return ident.DisplayName
	}
	if at := strings.Index(ident.Email, "@"); at > 0 {
		return ident.Email[:at]
	}
	return FallbackName
}

// AvatarURL builds the generated avatar used when no picture is set,
// keyed by the account email so it stays stable across name edits.
func AvatarURL(email string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(email) + "&background=random"
}
