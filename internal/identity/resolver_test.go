// Copyright (c) 2026 Bigganboloy Project
// SPDX-License-Identifier: GPL-3.0-or-later

package identity

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/bigganboloy/bigganboloy/internal/model"
	"github.com/bigganboloy/bigganboloy/internal/store"
	"github.com/bigganboloy/bigganboloy/internal/testutil"
)

const adminEmail = "bigganboloy0@gmail.com"

func newTestResolver(t *testing.T) (*Resolver, *store.Queries) {
	t.Helper()
	db := testutil.TestDB(t)
	q := store.New(db)
	return NewResolver(q, adminEmail, nil), q
}

func TestResolve_CreatesLazily(t *testing.T) {
	r, q := newTestResolver(t)
	ctx := context.Background()

	user, err := r.Resolve(ctx, Identity{
		ID:          "u1",
		Email:       "reader@example.com",
		DisplayName: "পাঠক",
	}, "hash")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if user.Name != "পাঠক" {
		t.Errorf("Name = %q, want %q", user.Name, "পাঠক")
	}
	if user.Role != model.RoleUser {
		t.Errorf("Role = %q, want %q", user.Role, model.RoleUser)
	}
	if !strings.HasPrefix(user.Avatar, "https://ui-avatars.com/api/?name=") {
		t.Errorf("Avatar = %q, want generated avatar URL", user.Avatar)
	}
	// The avatar is keyed by the email, not the display name.
	if !strings.Contains(user.Avatar, url.QueryEscape("reader@example.com")) {
		t.Errorf("Avatar = %q, want keyed by email", user.Avatar)
	}

	// Row actually persisted.
	stored, err := q.GetUserByID(ctx, "u1")
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if stored.Email != "reader@example.com" {
		t.Errorf("stored Email = %q, want %q", stored.Email, "reader@example.com")
	}
}

func TestResolve_AdminEmailGetsAdminRole(t *testing.T) {
	r, _ := newTestResolver(t)

	user, err := r.Resolve(context.Background(), Identity{
		ID:    "admin1",
		Email: adminEmail,
	}, "hash")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !user.IsAdmin() {
		t.Errorf("Role = %q, want %q", user.Role, model.RoleAdmin)
	}
}

func TestResolve_StoredFieldsWin(t *testing.T) {
	r, q := newTestResolver(t)
	ctx := context.Background()

	ident := Identity{ID: "u1", Email: "reader@example.com", DisplayName: "Original"}
	if _, err := r.Resolve(ctx, ident, "hash"); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	// Profile edits after creation must survive later resolutions.
	if _, err := q.UpdateUserProfile(ctx, store.UpdateUserProfileParams{
		ID:     "u1",
		Name:   "Edited",
		Avatar: "https://example.com/custom.png",
		Bio:    "লেখক",
	}); err != nil {
		t.Fatalf("UpdateUserProfile: %v", err)
	}

	ident.DisplayName = "Changed Upstream"
	user, err := r.Resolve(ctx, ident, "hash")
	if err != nil {
		t.Fatalf("Resolve again: %v", err)
	}
	if user.Name != "Edited" {
		t.Errorf("Name = %q, want stored %q", user.Name, "Edited")
	}
	if user.Avatar != "https://example.com/custom.png" {
		t.Errorf("Avatar = %q, want stored avatar", user.Avatar)
	}
}

func TestDeriveName(t *testing.T) {
	tests := []struct {
		name  string
		ident Identity
		want  string
	}{
		{
			name:  "display name wins",
			ident: Identity{DisplayName: "বিজ্ঞানী", Email: "x@y.com"},
			want:  "বিজ্ঞানী",
		},
		{
			name:  "email local part",
			ident: Identity{Email: "reader@example.com"},
			want:  "reader",
		},
		{
			name:  "no usable source",
			ident: Identity{},
			want:  FallbackName,
		},
		{
			name:  "email without local part",
			ident: Identity{Email: "@example.com"},
			want:  FallbackName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveName(tt.ident); got != tt.want {
				t.Errorf("DeriveName() = %q, want %q", got, tt.want)
			}
		})
	}
}
