// Copyright (c) 2026 Bigganboloy Project
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bigganboloy/bigganboloy/internal/model"
)

func TestAdminPosts_ListsAllStatuses(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "a1", testAdminEmail, model.RoleAdmin)
	env.createUser(t, "u1", "author@example.com", model.RoleUser)
	env.createPost(t, "p1", "u1", model.PostStatusPublished)
	env.createPost(t, "p2", "u1", model.PostStatusPending)
	h := env.router(t)

	w, body := do(t, h, authedRequest(t, env, http.MethodGet, "/api/admin/posts", &admin))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %v", w.Code, body)
	}
	if got := len(body["posts"].([]any)); got != 2 {
		t.Errorf("len(posts) = %d, want 2 including pending", got)
	}
}

func TestAdminRoutes_RoleEnforced(t *testing.T) {
	env := newTestEnv(t)
	reader := env.createUser(t, "u1", "reader@example.com", model.RoleUser)
	h := env.router(t)

	routes := []struct {
		method string
		target string
	}{
		{http.MethodGet, "/api/admin/posts"},
		{http.MethodGet, "/api/admin/stats"},
		{http.MethodPost, "/api/admin/posts/p1/approve"},
		{http.MethodDelete, "/api/admin/posts/p1"},
	}
	for _, rt := range routes {
		t.Run(rt.method+" "+rt.target, func(t *testing.T) {
			for _, user := range []*model.User{nil, &reader} {
				w := httptest.NewRecorder()
				h.ServeHTTP(w, authedRequest(t, env, rt.method, rt.target, user))
				if w.Code != http.StatusSeeOther {
					t.Errorf("user %v status = %d, want %d", user, w.Code, http.StatusSeeOther)
				}
				if got := w.Header().Get("Location"); got != "/" {
					t.Errorf("user %v Location = %q, want /", user, got)
				}
			}
		})
	}
}

func TestAdminStats(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "a1", testAdminEmail, model.RoleAdmin)
	env.createUser(t, "u1", "author@example.com", model.RoleUser)
	env.createPost(t, "p1", "u1", model.PostStatusPublished)
	env.createPost(t, "p2", "u1", model.PostStatusPending)
	if _, err := env.queries.LikePost(context.Background(), "p1"); err != nil {
		t.Fatalf("LikePost: %v", err)
	}
	h := env.router(t)

	w, body := do(t, h, authedRequest(t, env, http.MethodGet, "/api/admin/stats", &admin))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %v", w.Code, body)
	}

	want := map[string]float64{
		"totalPosts":     2,
		"publishedPosts": 1,
		"pendingPosts":   1,
		"totalUsers":     2,
		"totalComments":  0,
		"totalLikes":     1,
	}
	for field, val := range want {
		if body[field] != val {
			t.Errorf("%s = %v, want %v", field, body[field], val)
		}
	}

	byCategory, ok := body["postsByCategory"].(map[string]any)
	if !ok {
		t.Fatalf("response missing postsByCategory: %v", body)
	}
	if byCategory["space"] != float64(1) {
		t.Errorf("postsByCategory[space] = %v, want 1", byCategory["space"])
	}
}

func TestApprovePost(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "a1", testAdminEmail, model.RoleAdmin)
	env.createUser(t, "u1", "author@example.com", model.RoleUser)
	env.createPost(t, "p1", "u1", model.PostStatusPending)
	h := env.router(t)

	w, body := do(t, h, authedRequest(t, env, http.MethodPost, "/api/admin/posts/p1/approve", &admin))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %v", w.Code, body)
	}
	if body["changed"] != true {
		t.Errorf("changed = %v, want true", body["changed"])
	}

	post, err := env.queries.GetPostByID(context.Background(), "p1")
	if err != nil {
		t.Fatalf("GetPostByID: %v", err)
	}
	if post.Status != model.PostStatusPublished {
		t.Errorf("status = %q, want %q", post.Status, model.PostStatusPublished)
	}

	// The approved post reaches the public feed via the bus.
	waitFor(t, func() bool {
		_, ok := env.sync.Get("p1")
		return ok
	})

	// Approving again is a quiet no-op.
	w, body = do(t, h, authedRequest(t, env, http.MethodPost, "/api/admin/posts/p1/approve", &admin))
	if w.Code != http.StatusOK {
		t.Fatalf("repeat status = %d", w.Code)
	}
	if body["changed"] != false {
		t.Errorf("repeat changed = %v, want false", body["changed"])
	}
}

func TestApprovePost_Missing(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "a1", testAdminEmail, model.RoleAdmin)
	h := env.router(t)

	w, body := do(t, h, authedRequest(t, env, http.MethodPost, "/api/admin/posts/missing/approve", &admin))
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
	if errorCode(body) != "not_found" {
		t.Errorf("code = %q, want not_found", errorCode(body))
	}
}

func TestDeletePost(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "a1", testAdminEmail, model.RoleAdmin)
	env.createUser(t, "u1", "author@example.com", model.RoleUser)
	env.createPost(t, "p1", "u1", model.PostStatusPublished)
	h := env.router(t)

	w, _ := do(t, h, authedRequest(t, env, http.MethodDelete, "/api/admin/posts/p1", &admin))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	if _, err := env.queries.GetPostByID(context.Background(), "p1"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("post still present after delete: %v", err)
	}

	// Deleting twice reports the post as gone.
	w, body := do(t, h, authedRequest(t, env, http.MethodDelete, "/api/admin/posts/p1", &admin))
	if w.Code != http.StatusNotFound {
		t.Errorf("repeat status = %d, want %d, body %v", w.Code, http.StatusNotFound, body)
	}
}
