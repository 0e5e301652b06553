// Copyright (c) 2026 Bigganboloy Project
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/bigganboloy/bigganboloy/internal/assist"
	"github.com/bigganboloy/bigganboloy/internal/bus"
	"github.com/bigganboloy/bigganboloy/internal/cache"
	"github.com/bigganboloy/bigganboloy/internal/feed"
	"github.com/bigganboloy/bigganboloy/internal/identity"
	"github.com/bigganboloy/bigganboloy/internal/middleware"
	"github.com/bigganboloy/bigganboloy/internal/model"
	"github.com/bigganboloy/bigganboloy/internal/session"
	"github.com/bigganboloy/bigganboloy/internal/store"
	"github.com/bigganboloy/bigganboloy/internal/testutil"
)

const testAdminEmail = "admin@example.com"

// testEnv wires the handlers' collaborators against a temp database.
type testEnv struct {
	db      *sql.DB
	queries *store.Queries
	sm      *scs.SessionManager
	bus     *bus.Bus
	cache   *cache.MemoryCache
	sync    *feed.Synchronizer

	// generator is nil unless a test installs one before building the
	// router, mirroring a deployment without an API key.
	generator *assist.Generator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.TestDB(t)
	logger := testutil.TestLogger()

	b := bus.New(logger)
	t.Cleanup(b.Close)

	c := cache.NewSimpleMemoryCache(time.Minute)
	t.Cleanup(func() { _ = c.Close() })

	sync := feed.NewSynchronizer(store.New(db), b, c, logger)
	sync.Start(context.Background())
	t.Cleanup(sync.Stop)

	return &testEnv{
		db:      db,
		queries: store.New(db),
		sm:      session.New(db, true),
		bus:     b,
		cache:   c,
		sync:    sync,
	}
}

// router assembles the full route tree. Auth routes run under the
// session middleware so Put/RenewToken have a session to work with.
func (e *testEnv) router(t *testing.T) http.Handler {
	t.Helper()
	logger := testutil.TestLogger()

	authH := NewAuthHandler(e.db, e.sm, identity.NewResolver(e.queries, testAdminEmail, logger), logger)
	feedH := NewFeedHandler(e.sync, e.cache, logger)
	postH := NewPostHandler(e.db, e.sync, e.bus, logger)
	commentH := NewCommentHandler(e.db, e.sync, e.bus, logger)
	adminH := NewAdminHandler(e.db, e.bus, logger)
	assistH := NewAssistHandler(e.generator, logger)
	profileH := NewProfileHandler(e.db, logger)
	healthH := NewHealthHandler(e.db)

	r := chi.NewRouter()
	r.Use(e.sm.LoadAndSave)
	r.Use(middleware.LoadUser(e.sm, e.db))

	r.Post("/auth/register", authH.Register)
	r.Post("/auth/login", authH.Login)
	r.Post("/auth/logout", authH.Logout)
	r.Get("/auth/me", authH.Me)

	r.Get("/api/feed", feedH.Feed)
	r.Get("/api/posts/{id}", postH.Get)
	r.Post("/api/posts/{id}/view", postH.View)
	r.Post("/api/posts/{id}/like", postH.Like)
	r.Post("/api/posts", postH.Create)
	r.Get("/api/posts/{id}/comments", commentH.List)
	r.Post("/api/posts/{id}/comments", commentH.Create)
	r.Get("/api/profile", profileH.Get)
	r.Put("/api/profile", profileH.Update)

	r.Post("/api/assist/draft", assistH.Draft)
	r.Post("/api/assist/tags", assistH.Tags)

	r.Get("/api/admin/posts", adminH.Posts)
	r.Get("/api/admin/stats", adminH.Stats)
	r.Post("/api/admin/posts/{id}/approve", adminH.Approve)
	r.Delete("/api/admin/posts/{id}", adminH.Delete)

	r.Get("/health", healthH.Health)

	return r
}

// signIn creates a session cookie for the user by logging the session
// store in directly, bypassing the password check.
func (e *testEnv) signIn(t *testing.T, r *http.Request, user model.User) *http.Request {
	t.Helper()

	ctx, err := e.sm.Load(r.Context(), "")
	if err != nil {
		t.Fatalf("session load: %v", err)
	}
	e.sm.Put(ctx, session.KeyUserID, user.ID)
	e.sm.Put(ctx, session.KeyRole, user.Role)

	token, _, err := e.sm.Commit(ctx)
	if err != nil {
		t.Fatalf("session commit: %v", err)
	}
	r.AddCookie(&http.Cookie{Name: e.sm.Cookie.Name, Value: token})
	return r
}

func (e *testEnv) createUser(t *testing.T, id, email, role string) model.User {
	t.Helper()
	u, err := e.queries.CreateUser(context.Background(), store.CreateUserParams{
		ID:           id,
		Name:         "Test User",
		Email:        email,
		Avatar:       "https://example.com/a.png",
		Role:         role,
		PasswordHash: "hash",
		JoinedAt:     time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return u
}

func (e *testEnv) createPost(t *testing.T, id, authorID, status string) model.Post {
	t.Helper()
	p, err := e.queries.CreatePost(context.Background(), store.CreatePostParams{
		ID:           id,
		Title:        "কৃষ্ণগহ্বরের রহস্য",
		Slug:         "krisnogohbor",
		Excerpt:      "কৃষ্ণগহ্বর নিয়ে আলোচনা...",
		Content:      "কৃষ্ণগহ্বর মহাবিশ্বের অন্যতম রহস্যময় বস্তু।",
		AuthorID:     authorID,
		AuthorName:   "Test User",
		AuthorAvatar: "https://example.com/a.png",
		CoverImage:   "https://picsum.photos/seed/1/800/400",
		Category:     "space",
		Tags:         []string{"বিজ্ঞান", "মহাকাশ"},
		Status:       status,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	return p
}

// authedRequest builds a request, attaching a session cookie for user
// when one is given.
func authedRequest(t *testing.T, env *testEnv, method, target string, user *model.User) *http.Request {
	t.Helper()
	r := httptest.NewRequest(method, target, nil)
	if user != nil {
		r = env.signIn(t, r, *user)
	}
	return r
}

// authedJSONRequest is authedRequest with a JSON body.
func authedJSONRequest(t *testing.T, env *testEnv, method, target, body string, user *model.User) *http.Request {
	t.Helper()
	r := jsonRequest(method, target, body)
	if user != nil {
		r = env.signIn(t, r, *user)
	}
	return r
}

// do runs the request through the router and decodes the JSON body.
func do(t *testing.T, h http.Handler, r *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	body := make(map[string]any)
	raw, _ := io.ReadAll(w.Result().Body)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &body); err != nil {
			t.Fatalf("decoding response %q: %v", raw, err)
		}
	}
	return w, body
}

func jsonRequest(method, target, body string) *http.Request {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

// waitFor polls cond until it holds or the deadline passes. Used for
// effects that arrive through the bus asynchronously.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

// errorCode digs the taxonomy code out of an API error response.
func errorCode(body map[string]any) string {
	if errObj, ok := body["error"].(map[string]any); ok {
		code, _ := errObj["code"].(string)
		return code
	}
	return ""
}
