// Copyright (c) 2026 Bigganboloy Project
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bigganboloy/bigganboloy/internal/model"
)

func TestHealth_Public(t *testing.T) {
	env := newTestEnv(t)
	h := env.router(t)

	w, body := do(t, h, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if body["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", body["status"])
	}
	// Details are reserved for signed-in callers.
	if _, ok := body["checks"]; ok {
		t.Error("public response leaks check details")
	}
}

func TestHealth_AuthenticatedDetail(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "u1", "reader@example.com", model.RoleUser)
	h := env.router(t)

	w, body := do(t, h, authedRequest(t, env, http.MethodGet, "/health", &user))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	checks, ok := body["checks"].(map[string]any)
	if !ok {
		t.Fatalf("response missing checks: %v", body)
	}
	db, ok := checks["database"].(map[string]any)
	if !ok || db["status"] != "healthy" {
		t.Errorf("database check = %v, want healthy", checks["database"])
	}
	if body["uptime"] == nil {
		t.Error("uptime missing")
	}
}
