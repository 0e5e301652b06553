// Copyright (c) 2026 Bigganboloy Project
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/bigganboloy/bigganboloy/internal/auth"
	"github.com/bigganboloy/bigganboloy/internal/model"
)

func TestRegister_CreatesUserAndSignsIn(t *testing.T) {
	env := newTestEnv(t)
	h := env.router(t)

	w, body := do(t, h, jsonRequest(http.MethodPost, "/auth/register",
		`{"email":"reader@example.com","password":"secret123","name":"পাঠক"}`))

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d, body %v", w.Code, http.StatusCreated, body)
	}
	user, ok := body["user"].(map[string]any)
	if !ok {
		t.Fatalf("response missing user: %v", body)
	}
	if user["name"] != "পাঠক" {
		t.Errorf("name = %v, want পাঠক", user["name"])
	}
	if user["role"] != model.RoleUser {
		t.Errorf("role = %v, want %q", user["role"], model.RoleUser)
	}
	if _, exposed := user["passwordHash"]; exposed {
		t.Error("password hash exposed in response")
	}
	if len(w.Result().Cookies()) == 0 {
		t.Error("no session cookie set")
	}

	stored, err := env.queries.GetUserByEmail(context.Background(), "reader@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if valid, err := auth.CheckPassword("secret123", stored.PasswordHash); err != nil || !valid {
		t.Errorf("stored hash does not verify: valid=%v err=%v", valid, err)
	}
}

func TestRegister_AdminEmailGetsAdminRole(t *testing.T) {
	env := newTestEnv(t)
	h := env.router(t)

	w, body := do(t, h, jsonRequest(http.MethodPost, "/auth/register",
		`{"email":"`+testAdminEmail+`","password":"secret123","name":"Admin"}`))

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %v", w.Code, body)
	}
	user := body["user"].(map[string]any)
	if user["role"] != model.RoleAdmin {
		t.Errorf("role = %v, want %q", user["role"], model.RoleAdmin)
	}
}

func TestRegister_Validation(t *testing.T) {
	env := newTestEnv(t)
	h := env.router(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"invalid email", `{"email":"not-an-email","password":"secret123"}`, http.StatusBadRequest},
		{"short password", `{"email":"a@example.com","password":"পাঁচটি"}`, http.StatusBadRequest},
		{"malformed JSON", `{"email":`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := do(t, h, jsonRequest(http.MethodPost, "/auth/register", tt.body))
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if errorCode(body) != "invalid_input" {
				t.Errorf("code = %q, want invalid_input", errorCode(body))
			}
		})
	}
}

func TestRegister_ShortPasswordMessage(t *testing.T) {
	env := newTestEnv(t)
	h := env.router(t)

	// Six runes is the minimum; "পাঁচ" is far under it.
	w, body := do(t, h, jsonRequest(http.MethodPost, "/auth/register",
		`{"email":"a@example.com","password":"পাঁচ"}`))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	errObj := body["error"].(map[string]any)
	if errObj["message"] != MsgPasswordTooShort {
		t.Errorf("message = %v, want %q", errObj["message"], MsgPasswordTooShort)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	h := env.router(t)

	payload := `{"email":"dup@example.com","password":"secret123"}`
	if w, _ := do(t, h, jsonRequest(http.MethodPost, "/auth/register", payload)); w.Code != http.StatusCreated {
		t.Fatalf("first register status = %d", w.Code)
	}

	w, body := do(t, h, jsonRequest(http.MethodPost, "/auth/register", payload))
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusConflict)
	}
	errObj := body["error"].(map[string]any)
	if errObj["message"] != MsgEmailTaken {
		t.Errorf("message = %v, want %q", errObj["message"], MsgEmailTaken)
	}
}

func TestLogin_Success(t *testing.T) {
	env := newTestEnv(t)
	h := env.router(t)

	if w, _ := do(t, h, jsonRequest(http.MethodPost, "/auth/register",
		`{"email":"reader@example.com","password":"secret123"}`)); w.Code != http.StatusCreated {
		t.Fatalf("register status = %d", w.Code)
	}

	w, body := do(t, h, jsonRequest(http.MethodPost, "/auth/login",
		`{"email":"reader@example.com","password":"secret123"}`))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %v", w.Code, body)
	}
	if len(w.Result().Cookies()) == 0 {
		t.Error("no session cookie set")
	}

	stored, err := env.queries.GetUserByEmail(context.Background(), "reader@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if !stored.LastLoginAt.Valid {
		t.Error("last login not recorded")
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	env := newTestEnv(t)
	h := env.router(t)

	if w, _ := do(t, h, jsonRequest(http.MethodPost, "/auth/register",
		`{"email":"reader@example.com","password":"secret123"}`)); w.Code != http.StatusCreated {
		t.Fatalf("register status = %d", w.Code)
	}

	tests := []struct {
		name string
		body string
	}{
		{"wrong password", `{"email":"reader@example.com","password":"wrong-pass"}`},
		{"unknown email", `{"email":"nobody@example.com","password":"secret123"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := do(t, h, jsonRequest(http.MethodPost, "/auth/login", tt.body))
			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
			}
			// Identical message in both cases so emails cannot be probed.
			errObj := body["error"].(map[string]any)
			if errObj["message"] != MsgInvalidCredentials {
				t.Errorf("message = %v, want %q", errObj["message"], MsgInvalidCredentials)
			}
		})
	}
}

func TestMe(t *testing.T) {
	env := newTestEnv(t)
	h := env.router(t)
	user := env.createUser(t, "u1", "reader@example.com", model.RoleUser)

	w, body := do(t, h, authedRequest(t, env, http.MethodGet, "/auth/me", &user))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %v", w.Code, body)
	}
	got := body["user"].(map[string]any)
	if got["id"] != "u1" {
		t.Errorf("id = %v, want u1", got["id"])
	}

	w, body = do(t, h, authedRequest(t, env, http.MethodGet, "/auth/me", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	if errorCode(body) != "login_required" {
		t.Errorf("code = %q, want login_required", errorCode(body))
	}
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	h := env.router(t)
	user := env.createUser(t, "u1", "reader@example.com", model.RoleUser)

	w, _ := do(t, h, authedRequest(t, env, http.MethodPost, "/auth/logout", &user))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}
