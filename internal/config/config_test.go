// Copyright (c) 2026 Bigganboloy Project
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"os"
	"testing"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	// Clear environment and set only required var
	os.Clearenv()
	setEnv(t, "BB_SESSION_SECRET", "test-secret-key-32-bytes-long!!!")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// Check defaults
	if cfg.DBPath != "./data/bigganboloy.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "./data/bigganboloy.db")
	}
	if cfg.ServerHost != "localhost" {
		t.Errorf("ServerHost = %q, want %q", cfg.ServerHost, "localhost")
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 8080)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want %q", cfg.Env, "development")
	}
	if cfg.AdminEmail != "bigganboloy0@gmail.com" {
		t.Errorf("AdminEmail = %q, want %q", cfg.AdminEmail, "bigganboloy0@gmail.com")
	}
	if cfg.AssistEnabled() {
		t.Error("AssistEnabled() should be false without an API key")
	}
	if cfg.UseRedisCache() {
		t.Error("UseRedisCache() should be false without a Redis URL")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	customSecret := "custom-secret-key-32-bytes-long!"
	setEnv(t, "BB_SESSION_SECRET", customSecret)
	setEnv(t, "BB_DB_PATH", "/custom/path.db")
	setEnv(t, "BB_SERVER_HOST", "0.0.0.0")
	setEnv(t, "BB_SERVER_PORT", "3000")
	setEnv(t, "BB_ENV", "production")
	setEnv(t, "BB_ADMIN_EMAIL", "mod@example.com")
	setEnv(t, "BB_OPENAI_API_KEY", "sk-test")
	setEnv(t, "BB_REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.SessionSecret != customSecret {
		t.Errorf("SessionSecret = %q, want %q", cfg.SessionSecret, customSecret)
	}
	if cfg.DBPath != "/custom/path.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "/custom/path.db")
	}
	if cfg.ServerAddr() != "0.0.0.0:3000" {
		t.Errorf("ServerAddr() = %q, want %q", cfg.ServerAddr(), "0.0.0.0:3000")
	}
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() should be false in production")
	}
	if cfg.AdminEmail != "mod@example.com" {
		t.Errorf("AdminEmail = %q, want %q", cfg.AdminEmail, "mod@example.com")
	}
	if !cfg.AssistEnabled() {
		t.Error("AssistEnabled() should be true with an API key")
	}
	if !cfg.UseRedisCache() {
		t.Error("UseRedisCache() should be true with a Redis URL")
	}
}

func TestLoad_RequiredSessionSecret(t *testing.T) {
	os.Clearenv()
	// Don't set BB_SESSION_SECRET

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should fail when BB_SESSION_SECRET is not set")
	}
}

func TestLoad_ShortSessionSecret(t *testing.T) {
	os.Clearenv()
	setEnv(t, "BB_SESSION_SECRET", "too-short")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should fail for a short session secret")
	}
}

func TestLoad_WeakSessionSecret(t *testing.T) {
	os.Clearenv()
	setEnv(t, "BB_SESSION_SECRET", "change-me-to-32-byte-secret-key!")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should reject a known default secret")
	}
}
