// Copyright (c) 2026 Bigganboloy Project
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/bigganboloy/bigganboloy/internal/middleware"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	db        *sql.DB
	startTime time.Time
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{db: db, startTime: time.Now()}
}

// healthStatusPublic is the minimal response for unauthenticated callers.
type healthStatusPublic struct {
	Status string `json:"status"`
}

// healthStatus is the detailed response for authenticated callers.
type healthStatus struct {
	Status    string           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Checks    map[string]check `json:"checks"`
}

type check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// Health handles GET /health. Unauthenticated callers get a bare
// status; signed-in users get timings and per-check detail.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	dbCheck := h.checkDatabase(r.Context())

	status := "healthy"
	code := http.StatusOK
	if dbCheck.Status != "healthy" {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	if middleware.GetUser(r) == nil {
		writeJSON(w, code, healthStatusPublic{Status: status})
		return
	}

	writeJSON(w, code, healthStatus{
		Status:    status,
		Timestamp: time.Now(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Checks:    map[string]check{"database": dbCheck},
	})
}

func (h *HealthHandler) checkDatabase(ctx context.Context) check {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	if err := h.db.PingContext(ctx); err != nil {
		return check{Status: "unhealthy", Message: fmt.Sprintf("ping failed: %v", err)}
	}
	return check{Status: "healthy", Latency: time.Since(start).String()}
}
