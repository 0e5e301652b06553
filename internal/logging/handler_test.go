// Copyright (c) 2026 Bigganboloy Project
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/bigganboloy/bigganboloy/internal/model"
	"github.com/bigganboloy/bigganboloy/internal/store"
	"github.com/bigganboloy/bigganboloy/internal/testutil"
)

// discardHandler is a slog.Handler that discards all logs.
type discardHandler struct{}

func (h discardHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (h discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return h }
func (h discardHandler) WithGroup(string) slog.Handler             { return h }

func TestEventLogHandler_Handle_ErrorLevel(t *testing.T) {
	db := testutil.TestDB(t)

	handler := NewEventLogHandler(discardHandler{}, db)
	logger := slog.New(handler)

	logger.Error("feed reload failed", "error", "disk full")

	// Give it a moment to write
	time.Sleep(50 * time.Millisecond)

	q := store.New(db)
	events, err := q.ListRecentEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}

	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Level != model.EventLevelError {
		t.Errorf("Level = %q, want %q", events[0].Level, model.EventLevelError)
	}
	if events[0].Message != "feed reload failed" {
		t.Errorf("Message = %q, want %q", events[0].Message, "feed reload failed")
	}
	if !strings.Contains(events[0].Metadata, "disk full") {
		t.Errorf("Metadata = %q, want error detail", events[0].Metadata)
	}
}

func TestEventLogHandler_InfoNotPersisted(t *testing.T) {
	db := testutil.TestDB(t)

	logger := slog.New(NewEventLogHandler(discardHandler{}, db))
	logger.Info("routine startup message")

	time.Sleep(50 * time.Millisecond)

	events, err := store.New(db).ListRecentEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("info log was persisted: %+v", events)
	}
}

func TestEventLogHandler_CategoryAttribute(t *testing.T) {
	db := testutil.TestDB(t)

	logger := slog.New(NewEventLogHandler(discardHandler{}, db))
	logger.Warn("suspicious request", "category", model.EventCategoryAdmin)

	time.Sleep(50 * time.Millisecond)

	events, err := store.New(db).ListRecentEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Category != model.EventCategoryAdmin {
		t.Errorf("Category = %q, want %q", events[0].Category, model.EventCategoryAdmin)
	}
}

func TestEventLogHandler_CategoryInference(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"failed login attempt", model.EventCategoryAuth},
		{"comment rejected", model.EventCategoryComment},
		{"post approved by moderator", model.EventCategoryPost},
		{"cache clear failed", model.EventCategoryCache},
		{"unexpected shutdown", model.EventCategorySystem},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			db := testutil.TestDB(t)
			logger := slog.New(NewEventLogHandler(discardHandler{}, db))
			logger.Warn(tt.message)

			time.Sleep(50 * time.Millisecond)

			events, err := store.New(db).ListRecentEvents(context.Background(), 10)
			if err != nil {
				t.Fatalf("ListRecentEvents: %v", err)
			}
			if len(events) != 1 {
				t.Fatalf("expected 1 event, got %d", len(events))
			}
			if events[0].Category != tt.want {
				t.Errorf("Category = %q, want %q", events[0].Category, tt.want)
			}
		})
	}
}

func TestEventLogHandler_UserIDAttribute(t *testing.T) {
	db := testutil.TestDB(t)

	logger := slog.New(NewEventLogHandler(discardHandler{}, db))
	logger.Warn("account locked", "user_id", "u42")

	time.Sleep(50 * time.Millisecond)

	events, err := store.New(db).ListRecentEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if !events[0].UserID.Valid || events[0].UserID.String != "u42" {
		t.Errorf("UserID = %+v, want u42", events[0].UserID)
	}
}
