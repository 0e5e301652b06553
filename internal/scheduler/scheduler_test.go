// Copyright (c) 2026 Bigganboloy Project
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/bigganboloy/bigganboloy/internal/model"
	"github.com/bigganboloy/bigganboloy/internal/store"
	"github.com/bigganboloy/bigganboloy/internal/testutil"
)

func TestNew(t *testing.T) {
	s := New(nil, nil, testutil.TestLogger())
	if s == nil {
		t.Fatal("New() returned nil")
	}
	if s.cron == nil {
		t.Error("New() scheduler has nil cron")
	}
}

func TestScheduler_StartStop(t *testing.T) {
	s := New(nil, nil, testutil.TestLogger())

	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if got := len(s.cron.Entries()); got != 3 {
		t.Errorf("registered jobs = %d, want 3", got)
	}
	s.Stop()
}

func TestReportStalePending(t *testing.T) {
	db := testutil.TestDB(t)
	q := store.New(db)
	ctx := context.Background()

	if _, err := q.CreateUser(ctx, store.CreateUserParams{
		ID: "u1", Name: "লেখক", Email: "author@example.com",
		Role: model.RoleUser, PasswordHash: "hash", JoinedAt: time.Now(),
	}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	makePost := func(id string, age time.Duration) {
		t.Helper()
		_, err := q.CreatePost(ctx, store.CreatePostParams{
			ID: id, Title: "অপেক্ষমাণ পোস্ট", Slug: "opekkhoman-" + id,
			Excerpt: "...", Content: "কন্টেন্ট", AuthorID: "u1",
			AuthorName: "লেখক", Category: "space", Tags: []string{},
			Status: model.PostStatusPending, CreatedAt: time.Now().Add(-age),
		})
		if err != nil {
			t.Fatalf("CreatePost: %v", err)
		}
	}
	makePost("old", 72*time.Hour)
	makePost("fresh", time.Hour)

	s := New(db, nil, testutil.TestLogger())
	if err := s.reportStalePending(); err != nil {
		t.Fatalf("reportStalePending() error = %v", err)
	}

	events, err := q.ListRecentEvents(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("len(events) = %d, want 1 stale post flagged", len(events))
	}
	if events[0].Level != model.EventLevelWarning {
		t.Errorf("level = %q, want warning", events[0].Level)
	}
	if events[0].Category != model.EventCategoryAdmin {
		t.Errorf("category = %q, want admin", events[0].Category)
	}
}

func TestPruneEvents(t *testing.T) {
	db := testutil.TestDB(t)
	q := store.New(db)
	ctx := context.Background()

	for _, age := range []time.Duration{40 * 24 * time.Hour, time.Hour} {
		err := q.CreateEvent(ctx, store.CreateEventParams{
			Level: model.EventLevelInfo, Category: model.EventCategorySystem,
			Message: "event", CreatedAt: time.Now().Add(-age),
		})
		if err != nil {
			t.Fatalf("CreateEvent: %v", err)
		}
	}

	s := New(db, nil, testutil.TestLogger())
	if err := s.pruneEvents(); err != nil {
		t.Fatalf("pruneEvents() error = %v", err)
	}

	events, err := q.ListRecentEvents(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("len(events) = %d, want 1 after pruning", len(events))
	}
}
