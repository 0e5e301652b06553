// Copyright (c) 2026 Bigganboloy Project
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the periodic maintenance jobs: feed snapshot
// resync, the stale moderation queue report and event log pruning.
package scheduler

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/bigganboloy/bigganboloy/internal/feed"
	"github.com/bigganboloy/bigganboloy/internal/model"
	"github.com/bigganboloy/bigganboloy/internal/store"
)

// staleAfter is how long a post may sit in the moderation queue before
// the daily report flags it.
const staleAfter = 48 * time.Hour

// eventRetention is how long audit events are kept.
const eventRetention = 30 * 24 * time.Hour

// Scheduler handles recurring background jobs.
type Scheduler struct {
	db     *sql.DB
	sync   *feed.Synchronizer
	cron   *cron.Cron
	logger *slog.Logger
}

// New creates a new scheduler instance.
func New(db *sql.DB, sync *feed.Synchronizer, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		db:     db,
		sync:   sync,
		cron:   cron.New(),
		logger: logger,
	}
}

// Start registers the jobs and starts the cron loop. The feed resync is
// a safety net for bus events lost to slow subscribers; the daily jobs
// surface stuck moderation work and bound the event table.
func (s *Scheduler) Start() error {
	jobs := []struct {
		spec string
		name string
		run  func() error
	}{
		{"*/15 * * * *", "feed resync", s.resyncFeed},
		{"0 9 * * *", "stale pending report", s.reportStalePending},
		{"0 3 * * *", "event pruning", s.pruneEvents},
	}
	for _, job := range jobs {
		job := job
		if _, err := s.cron.AddFunc(job.spec, func() {
			if err := job.run(); err != nil {
				s.logger.Error("scheduled job failed", "job", job.name, "error", err)
			}
		}); err != nil {
			return err
		}
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) resyncFeed() error {
	if s.sync == nil {
		return nil
	}
	s.sync.Reload(context.Background())
	return nil
}

// reportStalePending logs pending posts that have waited too long and
// records an admin-visible event for each.
func (s *Scheduler) reportStalePending() error {
	ctx := context.Background()
	queries := store.New(s.db)

	posts, err := queries.ListPendingPostsBefore(ctx, time.Now().Add(-staleAfter))
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		return nil
	}

	s.logger.Warn("moderation queue has stale posts", "count", len(posts), "category", "admin")

	for _, post := range posts {
		metadata, _ := json.Marshal(map[string]any{
			"post_id":    post.ID,
			"post_title": post.Title,
			"created_at": post.CreatedAt.Format(time.RFC3339),
		})
		err := queries.CreateEvent(ctx, store.CreateEventParams{
			Level:     model.EventLevelWarning,
			Category:  model.EventCategoryAdmin,
			Message:   "Post awaiting moderation for over 48 hours: " + post.Title,
			Metadata:  string(metadata),
			CreatedAt: time.Now(),
		})
		if err != nil {
			s.logger.Warn("failed to record stale post event", "error", err, "post_id", post.ID)
		}
	}
	return nil
}

func (s *Scheduler) pruneEvents() error {
	pruned, err := store.New(s.db).PruneEvents(context.Background(), time.Now().Add(-eventRetention))
	if err != nil {
		return err
	}
	if pruned > 0 {
		s.logger.Info("old events pruned", "count", pruned)
	}
	return nil
}
