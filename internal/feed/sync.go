// Copyright (c) 2026 Bigganboloy Project
// SPDX-License-Identifier: GPL-3.0-or-later

package feed

import (
	"context"
	"log/slog"
	"sync"

	"github.com/bigganboloy/bigganboloy/internal/bus"
	"github.com/bigganboloy/bigganboloy/internal/cache"
	"github.com/bigganboloy/bigganboloy/internal/model"
	"github.com/bigganboloy/bigganboloy/internal/store"
)

// Synchronizer keeps an in-memory snapshot of the full post collection,
// newest first, pending posts included; the published cut happens at
// read time in Filter. It reloads wholesale on every change
// notification, so a burst of changes converges to the final collection
// state regardless of how many notifications were coalesced or dropped.
// Only when the collection itself is empty, or a reload fails, does the
// snapshot fall back to placeholder posts; a collection holding nothing
// but pending posts yields an empty feed, not invented content.
type Synchronizer struct {
	queries *store.Queries
	bus     *bus.Bus
	cache   cache.Cache
	logger  *slog.Logger

	mu           sync.RWMutex
	posts        []model.Post
	placeholders bool

	cancelSub func()
	done      chan struct{}
	wg        sync.WaitGroup
}

// NewSynchronizer creates a Synchronizer. The cache, if non-nil, is
// cleared on every reload so cached feed responses never outlive the
// snapshot they were built from.
func NewSynchronizer(queries *store.Queries, b *bus.Bus, c cache.Cache, logger *slog.Logger) *Synchronizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Synchronizer{
		queries: queries,
		bus:     b,
		cache:   c,
		logger:  logger,
		done:    make(chan struct{}),
	}
}

// Start performs the initial load and begins consuming change
// notifications.
func (s *Synchronizer) Start(ctx context.Context) {
	s.Reload(ctx)

	events, cancel := s.bus.Subscribe()
	s.cancelSub = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			select {
			case <-s.done:
				return
			case <-ctx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				s.logger.Debug("feed reload triggered",
					"event", ev.Type,
					"post_id", ev.PostID,
				)
				s.Reload(ctx)
			}
		}
	}()
}

// Stop detaches from the bus and waits for the consumer to finish.
func (s *Synchronizer) Stop() {
	if s.cancelSub != nil {
		s.cancelSub()
	}
	close(s.done)
	s.wg.Wait()
}

// Reload replaces the snapshot with the current collection state.
func (s *Synchronizer) Reload(ctx context.Context) {
	posts, err := s.queries.ListAllPosts(ctx)
	placeholders := false

	if err != nil {
		s.logger.Error("feed reload failed, serving placeholders", "error", err)
		posts = PlaceholderPosts()
		placeholders = true
	} else if len(posts) == 0 {
		posts = PlaceholderPosts()
		placeholders = true
	}

	s.mu.Lock()
	s.posts = posts
	s.placeholders = placeholders
	s.mu.Unlock()

	if s.cache != nil {
		if err := s.cache.Clear(ctx); err != nil {
			s.logger.Warn("clearing feed cache", "error", err)
		}
	}
}

// Posts returns a copy of the current snapshot.
func (s *Synchronizer) Posts() []model.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	posts := make([]model.Post, len(s.posts))
	copy(posts, s.posts)
	return posts
}

// Get returns the snapshot post with the given id. This is the only way
// placeholder posts are addressable, since they have no storage row.
func (s *Synchronizer) Get(id string) (model.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.posts {
		if p.ID == id {
			return p, true
		}
	}
	return model.Post{}, false
}

// UsingPlaceholders reports whether the snapshot is the fallback set.
func (s *Synchronizer) UsingPlaceholders() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.placeholders
}
