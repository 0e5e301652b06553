// Copyright (c) 2026 Bigganboloy Project
// SPDX-License-Identifier: GPL-3.0-or-later

// Package bus provides in-process publish/subscribe for post collection
// changes. Subscribers get change notifications on buffered channels; a
// subscriber that falls behind loses notifications rather than blocking
// publishers, which is safe because consumers reload wholesale on every
// notification.
package bus

import (
	"log/slog"
	"sync"
	"time"
)

// Event types.
const (
	EventPostCreated  = "post.created"
	EventPostUpdated  = "post.updated"
	EventPostDeleted  = "post.deleted"
	EventPostLiked    = "post.liked"
	EventCommentAdded = "comment.added"
)

// Event describes one change to the post collection.
type Event struct {
	Type      string    `json:"type"`
	PostID    string    `json:"post_id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEvent creates an Event stamped with the current time.
func NewEvent(eventType, postID string) Event {
	return Event{
		Type:      eventType,
		PostID:    postID,
		Timestamp: time.Now().UTC(),
	}
}

const subscriberBuffer = 16

// Bus fans out post change events to subscribers.
type Bus struct {
	logger *slog.Logger

	mu     sync.RWMutex
	subs   map[int]chan Event
	nextID int
	closed bool
}

// New creates a Bus.
func New(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		logger: logger,
		subs:   make(map[int]chan Event),
	}
}

// Subscribe registers a new subscriber. The returned cancel function
// removes the subscription and closes the channel.
func (b *Bus) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan Event, subscriberBuffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers ev to all subscribers without blocking. Slow
// subscribers drop the event.
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}

	for id, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			b.logger.Warn("dropping bus event for slow subscriber",
				"subscriber", id,
				"event", ev.Type,
				"post_id", ev.PostID,
			)
		}
	}
}

// Close shuts the bus down and closes all subscriber channels.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
