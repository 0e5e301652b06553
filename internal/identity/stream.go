// Copyright (c) 2026 Bigganboloy Project
// SPDX-License-Identifier: GPL-3.0-or-later

package identity

import (
	"context"
	"sync"

	"github.com/bigganboloy/bigganboloy/internal/model"
)

// ResolveFunc resolves an identity to a stored profile.
type ResolveFunc func(ctx context.Context, ident Identity) (model.User, error)

// Stream tracks the active profile across auth-state transitions. When
// transitions arrive faster than resolution completes, only the result
// of the newest transition is kept; stale resolutions are dropped. A
// resolution error clears the active profile instead of leaving a stale
// one in place.
type Stream struct {
	resolve ResolveFunc

	mu      sync.Mutex
	seq     uint64
	current *model.User
}

// NewStream creates a Stream using resolve for profile lookups.
func NewStream(resolve ResolveFunc) *Stream {
	return &Stream{resolve: resolve}
}

// Submit feeds a new auth state into the stream. A nil identity is a
// sign-out. It returns the profile now active, or nil when signed out,
// when resolution failed, or when a newer submission superseded this one.
func (s *Stream) Submit(ctx context.Context, ident *Identity) (*model.User, error) {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	if ident == nil {
		s.store(seq, nil)
		return nil, nil
	}

	user, err := s.resolve(ctx, *ident)
	if err != nil {
		// Fail closed: a partial profile must never become active.
		s.store(seq, nil)
		return nil, err
	}

	if !s.store(seq, &user) {
		return nil, nil
	}
	return &user, nil
}

// Current returns the active profile, if any.
func (s *Stream) Current() (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return model.User{}, false
	}
	return *s.current, true
}

// store installs user as the active profile unless a newer submission
// already took over. Reports whether the value was installed.
func (s *Stream) store(seq uint64, user *model.User) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		return false
	}
	s.current = user
	return true
}
