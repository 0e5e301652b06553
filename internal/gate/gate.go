// Copyright (c) 2026 Bigganboloy Project
// SPDX-License-Identifier: GPL-3.0-or-later

// Package gate decides whether an actor may perform an action. The same
// decisions are enforced at the HTTP layer; keeping the rules here means
// both layers cannot drift apart.
package gate

import (
	"github.com/bigganboloy/bigganboloy/internal/model"
)

// Action names a capability or destination an actor may request.
type Action string

// Actions. View, like, comment and create belong to the author
// workflow; profile and moderate name the gated pages.
const (
	ActionView     Action = "view"
	ActionLike     Action = "like"
	ActionComment  Action = "comment"
	ActionCreate   Action = "create"
	ActionProfile  Action = "profile"
	ActionModerate Action = "moderate"
)

// Reader-facing denial messages.
const (
	MsgLoginForLike  = "লাইক দিতে লগইন করুন"
	MsgLoginRequired = "লগইন প্রয়োজন"
)

// HomePath is where redirected requests are sent.
const HomePath = "/"

// Outcome is one of the three results a gate check can produce.
type Outcome int

const (
	// OutcomeAllow lets the request through.
	OutcomeAllow Outcome = iota
	// OutcomeLoginMessage denies with an inline login-required message,
	// leaving the reader where they are.
	OutcomeLoginMessage
	// OutcomeRedirectHome sends the reader back to the home feed.
	OutcomeRedirectHome
)

// Decision is the result of a gate check. Reason carries the message
// shown to the reader when the outcome is OutcomeLoginMessage.
type Decision struct {
	Outcome Outcome
	Reason  string
}

// Allowed reports whether the request may proceed.
func (d Decision) Allowed() bool {
	return d.Outcome == OutcomeAllow
}

// Check decides whether user (nil when signed out) may perform action.
// Author-workflow actions deny with an inline message; the profile and
// admin pages redirect home instead.
func Check(user *model.User, action Action) Decision {
	switch action {
	case ActionView:
		return Decision{Outcome: OutcomeAllow}
	case ActionLike:
		if user == nil {
			return Decision{Outcome: OutcomeLoginMessage, Reason: MsgLoginForLike}
		}
		return Decision{Outcome: OutcomeAllow}
	case ActionComment, ActionCreate:
		if user == nil {
			return Decision{Outcome: OutcomeLoginMessage, Reason: MsgLoginRequired}
		}
		return Decision{Outcome: OutcomeAllow}
	case ActionProfile:
		if user == nil {
			return Decision{Outcome: OutcomeRedirectHome}
		}
		return Decision{Outcome: OutcomeAllow}
	case ActionModerate:
		if user == nil || !user.IsAdmin() {
			return Decision{Outcome: OutcomeRedirectHome}
		}
		return Decision{Outcome: OutcomeAllow}
	default:
		return Decision{Outcome: OutcomeRedirectHome}
	}
}

// StatusForAuthor returns the status a newly submitted post gets: admin
// submissions publish immediately, everyone else waits for moderation.
func StatusForAuthor(user model.User) string {
	if user.IsAdmin() {
		return model.PostStatusPublished
	}
	return model.PostStatusPending
}
