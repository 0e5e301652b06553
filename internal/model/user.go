// Copyright (c) 2026 Bigganboloy Project
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain models and types used throughout the
// application including User, Post, Comment and Category structures.
package model

import (
	"database/sql"
	"time"
)

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a reader or author profile. The ID is the auth subject
// id; the record is created lazily on first successful authentication and
// its stored fields take precedence over the live identity afterwards.
type User struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Avatar       string       `json:"avatar"`
	Role         string       `json:"role"`
	Bio          string       `json:"bio,omitempty"`
	PasswordHash string       `json:"-"` // Never expose in JSON
	JoinedAt     time.Time    `json:"joinedAt"`
	LastLoginAt  sql.NullTime `json:"-"`
}

// IsAdmin returns true if the user has admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
