// Copyright (c) 2026 Bigganboloy Project
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/bigganboloy/bigganboloy/internal/model"
)

const userColumns = `id, name, email, avatar, role, bio, password_hash, joined_at, last_login_at`

// CreateUserParams holds the fields for creating a user.
type CreateUserParams struct {
	ID           string
	Name         string
	Email        string
	Avatar       string
	Role         string
	PasswordHash string
	JoinedAt     time.Time
}

// CreateUser inserts a new user and returns the stored record.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (model.User, error) {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, avatar, role, bio, password_hash, joined_at)
		VALUES (?, ?, ?, ?, ?, '', ?, ?)`,
		arg.ID, arg.Name, arg.Email, arg.Avatar, arg.Role, arg.PasswordHash, arg.JoinedAt,
	)
	if err != nil {
		return model.User{}, err
	}
	return q.GetUserByID(ctx, arg.ID)
}

// GetUserByID returns the user with the given id.
func (q *Queries) GetUserByID(ctx context.Context, id string) (model.User, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// GetUserByEmail returns the user with the given email.
func (q *Queries) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

// UpdateUserPassword replaces the stored password hash.
func (q *Queries) UpdateUserPassword(ctx context.Context, id, passwordHash string) error {
	_, err := q.db.ExecContext(ctx, `
		UPDATE users SET password_hash = ? WHERE id = ?`, passwordHash, id)
	return err
}

// UpdateLastLogin records a successful login time.
func (q *Queries) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	_, err := q.db.ExecContext(ctx, `UPDATE users SET last_login_at = ? WHERE id = ?`, at, id)
	return err
}

// UpdateUserProfileParams holds the editable profile fields.
type UpdateUserProfileParams struct {
	ID     string
	Name   string
	Avatar string
	Bio    string
}

// UpdateUserProfile updates the editable fields of a profile.
func (q *Queries) UpdateUserProfile(ctx context.Context, arg UpdateUserProfileParams) (model.User, error) {
	_, err := q.db.ExecContext(ctx, `
		UPDATE users SET name = ?, avatar = ?, bio = ? WHERE id = ?`,
		arg.Name, arg.Avatar, arg.Bio, arg.ID,
	)
	if err != nil {
		return model.User{}, err
	}
	return q.GetUserByID(ctx, arg.ID)
}

// CountUsers returns the total number of registered users.
func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.Avatar, &u.Role, &u.Bio,
		&u.PasswordHash, &u.JoinedAt, &u.LastLoginAt,
	)
	return u, err
}
