// Copyright (c) 2026 Bigganboloy Project
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/bigganboloy/bigganboloy/internal/model"
)

const commentColumns = `id, post_id, user_id, user_name, user_avatar, text, created_at`

// CreateCommentParams holds the fields for creating a comment.
type CreateCommentParams struct {
	ID         string
	PostID     string
	UserID     string
	UserName   string
	UserAvatar string
	Text       string
	CreatedAt  time.Time
}

// CreateComment inserts a new comment and returns the stored record.
func (q *Queries) CreateComment(ctx context.Context, arg CreateCommentParams) (model.Comment, error) {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO comments (id, post_id, user_id, user_name, user_avatar, text, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		arg.ID, arg.PostID, arg.UserID, arg.UserName, arg.UserAvatar, arg.Text, arg.CreatedAt,
	)
	if err != nil {
		return model.Comment{}, err
	}
	row := q.db.QueryRowContext(ctx, `
		SELECT `+commentColumns+` FROM comments WHERE id = ?`, arg.ID)
	return scanComment(row)
}

// ListCommentsByPost returns a post's comments, oldest first.
func (q *Queries) ListCommentsByPost(ctx context.Context, postID string) ([]model.Comment, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+commentColumns+` FROM comments
		WHERE post_id = ? ORDER BY created_at ASC`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []model.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// CountComments returns the total number of comments.
func (q *Queries) CountComments(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM comments`).Scan(&n)
	return n, err
}

func scanComment(row rowScanner) (model.Comment, error) {
	var c model.Comment
	err := row.Scan(
		&c.ID, &c.PostID, &c.UserID, &c.UserName, &c.UserAvatar, &c.Text, &c.CreatedAt,
	)
	return c, err
}
