// Copyright (c) 2026 Bigganboloy Project
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/bigganboloy/bigganboloy/internal/model"
)

const postColumns = `id, title, slug, excerpt, content, author_id, author_name,
	author_avatar, cover_image, category, tags, likes, views, status, created_at`

// CreatePostParams holds the fields for creating a post.
type CreatePostParams struct {
	ID           string
	Title        string
	Slug         string
	Excerpt      string
	Content      string
	AuthorID     string
	AuthorName   string
	AuthorAvatar string
	CoverImage   string
	Category     string
	Tags         []string
	Status       string
	CreatedAt    time.Time
}

// CreatePost inserts a new post and returns the stored record.
func (q *Queries) CreatePost(ctx context.Context, arg CreatePostParams) (model.Post, error) {
	tags, err := json.Marshal(arg.Tags)
	if err != nil {
		return model.Post{}, err
	}
	_, err = q.db.ExecContext(ctx, `
		INSERT INTO posts (id, title, slug, excerpt, content, author_id, author_name,
			author_avatar, cover_image, category, tags, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.ID, arg.Title, arg.Slug, arg.Excerpt, arg.Content, arg.AuthorID,
		arg.AuthorName, arg.AuthorAvatar, arg.CoverImage, arg.Category,
		string(tags), arg.Status, arg.CreatedAt,
	)
	if err != nil {
		return model.Post{}, err
	}
	return q.GetPostByID(ctx, arg.ID)
}

// GetPostByID returns the post with the given id regardless of status.
func (q *Queries) GetPostByID(ctx context.Context, id string) (model.Post, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE id = ?`, id)
	return scanPost(row)
}

// ListAllPosts returns every post regardless of status, newest first.
func (q *Queries) ListAllPosts(ctx context.Context) ([]model.Post, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+postColumns+` FROM posts ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPosts(rows)
}

// ListPostsByAuthor returns all posts by the given author, newest first.
// Pending posts are included so authors can see their own queue.
func (q *Queries) ListPostsByAuthor(ctx context.Context, authorID string) ([]model.Post, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+postColumns+` FROM posts
		WHERE author_id = ? ORDER BY created_at DESC`, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPosts(rows)
}

// ListPendingPostsBefore returns pending posts created before the cutoff,
// oldest first.
func (q *Queries) ListPendingPostsBefore(ctx context.Context, cutoff time.Time) ([]model.Post, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+postColumns+` FROM posts
		WHERE status = ? AND created_at < ?
		ORDER BY created_at ASC`, model.PostStatusPending, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPosts(rows)
}

// ApprovePost publishes a pending post. Approving an already published
// post is a no-op; the returned count is the number of rows changed.
func (q *Queries) ApprovePost(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, `
		UPDATE posts SET status = ? WHERE id = ? AND status = ?`,
		model.PostStatusPublished, id, model.PostStatusPending)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeletePost removes a post. Its comments go with it via ON DELETE CASCADE.
func (q *Queries) DeletePost(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// LikePost atomically increments the like counter of a published post and
// returns the new count. sql.ErrNoRows means the post is missing or not
// published.
func (q *Queries) LikePost(ctx context.Context, id string) (int64, error) {
	var likes int64
	err := q.db.QueryRowContext(ctx, `
		UPDATE posts SET likes = likes + 1
		WHERE id = ? AND status = ?
		RETURNING likes`, id, model.PostStatusPublished).Scan(&likes)
	return likes, err
}

// IncrementViews atomically bumps the view counter of a post.
func (q *Queries) IncrementViews(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, `
		UPDATE posts SET views = views + 1 WHERE id = ?`, id)
	return err
}

// CountPostsByStatus returns the number of posts with the given status.
func (q *Queries) CountPostsByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM posts WHERE status = ?`, status).Scan(&n)
	return n, err
}

// CountPostsByCategory returns the number of published posts per category.
func (q *Queries) CountPostsByCategory(ctx context.Context) (map[string]int64, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT category, COUNT(*) FROM posts
		WHERE status = ? GROUP BY category`, model.PostStatusPublished)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var category string
		var n int64
		if err := rows.Scan(&category, &n); err != nil {
			return nil, err
		}
		counts[category] = n
	}
	return counts, rows.Err()
}

// SumLikes returns the total like count across all posts.
func (q *Queries) SumLikes(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(likes), 0) FROM posts`).Scan(&n)
	return n, err
}

// SumViews returns the total view count across all posts.
func (q *Queries) SumViews(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(views), 0) FROM posts`).Scan(&n)
	return n, err
}

func scanPost(row rowScanner) (model.Post, error) {
	var p model.Post
	var tags string
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.AuthorID,
		&p.AuthorName, &p.AuthorAvatar, &p.CoverImage, &p.Category,
		&tags, &p.Likes, &p.Views, &p.Status, &p.CreatedAt,
	)
	if err != nil {
		return model.Post{}, err
	}
	if err := json.Unmarshal([]byte(tags), &p.Tags); err != nil {
		return model.Post{}, err
	}
	return p, nil
}

func collectPosts(rows *sql.Rows) ([]model.Post, error) {
	var posts []model.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
