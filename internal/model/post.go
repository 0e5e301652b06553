// Copyright (c) 2026 Bigganboloy Project
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"time"
	"unicode/utf8"
)

// Post statuses
const (
	PostStatusPending   = "pending"
	PostStatusPublished = "published"
)

// ExcerptLength is the number of runes of content used for the excerpt.
const ExcerptLength = 100

// Post represents a blog post. AuthorName and AuthorAvatar are a snapshot
// of the author profile taken at submission time and are intentionally not
// kept in sync with later profile edits.
type Post struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Excerpt      string    `json:"excerpt"`
	Content      string    `json:"content"`
	AuthorID     string    `json:"authorId"`
	AuthorName   string    `json:"authorName"`
	AuthorAvatar string    `json:"authorAvatar"`
	CoverImage   string    `json:"coverImage"`
	Category     string    `json:"category"`
	Tags         []string  `json:"tags"`
	Likes        int64     `json:"likes"`
	Views        int64     `json:"views"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

// IsPublished returns true if the post is published.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// IsPending returns true if the post awaits moderation.
func (p *Post) IsPending() bool {
	return p.Status == PostStatusPending
}

// MakeExcerpt derives the list-view excerpt from post content: the first
// ExcerptLength runes followed by an ellipsis. Content is Bengali, so the
// cut must respect rune boundaries.
func MakeExcerpt(content string) string {
	if utf8.RuneCountInString(content) <= ExcerptLength {
		return content + "..."
	}
	runes := []rune(content)
	return string(runes[:ExcerptLength]) + "..."
}
