// Copyright (c) 2026 Bigganboloy Project
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bigganboloy/bigganboloy/internal/auth"
	"github.com/bigganboloy/bigganboloy/internal/model"
)

// Default admin credentials. The email can be overridden through
// configuration; the password must be changed after first login.
const (
	DefaultAdminEmail    = "bigganboloy0@gmail.com"
	DefaultAdminPassword = "changeme"
	DefaultAdminName     = "বিজ্ঞানবলয়"
)

// Seed creates the admin account if it does not exist yet.
func Seed(ctx context.Context, db *sql.DB, adminEmail string) error {
	if adminEmail == "" {
		adminEmail = DefaultAdminEmail
	}

	queries := New(db)

	_, err := queries.GetUserByEmail(ctx, adminEmail)
	if err == nil {
		slog.Info("admin user already exists, skipping seed")
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	passwordHash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user, err := queries.CreateUser(ctx, CreateUserParams{
		ID:           uuid.NewString(),
		Name:         DefaultAdminName,
		Email:        adminEmail,
		Avatar:       "",
		Role:         model.RoleAdmin,
		PasswordHash: passwordHash,
		JoinedAt:     time.Now(),
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	slog.Info("created default admin user",
		"id", user.ID,
		"email", user.Email,
		"password", DefaultAdminPassword,
	)

	return nil
}

// SeedDemo inserts sample published posts authored by the admin when
// the posts table is empty. Intended for development databases.
func SeedDemo(ctx context.Context, db *sql.DB, adminEmail string) error {
	if adminEmail == "" {
		adminEmail = DefaultAdminEmail
	}

	queries := New(db)

	admin, err := queries.GetUserByEmail(ctx, adminEmail)
	if err != nil {
		return fmt.Errorf("looking up admin for demo seed: %w", err)
	}

	existing, err := queries.CountPostsByStatus(ctx, model.PostStatusPublished)
	if err != nil {
		return fmt.Errorf("counting posts: %w", err)
	}
	if existing > 0 {
		slog.Info("posts already exist, skipping demo seed")
		return nil
	}

	samples := []struct {
		title, slug, content, category string
		tags                           []string
	}{
		{
			title:    "জেমস ওয়েব টেলিস্কোপের নতুন আবিষ্কার",
			slug:     "james-webb-notun-abishkar",
			content:  "জেমস ওয়েব স্পেস টেলিস্কোপ মহাবিশ্বের প্রাচীনতম ছায়াপথগুলোর ছবি তুলেছে। এই পর্যবেক্ষণ মহাবিশ্বের শুরুর দিকের ইতিহাস বুঝতে সাহায্য করছে।",
			category: "space",
			tags:     []string{"মহাকাশ", "টেলিস্কোপ"},
		},
		{
			title:    "CRISPR জিন সম্পাদনা কীভাবে কাজ করে",
			slug:     "crispr-gene-editing",
			content:  "CRISPR-Cas9 প্রযুক্তি দিয়ে বিজ্ঞানীরা ডিএনএর নির্দিষ্ট অংশ কেটে বদলে দিতে পারেন। জিনগত রোগের চিকিৎসায় এটি নতুন সম্ভাবনা খুলে দিয়েছে।",
			category: "biology",
			tags:     []string{"জীববিজ্ঞান", "জিন"},
		},
	}

	for _, s := range samples {
		now := time.Now()
		_, err := queries.CreatePost(ctx, CreatePostParams{
			ID:           uuid.NewString(),
			Title:        s.title,
			Slug:         s.slug,
			Excerpt:      model.MakeExcerpt(s.content),
			Content:      s.content,
			AuthorID:     admin.ID,
			AuthorName:   admin.Name,
			AuthorAvatar: admin.Avatar,
			CoverImage:   fmt.Sprintf("https://picsum.photos/seed/%d/800/400", now.UnixMilli()),
			Category:     s.category,
			Tags:         s.tags,
			Status:       model.PostStatusPublished,
			CreatedAt:    now,
		})
		if err != nil {
			return fmt.Errorf("seeding demo post %q: %w", s.title, err)
		}
	}

	slog.Info("seeded demo posts", "count", len(samples))
	return nil
}
