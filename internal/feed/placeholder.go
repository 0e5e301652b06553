// Copyright (c) 2026 Bigganboloy Project
// SPDX-License-Identifier: GPL-3.0-or-later

// Package feed maintains the published-post snapshot served to readers
// and the filtering applied on top of it.
package feed

import (
	"time"

	"github.com/bigganboloy/bigganboloy/internal/model"
)

// Placeholder posts are served when the collection is empty or cannot be
// loaded, so the front page never renders blank. They are never written
// to storage and disappear as soon as real posts exist.
var placeholderPosts = []model.Post{
	{
		ID:           "placeholder-1",
		Title:        "কৃষ্ণগহ্বর: মহাবিশ্বের অদৃশ্য দানব",
		Slug:         "krisnogohbor-mohabissher-odrissho-danob",
		Excerpt:      "কৃষ্ণগহ্বর এমন এক মহাজাগতিক বস্তু যার মাধ্যাকর্ষণ এত প্রবল যে আলোও সেখান থেকে বের হতে পারে না। আইনস্টাইনের সাধারণ আপেক্ষিকতা তত্ত্ব...",
		Content:      "কৃষ্ণগহ্বর এমন এক মহাজাগতিক বস্তু যার মাধ্যাকর্ষণ এত প্রবল যে আলোও সেখান থেকে বের হতে পারে না। আইনস্টাইনের সাধারণ আপেক্ষিকতা তত্ত্ব অনুসারে, যথেষ্ট ভর একটি ক্ষুদ্র স্থানে কেন্দ্রীভূত হলে স্থান-কাল এমনভাবে বেঁকে যায় যে সেখান থেকে কিছুই পালাতে পারে না।\n\n২০১৯ সালে ইভেন্ট হরাইজন টেলিস্কোপ প্রথমবারের মতো একটি কৃষ্ণগহ্বরের ছবি তোলে, যা বিজ্ঞানের ইতিহাসে এক মাইলফলক।",
		AuthorName:   "বিজ্ঞানবলয়",
		AuthorAvatar: "https://ui-avatars.com/api/?name=%E0%A6%AC%E0%A6%BF%E0%A6%9C%E0%A7%8D%E0%A6%9E%E0%A6%BE%E0%A6%A8%E0%A6%AC%E0%A6%B2%E0%A7%9F&background=random",
		CoverImage:   "https://picsum.photos/seed/blackhole/800/400",
		Category:     "space",
		Tags:         []string{"বিজ্ঞান", "মহাকাশ"},
		Status:       model.PostStatusPublished,
		CreatedAt:    time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
	},
	{
		ID:           "placeholder-2",
		Title:        "কৃত্রিম বুদ্ধিমত্তা কীভাবে আমাদের জীবন বদলে দিচ্ছে",
		Slug:         "kritrim-buddhimotta",
		Excerpt:      "কৃত্রিম বুদ্ধিমত্তা এখন আর বিজ্ঞান কল্পকাহিনির বিষয় নয়। চিকিৎসা থেকে শুরু করে কৃষি, শিক্ষা থেকে পরিবহন, সব ক্ষেত্রেই এআই...",
		Content:      "কৃত্রিম বুদ্ধিমত্তা এখন আর বিজ্ঞান কল্পকাহিনির বিষয় নয়। চিকিৎসা থেকে শুরু করে কৃষি, শিক্ষা থেকে পরিবহন, সব ক্ষেত্রেই এআই প্রযুক্তির ব্যবহার দ্রুত বাড়ছে।\n\nমেশিন লার্নিং মডেল এখন রোগ নির্ণয়ে চিকিৎসকদের সহায়তা করছে, আবহাওয়ার পূর্বাভাস আরও নির্ভুল করছে এবং ভাষা অনুবাদকে সহজলভ্য করে তুলেছে।",
		AuthorName:   "বিজ্ঞানবলয়",
		AuthorAvatar: "https://ui-avatars.com/api/?name=%E0%A6%AC%E0%A6%BF%E0%A6%9C%E0%A7%8D%E0%A6%9E%E0%A6%BE%E0%A6%A8%E0%A6%AC%E0%A6%B2%E0%A7%9F&background=random",
		CoverImage:   "https://picsum.photos/seed/ai/800/400",
		Category:     "tech",
		Tags:         []string{"প্রযুক্তি", "এআই"},
		Status:       model.PostStatusPublished,
		CreatedAt:    time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC),
	},
	{
		ID:           "placeholder-3",
		Title:        "জলবায়ু পরিবর্তন: বাংলাদেশের জন্য কী অপেক্ষা করছে",
		Slug:         "jolobayu-poribortan-bangladesh",
		Excerpt:      "সমুদ্রপৃষ্ঠের উচ্চতা বৃদ্ধি, অনিয়মিত বৃষ্টিপাত আর ঘন ঘন প্রাকৃতিক দুর্যোগ। জলবায়ু পরিবর্তনের প্রভাব বাংলাদেশে ইতিমধ্যে দৃশ্যমান...",
		Content:      "সমুদ্রপৃষ্ঠের উচ্চতা বৃদ্ধি, অনিয়মিত বৃষ্টিপাত আর ঘন ঘন প্রাকৃতিক দুর্যোগ। জলবায়ু পরিবর্তনের প্রভাব বাংলাদেশে ইতিমধ্যে দৃশ্যমান।\n\nবিজ্ঞানীদের হিসাবে, এই শতাব্দীর শেষ নাগাদ সমুদ্রপৃষ্ঠ এক মিটার পর্যন্ত বাড়তে পারে, যা উপকূলীয় অঞ্চলের কোটি মানুষের জীবনযাত্রায় প্রভাব ফেলবে। তবে আশার কথা, নবায়নযোগ্য শক্তি আর সবুজ প্রযুক্তিতে বিনিয়োগ বাড়ছে।",
		AuthorName:   "বিজ্ঞানবলয়",
		AuthorAvatar: "https://ui-avatars.com/api/?name=%E0%A6%AC%E0%A6%BF%E0%A6%9C%E0%A7%8D%E0%A6%9E%E0%A6%BE%E0%A6%A8%E0%A6%AC%E0%A6%B2%E0%A7%9F&background=random",
		CoverImage:   "https://picsum.photos/seed/climate/800/400",
		Category:     "environment",
		Tags:         []string{"পরিবেশ", "জলবায়ু"},
		Status:       model.PostStatusPublished,
		CreatedAt:    time.Date(2024, 1, 5, 8, 0, 0, 0, time.UTC),
	},
}

// PlaceholderPosts returns a copy of the fallback posts.
func PlaceholderPosts() []model.Post {
	posts := make([]model.Post, len(placeholderPosts))
	copy(posts, placeholderPosts)
	return posts
}
