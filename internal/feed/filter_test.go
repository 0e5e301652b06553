// Copyright (c) 2026 Bigganboloy Project
// SPDX-License-Identifier: GPL-3.0-or-later

package feed

import (
	"reflect"
	"testing"

	"github.com/bigganboloy/bigganboloy/internal/model"
)

func filterFixture() []model.Post {
	return []model.Post{
		{ID: "p1", Title: "কৃষ্ণগহ্বরের রহস্য", Content: "মহাকাশ নিয়ে আলোচনা", Category: "space", Status: model.PostStatusPublished},
		{ID: "p2", Title: "Quantum Computing", Content: "কোয়ান্টাম কম্পিউটার", Category: "tech", Status: model.PostStatusPublished},
		{ID: "p3", Title: "ডিএনএ রহস্য", Content: "জিনতত্ত্বের কথা", Category: "biology", Status: model.PostStatusPublished},
		// Matches the space category and the রহস্য query but must never
		// appear in any result below.
		{ID: "p4", Title: "নক্ষত্রের রহস্য", Content: "মহাকাশ নিয়ে খসড়া", Category: "space", Status: model.PostStatusPending},
	}
}

func filterIDs(posts []model.Post) []string {
	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	return ids
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		category string
		query    string
		want     []string
	}{
		{
			name:     "all category empty query keeps everything",
			category: "all",
			want:     []string{"p1", "p2", "p3"},
		},
		{
			name:     "empty category behaves like all",
			category: "",
			want:     []string{"p1", "p2", "p3"},
		},
		{
			name:     "category only",
			category: "space",
			want:     []string{"p1"},
		},
		{
			name:     "query matches title",
			category: "all",
			query:    "রহস্য",
			want:     []string{"p1", "p3"},
		},
		{
			name:     "query matches content",
			category: "all",
			query:    "কোয়ান্টাম",
			want:     []string{"p2"},
		},
		{
			name:     "query is case-insensitive",
			category: "all",
			query:    "quantum",
			want:     []string{"p2"},
		},
		{
			name:     "category and query must both match",
			category: "biology",
			query:    "রহস্য",
			want:     []string{"p3"},
		},
		{
			name:     "no matches",
			category: "space",
			query:    "ডিএনএ",
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterIDs(Filter(filterFixture(), tt.category, tt.query))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Filter(%q, %q) = %v, want %v", tt.category, tt.query, got, tt.want)
			}
		})
	}
}

func TestFilter_ExcludesPending(t *testing.T) {
	pendingOnly := []model.Post{
		{ID: "draft", Title: "খসড়া", Content: "অপ্রকাশিত", Category: "space", Status: model.PostStatusPending},
	}

	for _, tt := range []struct{ category, query string }{
		{"all", ""},
		{"space", ""},
		{"all", "খসড়া"},
	} {
		if got := Filter(pendingOnly, tt.category, tt.query); len(got) != 0 {
			t.Errorf("Filter(%q, %q) returned pending post %q", tt.category, tt.query, got[0].ID)
		}
	}
}

func TestFilter_Idempotent(t *testing.T) {
	once := Filter(filterFixture(), "all", "রহস্য")
	twice := Filter(once, "all", "রহস্য")
	if !reflect.DeepEqual(filterIDs(once), filterIDs(twice)) {
		t.Errorf("filter not idempotent: %v vs %v", filterIDs(once), filterIDs(twice))
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	posts := filterFixture()
	Filter(posts, "space", "")
	if !reflect.DeepEqual(filterIDs(posts), []string{"p1", "p2", "p3", "p4"}) {
		t.Error("Filter mutated its input slice")
	}
}
