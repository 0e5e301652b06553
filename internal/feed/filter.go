// Copyright (c) 2026 Bigganboloy Project
// SPDX-License-Identifier: GPL-3.0-or-later

package feed

import (
	"strings"

	"github.com/bigganboloy/bigganboloy/internal/model"
)

// Filter selects the published posts matching a category and a
// free-text query. Pending posts are never returned no matter what the
// other arguments say. The category must equal the post's category
// unless it is "all"; the query matches case-insensitively against
// title or content. All conditions must hold. Filtering is pure: the
// input slice is never modified and applying the same filter twice
// gives the same result.
func Filter(posts []model.Post, category, query string) []model.Post {
	q := strings.ToLower(strings.TrimSpace(query))

	result := make([]model.Post, 0, len(posts))
	for _, p := range posts {
		if !p.IsPublished() {
			continue
		}
		if category != "" && category != model.CategoryAll && p.Category != category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Title), q) &&
			!strings.Contains(strings.ToLower(p.Content), q) {
			continue
		}
		result = append(result, p)
	}
	return result
}
