// Copyright (c) 2026 Bigganboloy Project
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// CategoryAll is the synthetic filter value matching every category.
const CategoryAll = "all"

// Category describes one topic section of the site.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Categories is the fixed set of topic sections. The list is build-time
// configuration; category ids are stored on posts verbatim.
var Categories = []Category{
	{ID: "space", Name: "মহাকাশ", Icon: "🚀"},
	{ID: "tech", Name: "প্রযুক্তি", Icon: "💻"},
	{ID: "physics", Name: "পদার্থবিজ্ঞান", Icon: "⚛️"},
	{ID: "biology", Name: "জীববিজ্ঞান", Icon: "🧬"},
	{ID: "environment", Name: "পরিবেশ", Icon: "🌍"},
}

// ValidCategory reports whether id names a known category. CategoryAll is
// accepted for filtering but is never a valid category for a stored post.
func ValidCategory(id string) bool {
	for _, c := range Categories {
		if c.ID == id {
			return true
		}
	}
	return false
}
