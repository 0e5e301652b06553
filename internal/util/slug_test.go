// Copyright (c) 2026 Bigganboloy Project
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple title",
			input:    "Hello World",
			expected: "hello-world",
		},
		{
			name:     "with special characters",
			input:    "Hello, World!",
			expected: "hello-world",
		},
		{
			name:     "with numbers",
			input:    "Page 123",
			expected: "page-123",
		},
		{
			name:     "with multiple spaces",
			input:    "Hello   World",
			expected: "hello-world",
		},
		{
			name:     "with leading/trailing spaces",
			input:    "  Hello World  ",
			expected: "hello-world",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSlugify_Bengali(t *testing.T) {
	// Exact transliteration depends on the unidecode table; the important
	// property is that Bengali titles yield a usable non-empty slug.
	inputs := []string{
		"কৃষ্ণগহ্বরের রহস্য",
		"মহাকাশ ভ্রমণ",
		"কোয়ান্টাম পদার্থবিজ্ঞান",
	}
	for _, in := range inputs {
		got := Slugify(in)
		if got == "" {
			t.Errorf("Slugify(%q) = empty, want a non-empty slug", in)
			continue
		}
		if !IsValidSlug(got) {
			t.Errorf("Slugify(%q) = %q, not a valid slug", in, got)
		}
	}
}

func TestSlugify_Deterministic(t *testing.T) {
	in := "বিজ্ঞানবলয় Blog"
	if a, b := Slugify(in), Slugify(in); a != b {
		t.Errorf("Slugify not deterministic: %q vs %q", a, b)
	}
}

func TestIsValidSlug(t *testing.T) {
	tests := []struct {
		slug string
		want bool
	}{
		{"hello-world", true},
		{"page-123", true},
		{"", false},
		{"-leading", false},
		{"trailing-", false},
		{"double--hyphen", false},
		{"UpperCase", false},
		{"with space", false},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			if got := IsValidSlug(tt.slug); got != tt.want {
				t.Errorf("IsValidSlug(%q) = %v, want %v", tt.slug, got, tt.want)
			}
		})
	}
}
