// Copyright (c) 2026 Bigganboloy Project
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestPostStatusHelpers(t *testing.T) {
	tests := []struct {
		name          string
		status        string
		wantPublished bool
		wantPending   bool
	}{
		{"published", PostStatusPublished, true, false},
		{"pending", PostStatusPending, false, true},
		{"empty", "", false, false},
		{"unknown", "draft", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Post{Status: tt.status}
			if got := p.IsPublished(); got != tt.wantPublished {
				t.Errorf("IsPublished() = %v, want %v", got, tt.wantPublished)
			}
			if got := p.IsPending(); got != tt.wantPending {
				t.Errorf("IsPending() = %v, want %v", got, tt.wantPending)
			}
		})
	}
}

func TestMakeExcerpt(t *testing.T) {
	t.Run("short content keeps everything", func(t *testing.T) {
		got := MakeExcerpt("ছোট লেখা")
		if got != "ছোট লেখা..." {
			t.Errorf("MakeExcerpt() = %q, want %q", got, "ছোট লেখা...")
		}
	})

	t.Run("long content cut at rune boundary", func(t *testing.T) {
		content := strings.Repeat("বিজ্ঞান ", 40)
		got := MakeExcerpt(content)
		if !strings.HasSuffix(got, "...") {
			t.Errorf("MakeExcerpt() = %q, want ... suffix", got)
		}
		body := strings.TrimSuffix(got, "...")
		if n := utf8.RuneCountInString(body); n != ExcerptLength {
			t.Errorf("excerpt rune count = %d, want %d", n, ExcerptLength)
		}
		if !utf8.ValidString(got) {
			t.Errorf("MakeExcerpt() produced invalid UTF-8: %q", got)
		}
	})
}
