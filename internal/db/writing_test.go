package db

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestDeriveExcerptStripsMarkdown(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "strip bold heading",
			content: "# **Night Train**\nbody",
			want:    "Night Train",
		},
		{
			name:    "strip italic heading",
			content: "# *Salt and Iron* \nmore",
			want:    "Salt and Iron",
		},
		{
			name:    "skip blank lines",
			content: "\n\n  \n*first line*\nsecond",
			want:    "first line",
		},
		{
			name:    "strip mixed emphasis",
			content: "## ***mixed***",
			want:    "mixed",
		},
		{
			name:    "keep link text",
			content: "see [the harbour](https://example.com) at dawn",
			want:    "see the harbour at dawn",
		},
		{
			name:    "empty",
			content: "   ",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveExcerpt(tt.content)
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDeriveExcerptTruncatesLongParagraphs(t *testing.T) {
	got := DeriveExcerpt(strings.Repeat("a", maxExcerptRunes+40))
	if utf8.RuneCountInString(got) != maxExcerptRunes+1 {
		t.Fatalf("expected truncated excerpt with ellipsis, got %d runes", utf8.RuneCountInString(got))
	}
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("expected ellipsis suffix, got %q", got)
	}
}

func TestWritingPinnedAndTrashed(t *testing.T) {
	w := Writing{Tags: []string{"poem", PinnedTag}}
	if !w.Pinned() {
		t.Fatalf("expected writing to be pinned")
	}
	if w.Trashed() {
		t.Fatalf("expected writing not to be trashed")
	}

	now := time.Now()
	w.Tags = []string{"poem"}
	w.TrashedAt = &now
	if w.Pinned() {
		t.Fatalf("expected writing not to be pinned")
	}
	if !w.Trashed() {
		t.Fatalf("expected writing to be trashed")
	}
}
