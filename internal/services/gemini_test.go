package services

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateToRuneBoundary(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"under limit", "hello", 10, "hello"},
		{"exact limit", "hello", 5, "hello"},
		{"ascii cut", "hello", 3, "hel"},
		{"cut inside two-byte rune", "héllo", 2, "h"},
		{"cut after two-byte rune", "héllo", 3, "hé"},
		{"cut inside four-byte rune", "a\U0001F600b", 3, "a"},
		{"zero limit", "hello", 0, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := truncateToRuneBoundary(tc.in, tc.limit)
			if got != tc.want {
				t.Errorf("truncateToRuneBoundary(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("result %q is not valid UTF-8", got)
			}
		})
	}
}

func TestTruncateToRuneBoundaryLongMultibyteInput(t *testing.T) {
	in := strings.Repeat("é", maxEmbedInputBytes) // 2 bytes per rune
	got := truncateToRuneBoundary(in, maxEmbedInputBytes)

	if len(got) > maxEmbedInputBytes {
		t.Errorf("result is %d bytes, cap is %d", len(got), maxEmbedInputBytes)
	}
	if !utf8.ValidString(got) {
		t.Error("truncated result is not valid UTF-8")
	}
}
