package utils

import (
	"testing"
	"time"
)

func TestDisplayDate(t *testing.T) {
	now := time.Date(2025, time.July, 12, 10, 0, 0, 0, time.UTC)
	cases := map[string]string{
		"2025-03-04T10:30:00Z":     "March 4, 2025",
		"2025-03-04T10:30:00.123Z": "March 4, 2025",
		"2025-03-04T10:30:00":      "March 4, 2025",
		"2025-03-04 10:30:00":      "March 4, 2025",
		"2025-12-25":               "December 25, 2025",
		"":                         "July 12, 2025",
		"not a date":               "July 12, 2025",
	}
	for in, want := range cases {
		if got := DisplayDate(in, now); got != want {
			t.Fatalf("DisplayDate(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSnakeToTitle(t *testing.T) {
	cases := map[string]string{
		"mail_kit":       "Mail Kit",
		"buy_back_order": "Buy Back Order",
		"single":         "Single",
		"keep_CAPS":      "Keep CAPS",
	}
	for in, want := range cases {
		if got := SnakeToTitle(in); got != want {
			t.Fatalf("SnakeToTitle(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint([]byte("jpegdata"))
	if a == "" || a != Fingerprint([]byte("jpegdata")) {
		t.Fatalf("fingerprint must be stable, got %q", a)
	}
	if a == Fingerprint([]byte("pngdata")) {
		t.Fatalf("different content should not collide here")
	}
}
