package cli

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	now := time.Date(2025, 3, 14, 15, 30, 0, 0, time.Local)
	day := func(d int) time.Time { return time.Date(2025, 3, d, 0, 0, 0, 0, time.Local) }

	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{"", day(14), false},
		{"today", day(14), false},
		{"Tomorrow", day(15), false},
		{"yesterday", day(13), false},
		{"+3", day(17), false},
		{"-14", time.Date(2025, 2, 28, 0, 0, 0, 0, time.Local), false},
		{" 2025-03-02 ", day(2), false},
		{"+x", time.Time{}, true},
		{"03/02/2025", time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDate(tt.in, now)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseDate(%q) err = %v", tt.in, err)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("parseDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMatchID(t *testing.T) {
	ids := []string{"abc123", "abd456", "abc"}

	tests := []struct {
		prefix  string
		want    string
		wantErr bool
	}{
		{"abc", "abc", false},
		{"abd", "abd456", false},
		{"abc1", "abc123", false},
		{"ab", "", true},
		{"zzz", "", true},
	}
	for _, tt := range tests {
		got, err := matchID(tt.prefix, ids)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("matchID(%q) = %q, %v", tt.prefix, got, err)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := truncate("周报需求整理与评审", 6); got != "周报需..." {
		t.Errorf("got %q", got)
	}
}
