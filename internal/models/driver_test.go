package models

import (
	"testing"
	"time"
)

func TestAgeAt(t *testing.T) {
	now := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		dob  string
		want int
	}{
		{"1990-06-15", 36}, // birthday today
		{"1990-06-16", 35}, // birthday tomorrow
		{"1990-06-14", 36}, // birthday yesterday
		{"1990-12-01", 35}, // birthday later this year
		{"2026-06-15", 0},
		{"not-a-date", 0},
		{"", 0},
	}
	for _, c := range cases {
		if got := AgeAt(c.dob, now); got != c.want {
			t.Fatalf("AgeAt(%q) = %d, want %d", c.dob, got, c.want)
		}
	}
}
