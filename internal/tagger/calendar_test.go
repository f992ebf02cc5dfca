package tagger

import (
	"testing"
	"time"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestIsFedWeek(t *testing.T) {
	tests := []struct {
		date string
		want bool
	}{
		{"2024-03-20", true},  // meeting day
		{"2024-03-17", true},  // 3 days before
		{"2024-03-23", true},  // 3 days after
		{"2024-03-16", false}, // 4 days before
		{"2024-03-24", false}, // 4 days after
		{"2024-04-20", false}, // a month away
		{"2025-12-10", true},
	}
	for _, tt := range tests {
		if got := IsFedWeek(day(tt.date)); got != tt.want {
			t.Errorf("IsFedWeek(%s) = %v, want %v", tt.date, got, tt.want)
		}
	}
}

func TestIsFedWeek_TimezoneIndependent(t *testing.T) {
	loc := time.FixedZone("UTC+13", 13*3600)
	late := time.Date(2024, 3, 20, 23, 30, 0, 0, loc)
	if !IsFedWeek(late) {
		t.Error("late-evening local time on a meeting day should still be Fed week")
	}
}

func TestIsEarningsSeason(t *testing.T) {
	tests := []struct {
		date string
		want bool
	}{
		{"2024-01-14", false}, // day before Q4 season opens
		{"2024-01-15", true},  // season start, inclusive
		{"2024-02-28", true},  // season end, inclusive
		{"2024-03-01", false},
		{"2024-04-15", true},
		{"2024-05-31", true},
		{"2024-06-15", false},
		{"2024-07-20", true},
		{"2024-08-31", true},
		{"2024-09-10", false},
		{"2024-10-15", true},
		{"2024-11-30", true},
		{"2024-12-25", false},
	}
	for _, tt := range tests {
		if got := IsEarningsSeason(day(tt.date)); got != tt.want {
			t.Errorf("IsEarningsSeason(%s) = %v, want %v", tt.date, got, tt.want)
		}
	}
}
