package tagger

import (
	"time"

	"MarketEcho/internal/model"
)

// fedWeekWindowDays is the day distance around a policy-meeting date that
// still counts as "Fed week".
const fedWeekWindowDays = 3

// fomcDates lists known FOMC rate-decision dates (second meeting day).
var fomcDates = []string{
	"2023-02-01", "2023-03-22", "2023-05-03", "2023-06-14",
	"2023-07-26", "2023-09-20", "2023-11-01", "2023-12-13",
	"2024-01-31", "2024-03-20", "2024-05-01", "2024-06-12",
	"2024-07-31", "2024-09-18", "2024-11-07", "2024-12-18",
	"2025-01-29", "2025-03-19", "2025-05-07", "2025-06-18",
	"2025-07-30", "2025-09-17", "2025-10-29", "2025-12-10",
	"2026-01-28", "2026-03-18", "2026-04-29", "2026-06-17",
	"2026-07-29", "2026-09-16", "2026-10-28", "2026-12-09",
}

// earningsSeasons are the four closed month/day ranges covering the bulk of
// quarterly reporting.
var earningsSeasons = [4]struct {
	startMonth, startDay int
	endMonth, endDay     int
}{
	{1, 15, 2, 28},
	{4, 15, 5, 31},
	{7, 15, 8, 31},
	{10, 15, 11, 30},
}

// Fixed surprise-direction vocabularies, matched against normalized tokens.
var positiveSurpriseWords = map[string]bool{
	"beat": true, "beats": true, "surge": true, "surges": true, "surged": true,
	"record": true, "tops": true, "topped": true, "exceeds": true, "exceeded": true,
	"strong": true, "rally": true, "rallies": true, "soars": true, "soared": true,
	"jump": true, "jumps": true, "jumped": true, "cooling": true, "upbeat": true,
}

var negativeSurpriseWords = map[string]bool{
	"miss": true, "misses": true, "missed": true, "plunge": true, "plunges": true,
	"plunged": true, "disappoint": true, "disappoints": true, "disappointing": true,
	"falls": true, "fell": true, "drop": true, "drops": true, "dropped": true,
	"slump": true, "slumps": true, "weak": true, "tumbles": true, "tumbled": true,
}

var cpiWords = map[string]bool{
	"cpi": true, "inflation": true, "inflationary": true, "deflation": true,
}

// IsFedWeek reports whether date lies within the Fed-week window of any
// known policy-meeting date.
func IsFedWeek(date time.Time) bool {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	for _, s := range fomcDates {
		meeting, err := time.Parse(model.DateFormat, s)
		if err != nil {
			continue
		}
		diff := day.Sub(meeting)
		if diff < 0 {
			diff = -diff
		}
		if diff <= fedWeekWindowDays*24*time.Hour {
			return true
		}
	}
	return false
}

// IsEarningsSeason reports whether the date's month/day falls inside one of
// the four reporting windows.
func IsEarningsSeason(date time.Time) bool {
	m, d := int(date.Month()), date.Day()
	for _, s := range earningsSeasons {
		afterStart := m > s.startMonth || (m == s.startMonth && d >= s.startDay)
		beforeEnd := m < s.endMonth || (m == s.endMonth && d <= s.endDay)
		if afterStart && beforeEnd {
			return true
		}
	}
	return false
}

func mentionsCPI(tokens []string) bool {
	for _, tok := range tokens {
		if cpiWords[tok] {
			return true
		}
	}
	return false
}
