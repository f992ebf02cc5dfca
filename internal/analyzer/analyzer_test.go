package analyzer

import (
	"testing"
	"time"

	"MarketEcho/internal/model"
)

func TestPatternSummary(t *testing.T) {
	tests := []struct {
		h    model.Headline
		want string
	}{
		{model.Headline{Sentiment: "Bullish", EventType: "Monetary_Policy"}, "bullish monetary_policy"},
		{model.Headline{EventType: "earnings"}, "earnings"},
		{model.Headline{Sentiment: "bearish"}, "bearish"},
		{model.Headline{}, "unclassified"},
	}
	for _, tt := range tests {
		if got := PatternSummary(tt.h); got != tt.want {
			t.Errorf("PatternSummary(%+v) = %q, want %q", tt.h, got, tt.want)
		}
	}
}

func TestTrend(t *testing.T) {
	tests := []struct {
		m    model.MatchResult
		want string
	}{
		{model.MatchResult{PriceChangePct: 2.5}, "Bullish"},
		{model.MatchResult{PriceChangePct: -0.1}, "Bearish"},
		{model.MatchResult{PriceChangePct: 0}, "Neutral"},
		{model.MatchResult{PriceChangePct: 5, DataStatus: model.PriceDataUnavailable}, "Unknown"},
	}
	for _, tt := range tests {
		if got := trend(tt.m); got != tt.want {
			t.Errorf("trend(%+v) = %q, want %q", tt.m, got, tt.want)
		}
	}
}

func TestDominantTicker_FirstSeenTieBreak(t *testing.T) {
	matches := []model.MatchResult{
		{AffectedTicker: "SPY"},
		{AffectedTicker: "QQQ"},
		{AffectedTicker: "QQQ"},
		{AffectedTicker: "SPY"},
	}
	if got := dominantTicker(matches); got != "SPY" {
		t.Errorf("tie should break to first seen, got %q", got)
	}
	if got := dominantTicker(nil); got != "" {
		t.Errorf("empty matches should yield empty ticker, got %q", got)
	}
}

func TestAvgPriceChange_SkipsUnavailable(t *testing.T) {
	matches := []model.MatchResult{
		{PriceChangePct: 4},
		{PriceChangePct: 2},
		{PriceChangePct: 99, DataStatus: model.PriceDataUnavailable},
	}
	if got := avgPriceChange(matches); got != 3 {
		t.Errorf("expected 3.0, got %.2f", got)
	}
	if got := avgPriceChange(nil); got != 0 {
		t.Errorf("expected 0 for no matches, got %.2f", got)
	}
}

func TestConsistencyScore(t *testing.T) {
	matches := []model.MatchResult{
		{PriceChangePct: 4},
		{PriceChangePct: 1},
		{PriceChangePct: -2},
	}
	if got := consistencyScore(matches); got != 2.0/3.0*100 {
		t.Errorf("expected 66.67, got %.2f", got)
	}

	allUnavailable := []model.MatchResult{{DataStatus: model.PriceDataUnavailable}}
	if got := consistencyScore(allUnavailable); got != 0 {
		t.Errorf("expected 0 when no data-bearing matches, got %.2f", got)
	}
}

func TestParsePublished(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-06-03T14:30:00Z", "2024-06-03"},
		{"2024-06-03", "2024-06-03"},
		{"2024-06-03 14:30:00", "2024-06-03"},
	}
	for _, tt := range tests {
		got := parsePublished(tt.in)
		if got.Format(model.DateFormat) != tt.want {
			t.Errorf("parsePublished(%q) = %s, want %s", tt.in, got.Format(model.DateFormat), tt.want)
		}
	}

	// Unparseable dates fall back to now.
	got := parsePublished("garbage")
	if time.Since(got) > time.Minute {
		t.Errorf("expected fallback to now, got %s", got)
	}
}
