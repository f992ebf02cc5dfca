package tradelog

import (
	"path/filepath"
	"testing"
	"time"

	"MarketEcho/internal/model"
)

func newTestLog(t *testing.T) *SQLiteLog {
	t.Helper()
	l, err := NewSQLiteLog(filepath.Join(t.TempDir(), "trades.db"))
	if err != nil {
		t.Fatalf("open sqlite log: %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l
}

func TestRecordAndRecentHeadlines(t *testing.T) {
	l := newTestLog(t)
	now := time.Now()

	trades := []*Trade{
		{Headline: "old fed news", Ticker: "SPY", Timestamp: now.AddDate(0, 0, -40)},
		{Headline: "fed pauses", Ticker: "spy", Timestamp: now.AddDate(0, 0, -5)},
		{Headline: "fed cuts", Ticker: "SPY", Timestamp: now.AddDate(0, 0, -1)},
		{Headline: "nvda beats", Ticker: "NVDA", Timestamp: now.AddDate(0, 0, -2)},
	}
	for _, tr := range trades {
		if err := l.Record(tr); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	got, err := l.RecentHeadlines("SPY", now.AddDate(0, 0, -30))
	if err != nil {
		t.Fatalf("recent headlines: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 headlines within lookback, got %d: %v", len(got), got)
	}
	if got[0] != "fed cuts" || got[1] != "fed pauses" {
		t.Errorf("expected newest first, got %v", got)
	}
}

func TestRecord_StampsZeroTimestamp(t *testing.T) {
	l := newTestLog(t)

	if err := l.Record(&Trade{Headline: "now", Ticker: "SPY"}); err != nil {
		t.Fatalf("record: %v", err)
	}
	got, err := l.RecentHeadlines("SPY", time.Now().Add(-time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("zero timestamp should be stamped with now, got %v", got)
	}
}

func TestTagStats(t *testing.T) {
	l := newTestLog(t)

	l.Record(&Trade{Headline: "a", Ticker: "SPY", Tags: model.Tags{IsFedWeek: true, SurprisePositive: true}})
	l.Record(&Trade{Headline: "b", Ticker: "SPY", Tags: model.Tags{IsFedWeek: true}})
	l.Record(&Trade{Headline: "c", Ticker: "NVDA", Tags: model.Tags{IsEarningsSeason: true, IsRepeatEvent: true}})

	s, err := l.TagStats()
	if err != nil {
		t.Fatalf("tag stats: %v", err)
	}
	if s.Total != 3 || s.FedWeek != 2 || s.SurprisePositive != 1 ||
		s.EarningsSeason != 1 || s.RepeatEvent != 1 || s.CPIWeek != 0 {
		t.Errorf("unexpected stats: %+v", s)
	}
}

func TestTagStats_EmptyLog(t *testing.T) {
	l := newTestLog(t)

	s, err := l.TagStats()
	if err != nil {
		t.Fatalf("tag stats on empty log: %v", err)
	}
	if s.Total != 0 {
		t.Errorf("expected empty stats, got %+v", s)
	}
}
