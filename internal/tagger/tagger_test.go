package tagger

import (
	"errors"
	"testing"
	"time"

	"MarketEcho/internal/model"
)

type fakeHistory struct {
	headlines []string
	err       error
}

func (f *fakeHistory) RecentHeadlines(_ string, _ time.Time) ([]string, error) {
	return f.headlines, f.err
}

func newTestTagger(history TradeHistory) *Tagger {
	return New(NewRepeatCache(16), history, 30, 0.7, 0.9)
}

func TestTag_CPISurpriseOverride(t *testing.T) {
	tg := newTestTagger(nil)
	// "misses" alone reads negative, but actual below expected overrides.
	h := model.Headline{Title: "CPI misses forecasts", Ticker: "SPY"}
	macro := model.MacroSnapshot{
		model.MacroCPIActual:   3.1,
		model.MacroCPIExpected: 3.3,
	}

	tags := tg.Tag(h, macro, day("2024-06-03"))
	if !tags.SurprisePositive {
		t.Error("CPI below expectations must read as a positive surprise")
	}
	if !tags.IsCPIWeek {
		t.Error("CPI headline with snapshot data should set the CPI week tag")
	}

	// Actual above expected flips the verdict even with positive keywords.
	macro[model.MacroCPIActual] = 3.6
	tags = tg.Tag(model.Headline{Title: "CPI tops forecasts, stocks surge", Ticker: "QQQ"}, macro, day("2024-06-03"))
	if tags.SurprisePositive {
		t.Error("CPI above expectations must read as a negative surprise")
	}
}

func TestTag_KeywordHeuristicWithoutCPIData(t *testing.T) {
	tg := newTestTagger(nil)

	tags := tg.Tag(model.Headline{Title: "Nvidia beats estimates, shares surge", Ticker: "NVDA"}, nil, day("2024-06-03"))
	if !tags.SurprisePositive {
		t.Error("positive keywords should dominate")
	}
	if tags.IsCPIWeek {
		t.Error("non-CPI headline must not set the CPI week tag")
	}

	tags = tg.Tag(model.Headline{Title: "Apple shares drop after weak guidance", Ticker: "AAPL"}, nil, day("2024-06-04"))
	if tags.SurprisePositive {
		t.Error("negative keywords should dominate")
	}
}

func TestTag_CPIWeekNeedsSnapshot(t *testing.T) {
	tg := newTestTagger(nil)

	tags := tg.Tag(model.Headline{Title: "Inflation worries return", Ticker: "SPY"}, nil, day("2024-06-03"))
	if tags.IsCPIWeek {
		t.Error("CPI week requires the actual figure in the snapshot")
	}
}

func TestTag_CalendarTags(t *testing.T) {
	tg := newTestTagger(nil)

	tags := tg.Tag(model.Headline{Title: "Markets await Fed", Ticker: "SPY"}, nil, day("2024-01-31"))
	if !tags.IsFedWeek {
		t.Error("expected Fed week on a meeting day")
	}
	if !tags.IsEarningsSeason {
		t.Error("late January is earnings season")
	}
}

func TestTag_RepeatViaTradeHistory(t *testing.T) {
	history := &fakeHistory{headlines: []string{"Nvidia beats estimates on strong AI demand today"}}
	tg := newTestTagger(history)

	tags := tg.Tag(model.Headline{
		Title:  "Nvidia beats estimates on strong AI demand",
		Ticker: "NVDA",
	}, nil, day("2024-06-03"))
	if !tags.IsRepeatEvent {
		t.Error("near-duplicate trade log headline should mark a repeat event")
	}

	tags = tg.Tag(model.Headline{
		Title:  "Oil prices spike on supply disruption",
		Ticker: "XLE",
	}, nil, day("2024-06-03"))
	if tags.IsRepeatEvent {
		t.Error("unrelated headline must not be a repeat")
	}
}

func TestTag_RepeatViaCache(t *testing.T) {
	tg := newTestTagger(nil)
	date := day("2024-06-03")

	first := tg.Tag(model.Headline{Title: "Fed holds rates steady", Ticker: "SPY"}, nil, date)
	if first.IsRepeatEvent {
		t.Error("first occurrence must not be a repeat")
	}

	second := tg.Tag(model.Headline{Title: "Fed holds rates steady", Ticker: "SPY"}, nil, date.AddDate(0, 0, 5))
	if !second.IsRepeatEvent {
		t.Error("identical event within the lookback should be a repeat")
	}
}

func TestTag_RepeatIgnoresOldCacheEntries(t *testing.T) {
	tg := newTestTagger(nil)

	tg.Tag(model.Headline{Title: "Fed holds rates steady", Ticker: "SPY"}, nil, day("2024-01-10"))
	tags := tg.Tag(model.Headline{Title: "Fed holds rates steady", Ticker: "SPY"}, nil, day("2024-06-03"))
	if tags.IsRepeatEvent {
		t.Error("entries outside the lookback window must not count")
	}
}

func TestTag_AlwaysAppendsToCache(t *testing.T) {
	tg := newTestTagger(&fakeHistory{err: errors.New("db down")})

	tg.Tag(model.Headline{Title: "Fed holds rates", Ticker: "SPY"}, nil, day("2024-06-03"))
	tg.Tag(model.Headline{Title: "Oil spikes", Ticker: "XLE"}, nil, day("2024-06-03"))
	if tg.Cache.Len() != 2 {
		t.Errorf("every tagged event must land in the cache, got %d entries", tg.Cache.Len())
	}
}

func TestNew_Defaults(t *testing.T) {
	tg := New(NewRepeatCache(1), nil, 0, 0, 0)
	if tg.LookbackDays != 30 || tg.JaccardThreshold != 0.7 || tg.BitThreshold != 0.9 {
		t.Errorf("unexpected defaults: %d / %.2f / %.2f",
			tg.LookbackDays, tg.JaccardThreshold, tg.BitThreshold)
	}
}
