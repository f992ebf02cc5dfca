package marketdata

import (
	"errors"
	"testing"
	"time"

	"MarketEcho/internal/model"
)

func TestStandardize(t *testing.T) {
	p := NewProvider(&MockFetcher{}, "SPY", nil)

	tests := []struct {
		in   string
		want string
	}{
		{"BTC", "BTC-USD"},
		{"bitcoin", "BTC-USD"},
		{"eth", "ETH-USD"},
		{"ada", "ADA-USD"},
		{"BTC-USD", "BTC-USD"},
		{"aapl", "AAPL"},
		{" nvda ", "NVDA"},
	}
	for _, tt := range tests {
		if got := p.Standardize(tt.in); got != tt.want {
			t.Errorf("Standardize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFetch_UnsupportedShortCircuits(t *testing.T) {
	mock := &MockFetcher{Bars: map[string][]model.OHLCV{
		"FUTURES": GenerateBars(100, 5, time.Now()),
	}}
	p := NewProvider(mock, "SPY", []string{"futures"})

	bars := p.Fetch("FUTURES", time.Now().AddDate(0, 0, -7), time.Now())
	if bars != nil {
		t.Errorf("expected nil series for unsupported ticker, got %d bars", len(bars))
	}
	if len(mock.Calls) != 0 {
		t.Errorf("expected no fetcher calls for unsupported ticker, got %v", mock.Calls)
	}
}

func TestFetch_FallbackOnEmpty(t *testing.T) {
	end := time.Now()
	mock := &MockFetcher{Bars: map[string][]model.OHLCV{
		"SPY": GenerateBars(500, 7, end),
	}}
	p := NewProvider(mock, "SPY", nil)

	bars := p.Fetch("OBSCURE", end.AddDate(0, 0, -7), end)
	if len(bars) != 7 {
		t.Fatalf("expected 7 fallback bars, got %d", len(bars))
	}
	if len(mock.Calls) != 2 || mock.Calls[0] != "OBSCURE" || mock.Calls[1] != "SPY" {
		t.Errorf("expected primary then fallback call, got %v", mock.Calls)
	}
}

func TestFetch_FallbackOnError(t *testing.T) {
	end := time.Now()
	mock := &MockFetcher{Err: errors.New("boom")}
	p := NewProvider(mock, "SPY", nil)

	bars := p.Fetch("AAPL", end.AddDate(0, 0, -7), end)
	if bars != nil {
		t.Errorf("expected empty series when both fetches fail, got %d bars", len(bars))
	}
	if len(mock.Calls) != 2 {
		t.Errorf("expected fallback attempt after error, got calls %v", mock.Calls)
	}
}

func TestFetch_NoFallbackLoop(t *testing.T) {
	mock := &MockFetcher{}
	p := NewProvider(mock, "SPY", nil)

	p.Fetch("SPY", time.Now().AddDate(0, 0, -7), time.Now())
	if len(mock.Calls) != 1 {
		t.Errorf("fallback must not retry the same symbol, got calls %v", mock.Calls)
	}
}
