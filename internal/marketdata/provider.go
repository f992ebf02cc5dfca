package marketdata

import (
	"log"
	"strings"
	"time"

	"MarketEcho/internal/model"
)

// cryptoMap maps common crypto names to their canonical quoted symbols.
var cryptoMap = map[string]string{
	"BTC":      "BTC-USD",
	"BITCOIN":  "BTC-USD",
	"ETH":      "ETH-USD",
	"ETHEREUM": "ETH-USD",
	"SOL":      "SOL-USD",
	"SOLANA":   "SOL-USD",
	"XRP":      "XRP-USD",
	"DOGE":     "DOGE-USD",
}

// cryptoKeywords are symbols known to be crypto assets that quote against USD.
var cryptoKeywords = map[string]bool{
	"ADA":   true,
	"AVAX":  true,
	"BNB":   true,
	"DOT":   true,
	"LINK":  true,
	"LTC":   true,
	"MATIC": true,
	"SHIB":  true,
	"UNI":   true,
}

// Provider standardizes ticker symbols and fetches daily price series,
// retrying once against a fallback ticker when the primary comes back empty.
type Provider struct {
	Fetcher        Fetcher
	FallbackTicker string
	unsupported    map[string]bool
}

// NewProvider creates a Provider. Tickers on the unsupported list
// short-circuit to an empty series without a network call.
func NewProvider(fetcher Fetcher, fallbackTicker string, unsupported []string) *Provider {
	skip := make(map[string]bool, len(unsupported))
	for _, t := range unsupported {
		skip[strings.ToUpper(strings.TrimSpace(t))] = true
	}
	return &Provider{
		Fetcher:        fetcher,
		FallbackTicker: fallbackTicker,
		unsupported:    skip,
	}
}

// Standardize returns the canonical uppercase symbol for a ticker. Crypto
// tickers carry a -USD suffix.
func (p *Provider) Standardize(ticker string) string {
	t := strings.ToUpper(strings.TrimSpace(ticker))
	if mapped, ok := cryptoMap[t]; ok {
		return mapped
	}
	if cryptoKeywords[t] && !strings.HasSuffix(t, "-USD") {
		return t + "-USD"
	}
	return t
}

// Fetch returns the daily series for ticker between start and end. An empty
// or failed primary fetch is retried once against the fallback ticker; if
// that also comes back empty the result is an empty series. Fetch never fails.
func (p *Provider) Fetch(ticker string, start, end time.Time) []model.OHLCV {
	symbol := p.Standardize(ticker)
	if p.unsupported[symbol] {
		log.Printf("[INFO] %s has no market data support, skipping fetch", symbol)
		return nil
	}

	bars, err := p.Fetcher.FetchDailyRange(symbol, start, end)
	if err != nil {
		log.Printf("[WARN] fetch %s: %v", symbol, err)
	}
	if len(bars) > 0 {
		return bars
	}

	if p.FallbackTicker == "" || p.FallbackTicker == symbol {
		return nil
	}
	log.Printf("[WARN] no data for %s, substituting %s", symbol, p.FallbackTicker)
	bars, err = p.Fetcher.FetchDailyRange(p.FallbackTicker, start, end)
	if err != nil {
		log.Printf("[WARN] fallback fetch %s: %v", p.FallbackTicker, err)
		return nil
	}
	return bars
}
