package marketdata

import (
	"time"

	"MarketEcho/internal/model"
)

// Fetcher defines the interface for fetching daily market data over a date range.
type Fetcher interface {
	FetchDailyRange(symbol string, start, end time.Time) ([]model.OHLCV, error)
	Name() string
}
