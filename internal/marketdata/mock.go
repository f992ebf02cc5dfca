package marketdata

import (
	"time"

	"MarketEcho/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Bars  map[string][]model.OHLCV
	Err   error
	Calls []string
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyRange(symbol string, _, _ time.Time) ([]model.OHLCV, error) {
	m.Calls = append(m.Calls, symbol)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Bars[symbol], nil
}

// GenerateBars builds count synthetic daily bars ending the day before end.
func GenerateBars(basePrice float64, count int, end time.Time) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   end.AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
