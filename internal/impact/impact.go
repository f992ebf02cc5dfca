package impact

import (
	"MarketEcho/internal/model"
)

// Result holds the price impact of an event window.
type Result struct {
	OverallChangePct float64
	MaxDrawdownPct   float64
}

// Compute returns the overall percentage change and the maximum drawdown of
// a daily series. Requires at least 2 closes; returns a zero Result otherwise.
// MaxDrawdownPct is <= 0, equal to 0 only for a non-decreasing close sequence.
func Compute(bars []model.OHLCV) Result {
	if len(bars) < 2 {
		return Result{}
	}
	closes := extractCloses(bars)

	changePct := (closes[len(closes)-1]/closes[0] - 1) * 100

	peak := closes[0]
	maxDrawdown := 0.0
	for _, c := range closes[1:] {
		if c > peak {
			peak = c
			continue
		}
		dd := (c/peak - 1) * 100
		if dd < maxDrawdown {
			maxDrawdown = dd
		}
	}

	return Result{
		OverallChangePct: changePct,
		MaxDrawdownPct:   maxDrawdown,
	}
}

func extractCloses(bars []model.OHLCV) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
