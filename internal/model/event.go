package model

// PriceDataUnavailable marks a MatchResult whose market data could not be fetched.
const PriceDataUnavailable = "unavailable"

// MatchResult is one ranked historical precedent for a classified headline.
// Score is always in [0,1]. When market data is unavailable the match is
// still returned with DataStatus set and zeroed price fields.
type MatchResult struct {
	EventSummary   string  `json:"event_summary"`
	MatchScore     float64 `json:"match_score"`
	EventDate      string  `json:"event_date"`
	AffectedTicker string  `json:"affected_ticker"`
	PriceChangePct float64 `json:"price_change_pct"`
	MaxDrawdownPct float64 `json:"max_drawdown_pct"`
	DateRange      string  `json:"date_range"`
	PriceData      []OHLCV `json:"price_data,omitempty"`
	DataStatus     string  `json:"data_status,omitempty"`
}

// Tags holds the boolean context tags attached to an analyzed event.
type Tags struct {
	SurprisePositive bool `json:"surprise_positive"`
	IsFedWeek        bool `json:"is_fed_week"`
	IsCPIWeek        bool `json:"is_cpi_week"`
	IsEarningsSeason bool `json:"is_earnings_season"`
	IsRepeatEvent    bool `json:"is_repeat_event"`
}
