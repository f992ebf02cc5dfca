package store

import (
	"MarketEcho/internal/model"
)

// Record kinds persisted by the store.
const (
	KindHistoricalEvent = "historical_event"
	KindSimilarEvents   = "similar_events"
	KindQuery           = "query"
)

// Metadata is the envelope shared by all persisted record variants.
type Metadata struct {
	Kind     string `json:"kind"`
	SavedAt  string `json:"saved_at"`
	Query    string `json:"query,omitempty"`
	Location string `json:"location"`
}

// HistoricalEventRecord captures the analyzed price impact of one historical
// event. Records are append-only; saved records are never updated or deleted.
type HistoricalEventRecord struct {
	Ticker         string        `json:"ticker"`
	EventDate      string        `json:"event_date"`
	PriceChangePct float64       `json:"price_change_pct"`
	MaxDrawdownPct float64       `json:"max_drawdown_pct"`
	Trend          string        `json:"trend"`
	DaysAnalyzed   int           `json:"days_analyzed"`
	PriceData      []model.OHLCV `json:"price_data,omitempty"`
	Tags           model.Tags    `json:"event_tags"`
	Meta           Metadata      `json:"_metadata"`
}

// SimilarEventsRecord captures a ranked set of historical precedents for a
// recurring market pattern.
type SimilarEventsRecord struct {
	PatternSummary   string              `json:"pattern_summary"`
	DominantTicker   string              `json:"dominant_ticker"`
	Matches          []model.MatchResult `json:"matches"`
	AvgPriceChange   float64             `json:"avg_price_change"`
	ConsistencyScore float64             `json:"consistency_score"`
	Tags             model.Tags          `json:"event_tags"`
	Meta             Metadata            `json:"_metadata"`
}

// QueryRecord ties a query string to the analysis records it produced.
type QueryRecord struct {
	ID                string   `json:"id"`
	Query             string   `json:"query"`
	EventPath         string   `json:"event_analysis_path,omitempty"`
	SimilarEventsPath string   `json:"similar_events_path,omitempty"`
	Meta              Metadata `json:"_metadata"`
}
