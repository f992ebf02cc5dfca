package tradelog

import (
	"time"

	"MarketEcho/internal/model"
)

// Trade is one analyzed event recorded for later lookback scans and
// tag-frequency mining.
type Trade struct {
	Headline   string
	Ticker     string
	EventType  string
	Sentiment  string
	Sector     string
	MatchScore float64
	Tags       model.Tags
	Timestamp  time.Time
}

// TagStats aggregates tag frequencies over the recorded history.
type TagStats struct {
	Total            int
	SurprisePositive int
	FedWeek          int
	CPIWeek          int
	EarningsSeason   int
	RepeatEvent      int
}

// Log persists analyzed trades.
type Log interface {
	Record(t *Trade) error
	RecentHeadlines(ticker string, since time.Time) ([]string, error)
	TagStats() (TagStats, error)
	Close() error
}
