package store

// EventIndexEntry is the indexed metadata of one historical event record.
type EventIndexEntry struct {
	EventDate   string  `json:"event_date"`
	PriceChange float64 `json:"price_change"`
	Trend       string  `json:"trend"`
	Location    string  `json:"file_path"`
	SavedAt     string  `json:"saved_at"`
}

// SimilarIndexEntry is the indexed metadata of one similar-events record.
type SimilarIndexEntry struct {
	DominantTicker   string  `json:"dominant_ticker"`
	AvgPriceChange   float64 `json:"avg_price_change"`
	ConsistencyScore float64 `json:"consistency_score"`
	Location         string  `json:"file_path"`
	SavedAt          string  `json:"saved_at"`
}

// QueryHistoryEntry records one query and the kind of result it produced.
type QueryHistoryEntry struct {
	ID         string `json:"id"`
	Query      string `json:"query"`
	Timestamp  string `json:"timestamp"`
	ResultType string `json:"result_type"`
	Pattern    string `json:"pattern,omitempty"`
	Ticker     string `json:"ticker,omitempty"`
	Location   string `json:"file_path,omitempty"`
}

// Index is the secondary index over all persisted analyses. Buckets and the
// query history grow without bound; TickerOrder and PatternOrder preserve
// first-seen order so statistics tie-breaks stay deterministic.
type Index struct {
	Events        map[string][]EventIndexEntry   `json:"events"`
	SimilarEvents map[string][]SimilarIndexEntry `json:"similar_events"`
	QueryHistory  []QueryHistoryEntry            `json:"query_history"`
	TickerOrder   []string                       `json:"ticker_order"`
	PatternOrder  []string                       `json:"pattern_order"`
	LastUpdated   string                         `json:"last_updated"`
}

func newIndex() *Index {
	return &Index{
		Events:        make(map[string][]EventIndexEntry),
		SimilarEvents: make(map[string][]SimilarIndexEntry),
	}
}

func (ix *Index) addEvent(ticker string, entry EventIndexEntry) {
	if _, ok := ix.Events[ticker]; !ok {
		ix.TickerOrder = append(ix.TickerOrder, ticker)
	}
	ix.Events[ticker] = append(ix.Events[ticker], entry)
}

func (ix *Index) addSimilar(pattern string, entry SimilarIndexEntry) {
	if _, ok := ix.SimilarEvents[pattern]; !ok {
		ix.PatternOrder = append(ix.PatternOrder, pattern)
	}
	ix.SimilarEvents[pattern] = append(ix.SimilarEvents[pattern], entry)
}
