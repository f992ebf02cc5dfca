package analyzer

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"MarketEcho/internal/matcher"
	"MarketEcho/internal/model"
	"MarketEcho/internal/store"
	"MarketEcho/internal/tagger"
	"MarketEcho/internal/tradelog"
)

// Result is what the engine hands to the recommendation collaborator:
// ranked historical precedents plus context tags, with the storage
// locations of the persisted analysis records.
type Result struct {
	Matches     []model.MatchResult
	Tags        model.Tags
	EventPath   string
	SimilarPath string
	QueryPath   string
}

// Analyzer runs the full match → tag → persist pipeline for one classified
// headline.
type Analyzer struct {
	Matcher *matcher.Matcher
	Tagger  *tagger.Tagger
	Store   *store.Store
	Trades  tradelog.Log
}

// New creates an Analyzer.
func New(m *matcher.Matcher, t *tagger.Tagger, s *store.Store, trades tradelog.Log) *Analyzer {
	return &Analyzer{Matcher: m, Tagger: t, Store: s, Trades: trades}
}

// publishedFormats are tried in order when parsing a headline's published date.
var publishedFormats = []string{
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	model.DateFormat,
	"2006-01-02 15:04:05",
}

func parsePublished(s string) time.Time {
	for _, f := range publishedFormats {
		if t, err := time.Parse(f, s); err == nil {
			return t
		}
	}
	return time.Now()
}

// Process analyzes one classified headline against the macro snapshot and
// persists the results. A local record-write failure is returned to the
// caller; an index-persist failure after a successful write surfaces as an
// error wrapping store.ErrIndexNotPersisted while the partial result stays
// valid. Everything else degrades to a logged diagnostic.
func (a *Analyzer) Process(h model.Headline, macro model.MacroSnapshot, query string) (*Result, error) {
	if h.Title == "" || h.EventType == "" {
		return nil, fmt.Errorf("headline missing required fields")
	}

	eventDate := parsePublished(h.Published)
	matches := a.Matcher.Match(h)
	tags := a.Tagger.Tag(h, macro, eventDate)
	res := &Result{Matches: matches, Tags: tags}

	topScore := 0.0
	if len(matches) > 0 {
		topScore = matches[0].MatchScore
	}
	if err := a.Trades.Record(&tradelog.Trade{
		Headline:   h.Title,
		Ticker:     h.Ticker,
		EventType:  h.EventType,
		Sentiment:  h.Sentiment,
		Sector:     h.Sector,
		MatchScore: topScore,
		Tags:       tags,
		Timestamp:  eventDate,
	}); err != nil {
		log.Printf("[WARN] record trade: %v", err)
	}

	var indexErr error
	if len(matches) > 0 {
		loc, err := a.Store.SaveHistorical(historicalRecord(matches[0], tags), query)
		if err != nil && !errors.Is(err, store.ErrIndexNotPersisted) {
			return res, fmt.Errorf("save historical analysis: %w", err)
		}
		if err != nil {
			indexErr = err
		}
		res.EventPath = loc

		loc, err = a.Store.SaveSimilar(similarRecord(h, matches, tags), query)
		if err != nil && !errors.Is(err, store.ErrIndexNotPersisted) {
			return res, fmt.Errorf("save similar events analysis: %w", err)
		}
		if err != nil {
			indexErr = err
		}
		res.SimilarPath = loc
	}

	if query != "" {
		loc, err := a.Store.SaveQuery(query, res.EventPath, res.SimilarPath)
		if err != nil && !errors.Is(err, store.ErrIndexNotPersisted) {
			return res, fmt.Errorf("save query result: %w", err)
		}
		if err != nil {
			indexErr = err
		}
		res.QueryPath = loc
	}

	return res, indexErr
}

func historicalRecord(top model.MatchResult, tags model.Tags) *store.HistoricalEventRecord {
	return &store.HistoricalEventRecord{
		Ticker:         top.AffectedTicker,
		EventDate:      top.EventDate,
		PriceChangePct: top.PriceChangePct,
		MaxDrawdownPct: top.MaxDrawdownPct,
		Trend:          trend(top),
		DaysAnalyzed:   len(top.PriceData),
		PriceData:      top.PriceData,
		Tags:           tags,
	}
}

func similarRecord(h model.Headline, matches []model.MatchResult, tags model.Tags) *store.SimilarEventsRecord {
	return &store.SimilarEventsRecord{
		PatternSummary:   PatternSummary(h),
		DominantTicker:   dominantTicker(matches),
		Matches:          matches,
		AvgPriceChange:   avgPriceChange(matches),
		ConsistencyScore: consistencyScore(matches),
		Tags:             tags,
	}
}

// PatternSummary names the recurring pattern a headline represents,
// e.g. "bullish monetary policy".
func PatternSummary(h model.Headline) string {
	parts := []string{}
	if h.Sentiment != "" {
		parts = append(parts, strings.ToLower(h.Sentiment))
	}
	if h.EventType != "" {
		parts = append(parts, strings.ToLower(h.EventType))
	}
	if len(parts) == 0 {
		return "unclassified"
	}
	return strings.Join(parts, " ")
}

func trend(m model.MatchResult) string {
	switch {
	case m.DataStatus == model.PriceDataUnavailable:
		return "Unknown"
	case m.PriceChangePct > 0:
		return "Bullish"
	case m.PriceChangePct < 0:
		return "Bearish"
	default:
		return "Neutral"
	}
}

// dominantTicker is the most frequent affected ticker, ties broken by first
// appearance.
func dominantTicker(matches []model.MatchResult) string {
	counts := make(map[string]int)
	best, bestCount := "", 0
	for _, m := range matches {
		counts[m.AffectedTicker]++
		if counts[m.AffectedTicker] > bestCount {
			bestCount = counts[m.AffectedTicker]
			best = m.AffectedTicker
		}
	}
	return best
}

func avgPriceChange(matches []model.MatchResult) float64 {
	sum, n := 0.0, 0
	for _, m := range matches {
		if m.DataStatus == model.PriceDataUnavailable {
			continue
		}
		sum += m.PriceChangePct
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// consistencyScore is the share (0-100) of data-bearing matches whose price
// change agrees with the majority direction.
func consistencyScore(matches []model.MatchResult) float64 {
	up, down := 0, 0
	for _, m := range matches {
		if m.DataStatus == model.PriceDataUnavailable {
			continue
		}
		if m.PriceChangePct >= 0 {
			up++
		} else {
			down++
		}
	}
	total := up + down
	if total == 0 {
		return 0
	}
	majority := up
	if down > up {
		majority = down
	}
	return float64(majority) / float64(total) * 100
}
