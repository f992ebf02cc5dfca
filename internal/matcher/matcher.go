package matcher

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"MarketEcho/internal/impact"
	"MarketEcho/internal/marketdata"
	"MarketEcho/internal/model"
)

// Additive similarity weights. A template matching all three fields scores 1.0.
const (
	weightEventType = 0.5
	weightSentiment = 0.3
	weightSector    = 0.2
)

// Candidate pairs a template with its match score.
type Candidate struct {
	Template EventTemplate
	Score    float64
}

// RankSource produces scored candidates for a headline. An external semantic
// matcher can be plugged in here; when it fails or returns nothing the
// built-in scorer takes over.
type RankSource interface {
	Rank(h model.Headline, templates []EventTemplate) ([]Candidate, error)
	Name() string
}

// Matcher scores historical event templates against a classified headline
// and enriches the top N with price impact data.
type Matcher struct {
	Templates  []EventTemplate
	Provider   *marketdata.Provider
	External   RankSource // optional
	TopN       int
	WindowDays int
	BufferDays int
}

// New creates a Matcher with the default analysis window when windowDays is zero.
func New(templates []EventTemplate, provider *marketdata.Provider, topN, windowDays, bufferDays int) *Matcher {
	if windowDays == 0 {
		windowDays = 7
	}
	if bufferDays == 0 {
		bufferDays = 10
	}
	return &Matcher{
		Templates:  templates,
		Provider:   provider,
		TopN:       topN,
		WindowDays: windowDays,
		BufferDays: bufferDays,
	}
}

// Score returns the additive similarity between a headline and a template.
// Each field is an independent equality check; the total is always in [0,1].
func Score(h model.Headline, t EventTemplate) float64 {
	score := 0.0
	if fieldEqual(h.EventType, t.EventType) {
		score += weightEventType
	}
	if fieldEqual(h.Sentiment, t.Sentiment) {
		score += weightSentiment
	}
	if fieldEqual(h.Sector, t.Sector) {
		score += weightSector
	}
	return score
}

func fieldEqual(a, b string) bool {
	return a != "" && strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// Match ranks all templates against the headline and returns the top N
// enriched results. Matches are never dropped for missing market data.
func (m *Matcher) Match(h model.Headline) []model.MatchResult {
	if h.Title == "" || h.EventType == "" {
		log.Printf("[WARN] headline missing required fields, skipping match")
		return nil
	}

	candidates := m.candidates(h)
	if len(candidates) > m.TopN {
		candidates = candidates[:m.TopN]
	}

	results := make([]model.MatchResult, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, m.enrich(c))
	}
	return results
}

// candidates prefers the external rank source, falling back to the
// deterministic scorer on failure or an empty result.
func (m *Matcher) candidates(h model.Headline) []Candidate {
	if m.External != nil {
		ranked, err := m.External.Rank(h, m.Templates)
		if err != nil {
			log.Printf("[WARN] %s ranking failed: %v, using built-in scorer", m.External.Name(), err)
		} else if len(ranked) == 0 {
			log.Printf("[WARN] %s returned no candidates, using built-in scorer", m.External.Name())
		} else {
			return ranked
		}
	}
	return m.rank(h)
}

// rank scores every template. The sort is stable: equal scores keep the
// original template order.
func (m *Matcher) rank(h model.Headline) []Candidate {
	candidates := make([]Candidate, 0, len(m.Templates))
	for _, t := range m.Templates {
		candidates = append(candidates, Candidate{Template: t, Score: Score(h, t)})
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].Score > candidates[j].Score })
	return candidates
}

// enrich attaches price impact data to a candidate. The fetch window is
// anchored at the template's event date and extended by a calendar-day buffer
// to tolerate holidays, then truncated to WindowDays trading days.
func (m *Matcher) enrich(c Candidate) model.MatchResult {
	t := c.Template
	res := model.MatchResult{
		EventSummary:   t.EventSummary,
		MatchScore:     c.Score,
		EventDate:      t.EventDate,
		AffectedTicker: t.Ticker,
		DateRange:      t.DateRange,
	}
	if res.DateRange == "" {
		res.DateRange = fmt.Sprintf("%d days", m.WindowDays)
	}

	bars := t.PriceData
	if len(bars) == 0 {
		// EventDate was validated at template load.
		start, _ := time.Parse(model.DateFormat, t.EventDate)
		end := start.AddDate(0, 0, m.WindowDays+m.BufferDays)
		bars = m.Provider.Fetch(t.Ticker, start, end)
	}
	if len(bars) > m.WindowDays {
		bars = bars[:m.WindowDays]
	}
	if len(bars) < 2 {
		res.DataStatus = model.PriceDataUnavailable
		return res
	}

	imp := impact.Compute(bars)
	res.PriceChangePct = imp.OverallChangePct
	res.MaxDrawdownPct = imp.MaxDrawdownPct
	res.PriceData = bars
	return res
}
