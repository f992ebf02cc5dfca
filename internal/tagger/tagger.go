package tagger

import (
	"log"
	"time"

	"MarketEcho/internal/model"
)

// TradeHistory supplies headlines of recently persisted trades for repeat
// detection. Implemented by the tradelog package.
type TradeHistory interface {
	RecentHeadlines(ticker string, since time.Time) ([]string, error)
}

// Tagger derives boolean context tags for a classified headline from
// calendar tables, the macro snapshot, the repeat cache and the trade log.
type Tagger struct {
	Cache            *RepeatCache
	History          TradeHistory
	LookbackDays     int
	JaccardThreshold float64
	BitThreshold     float64
}

// New creates a Tagger with spec defaults for zero-valued thresholds.
func New(cache *RepeatCache, history TradeHistory, lookbackDays int, jaccardThreshold, bitThreshold float64) *Tagger {
	if lookbackDays <= 0 {
		lookbackDays = 30
	}
	if jaccardThreshold <= 0 {
		jaccardThreshold = 0.7
	}
	if bitThreshold <= 0 {
		bitThreshold = 0.9
	}
	return &Tagger{
		Cache:            cache,
		History:          history,
		LookbackDays:     lookbackDays,
		JaccardThreshold: jaccardThreshold,
		BitThreshold:     bitThreshold,
	}
}

// Tag evaluates all context tags for the headline at eventDate. The current
// fingerprint is always appended to the cache afterward, regardless of the
// repeat verdict.
func (t *Tagger) Tag(h model.Headline, macro model.MacroSnapshot, eventDate time.Time) model.Tags {
	tokens := Tokens(h.Title)

	tags := model.Tags{
		SurprisePositive: surprisePositive(tokens, macro),
		IsFedWeek:        IsFedWeek(eventDate),
		IsCPIWeek:        isCPIWeek(tokens, macro),
		IsEarningsSeason: IsEarningsSeason(eventDate),
	}
	tags.IsRepeatEvent = t.isRepeatEvent(h, tokens, eventDate)

	t.Cache.Add(h.Ticker, Fingerprint(h.Ticker, h.Title), eventDate)
	return tags
}

// surprisePositive counts positive vs negative surprise keyword hits. When
// the headline references CPI and the snapshot carries both the actual and
// expected figure, the comparison supersedes the keyword heuristic: an
// actual below expectations reads as a positive surprise.
func surprisePositive(tokens []string, macro model.MacroSnapshot) bool {
	if mentionsCPI(tokens) {
		actual, okActual := macro[model.MacroCPIActual]
		expected, okExpected := macro[model.MacroCPIExpected]
		if okActual && okExpected {
			return actual < expected
		}
	}

	positive, negative := 0, 0
	for _, tok := range tokens {
		if positiveSurpriseWords[tok] {
			positive++
		}
		if negativeSurpriseWords[tok] {
			negative++
		}
	}
	return positive > negative
}

// isCPIWeek is keyed off the headline and the snapshot, not the calendar.
func isCPIWeek(tokens []string, macro model.MacroSnapshot) bool {
	if !mentionsCPI(tokens) {
		return false
	}
	_, ok := macro[model.MacroCPIActual]
	return ok
}

// isRepeatEvent checks the trade log for a near-duplicate headline within
// the lookback window, then the fingerprint cache over the same window.
func (t *Tagger) isRepeatEvent(h model.Headline, tokens []string, eventDate time.Time) bool {
	cutoff := eventDate.AddDate(0, 0, -t.LookbackDays)

	if t.History != nil {
		headlines, err := t.History.RecentHeadlines(h.Ticker, cutoff)
		if err != nil {
			log.Printf("[WARN] trade history scan for %s: %v", h.Ticker, err)
		} else {
			for _, prev := range headlines {
				if Jaccard(tokens, Tokens(prev)) >= t.JaccardThreshold {
					return true
				}
			}
		}
	}

	return t.Cache.Scan(h.Ticker, Fingerprint(h.Ticker, h.Title), cutoff, t.BitThreshold)
}
