package report

import (
	"fmt"
	"strings"
	"time"

	"MarketEcho/internal/model"
	"MarketEcho/internal/store"
	"MarketEcho/internal/tradelog"
)

// FormatAnalysis formats ranked matches and tags into a plain-text summary.
func FormatAnalysis(h model.Headline, matches []model.MatchResult, tags model.Tags) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Analysis | %s\n", time.Now().Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("Headline: %s\n", h.Title))
	b.WriteString(fmt.Sprintf("Classified: %s / %s / %s\n\n", h.EventType, h.Sentiment, h.Sector))

	b.WriteString("Historical precedents:\n")
	for i, m := range matches {
		b.WriteString(fmt.Sprintf("  %d. [%.2f] %s (%s, %s)\n", i+1, m.MatchScore, m.EventSummary, m.AffectedTicker, m.EventDate))
		if m.DataStatus == model.PriceDataUnavailable {
			b.WriteString("     price data unavailable\n")
		} else {
			b.WriteString(fmt.Sprintf("     change %+.2f%% | max drawdown %.2f%% over %s\n",
				m.PriceChangePct, m.MaxDrawdownPct, m.DateRange))
		}
	}
	if len(matches) == 0 {
		b.WriteString("  none\n")
	}

	b.WriteString("\nContext tags: ")
	b.WriteString(formatTags(tags))
	b.WriteString("\n")
	return b.String()
}

func formatTags(tags model.Tags) string {
	var set []string
	if tags.SurprisePositive {
		set = append(set, "surprise_positive")
	}
	if tags.IsFedWeek {
		set = append(set, "fed_week")
	}
	if tags.IsCPIWeek {
		set = append(set, "cpi_week")
	}
	if tags.IsEarningsSeason {
		set = append(set, "earnings_season")
	}
	if tags.IsRepeatEvent {
		set = append(set, "repeat_event")
	}
	if len(set) == 0 {
		return "none"
	}
	return strings.Join(set, ", ")
}

// FormatStatistics formats store statistics and trade-log tag frequencies.
func FormatStatistics(stats store.Stats, tagStats tradelog.TagStats) string {
	var b strings.Builder

	b.WriteString("Storage statistics\n")
	b.WriteString(fmt.Sprintf("  historical events: %d\n", stats.TotalHistoricalEvents))
	b.WriteString(fmt.Sprintf("  similar events:    %d\n", stats.TotalSimilarEvents))
	b.WriteString(fmt.Sprintf("  queries:           %d\n", stats.TotalQueries))
	if stats.MostAnalyzedTicker != "" {
		b.WriteString(fmt.Sprintf("  most analyzed ticker: %s\n", stats.MostAnalyzedTicker))
	}
	if stats.MostCommonPattern != "" {
		b.WriteString(fmt.Sprintf("  most common pattern:  %s\n", stats.MostCommonPattern))
	}
	if stats.MostRecentQuery != "" {
		b.WriteString(fmt.Sprintf("  most recent query:    %s\n", stats.MostRecentQuery))
	}
	b.WriteString(fmt.Sprintf("  storage mode: %s\n", stats.StorageMode))

	if tagStats.Total > 0 {
		b.WriteString(fmt.Sprintf("Trade log: %d trades | surprise+ %d | fed week %d | cpi week %d | earnings %d | repeats %d\n",
			tagStats.Total, tagStats.SurprisePositive, tagStats.FedWeek,
			tagStats.CPIWeek, tagStats.EarningsSeason, tagStats.RepeatEvent))
	}
	return b.String()
}
