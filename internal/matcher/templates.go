package matcher

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"MarketEcho/internal/model"
)

// EventTemplate is read-only reference data describing one historical market
// event. Templates are loaded once at startup.
type EventTemplate struct {
	EventSummary string        `json:"event_summary"`
	EventType    string        `json:"event_type"`
	Sentiment    string        `json:"sentiment"`
	Sector       string        `json:"sector"`
	Ticker       string        `json:"ticker"`
	EventDate    string        `json:"event_date"`
	DateRange    string        `json:"date_range"`
	PriceData    []model.OHLCV `json:"price_data,omitempty"`
}

// LoadTemplates reads event templates from a JSON file. Entries with missing
// required fields or an unparseable event date are skipped, not fatal.
func LoadTemplates(path string) ([]EventTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read templates: %w", err)
	}
	var raw []EventTemplate
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	templates := make([]EventTemplate, 0, len(raw))
	for i, t := range raw {
		if t.EventType == "" || t.Ticker == "" || t.EventDate == "" {
			log.Printf("[WARN] template %d missing required fields, skipping", i)
			continue
		}
		if _, err := time.Parse(model.DateFormat, t.EventDate); err != nil {
			log.Printf("[WARN] template %d has invalid event_date %q, skipping", i, t.EventDate)
			continue
		}
		if t.EventSummary == "" {
			t.EventSummary = fmt.Sprintf("%s event affecting %s", t.EventType, t.Ticker)
		}
		templates = append(templates, t)
	}
	log.Printf("[INFO] loaded %d event templates from %s", len(templates), path)
	return templates, nil
}
