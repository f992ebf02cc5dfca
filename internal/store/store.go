package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	indexFileName  = "analysis_index.json"
	timeFormat     = "2006-01-02 15:04:05"
	fileTimeFormat = "20060102_150405"
	maxKeyLength   = 50
)

// ErrIndexNotPersisted flags a record that was written to disk but is not
// discoverable via Find because the index write itself failed. The
// inconsistency is surfaced, never silently corrected.
var ErrIndexNotPersisted = errors.New("record saved but index not persisted")

var subdirs = map[string]string{
	KindHistoricalEvent: "events",
	KindSimilarEvents:   "similar_events",
	KindQuery:           "queries",
}

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// DateRange bounds a FindEvents scan, inclusive on both ends.
type DateRange struct {
	Start string
	End   string
}

// Stats summarizes the contents of the store.
type Stats struct {
	TotalHistoricalEvents int      `json:"total_historical_events"`
	TotalSimilarEvents    int      `json:"total_similar_events"`
	TotalQueries          int      `json:"total_queries"`
	TickersAnalyzed       []string `json:"tickers_analyzed"`
	MostAnalyzedTicker    string   `json:"most_analyzed_ticker"`
	MostCommonPattern     string   `json:"most_common_pattern"`
	MostRecentQuery       string   `json:"most_recent_query"`
	StorageMode           string   `json:"storage_mode"`
}

// Store persists analysis records to a local file store with optional
// best-effort remote mirroring, and maintains a secondary index for filtered
// lookup and statistics. Single writer assumed; no file locking.
type Store struct {
	mu        sync.Mutex
	baseDir   string
	indexPath string
	remote    *RemoteStore // nil means local-only
	index     *Index
}

// New opens (or creates) the local store rooted at baseDir. An unreadable or
// invalid index file is reinitialized to an empty index rather than aborting.
func New(baseDir string, remote *RemoteStore) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	for _, sub := range subdirs {
		if err := os.MkdirAll(filepath.Join(baseDir, sub), 0755); err != nil {
			return nil, fmt.Errorf("create store subdir %s: %w", sub, err)
		}
	}

	s := &Store{
		baseDir:   baseDir,
		indexPath: filepath.Join(baseDir, indexFileName),
		remote:    remote,
	}
	s.index = s.loadIndex()
	return s, nil
}

func (s *Store) loadIndex() *Index {
	data, err := os.ReadFile(s.indexPath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[WARN] read index: %v, starting with empty index", err)
			return newIndex()
		}
		// No local index yet; a mirrored copy may exist remotely.
		if s.remote != nil {
			if remote, rerr := s.remote.Get(indexFileName); rerr == nil {
				data = remote
			}
		}
		if len(data) == 0 {
			return newIndex()
		}
	}

	ix := newIndex()
	if err := json.Unmarshal(data, ix); err != nil {
		log.Printf("[WARN] index corrupt: %v, reinitializing empty index", err)
		return newIndex()
	}
	if ix.Events == nil {
		ix.Events = make(map[string][]EventIndexEntry)
	}
	if ix.SimilarEvents == nil {
		ix.SimilarEvents = make(map[string][]SimilarIndexEntry)
	}
	return ix
}

// storageKey derives a sanitized unique filename from record attributes.
func storageKey(parts ...string) string {
	key := unsafeKeyChars.ReplaceAllString(strings.Join(parts, "_"), "_")
	if len(key) > maxKeyLength {
		key = key[:maxKeyLength]
	}
	stamp := time.Now().Format(fileTimeFormat)
	return fmt.Sprintf("%s_%s_%s.json", key, stamp, uuid.NewString()[:8])
}

// writeRecord writes the enveloped JSON locally and mirrors it best-effort.
func (s *Store) writeRecord(location string, record any) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	if err := os.WriteFile(location, data, 0644); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	if s.remote != nil {
		if err := s.remote.Put(filepath.Base(location), data); err != nil {
			log.Printf("[WARN] mirror %s: %v", filepath.Base(location), err)
		}
	}
	return nil
}

// persistIndex writes the index after every save. Callers translate a
// failure into ErrIndexNotPersisted.
func (s *Store) persistIndex() error {
	s.index.LastUpdated = time.Now().Format(timeFormat)
	data, err := json.MarshalIndent(s.index, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal index: %w", err)
	}
	if err := os.WriteFile(s.indexPath, data, 0644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	if s.remote != nil {
		if err := s.remote.Put(indexFileName, data); err != nil {
			log.Printf("[WARN] mirror index: %v", err)
		}
	}
	return nil
}

// SaveHistorical persists a historical event analysis and indexes it under
// its ticker. The returned location is valid even when the error wraps
// ErrIndexNotPersisted: the record is on disk but not discoverable.
func (s *Store) SaveHistorical(rec *HistoricalEventRecord, query string) (string, error) {
	if rec.Ticker == "" || rec.EventDate == "" {
		return "", fmt.Errorf("historical record missing ticker or event_date")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.Meta.SavedAt == "" {
		rec.Meta.SavedAt = time.Now().Format(timeFormat)
	}
	rec.Meta.Kind = KindHistoricalEvent
	rec.Meta.Query = query
	location := filepath.Join(s.baseDir, subdirs[KindHistoricalEvent], storageKey(rec.Ticker, rec.EventDate))
	rec.Meta.Location = location

	if err := s.writeRecord(location, rec); err != nil {
		return "", err
	}

	s.index.addEvent(rec.Ticker, EventIndexEntry{
		EventDate:   rec.EventDate,
		PriceChange: rec.PriceChangePct,
		Trend:       rec.Trend,
		Location:    location,
		SavedAt:     rec.Meta.SavedAt,
	})
	if query != "" {
		s.index.QueryHistory = append(s.index.QueryHistory, QueryHistoryEntry{
			ID:         uuid.NewString(),
			Query:      query,
			Timestamp:  rec.Meta.SavedAt,
			ResultType: KindHistoricalEvent,
			Ticker:     rec.Ticker,
			Location:   location,
		})
	}

	if err := s.persistIndex(); err != nil {
		return location, fmt.Errorf("%w: %v", ErrIndexNotPersisted, err)
	}
	return location, nil
}

// SaveSimilar persists a similar-events analysis and indexes it under its
// pattern summary.
func (s *Store) SaveSimilar(rec *SimilarEventsRecord, query string) (string, error) {
	if rec.PatternSummary == "" {
		return "", fmt.Errorf("similar events record missing pattern_summary")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.Meta.SavedAt == "" {
		rec.Meta.SavedAt = time.Now().Format(timeFormat)
	}
	rec.Meta.Kind = KindSimilarEvents
	rec.Meta.Query = query
	location := filepath.Join(s.baseDir, subdirs[KindSimilarEvents], storageKey(rec.DominantTicker, rec.PatternSummary))
	rec.Meta.Location = location

	if err := s.writeRecord(location, rec); err != nil {
		return "", err
	}

	s.index.addSimilar(rec.PatternSummary, SimilarIndexEntry{
		DominantTicker:   rec.DominantTicker,
		AvgPriceChange:   rec.AvgPriceChange,
		ConsistencyScore: rec.ConsistencyScore,
		Location:         location,
		SavedAt:          rec.Meta.SavedAt,
	})
	if query != "" {
		s.index.QueryHistory = append(s.index.QueryHistory, QueryHistoryEntry{
			ID:         uuid.NewString(),
			Query:      query,
			Timestamp:  rec.Meta.SavedAt,
			ResultType: KindSimilarEvents,
			Pattern:    rec.PatternSummary,
			Ticker:     rec.DominantTicker,
			Location:   location,
		})
	}

	if err := s.persistIndex(); err != nil {
		return location, fmt.Errorf("%w: %v", ErrIndexNotPersisted, err)
	}
	return location, nil
}

// SaveQuery persists a complete query result tying together the analysis
// records it produced.
func (s *Store) SaveQuery(query, eventPath, similarPath string) (string, error) {
	if query == "" {
		return "", fmt.Errorf("query record missing query")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := &QueryRecord{
		ID:                uuid.NewString(),
		Query:             query,
		EventPath:         eventPath,
		SimilarEventsPath: similarPath,
		Meta: Metadata{
			Kind:    KindQuery,
			SavedAt: time.Now().Format(timeFormat),
			Query:   query,
		},
	}
	location := filepath.Join(s.baseDir, subdirs[KindQuery], storageKey("query", query))
	rec.Meta.Location = location

	if err := s.writeRecord(location, rec); err != nil {
		return "", err
	}

	s.index.QueryHistory = append(s.index.QueryHistory, QueryHistoryEntry{
		ID:         rec.ID,
		Query:      query,
		Timestamp:  rec.Meta.SavedAt,
		ResultType: KindQuery,
		Location:   location,
	})

	if err := s.persistIndex(); err != nil {
		return location, fmt.Errorf("%w: %v", ErrIndexNotPersisted, err)
	}
	return location, nil
}

// Load reads a record back by its storage location, falling back to the
// remote mirror by filename. A record found in neither place yields an empty
// map, not an error.
func (s *Store) Load(location string) map[string]any {
	data, err := os.ReadFile(location)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[WARN] load %s: %v", location, err)
		}
		if s.remote != nil {
			remote, rerr := s.remote.Get(filepath.Base(location))
			if rerr != nil {
				log.Printf("[WARN] remote load %s: %v", filepath.Base(location), rerr)
				return map[string]any{}
			}
			data = remote
		}
	}
	if len(data) == 0 {
		return map[string]any{}
	}

	var record map[string]any
	if err := json.Unmarshal(data, &record); err != nil {
		log.Printf("[WARN] decode %s: %v", location, err)
		return map[string]any{}
	}
	return record
}

// FindEvents scans the event index. Zero-valued filters match everything.
// Results are metadata only; Load retrieves the full record.
func (s *Store) FindEvents(ticker, eventDate string, dateRange *DateRange) []EventIndexEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	tickers := s.index.TickerOrder
	if ticker != "" {
		if _, ok := s.index.Events[ticker]; !ok {
			return nil
		}
		tickers = []string{ticker}
	}

	var results []EventIndexEntry
	for _, t := range tickers {
		for _, entry := range s.index.Events[t] {
			if eventDate != "" && entry.EventDate != eventDate {
				continue
			}
			if dateRange != nil && (entry.EventDate < dateRange.Start || entry.EventDate > dateRange.End) {
				continue
			}
			results = append(results, entry)
		}
	}
	return results
}

// FindSimilar scans the similar-events index. Zero-valued filters match
// everything.
func (s *Store) FindSimilar(pattern, ticker string) []SimilarIndexEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	patterns := s.index.PatternOrder
	if pattern != "" {
		if _, ok := s.index.SimilarEvents[pattern]; !ok {
			return nil
		}
		patterns = []string{pattern}
	}

	var results []SimilarIndexEntry
	for _, p := range patterns {
		for _, entry := range s.index.SimilarEvents[p] {
			if ticker != "" && entry.DominantTicker != ticker {
				continue
			}
			results = append(results, entry)
		}
	}
	return results
}

// SearchQueryHistory returns query entries matching term (case-insensitive
// substring), newest first, bounded by limit. An empty term returns the most
// recent queries.
func (s *Store) SearchQueryHistory(term string, limit int) []QueryHistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 10
	}
	needle := strings.ToLower(term)

	var results []QueryHistoryEntry
	for i := len(s.index.QueryHistory) - 1; i >= 0 && len(results) < limit; i-- {
		entry := s.index.QueryHistory[i]
		if needle != "" && !strings.Contains(strings.ToLower(entry.Query), needle) {
			continue
		}
		results = append(results, entry)
	}
	return results
}

// Statistics aggregates counts per category. Ticker and pattern ties break
// by first-seen order.
func (s *Store) Statistics() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := Stats{
		TotalQueries:    len(s.index.QueryHistory),
		TickersAnalyzed: append([]string(nil), s.index.TickerOrder...),
		StorageMode:     "local only",
	}
	if s.remote != nil {
		stats.StorageMode = "hybrid (local + remote)"
	}

	best := 0
	for _, t := range s.index.TickerOrder {
		n := len(s.index.Events[t])
		stats.TotalHistoricalEvents += n
		if n > best {
			best = n
			stats.MostAnalyzedTicker = t
		}
	}

	best = 0
	for _, p := range s.index.PatternOrder {
		n := len(s.index.SimilarEvents[p])
		stats.TotalSimilarEvents += n
		if n > best {
			best = n
			stats.MostCommonPattern = p
		}
	}

	if n := len(s.index.QueryHistory); n > 0 {
		stats.MostRecentQuery = s.index.QueryHistory[n-1].Query
	}
	return stats
}
