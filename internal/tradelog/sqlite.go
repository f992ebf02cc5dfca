package tradelog

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteLog persists trade history to a SQLite database.
type SQLiteLog struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteLog opens (or creates) the SQLite database and runs migrations.
func NewSQLiteLog(dbPath string) (*SQLiteLog, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so analysis tooling can read while the engine writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	l := &SQLiteLog{db: db}
	if err := l.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite trade log opened: %s", dbPath)
	return l, nil
}

func (l *SQLiteLog) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS trades (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp          INTEGER NOT NULL,
			headline           TEXT NOT NULL,
			ticker             TEXT NOT NULL,
			event_type         TEXT,
			sentiment          TEXT,
			sector             TEXT,
			match_score        REAL,
			surprise_positive  INTEGER,
			is_fed_week        INTEGER,
			is_cpi_week        INTEGER,
			is_earnings_season INTEGER,
			is_repeat_event    INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_trades_ticker_ts ON trades(ticker, timestamp)`,
	}

	for _, s := range stmts {
		if _, err := l.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Record appends a trade row. A zero timestamp is stamped with the current time.
func (l *SQLiteLog) Record(t *Trade) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	ts := t.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	_, err := l.db.Exec(`INSERT INTO trades
		(timestamp, headline, ticker, event_type, sentiment, sector, match_score,
		 surprise_positive, is_fed_week, is_cpi_week, is_earnings_season, is_repeat_event)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		ts.Unix(), t.Headline, strings.ToUpper(strings.TrimSpace(t.Ticker)),
		t.EventType, t.Sentiment, t.Sector, t.MatchScore,
		boolToInt(t.Tags.SurprisePositive), boolToInt(t.Tags.IsFedWeek),
		boolToInt(t.Tags.IsCPIWeek), boolToInt(t.Tags.IsEarningsSeason),
		boolToInt(t.Tags.IsRepeatEvent),
	)
	return err
}

// RecentHeadlines returns headlines of trades for ticker recorded at or
// after since, newest first.
func (l *SQLiteLog) RecentHeadlines(ticker string, since time.Time) ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rows, err := l.db.Query(
		`SELECT headline FROM trades WHERE ticker = ? AND timestamp >= ? ORDER BY timestamp DESC`,
		strings.ToUpper(strings.TrimSpace(ticker)), since.Unix(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var headlines []string
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return nil, err
		}
		headlines = append(headlines, h)
	}
	return headlines, rows.Err()
}

// TagStats aggregates tag frequencies across all recorded trades.
func (l *SQLiteLog) TagStats() (TagStats, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var s TagStats
	err := l.db.QueryRow(`SELECT COUNT(*),
		COALESCE(SUM(surprise_positive), 0),
		COALESCE(SUM(is_fed_week), 0),
		COALESCE(SUM(is_cpi_week), 0),
		COALESCE(SUM(is_earnings_season), 0),
		COALESCE(SUM(is_repeat_event), 0)
		FROM trades`).Scan(
		&s.Total, &s.SurprisePositive, &s.FedWeek,
		&s.CPIWeek, &s.EarningsSeason, &s.RepeatEvent,
	)
	if err != nil {
		return TagStats{}, err
	}
	return s, nil
}

func (l *SQLiteLog) Close() error {
	log.Println("[INFO] closing sqlite trade log")
	return l.db.Close()
}
