package tradelog

import "time"

// NoopLog is a no-op implementation used when SQLite is not configured.
type NoopLog struct{}

func NewNoopLog() *NoopLog { return &NoopLog{} }

func (n *NoopLog) Record(_ *Trade) error                                 { return nil }
func (n *NoopLog) RecentHeadlines(_ string, _ time.Time) ([]string, error) { return nil, nil }
func (n *NoopLog) TagStats() (TagStats, error)                           { return TagStats{}, nil }
func (n *NoopLog) Close() error                                          { return nil }
