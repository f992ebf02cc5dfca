package scheduler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"MarketEcho/internal/analyzer"
	"MarketEcho/internal/model"
	"MarketEcho/internal/report"
	"MarketEcho/internal/store"
	"MarketEcho/internal/tradelog"

	"github.com/robfig/cron/v3"
)

// Scheduler manages all cron tasks: headline feed polling and the periodic
// statistics report.
type Scheduler struct {
	Cron     *cron.Cron
	Analyzer *analyzer.Analyzer
	Store    *store.Store
	Trades   tradelog.Log
	FeedPath string
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, an *analyzer.Analyzer, st *store.Store, trades tradelog.Log, feedPath string) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Analyzer: an,
		Store:    st,
		Trades:   trades,
		FeedPath: feedPath,
		Ctx:      ctx,
	}
}

// RegisterAll registers the feed polling and statistics tasks.
func (s *Scheduler) RegisterAll(feedCron, statsCron string) error {
	if _, err := s.Cron.AddFunc(feedCron, s.feedTask); err != nil {
		return fmt.Errorf("register feed task: %w", err)
	}
	if _, err := s.Cron.AddFunc(statsCron, s.statsTask); err != nil {
		return fmt.Errorf("register stats task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunFeedNow processes the feed immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunFeedNow() {
	s.feedTask()
}

// feedFile is the handoff format written by the headline ingestion
// collaborator: one macro snapshot plus pending classified headlines.
type feedFile struct {
	Macro     model.MacroSnapshot `json:"macro"`
	Headlines []model.Headline    `json:"headlines"`
}

func (s *Scheduler) feedTask() {
	data, err := os.ReadFile(s.FeedPath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[WARN] read feed: %v", err)
		}
		return
	}

	var feed feedFile
	if err := json.Unmarshal(data, &feed); err != nil {
		log.Printf("[WARN] decode feed: %v", err)
		return
	}
	if len(feed.Headlines) == 0 {
		return
	}
	log.Printf("[INFO] processing %d pending headlines", len(feed.Headlines))

	for _, h := range feed.Headlines {
		res, err := s.Analyzer.Process(h, feed.Macro, h.Title)
		if err != nil {
			if errors.Is(err, store.ErrIndexNotPersisted) {
				log.Printf("[ERROR] analysis of %q saved but not indexed: %v", h.Title, err)
			} else {
				log.Printf("[ERROR] analyze %q: %v", h.Title, err)
				continue
			}
		}
		if res != nil {
			log.Printf("[INFO] analysis complete:\n%s", report.FormatAnalysis(h, res.Matches, res.Tags))
		}
	}

	// Drain processed headlines, keeping the macro snapshot in place.
	feed.Headlines = nil
	drained, err := json.MarshalIndent(feed, "", "  ")
	if err == nil {
		err = os.WriteFile(s.FeedPath, drained, 0644)
	}
	if err != nil {
		log.Printf("[WARN] drain feed: %v", err)
	}
}

func (s *Scheduler) statsTask() {
	stats := s.Store.Statistics()
	tagStats, err := s.Trades.TagStats()
	if err != nil {
		log.Printf("[WARN] trade log stats: %v", err)
	}
	log.Printf("[INFO] daily report:\n%s", report.FormatStatistics(stats, tagStats))
}
