package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"MarketEcho/internal/analyzer"
	"MarketEcho/internal/config"
	"MarketEcho/internal/marketdata"
	"MarketEcho/internal/matcher"
	"MarketEcho/internal/scheduler"
	"MarketEcho/internal/store"
	"MarketEcho/internal/tagger"
	"MarketEcho/internal/tradelog"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] MarketEcho starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init market data provider
	fetcher := marketdata.NewYahooFetcher(cfg.Proxy)
	log.Printf("[INFO] data source: %s", fetcher.Name())
	provider := marketdata.NewProvider(fetcher, cfg.MarketData.FallbackTicker, cfg.MarketData.Unsupported)

	// Load historical event templates
	templates, err := matcher.LoadTemplates(cfg.Analysis.TemplatesFile)
	if err != nil {
		log.Fatalf("[FATAL] load event templates: %v", err)
	}
	log.Printf("[INFO] loaded %d event templates", len(templates))

	m := matcher.New(templates, provider,
		cfg.Analysis.TopMatches, cfg.Analysis.WindowDays, cfg.Analysis.WindowBufferDays)

	// Init trade log
	var trades tradelog.Log
	if cfg.Database.SQLitePath != "" {
		sl, err := tradelog.NewSQLiteLog(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite trade log failed, using noop: %v", err)
			trades = tradelog.NewNoopLog()
		} else {
			trades = sl
			defer sl.Close()
		}
	} else {
		trades = tradelog.NewNoopLog()
	}

	// Init tagger
	cache := tagger.NewRepeatCache(cfg.RepeatCache.Capacity)
	tg := tagger.New(cache, trades, cfg.RepeatCache.LookbackDays,
		cfg.RepeatCache.JaccardThreshold, cfg.RepeatCache.BitSimilarityThreshold)

	// Init storage, with optional remote mirror
	var remote *store.RemoteStore
	if cfg.Storage.RemoteURL != "" {
		remote = store.NewRemoteStore(cfg.Storage.RemoteURL, cfg.Storage.RemoteAPIKey, cfg.Proxy)
		log.Printf("[INFO] remote mirror enabled: %s", cfg.Storage.RemoteURL)
	}
	st, err := store.New(cfg.Storage.BaseDir, remote)
	if err != nil {
		log.Fatalf("[FATAL] init analysis store: %v", err)
	}

	an := analyzer.New(m, tg, st, trades)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, an, st, trades, cfg.Feed.Path)
	if err := sched.RegisterAll(cfg.Schedule.FeedCron, cfg.Schedule.StatsCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: drain the feed immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, processing feed now")
		go sched.RunFeedNow()
	}

	log.Println("[INFO] MarketEcho is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] MarketEcho stopped")
}
