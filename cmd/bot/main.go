package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/PureGit90/COT-Monitor/internal/collector"
	"github.com/PureGit90/COT-Monitor/internal/config"
	"github.com/PureGit90/COT-Monitor/internal/model"
	"github.com/PureGit90/COT-Monitor/internal/notifier"
	"github.com/PureGit90/COT-Monitor/internal/recorder"
	"github.com/PureGit90/COT-Monitor/internal/report"
	"github.com/PureGit90/COT-Monitor/internal/scheduler"
	"github.com/PureGit90/COT-Monitor/internal/strategy"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] COT monitor starting...")

	// Optional .env for local development
	_ = godotenv.Load()

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

	// Init fetcher + collector
	fetcher := collector.NewSocrataFetcher(cfg.DataSource.BaseURL, cfg.DataSource.AppToken, cfg.Proxy)
	log.Printf("[INFO] data source: %s", fetcher.Name())
	col := collector.NewCollector(fetcher)

	// Init signal engine
	engine := strategy.NewEngine()

	// Init webhook notifier
	var wh scheduler.Notifier
	if cfg.Webhook.URL != "" {
		wh = notifier.NewWebhookNotifier(cfg.Webhook.URL, cfg.Proxy)
	} else {
		log.Println("[WARN] webhook.url not configured, reports will not be delivered")
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lookback := model.LookbackConfig{
		DivergenceWeeks: cfg.Lookback.DivergenceWeeks,
		ExtremeWeeks:    cfg.Lookback.ExtremeWeeks,
	}

	sched := scheduler.NewScheduler(ctx, col, engine, wh, rec, report.NewWriter(cfg.Report.Dir), cfg.Instruments, lookback)

	// One-shot mode for cron-external invocation
	if os.Getenv("RUN_ONCE") == "true" {
		sched.RunWeeklyNow()
		log.Println("[INFO] single run complete, exiting")
		return
	}

	if err := sched.RegisterAll(cfg.Schedule.WeeklyCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing weekly analysis now")
		go sched.RunWeeklyNow()
	}

	log.Println("[INFO] COT monitor is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] COT monitor stopped")
}
