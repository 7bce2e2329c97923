package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"StockSentry/internal/collector"
	"StockSentry/internal/config"
	"StockSentry/internal/dedup"
	"StockSentry/internal/detector"
	"StockSentry/internal/notifier"
	"StockSentry/internal/scheduler"
	"StockSentry/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] StockSentry starting...")

	// Local development convenience; missing .env is fine.
	_ = godotenv.Load()

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

	fetcher := collector.NewYahooFetcher(cfg.Proxy)
	log.Printf("[INFO] data source: %s, symbol: %s", fetcher.Name(), cfg.Symbol)
	col := collector.NewCollector(fetcher, cfg.Symbol)

	st, err := store.NewSQLiteStore(cfg.Database.SQLitePath)
	if err != nil {
		log.Fatalf("[FATAL] open store: %v", err)
	}
	defer st.Close()

	history, err := dedup.NewFileHistory(cfg.History.File)
	if err != nil {
		log.Fatalf("[FATAL] open alert history: %v", err)
	}

	thresholds := detector.DefaultThresholds()
	thresholds.PriceChangePct = cfg.Alerts.PriceChangePct
	thresholds.VolumeSpikeRatio = cfg.Alerts.VolumeSpikeRatio
	thresholds.RSIOversold = cfg.Alerts.RSIOversold
	thresholds.RSIOverbought = cfg.Alerts.RSIOverbought

	det := detector.New(cfg.Symbol, thresholds)
	mailer := notifier.NewMailer(cfg.SMTP.Server, cfg.SMTP.Port, cfg.SMTP.Sender,
		cfg.SMTP.Password, cfg.SMTP.Recipients, cfg.Symbol, thresholds)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, col, st, det, dedup.New(history), mailer)
	if err := sched.RegisterAll(cfg.Schedule.UpdateCron, cfg.Schedule.AlertCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing update and alert pass now")
		go func() {
			if err := sched.RunUpdateNow(); err != nil {
				log.Printf("[ERROR] initial update: %v", err)
				return
			}
			if err := sched.RunAlertsNow(); err != nil {
				log.Printf("[ERROR] initial alert pass: %v", err)
			}
		}()
	}

	log.Println("[INFO] StockSentry is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] StockSentry stopped")
}
