// Package scheduler drives the monitoring pipeline on cron triggers: the
// update task merges a fresh snapshot into the day's stored record, and the
// alert task evaluates the latest two records and mails anything new.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"StockSentry/internal/collector"
	"StockSentry/internal/dedup"
	"StockSentry/internal/detector"
	"StockSentry/internal/merge"
	"StockSentry/internal/model"
	"StockSentry/internal/notifier"
	"StockSentry/internal/store"
)

// Scheduler manages the cron tasks and owns the run pipeline.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Store     store.Store
	Detector  *detector.Detector
	Dedup     *dedup.Deduplicator
	Sender    notifier.Sender
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, st store.Store, det *detector.Detector, dd *dedup.Deduplicator, sender notifier.Sender) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Store:     st,
		Detector:  det,
		Dedup:     dd,
		Sender:    sender,
		Ctx:       ctx,
	}
}

// RegisterAll registers the update and alert tasks.
func (s *Scheduler) RegisterAll(updateCron, alertCron string) error {
	if _, err := s.Cron.AddFunc(updateCron, s.updateTask); err != nil {
		return fmt.Errorf("register update task: %w", err)
	}
	if _, err := s.Cron.AddFunc(alertCron, s.alertTask); err != nil {
		return fmt.Errorf("register alert task: %w", err)
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

// RunUpdateNow executes the update task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunUpdateNow() error { return s.runUpdate(time.Now()) }

// RunAlertsNow executes the alert task immediately.
func (s *Scheduler) RunAlertsNow() error { return s.runAlerts(time.Now()) }

func (s *Scheduler) updateTask() {
	if err := s.runUpdate(time.Now()); err != nil {
		log.Printf("[ERROR] update task: %v", err)
	}
}

func (s *Scheduler) alertTask() {
	if err := s.runAlerts(time.Now()); err != nil {
		log.Printf("[ERROR] alert task: %v", err)
	}
}

// runUpdate fetches a snapshot and merges it into the stored record for its
// trading day.
func (s *Scheduler) runUpdate(now time.Time) error {
	sample, err := s.Collector.Snapshot(now)
	if err != nil {
		return fmt.Errorf("collect snapshot: %w", err)
	}

	existing, err := s.Store.GetDayRecord(sample.Date)
	if err != nil {
		return fmt.Errorf("load existing record: %w", err)
	}

	merged, err := merge.Merge(existing, *sample, now)
	if err != nil {
		return fmt.Errorf("merge day record: %w", err)
	}

	if err := s.Store.PutDayRecord(merged); err != nil {
		return fmt.Errorf("store day record: %w", err)
	}

	log.Printf("[INFO] %s updated: $%.2f (%+.2f, %+.2f%%) range $%.2f-$%.2f update #%d",
		model.DateKey(merged.Date), merged.CurrentPrice, merged.PriceChange,
		merged.PriceChangePct, merged.IntradayLow, merged.IntradayHigh, merged.UpdateCount)
	return nil
}

// runAlerts evaluates the latest two stored records, filters already-sent
// alerts, delivers the rest, and records them as sent only after delivery
// succeeded. A delivery failure leaves the history untouched so the next
// tick retries.
func (s *Scheduler) runAlerts(now time.Time) error {
	latest, err := s.Store.GetLatest(2)
	if err != nil {
		return fmt.Errorf("load latest records: %w", err)
	}
	if len(latest) == 0 {
		log.Println("[INFO] no records yet, skipping alert evaluation")
		return nil
	}

	current := latest[0]
	var previous *model.DayRecord
	if len(latest) > 1 {
		previous = &latest[1]
	}

	candidates := s.Detector.Detect(current, previous)
	if len(candidates) == 0 {
		log.Println("[INFO] no alert conditions met")
		return nil
	}

	toSend, err := s.Dedup.Filter(candidates, now)
	if err != nil {
		return fmt.Errorf("filter alerts: %w", err)
	}
	if len(toSend) == 0 {
		log.Printf("[INFO] found %d alerts but all were recently sent", len(candidates))
		return nil
	}

	log.Printf("[INFO] sending %d new alerts:", len(toSend))
	for _, a := range toSend {
		log.Printf("[INFO]   - %s", a.Title)
	}

	if err := s.Sender.Send(s.Ctx, toSend, current); err != nil {
		return fmt.Errorf("deliver alerts: %w", err)
	}
	if err := s.Dedup.MarkSent(toSend, now); err != nil {
		return fmt.Errorf("record sent alerts: %w", err)
	}
	return nil
}
