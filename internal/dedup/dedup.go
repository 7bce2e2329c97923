// Package dedup suppresses alert candidates that were already delivered
// recently. The history key embeds today's calendar date, so an alert type
// is suppressed at most once per day; the 24h window guards against repeated
// sends within that day regardless of clock boundaries.
package dedup

import (
	"fmt"
	"time"

	"StockSentry/internal/model"
)

// SuppressionWindow is how long after a successful send the same
// (day, type) key stays quiet.
const SuppressionWindow = 24 * time.Hour

// HistoryStore persists last-sent timestamps keyed by (day, alert type).
type HistoryStore interface {
	GetLastSent(day string, alertType model.AlertType) (time.Time, bool, error)
	SetLastSent(day string, alertType model.AlertType, sentAt time.Time) error
}

// Deduplicator filters alert candidates against the sent history.
type Deduplicator struct {
	history HistoryStore
}

// New creates a Deduplicator backed by the given history store.
func New(history HistoryStore) *Deduplicator {
	return &Deduplicator{history: history}
}

// Filter returns the candidates that have not been sent within the
// suppression window. It never writes to the history: recording happens via
// MarkSent only after the caller confirms delivery, so a failed send does
// not suppress the retry on the next run.
func (d *Deduplicator) Filter(candidates []model.Alert, now time.Time) ([]model.Alert, error) {
	day := model.DateKey(now)
	var out []model.Alert
	for _, c := range candidates {
		lastSent, ok, err := d.history.GetLastSent(day, c.Type)
		if err != nil {
			return nil, fmt.Errorf("read alert history for %s: %w", c.Type, err)
		}
		if ok && now.Sub(lastSent) < SuppressionWindow {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// MarkSent records the alerts as delivered at now. Call only after the
// notification transport reported success.
func (d *Deduplicator) MarkSent(alerts []model.Alert, now time.Time) error {
	day := model.DateKey(now)
	for _, a := range alerts {
		if err := d.history.SetLastSent(day, a.Type, now); err != nil {
			return fmt.Errorf("record alert history for %s: %w", a.Type, err)
		}
	}
	return nil
}
