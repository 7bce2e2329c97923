package store

import (
	"time"

	"StockSentry/internal/model"
)

// Store persists day records keyed by calendar date.
type Store interface {
	// GetDayRecord returns the record for the date, or nil if none exists.
	GetDayRecord(date time.Time) (*model.DayRecord, error)
	// PutDayRecord upserts by date.
	PutDayRecord(rec model.DayRecord) error
	// GetLatest returns up to n records ordered by date descending.
	GetLatest(n int) ([]model.DayRecord, error)
	// GetHistoricalSeries returns all records ordered by date ascending.
	GetHistoricalSeries() ([]model.DayRecord, error)
	// BulkInsert seeds many records in one transaction.
	BulkInsert(recs []model.DayRecord) error
	Close() error
}
