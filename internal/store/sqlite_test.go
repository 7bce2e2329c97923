package store

import (
	"path/filepath"
	"testing"
	"time"

	"StockSentry/internal/model"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testRecord(date time.Time) model.DayRecord {
	return model.DayRecord{
		Date:           date,
		Open:           100.10,
		High:           102.50,
		Low:            99.25,
		Close:          101.75,
		Volume:         3500000,
		CurrentPrice:   101.75,
		PreviousClose:  100.00,
		PriceChange:    1.75,
		PriceChangePct: 1.75,
		IntradayHigh:   102.50,
		IntradayLow:    99.25,
		MA50:           model.Float(98.20),
		RSI14:          model.Float(55.5),
		MarketStatus:   model.StatusMarketOpen,
		UpdateCount:    1,
		IsLiveData:     true,
		LastUpdateTime: time.Date(2025, 6, 2, 15, 0, 0, 0, time.UTC),
	}
}

func TestSQLiteStore_GetMissing(t *testing.T) {
	s := openTestStore(t)
	rec, err := s.GetDayRecord(time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec != nil {
		t.Errorf("expected nil for missing date, got %+v", rec)
	}
}

func TestSQLiteStore_PutGetRoundtrip(t *testing.T) {
	s := openTestStore(t)
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	rec := testRecord(date)

	if err := s.PutDayRecord(rec); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := s.GetDayRecord(date)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected a record")
	}
	if got.Close != rec.Close || got.Volume != rec.Volume || got.UpdateCount != 1 {
		t.Errorf("roundtrip mismatch: %+v", got)
	}
	if got.MA50 == nil || *got.MA50 != 98.20 {
		t.Errorf("MA50 should survive the roundtrip, got %v", got.MA50)
	}
	if got.MA200 != nil {
		t.Errorf("absent MA200 should stay nil, got %v", *got.MA200)
	}
	if !got.IsLiveData || got.MarketStatus != model.StatusMarketOpen {
		t.Errorf("flags lost in roundtrip: %+v", got)
	}
}

func TestSQLiteStore_UpsertByDate(t *testing.T) {
	s := openTestStore(t)
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	rec := testRecord(date)
	if err := s.PutDayRecord(rec); err != nil {
		t.Fatalf("put: %v", err)
	}

	rec.Close = 103.00
	rec.UpdateCount = 2
	if err := s.PutDayRecord(rec); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := s.GetDayRecord(date)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Close != 103.00 || got.UpdateCount != 2 {
		t.Errorf("upsert should replace the row, got close=%v count=%d", got.Close, got.UpdateCount)
	}

	latest, err := s.GetLatest(10)
	if err != nil {
		t.Fatalf("get latest: %v", err)
	}
	if len(latest) != 1 {
		t.Errorf("upsert must not duplicate rows, got %d", len(latest))
	}
}

func TestSQLiteStore_GetLatestOrdering(t *testing.T) {
	s := openTestStore(t)
	base := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		if err := s.PutDayRecord(testRecord(base.AddDate(0, 0, i))); err != nil {
			t.Fatalf("put %d: %v", i, err)
		}
	}

	latest, err := s.GetLatest(2)
	if err != nil {
		t.Fatalf("get latest: %v", err)
	}
	if len(latest) != 2 {
		t.Fatalf("expected 2 records, got %d", len(latest))
	}
	if !latest[0].Date.After(latest[1].Date) {
		t.Errorf("expected descending dates, got %v then %v", latest[0].Date, latest[1].Date)
	}
	if model.DateKey(latest[0].Date) != "2025-06-06" {
		t.Errorf("expected newest first, got %s", model.DateKey(latest[0].Date))
	}
}

func TestSQLiteStore_BulkInsertAndSeries(t *testing.T) {
	s := openTestStore(t)
	base := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)

	recs := make([]model.DayRecord, 10)
	for i := range recs {
		recs[i] = testRecord(base.AddDate(0, 0, i))
		recs[i].UpdateCount = 0
		recs[i].IsLiveData = false
	}
	if err := s.BulkInsert(recs); err != nil {
		t.Fatalf("bulk insert: %v", err)
	}

	series, err := s.GetHistoricalSeries()
	if err != nil {
		t.Fatalf("get series: %v", err)
	}
	if len(series) != 10 {
		t.Fatalf("expected 10 records, got %d", len(series))
	}
	for i := 1; i < len(series); i++ {
		if !series[i].Date.After(series[i-1].Date) {
			t.Errorf("series must ascend by date at index %d", i)
		}
	}
	if series[0].IsLiveData || series[0].UpdateCount != 0 {
		t.Errorf("seeded records should be non-live with count 0: %+v", series[0])
	}
}
