package store

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"StockSentry/internal/model"
)

// SQLiteStore persists day records to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so readers (dashboards, ad-hoc queries) don't block updates.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS stock_days (
			date                TEXT PRIMARY KEY,
			open                REAL NOT NULL,
			high                REAL NOT NULL,
			low                 REAL NOT NULL,
			close               REAL NOT NULL,
			volume              INTEGER NOT NULL,
			current_price       REAL NOT NULL,
			previous_close      REAL NOT NULL,
			price_change        REAL NOT NULL,
			price_change_pct    REAL NOT NULL,
			intraday_high       REAL NOT NULL,
			intraday_low        REAL NOT NULL,
			ma50                REAL,
			ma200               REAL,
			rsi_14              REAL,
			fifty_two_week_high REAL,
			fifty_two_week_low  REAL,
			volume_ma_20        REAL,
			volume_ratio        REAL,
			pct_from_52w_high   REAL,
			pct_from_52w_low    REAL,
			market_cap_billions REAL NOT NULL DEFAULT 0,
			market_status       TEXT NOT NULL DEFAULT '',
			update_count        INTEGER NOT NULL DEFAULT 0,
			is_live_data        INTEGER NOT NULL DEFAULT 0,
			last_update_time    INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_stock_days_date ON stock_days(date)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

const dayColumns = `date, open, high, low, close, volume,
	current_price, previous_close, price_change, price_change_pct,
	intraday_high, intraday_low,
	ma50, ma200, rsi_14, fifty_two_week_high, fifty_two_week_low,
	volume_ma_20, volume_ratio, pct_from_52w_high, pct_from_52w_low,
	market_cap_billions, market_status, update_count, is_live_data, last_update_time`

func (s *SQLiteStore) GetDayRecord(date time.Time) (*model.DayRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRow(
		`SELECT `+dayColumns+` FROM stock_days WHERE date = ?`,
		model.DateKey(date),
	)
	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get day record: %w", err)
	}
	return rec, nil
}

func (s *SQLiteStore) PutDayRecord(rec model.DayRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO stock_days (`+dayColumns+`)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
		ON CONFLICT(date) DO UPDATE SET
			open = excluded.open,
			high = excluded.high,
			low = excluded.low,
			close = excluded.close,
			volume = excluded.volume,
			current_price = excluded.current_price,
			previous_close = excluded.previous_close,
			price_change = excluded.price_change,
			price_change_pct = excluded.price_change_pct,
			intraday_high = excluded.intraday_high,
			intraday_low = excluded.intraday_low,
			ma50 = excluded.ma50,
			ma200 = excluded.ma200,
			rsi_14 = excluded.rsi_14,
			fifty_two_week_high = excluded.fifty_two_week_high,
			fifty_two_week_low = excluded.fifty_two_week_low,
			volume_ma_20 = excluded.volume_ma_20,
			volume_ratio = excluded.volume_ratio,
			pct_from_52w_high = excluded.pct_from_52w_high,
			pct_from_52w_low = excluded.pct_from_52w_low,
			market_cap_billions = excluded.market_cap_billions,
			market_status = excluded.market_status,
			update_count = excluded.update_count,
			is_live_data = excluded.is_live_data,
			last_update_time = excluded.last_update_time`,
		recordArgs(rec)...,
	)
	if err != nil {
		return fmt.Errorf("put day record: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetLatest(n int) ([]model.DayRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		`SELECT `+dayColumns+` FROM stock_days ORDER BY date DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("get latest records: %w", err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

func (s *SQLiteStore) GetHistoricalSeries() ([]model.DayRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		`SELECT ` + dayColumns + ` FROM stock_days ORDER BY date ASC`)
	if err != nil {
		return nil, fmt.Errorf("get historical series: %w", err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

func (s *SQLiteStore) BulkInsert(recs []model.DayRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin bulk insert: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO stock_days (` + dayColumns + `)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare bulk insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range recs {
		if _, err := stmt.Exec(recordArgs(rec)...); err != nil {
			tx.Rollback()
			return fmt.Errorf("bulk insert %s: %w", model.DateKey(rec.Date), err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite store")
	return s.db.Close()
}

func recordArgs(rec model.DayRecord) []any {
	return []any{
		model.DateKey(rec.Date), rec.Open, rec.High, rec.Low, rec.Close, rec.Volume,
		rec.CurrentPrice, rec.PreviousClose, rec.PriceChange, rec.PriceChangePct,
		rec.IntradayHigh, rec.IntradayLow,
		nullable(rec.MA50), nullable(rec.MA200), nullable(rec.RSI14),
		nullable(rec.FiftyTwoWeekHigh), nullable(rec.FiftyTwoWeekLow),
		nullable(rec.VolumeMA20), nullable(rec.VolumeRatio),
		nullable(rec.PctFrom52WHigh), nullable(rec.PctFrom52WLow),
		rec.MarketCapBillions, string(rec.MarketStatus),
		rec.UpdateCount, boolToInt(rec.IsLiveData), rec.LastUpdateTime.Unix(),
	}
}

func nullable(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func fromNullable(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

type scannable interface {
	Scan(dest ...any) error
}

func scanRecord(row scannable) (*model.DayRecord, error) {
	var (
		rec        model.DayRecord
		dateStr    string
		status     string
		isLive     int
		lastUpdate int64

		ma50, ma200, rsi              sql.NullFloat64
		high52w, low52w               sql.NullFloat64
		volMA, volRatio               sql.NullFloat64
		pctFromHigh52w, pctFromLow52w sql.NullFloat64
	)
	err := row.Scan(
		&dateStr, &rec.Open, &rec.High, &rec.Low, &rec.Close, &rec.Volume,
		&rec.CurrentPrice, &rec.PreviousClose, &rec.PriceChange, &rec.PriceChangePct,
		&rec.IntradayHigh, &rec.IntradayLow,
		&ma50, &ma200, &rsi, &high52w, &low52w,
		&volMA, &volRatio, &pctFromHigh52w, &pctFromLow52w,
		&rec.MarketCapBillions, &status, &rec.UpdateCount, &isLive, &lastUpdate,
	)
	if err != nil {
		return nil, err
	}

	rec.Date, err = time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", dateStr, err)
	}
	rec.MA50 = fromNullable(ma50)
	rec.MA200 = fromNullable(ma200)
	rec.RSI14 = fromNullable(rsi)
	rec.FiftyTwoWeekHigh = fromNullable(high52w)
	rec.FiftyTwoWeekLow = fromNullable(low52w)
	rec.VolumeMA20 = fromNullable(volMA)
	rec.VolumeRatio = fromNullable(volRatio)
	rec.PctFrom52WHigh = fromNullable(pctFromHigh52w)
	rec.PctFrom52WLow = fromNullable(pctFromLow52w)
	rec.MarketStatus = model.MarketStatus(status)
	rec.IsLiveData = isLive != 0
	rec.LastUpdateTime = time.Unix(lastUpdate, 0)
	return &rec, nil
}

func collectRecords(rows *sql.Rows) ([]model.DayRecord, error) {
	var recs []model.DayRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan day record: %w", err)
		}
		recs = append(recs, *rec)
	}
	return recs, rows.Err()
}
