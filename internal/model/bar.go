package model

import "time"

// PriceBar is one trading day's raw OHLCV as returned by the data provider.
type PriceBar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// Quote is a point-in-time snapshot from the data provider.
type Quote struct {
	CurrentPrice      float64
	PreviousClose     float64
	MarketCapBillions float64
}

// MarketStatus indicates where the current time falls relative to the
// US trading session.
type MarketStatus string

const (
	StatusMarketOpen MarketStatus = "MARKET_OPEN"
	StatusPreMarket  MarketStatus = "PRE_MARKET"
	StatusAfterHours MarketStatus = "AFTER_HOURS"
	StatusWeekend    MarketStatus = "WEEKEND"
)

// DateKey formats a time as the canonical per-day key used by the store
// and the alert history.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
