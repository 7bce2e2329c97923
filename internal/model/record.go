package model

import "time"

// DayRecord is the persisted state for one calendar day, keyed by Date.
// It carries the raw OHLCV plus everything derived from the latest fetch.
// Indicator fields are pointers: nil means the value could not be computed
// from the history available at fetch time, and a merge never regresses a
// stored value back to nil.
type DayRecord struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64

	CurrentPrice   float64
	PreviousClose  float64
	PriceChange    float64
	PriceChangePct float64

	// IntradayHigh/Low only ever widen across merges for the same day.
	IntradayHigh float64
	IntradayLow  float64

	MA50              *float64
	MA200             *float64
	RSI14             *float64
	FiftyTwoWeekHigh  *float64
	FiftyTwoWeekLow   *float64
	VolumeMA20        *float64
	VolumeRatio       *float64
	PctFrom52WHigh    *float64
	PctFrom52WLow     *float64
	MarketCapBillions float64

	MarketStatus   MarketStatus
	UpdateCount    int
	IsLiveData     bool
	LastUpdateTime time.Time
}

// Float is a convenience for building optional indicator fields.
func Float(v float64) *float64 { return &v }
