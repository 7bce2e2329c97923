// Package merge combines a freshly fetched sample for a calendar day with the
// previously stored record for that day. Repeated intraday fetches must never
// lose an observed extreme: highs and lows only widen, while everything the
// latest fetch recomputes (close, volume, indicators) simply wins.
package merge

import (
	"errors"
	"time"

	"StockSentry/internal/model"
)

// ErrDateMismatch means the sample's date differs from the existing record's
// date. That is a caller error: merging across days would corrupt both.
var ErrDateMismatch = errors.New("sample date does not match existing record date")

// Merge combines an existing day record (nil on the first fetch of the day)
// with a new sample and returns the merged record.
//
// update_count counts merge invocations, not distinct observations: merging
// an identical sample twice still increments it. The intraday range, by
// contrast, is idempotent - re-merging the same sample cannot shrink it.
//
// Callers must serialize merges for the same date; Merge itself holds no
// locks.
func Merge(existing *model.DayRecord, sample model.DayRecord, now time.Time) (model.DayRecord, error) {
	if existing == nil {
		merged := sample
		merged.UpdateCount = 1
		merged.IsLiveData = true
		merged.IntradayHigh = sample.High
		merged.IntradayLow = sample.Low
		merged.LastUpdateTime = now
		return merged, nil
	}

	if !model.SameDay(existing.Date, sample.Date) {
		return model.DayRecord{}, ErrDateMismatch
	}

	// Start from the sample: open is last-fetch-wins (the provider may
	// return a corrected value), and close/volume/price fields reflect the
	// freshest observation.
	merged := sample

	merged.High = max(existing.High, sample.High)
	merged.Low = min(existing.Low, sample.Low)
	merged.IntradayHigh = max(existing.IntradayHigh, sample.High)
	merged.IntradayLow = min(existing.IntradayLow, sample.Low)

	// Indicators the new sample could not compute keep their stored values:
	// an available value never regresses to unavailable.
	coalesce(&merged.MA50, existing.MA50)
	coalesce(&merged.MA200, existing.MA200)
	coalesce(&merged.RSI14, existing.RSI14)
	coalesce(&merged.FiftyTwoWeekHigh, existing.FiftyTwoWeekHigh)
	coalesce(&merged.FiftyTwoWeekLow, existing.FiftyTwoWeekLow)
	coalesce(&merged.VolumeMA20, existing.VolumeMA20)
	coalesce(&merged.VolumeRatio, existing.VolumeRatio)
	coalesce(&merged.PctFrom52WHigh, existing.PctFrom52WHigh)
	coalesce(&merged.PctFrom52WLow, existing.PctFrom52WLow)

	merged.UpdateCount = existing.UpdateCount + 1
	merged.IsLiveData = true
	merged.LastUpdateTime = now
	return merged, nil
}

func coalesce(dst **float64, fallback *float64) {
	if *dst == nil {
		*dst = fallback
	}
}
