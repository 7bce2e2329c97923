package collector

import (
	"time"

	"StockSentry/internal/calculator"
	"StockSentry/internal/model"
)

// BuildHistoricalRecords turns a full historical series into seed records:
// rolling MA50/MA200, a previous-close chain (zero-filled for the first bar),
// update_count 0 and is_live_data false, intraday range equal to the daily
// range. Bars must be in ascending date order.
func BuildHistoricalRecords(bars []model.PriceBar, now time.Time) []model.DayRecord {
	recs := make([]model.DayRecord, 0, len(bars))
	closes := make([]float64, 0, len(bars))

	for i, bar := range bars {
		closes = append(closes, bar.Close)

		rec := model.DayRecord{
			Date:   bar.Date,
			Open:   calculator.Round2(bar.Open),
			High:   calculator.Round2(bar.High),
			Low:    calculator.Round2(bar.Low),
			Close:  calculator.Round2(bar.Close),
			Volume: bar.Volume,

			CurrentPrice: calculator.Round2(bar.Close),
			IntradayHigh: calculator.Round2(bar.High),
			IntradayLow:  calculator.Round2(bar.Low),

			UpdateCount:    0,
			IsLiveData:     false,
			LastUpdateTime: now,
		}

		if i > 0 {
			prevClose := bars[i-1].Close
			rec.PreviousClose = calculator.Round2(prevClose)
			rec.PriceChange = calculator.Round2(bar.Close - prevClose)
			if prevClose > 0 {
				rec.PriceChangePct = (bar.Close - prevClose) / prevClose * 100
			}
		}

		if ma, err := calculator.SimpleMovingAverage(closes, 50); err == nil {
			rec.MA50 = model.Float(ma)
		}
		if ma, err := calculator.SimpleMovingAverage(closes, 200); err == nil {
			rec.MA200 = model.Float(ma)
		}

		recs = append(recs, rec)
	}
	return recs
}
