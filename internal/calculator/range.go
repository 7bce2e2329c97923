package calculator

import (
	"math"

	"StockSentry/internal/model"
)

// fiftyTwoWeekBars is the trailing window scanned for the 52-week range,
// in trading days.
const fiftyTwoWeekBars = 252

// Calculate52WeekRange scans the most recent 252 trading days and returns
// the highest high and lowest low.
func Calculate52WeekRange(bars []model.PriceBar) (high, low float64, err error) {
	if len(bars) == 0 {
		return 0, 0, ErrInsufficientData
	}
	start := len(bars) - fiftyTwoWeekBars
	if start < 0 {
		start = 0
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for i := start; i < len(bars); i++ {
		if bars[i].High > high {
			high = bars[i].High
		}
		if bars[i].Low < low {
			low = bars[i].Low
		}
	}
	return high, low, nil
}

// PctFromExtreme returns how far price sits from a range extreme, as a
// percentage of the extreme. Negative when below, positive when above.
func PctFromExtreme(price, extreme float64) (float64, error) {
	if extreme <= 0 {
		return 0, ErrInvalidInput
	}
	return (price - extreme) / extreme * 100, nil
}
