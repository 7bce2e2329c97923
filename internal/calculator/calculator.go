package calculator

import (
	"errors"
	"math"

	"StockSentry/internal/model"
)

// ErrInsufficientData means the series is too short for the requested
// indicator. It is a valid "unavailable" result, not a failure: callers store
// the field as absent and downstream rules skip it.
var ErrInsufficientData = errors.New("not enough data")

// ErrInvalidInput means a non-positive price or window was supplied.
var ErrInvalidInput = errors.New("invalid input")

// Round2 rounds to two decimal places, the precision used for stored prices
// and indicators.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func extractCloses(bars []model.PriceBar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
