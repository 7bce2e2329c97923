package calculator

import "StockSentry/internal/model"

// SimpleMovingAverage computes the mean of the trailing window values,
// rounded to 2 decimal places.
func SimpleMovingAverage(values []float64, window int) (float64, error) {
	if window <= 0 {
		return 0, ErrInvalidInput
	}
	if len(values) < window {
		return 0, ErrInsufficientData
	}
	sum := 0.0
	for i := len(values) - window; i < len(values); i++ {
		sum += values[i]
	}
	return Round2(sum / float64(window)), nil
}

// CalculateMA50 returns the 50-day simple moving average of closes.
func CalculateMA50(bars []model.PriceBar) (float64, error) {
	return SimpleMovingAverage(extractCloses(bars), 50)
}

// CalculateMA200 returns the 200-day simple moving average of closes.
func CalculateMA200(bars []model.PriceBar) (float64, error) {
	return SimpleMovingAverage(extractCloses(bars), 200)
}
