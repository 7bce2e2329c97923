package calculator

import "StockSentry/internal/model"

// lossEpsilon stands in for a zero average loss so a pure-gain window yields
// an RSI near, but never exactly, 100.
const lossEpsilon = 1e-4

// CalculateRSI computes the RSI over the trailing period: the simple mean of
// bar-to-bar gains divided by the simple mean of losses, mapped into [0,100].
// Requires at least period+1 bars.
func CalculateRSI(bars []model.PriceBar, period int) (float64, error) {
	if period <= 0 {
		return 0, ErrInvalidInput
	}
	closes := extractCloses(bars)
	if len(closes) < period+1 {
		return 0, ErrInsufficientData
	}

	var gains, losses float64
	for i := len(closes) - period; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}
	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)
	if avgLoss == 0 {
		avgLoss = lossEpsilon
	}

	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs), nil
}
