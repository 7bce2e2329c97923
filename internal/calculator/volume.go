package calculator

import "StockSentry/internal/model"

func extractVolumes(bars []model.PriceBar) []float64 {
	vols := make([]float64, len(bars))
	for i, b := range bars {
		vols[i] = float64(b.Volume)
	}
	return vols
}

// CalculateVolumeMA returns the simple moving average of volume over the
// trailing window.
func CalculateVolumeMA(bars []model.PriceBar, window int) (float64, error) {
	return SimpleMovingAverage(extractVolumes(bars), window)
}

// VolumeRatio returns the latest volume relative to its moving average.
// When the average is zero or unavailable it returns 1.0, a documented safe
// default that reads as "nothing unusual" rather than raising a division
// error.
func VolumeRatio(bars []model.PriceBar, window int) float64 {
	if len(bars) == 0 {
		return 1.0
	}
	ma, err := CalculateVolumeMA(bars, window)
	if err != nil || ma == 0 {
		return 1.0
	}
	return float64(bars[len(bars)-1].Volume) / ma
}
