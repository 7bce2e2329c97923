package calculator

// GapPct returns the percentage gap between today's open and the previous
// session's close. Undefined without a positive previous close.
func GapPct(todayOpen, previousClose float64) (float64, error) {
	if previousClose <= 0 {
		return 0, ErrInvalidInput
	}
	return (todayOpen - previousClose) / previousClose * 100, nil
}
