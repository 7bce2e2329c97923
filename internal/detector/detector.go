// Package detector evaluates a merged day record against the previous day's
// record and emits alert candidates. Every rule is independent: a single
// evaluation may produce several alerts, and only the 52-week checks and the
// RSI checks are mutually exclusive.
package detector

import (
	"fmt"
	"math"

	"StockSentry/internal/calculator"
	"StockSentry/internal/model"
)

// Thresholds holds the tunable trigger levels for every rule.
type Thresholds struct {
	PriceChangePct   float64
	VolumeSpikeRatio float64
	RSIOversold      float64
	RSIOverbought    float64
	// NearHighPct is expressed as a negative-or-zero distance from the
	// 52-week high; NearLowPct as a positive distance from the low.
	NearHighPct float64
	NearLowPct  float64
	GapPct      float64
}

// DefaultThresholds returns the stock trigger levels.
func DefaultThresholds() Thresholds {
	return Thresholds{
		PriceChangePct:   2.0,
		VolumeSpikeRatio: 1.5,
		RSIOversold:      30,
		RSIOverbought:    70,
		NearHighPct:      -1,
		NearLowPct:       5,
		GapPct:           1,
	}
}

// Detector evaluates the alert rules for one symbol.
type Detector struct {
	Symbol     string
	Thresholds Thresholds
}

// New creates a detector for the given symbol.
func New(symbol string, th Thresholds) *Detector {
	return &Detector{Symbol: symbol, Thresholds: th}
}

// Detect evaluates all rules against the current record, using the
// immediately preceding day's record for the edge-triggered rules.
// previous may be nil (first record in history): cross, breakout and gap
// rules simply do not fire.
func (d *Detector) Detect(current model.DayRecord, previous *model.DayRecord) []model.Alert {
	var alerts []model.Alert

	if a := d.checkPriceMovement(current); a != nil {
		alerts = append(alerts, *a)
	}
	if a := d.checkVolumeSpike(current); a != nil {
		alerts = append(alerts, *a)
	}
	if a := d.checkRSI(current); a != nil {
		alerts = append(alerts, *a)
	}
	alerts = append(alerts, d.checkCrossovers(current, previous)...)
	if a := d.check52Week(current); a != nil {
		alerts = append(alerts, *a)
	}
	if a := d.checkGap(current, previous); a != nil {
		alerts = append(alerts, *a)
	}
	return alerts
}

func (d *Detector) checkPriceMovement(cur model.DayRecord) *model.Alert {
	if math.Abs(cur.PriceChangePct) < d.Thresholds.PriceChangePct {
		return nil
	}
	direction := "up"
	if cur.PriceChangePct < 0 {
		direction = "down"
	}
	return &model.Alert{
		Type:     model.AlertPriceMovement,
		Severity: model.SeverityHigh,
		Title:    fmt.Sprintf("🚨 Large Price Movement: %s %.2f%%", direction, math.Abs(cur.PriceChangePct)),
		Message: fmt.Sprintf("%s is %s $%.2f (%+.2f%%) to $%.2f",
			d.Symbol, direction, math.Abs(cur.PriceChange), cur.PriceChangePct, cur.CurrentPrice),
	}
}

func (d *Detector) checkVolumeSpike(cur model.DayRecord) *model.Alert {
	if cur.VolumeRatio == nil || *cur.VolumeRatio < d.Thresholds.VolumeSpikeRatio {
		return nil
	}
	return &model.Alert{
		Type:     model.AlertVolumeSpike,
		Severity: model.SeverityMedium,
		Title:    fmt.Sprintf("📊 Unusual Volume: %.2fx Average", *cur.VolumeRatio),
		Message: fmt.Sprintf("Trading volume is %.2fx the 20-day average (%d shares)",
			*cur.VolumeRatio, cur.Volume),
	}
}

func (d *Detector) checkRSI(cur model.DayRecord) *model.Alert {
	if cur.RSI14 == nil {
		return nil
	}
	rsi := *cur.RSI14
	switch {
	case rsi <= d.Thresholds.RSIOversold:
		return &model.Alert{
			Type:     model.AlertRSIOversold,
			Severity: model.SeverityHigh,
			Title:    fmt.Sprintf("🟢 RSI Oversold Signal: %.2f", rsi),
			Message:  fmt.Sprintf("RSI(14) is %.2f, indicating potential buying opportunity", rsi),
		}
	case rsi >= d.Thresholds.RSIOverbought:
		return &model.Alert{
			Type:     model.AlertRSIOverbought,
			Severity: model.SeverityMedium,
			Title:    fmt.Sprintf("🔴 RSI Overbought Signal: %.2f", rsi),
			Message:  fmt.Sprintf("RSI(14) is %.2f, indicating potential selling pressure", rsi),
		}
	}
	return nil
}

// checkCrossovers handles the edge-triggered moving-average rules: golden
// cross, death cross, and breakout above MA200. All require indicator values
// on both the current and previous records.
func (d *Detector) checkCrossovers(cur model.DayRecord, prev *model.DayRecord) []model.Alert {
	if cur.MA50 == nil || cur.MA200 == nil {
		return nil
	}
	var alerts []model.Alert

	if prev != nil && prev.MA50 != nil && prev.MA200 != nil {
		switch {
		case *prev.MA50 <= *prev.MA200 && *cur.MA50 > *cur.MA200:
			alerts = append(alerts, model.Alert{
				Type:     model.AlertGoldenCross,
				Severity: model.SeverityHigh,
				Title:    "🌟 Golden Cross Signal",
				Message:  "MA50 crossed above MA200 - Bullish signal",
			})
		case *prev.MA50 >= *prev.MA200 && *cur.MA50 < *cur.MA200:
			alerts = append(alerts, model.Alert{
				Type:     model.AlertDeathCross,
				Severity: model.SeverityHigh,
				Title:    "💀 Death Cross Signal",
				Message:  "MA50 crossed below MA200 - Bearish signal",
			})
		}
	}

	// Breakout: price now above both averages, yesterday at or below MA200.
	if cur.CurrentPrice > *cur.MA50 && cur.CurrentPrice > *cur.MA200 {
		if prev != nil && prev.MA200 != nil && prev.CurrentPrice <= *prev.MA200 {
			alerts = append(alerts, model.Alert{
				Type:     model.AlertBreakout,
				Severity: model.SeverityMedium,
				Title:    "📈 Breakout Above MA200",
				Message: fmt.Sprintf("Price ($%.2f) broke above MA200 ($%.2f)",
					cur.CurrentPrice, *cur.MA200),
			})
		}
	}
	return alerts
}

// check52Week fires at most one of the two range alerts. Within 1% of the
// high, the low check is skipped: both cannot be true in any sane range.
func (d *Detector) check52Week(cur model.DayRecord) *model.Alert {
	if cur.PctFrom52WHigh != nil && *cur.PctFrom52WHigh >= d.Thresholds.NearHighPct {
		high := 0.0
		if cur.FiftyTwoWeekHigh != nil {
			high = *cur.FiftyTwoWeekHigh
		}
		return &model.Alert{
			Type:     model.AlertNear52WHigh,
			Severity: model.SeverityHigh,
			Title:    "🎯 Near 52-Week High",
			Message:  fmt.Sprintf("Price is within 1%% of 52-week high ($%.2f)", high),
		}
	}
	if cur.PctFrom52WLow != nil && *cur.PctFrom52WLow <= d.Thresholds.NearLowPct {
		low := 0.0
		if cur.FiftyTwoWeekLow != nil {
			low = *cur.FiftyTwoWeekLow
		}
		return &model.Alert{
			Type:     model.AlertNear52WLow,
			Severity: model.SeverityHigh,
			Title:    "⚠️ Near 52-Week Low",
			Message:  fmt.Sprintf("Price is within 5%% of 52-week low ($%.2f)", low),
		}
	}
	return nil
}

func (d *Detector) checkGap(cur model.DayRecord, prev *model.DayRecord) *model.Alert {
	if prev == nil {
		return nil
	}
	gap, err := calculator.GapPct(cur.Open, prev.Close)
	if err != nil || math.Abs(gap) < d.Thresholds.GapPct {
		return nil
	}
	if gap > 0 {
		return &model.Alert{
			Type:     model.AlertGapUp,
			Severity: model.SeverityMedium,
			Title:    fmt.Sprintf("📍 Gap Up: %.2f%%", gap),
			Message:  fmt.Sprintf("Stock opened with a %.2f%% gap up from previous close", gap),
		}
	}
	return &model.Alert{
		Type:     model.AlertGapDown,
		Severity: model.SeverityMedium,
		Title:    fmt.Sprintf("📍 Gap Down: %.2f%%", math.Abs(gap)),
		Message:  fmt.Sprintf("Stock opened with a %.2f%% gap down from previous close", math.Abs(gap)),
	}
}
