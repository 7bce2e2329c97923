package detector

import (
	"testing"
	"time"

	"StockSentry/internal/model"
)

func quietRecord() model.DayRecord {
	return model.DayRecord{
		Date:           time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		Open:           100,
		High:           101,
		Low:            99,
		Close:          100.5,
		Volume:         1000000,
		CurrentPrice:   100.5,
		PreviousClose:  100,
		PriceChange:    0.5,
		PriceChangePct: 0.5,
		RSI14:          model.Float(50),
		VolumeRatio:    model.Float(1.0),
		PctFrom52WHigh: model.Float(-10),
		PctFrom52WLow:  model.Float(20),
	}
}

func hasType(alerts []model.Alert, typ model.AlertType) bool {
	for _, a := range alerts {
		if a.Type == typ {
			return true
		}
	}
	return false
}

func TestDetect_QuietDay(t *testing.T) {
	d := New("WMT", DefaultThresholds())
	prev := quietRecord()
	if alerts := d.Detect(quietRecord(), &prev); len(alerts) != 0 {
		t.Errorf("expected no alerts on a quiet day, got %v", alerts)
	}
}

func TestDetect_PriceMovement(t *testing.T) {
	d := New("WMT", DefaultThresholds())
	tests := []struct {
		pct  float64
		want bool
	}{
		{2.5, true},
		{-3.1, true},
		{2.0, true}, // threshold is inclusive
		{1.9, false},
		{-1.9, false},
	}
	for _, tt := range tests {
		cur := quietRecord()
		cur.PriceChangePct = tt.pct
		alerts := d.Detect(cur, nil)
		if got := hasType(alerts, model.AlertPriceMovement); got != tt.want {
			t.Errorf("pct %+.1f: expected fire=%v, got %v", tt.pct, tt.want, got)
		}
	}
}

func TestDetect_VolumeSpike(t *testing.T) {
	d := New("WMT", DefaultThresholds())
	cur := quietRecord()
	cur.VolumeRatio = model.Float(1.6)
	if !hasType(d.Detect(cur, nil), model.AlertVolumeSpike) {
		t.Error("expected VOLUME_SPIKE at ratio 1.6")
	}

	cur.VolumeRatio = nil
	if hasType(d.Detect(cur, nil), model.AlertVolumeSpike) {
		t.Error("missing volume ratio must not fire")
	}
}

func TestDetect_RSIMutuallyExclusive(t *testing.T) {
	d := New("WMT", DefaultThresholds())

	cur := quietRecord()
	cur.RSI14 = model.Float(25)
	alerts := d.Detect(cur, nil)
	if !hasType(alerts, model.AlertRSIOversold) || hasType(alerts, model.AlertRSIOverbought) {
		t.Errorf("RSI 25 should fire oversold only, got %v", alerts)
	}

	cur.RSI14 = model.Float(75)
	alerts = d.Detect(cur, nil)
	if !hasType(alerts, model.AlertRSIOverbought) || hasType(alerts, model.AlertRSIOversold) {
		t.Errorf("RSI 75 should fire overbought only, got %v", alerts)
	}
}

func TestDetect_GoldenCrossScenario(t *testing.T) {
	d := New("WMT", DefaultThresholds())

	prev := quietRecord()
	prev.MA50 = model.Float(89.00)
	prev.MA200 = model.Float(90.00)
	prev.Close = 50.00

	cur := quietRecord()
	cur.MA50 = model.Float(90.50)
	cur.MA200 = model.Float(90.00)
	cur.Open = 50.75

	alerts := d.Detect(cur, &prev)
	if !hasType(alerts, model.AlertGoldenCross) {
		t.Error("expected GOLDEN_CROSS on MA50 crossing above MA200")
	}
	if hasType(alerts, model.AlertDeathCross) {
		t.Error("DEATH_CROSS must not fire alongside GOLDEN_CROSS")
	}
	if !hasType(alerts, model.AlertGapUp) {
		t.Error("expected GAP_UP on 1.5% open gap")
	}
}

func TestDetect_DeathCross(t *testing.T) {
	d := New("WMT", DefaultThresholds())

	prev := quietRecord()
	prev.MA50 = model.Float(91.00)
	prev.MA200 = model.Float(90.00)

	cur := quietRecord()
	cur.MA50 = model.Float(89.50)
	cur.MA200 = model.Float(90.00)

	alerts := d.Detect(cur, &prev)
	if !hasType(alerts, model.AlertDeathCross) {
		t.Error("expected DEATH_CROSS on MA50 crossing below MA200")
	}
	if hasType(alerts, model.AlertGoldenCross) {
		t.Error("GOLDEN_CROSS must not fire alongside DEATH_CROSS")
	}
}

func TestDetect_CrossIsEdgeTriggered(t *testing.T) {
	d := New("WMT", DefaultThresholds())

	// MA50 already above MA200 yesterday: no fresh cross.
	prev := quietRecord()
	prev.MA50 = model.Float(92.00)
	prev.MA200 = model.Float(90.00)

	cur := quietRecord()
	cur.MA50 = model.Float(93.00)
	cur.MA200 = model.Float(90.00)

	if hasType(d.Detect(cur, &prev), model.AlertGoldenCross) {
		t.Error("persisting state must not re-fire GOLDEN_CROSS")
	}
	if hasType(d.Detect(cur, nil), model.AlertGoldenCross) {
		t.Error("missing previous record must not fire GOLDEN_CROSS")
	}
}

func TestDetect_Breakout(t *testing.T) {
	d := New("WMT", DefaultThresholds())

	prev := quietRecord()
	prev.MA200 = model.Float(100.00)
	prev.CurrentPrice = 99.50 // at or below MA200 yesterday

	cur := quietRecord()
	cur.MA50 = model.Float(100.50)
	cur.MA200 = model.Float(100.00)
	cur.CurrentPrice = 102.00

	if !hasType(d.Detect(cur, &prev), model.AlertBreakout) {
		t.Error("expected BREAKOUT when price crosses above MA200")
	}

	// Already above yesterday: no edge.
	prev.CurrentPrice = 101.00
	if hasType(d.Detect(cur, &prev), model.AlertBreakout) {
		t.Error("BREAKOUT must be edge-triggered")
	}
}

func TestDetect_52WeekMutuallyExclusive(t *testing.T) {
	d := New("WMT", DefaultThresholds())

	cur := quietRecord()
	cur.PctFrom52WHigh = model.Float(-0.5)
	cur.PctFrom52WLow = model.Float(3) // would also satisfy the low check
	cur.FiftyTwoWeekHigh = model.Float(110)
	cur.FiftyTwoWeekLow = model.Float(95)

	alerts := d.Detect(cur, nil)
	if !hasType(alerts, model.AlertNear52WHigh) {
		t.Error("expected NEAR_52W_HIGH within 1% of the high")
	}
	if hasType(alerts, model.AlertNear52WLow) {
		t.Error("low check must be skipped when the high check fires")
	}

	cur.PctFrom52WHigh = model.Float(-20)
	alerts = d.Detect(cur, nil)
	if !hasType(alerts, model.AlertNear52WLow) {
		t.Error("expected NEAR_52W_LOW within 5% of the low")
	}
}

func TestDetect_GapDown(t *testing.T) {
	d := New("WMT", DefaultThresholds())

	prev := quietRecord()
	prev.Close = 100

	cur := quietRecord()
	cur.Open = 98.5

	alerts := d.Detect(cur, &prev)
	if !hasType(alerts, model.AlertGapDown) {
		t.Error("expected GAP_DOWN on -1.5% open gap")
	}
	if hasType(alerts, model.AlertGapUp) {
		t.Error("GAP_UP must not fire on a down gap")
	}

	// Below the 1% threshold: silent.
	cur.Open = 99.5
	if hasType(d.Detect(cur, &prev), model.AlertGapDown) {
		t.Error("gap below threshold must not fire")
	}
}

func TestDetect_MultipleSimultaneous(t *testing.T) {
	d := New("WMT", DefaultThresholds())

	prev := quietRecord()
	prev.Close = 100

	cur := quietRecord()
	cur.PriceChangePct = 3.0
	cur.VolumeRatio = model.Float(2.0)
	cur.RSI14 = model.Float(72)
	cur.Open = 101.5

	alerts := d.Detect(cur, &prev)
	for _, typ := range []model.AlertType{
		model.AlertPriceMovement, model.AlertVolumeSpike,
		model.AlertRSIOverbought, model.AlertGapUp,
	} {
		if !hasType(alerts, typ) {
			t.Errorf("expected %s among simultaneous alerts", typ)
		}
	}
}
