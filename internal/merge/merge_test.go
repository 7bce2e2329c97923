package merge

import (
	"errors"
	"testing"
	"time"

	"StockSentry/internal/model"
)

var day = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func sample() model.DayRecord {
	return model.DayRecord{
		Date:          day,
		Open:          100,
		High:          105,
		Low:           98,
		Close:         103,
		Volume:        2000000,
		CurrentPrice:  103,
		PreviousClose: 101,
		PriceChange:   2,
		MA50:          model.Float(99.5),
	}
}

func TestMerge_FreshDay(t *testing.T) {
	now := day.Add(10 * time.Hour)
	merged, err := Merge(nil, sample(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if merged.UpdateCount != 1 {
		t.Errorf("fresh merge should set update count 1, got %d", merged.UpdateCount)
	}
	if !merged.IsLiveData {
		t.Error("fresh merge should mark record as live")
	}
	if merged.IntradayHigh != 105 || merged.IntradayLow != 98 {
		t.Errorf("intraday range should seed from sample: got %v-%v", merged.IntradayLow, merged.IntradayHigh)
	}
	if !merged.LastUpdateTime.Equal(now) {
		t.Errorf("last update time should be %v, got %v", now, merged.LastUpdateTime)
	}
}

func TestMerge_MonotonicRange(t *testing.T) {
	now := day.Add(10 * time.Hour)
	merged, err := Merge(nil, sample(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A later fetch with a narrower range must not shrink what was seen.
	narrow := sample()
	narrow.High = 102
	narrow.Low = 100

	for i := 0; i < 3; i++ {
		merged, err = Merge(&merged, narrow, now.Add(time.Duration(i)*time.Minute))
		if err != nil {
			t.Fatalf("merge %d: %v", i, err)
		}
		if merged.IntradayHigh < 105 {
			t.Errorf("merge %d: intraday high shrank to %v", i, merged.IntradayHigh)
		}
		if merged.IntradayLow > 98 {
			t.Errorf("merge %d: intraday low shrank to %v", i, merged.IntradayLow)
		}
	}

	// A wider range widens it.
	wide := sample()
	wide.High = 107
	wide.Low = 97
	merged, err = Merge(&merged, wide, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if merged.IntradayHigh != 107 || merged.IntradayLow != 97 {
		t.Errorf("range should widen to 97-107, got %v-%v", merged.IntradayLow, merged.IntradayHigh)
	}
	if merged.High != 107 || merged.Low != 97 {
		t.Errorf("high/low should widen to 97-107, got %v-%v", merged.Low, merged.High)
	}
}

func TestMerge_UpdateCountPerInvocation(t *testing.T) {
	now := day.Add(10 * time.Hour)
	s := sample()

	merged, err := Merge(nil, s, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Identical input still counts: the counter tracks invocations.
	const n = 5
	for i := 0; i < n; i++ {
		merged, err = Merge(&merged, s, now)
		if err != nil {
			t.Fatalf("merge %d: %v", i, err)
		}
	}
	if merged.UpdateCount != n+1 {
		t.Errorf("expected update count %d after %d merges, got %d", n+1, n+1, merged.UpdateCount)
	}
}

func TestMerge_CoalesceIndicators(t *testing.T) {
	now := day.Add(10 * time.Hour)
	first := sample()
	first.MA200 = model.Float(95.0)
	first.RSI14 = model.Float(61.2)

	merged, err := Merge(nil, first, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Second fetch lost the indicators; stored values must survive.
	second := sample()
	second.MA50 = nil
	second.MA200 = nil
	second.RSI14 = nil

	merged, err = Merge(&merged, second, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if merged.MA200 == nil || *merged.MA200 != 95.0 {
		t.Errorf("MA200 regressed: %v", merged.MA200)
	}
	if merged.RSI14 == nil || *merged.RSI14 != 61.2 {
		t.Errorf("RSI regressed: %v", merged.RSI14)
	}

	// A freshly computed value wins over the stored one.
	third := sample()
	third.MA200 = model.Float(96.5)
	merged, err = Merge(&merged, third, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if merged.MA200 == nil || *merged.MA200 != 96.5 {
		t.Errorf("fresh MA200 should win, got %v", merged.MA200)
	}
}

func TestMerge_OpenIsLastFetchWins(t *testing.T) {
	now := day.Add(10 * time.Hour)
	merged, err := Merge(nil, sample(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	corrected := sample()
	corrected.Open = 100.25
	merged, err = Merge(&merged, corrected, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if merged.Open != 100.25 {
		t.Errorf("open should take the corrected value, got %v", merged.Open)
	}
}

func TestMerge_DateMismatch(t *testing.T) {
	now := day.Add(10 * time.Hour)
	merged, err := Merge(nil, sample(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tomorrow := sample()
	tomorrow.Date = day.AddDate(0, 0, 1)
	if _, err := Merge(&merged, tomorrow, now); !errors.Is(err, ErrDateMismatch) {
		t.Errorf("expected ErrDateMismatch, got %v", err)
	}
}
