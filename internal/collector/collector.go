package collector

import (
	"fmt"
	"log"
	"time"

	"StockSentry/internal/calculator"
	"StockSentry/internal/model"
)

// lookbackDays covers the longest indicator window (252-bar 52-week range,
// 200-day moving average) with headroom for holidays.
const lookbackDays = 300

// Collector fetches market data and enriches the latest observation into a
// day-record sample carrying every computable indicator. Indicators that the
// available history cannot support are left absent, not errored.
type Collector struct {
	Fetcher Fetcher
	Symbol  string
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, symbol string) *Collector {
	return &Collector{Fetcher: fetcher, Symbol: symbol}
}

// Snapshot fetches the daily series and live quote and builds the enriched
// sample for the latest trading day.
func (c *Collector) Snapshot(now time.Time) (*model.DayRecord, error) {
	bars, err := c.Fetcher.FetchDailyBars(c.Symbol, lookbackDays)
	if err != nil {
		return nil, fmt.Errorf("fetch daily bars: %w", err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("no daily bars for %s", c.Symbol)
	}
	quote, err := c.Fetcher.FetchQuote(c.Symbol)
	if err != nil {
		return nil, fmt.Errorf("fetch quote: %w", err)
	}

	latest := bars[len(bars)-1]
	previousClose := quote.PreviousClose
	if len(bars) >= 2 {
		previousClose = bars[len(bars)-2].Close
	}

	priceChange := quote.CurrentPrice - previousClose
	priceChangePct := 0.0
	if previousClose > 0 {
		priceChangePct = priceChange / previousClose * 100
	}

	rec := &model.DayRecord{
		Date:   latest.Date,
		Open:   calculator.Round2(latest.Open),
		High:   calculator.Round2(latest.High),
		Low:    calculator.Round2(latest.Low),
		Close:  calculator.Round2(latest.Close),
		Volume: latest.Volume,

		CurrentPrice:   calculator.Round2(quote.CurrentPrice),
		PreviousClose:  calculator.Round2(previousClose),
		PriceChange:    calculator.Round2(priceChange),
		PriceChangePct: priceChangePct,

		IntradayHigh: calculator.Round2(latest.High),
		IntradayLow:  calculator.Round2(latest.Low),

		MarketCapBillions: quote.MarketCapBillions,
		MarketStatus:      MarketStatusAt(now),
		LastUpdateTime:    now,
	}

	c.enrich(rec, bars, quote.CurrentPrice)
	return rec, nil
}

func (c *Collector) enrich(rec *model.DayRecord, bars []model.PriceBar, price float64) {
	if ma, err := calculator.CalculateMA50(bars); err != nil {
		log.Printf("[WARN] MA50 unavailable: %v", err)
	} else {
		rec.MA50 = model.Float(ma)
	}

	if ma, err := calculator.CalculateMA200(bars); err != nil {
		log.Printf("[WARN] MA200 unavailable: %v", err)
	} else {
		rec.MA200 = model.Float(ma)
	}

	if rsi, err := calculator.CalculateRSI(bars, 14); err != nil {
		log.Printf("[WARN] RSI unavailable: %v", err)
	} else {
		rec.RSI14 = model.Float(rsi)
	}

	if high, low, err := calculator.Calculate52WeekRange(bars); err != nil {
		log.Printf("[WARN] 52-week range unavailable: %v", err)
	} else {
		rec.FiftyTwoWeekHigh = model.Float(calculator.Round2(high))
		rec.FiftyTwoWeekLow = model.Float(calculator.Round2(low))

		if pct, err := calculator.PctFromExtreme(price, high); err == nil {
			rec.PctFrom52WHigh = model.Float(pct)
		}
		if pct, err := calculator.PctFromExtreme(price, low); err == nil {
			rec.PctFrom52WLow = model.Float(pct)
		}
	}

	if ma, err := calculator.CalculateVolumeMA(bars, 20); err != nil {
		log.Printf("[WARN] volume MA unavailable: %v", err)
	} else {
		rec.VolumeMA20 = model.Float(ma)
	}
	rec.VolumeRatio = model.Float(calculator.VolumeRatio(bars, 20))
}
