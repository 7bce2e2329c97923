package collector

import "StockSentry/internal/model"

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	// FetchDailyBars returns up to days daily bars in ascending date order.
	FetchDailyBars(symbol string, days int) ([]model.PriceBar, error)
	// FetchQuote returns the live price, previous close and market cap.
	FetchQuote(symbol string) (*model.Quote, error)
	Name() string
}
