package collector

import (
	"log"
	"sync"
	"time"

	"StockSentry/internal/model"
)

var (
	easternOnce sync.Once
	eastern     *time.Location
)

func easternLocation() *time.Location {
	easternOnce.Do(func() {
		loc, err := time.LoadLocation("America/New_York")
		if err != nil {
			log.Printf("[WARN] load US/Eastern timezone: %v, falling back to UTC", err)
			loc = time.UTC
		}
		eastern = loc
	})
	return eastern
}

// MarketStatusAt classifies a point in time against the regular US session
// (9:30-16:00 ET, Monday-Friday).
func MarketStatusAt(t time.Time) model.MarketStatus {
	et := t.In(easternLocation())

	if wd := et.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return model.StatusWeekend
	}

	minutes := et.Hour()*60 + et.Minute()
	switch {
	case minutes < 9*60+30:
		return model.StatusPreMarket
	case minutes >= 16*60:
		return model.StatusAfterHours
	default:
		return model.StatusMarketOpen
	}
}
