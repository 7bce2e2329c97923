// Command backfill performs the one-time historical seed: it downloads the
// full daily history for the configured symbol, derives the moving averages
// and previous-close chain, and bulk-loads the records into the store with
// update_count=0 and is_live_data=false.
package main

import (
	"bufio"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"StockSentry/internal/collector"
	"StockSentry/internal/config"
	"StockSentry/internal/model"
	"StockSentry/internal/store"
)

// maxHistoryDays is large enough to request the provider's full history.
const maxHistoryDays = 20000

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	yes := flag.Bool("yes", false, "skip the confirmation prompt")
	flag.Parse()

	_ = godotenv.Load()

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}

	if !*yes && !confirm() {
		log.Println("[INFO] operation cancelled")
		return
	}

	fetcher := collector.NewYahooFetcher(cfg.Proxy)
	log.Printf("[INFO] fetching full history for %s...", cfg.Symbol)
	bars, err := fetcher.FetchDailyBars(cfg.Symbol, maxHistoryDays)
	if err != nil {
		log.Fatalf("[FATAL] fetch history: %v", err)
	}
	log.Printf("[INFO] downloaded %d days of history (%s to %s)",
		len(bars), model.DateKey(bars[0].Date), model.DateKey(bars[len(bars)-1].Date))

	recs := collector.BuildHistoricalRecords(bars, time.Now())

	st, err := store.NewSQLiteStore(cfg.Database.SQLitePath)
	if err != nil {
		log.Fatalf("[FATAL] open store: %v", err)
	}
	defer st.Close()

	if err := st.BulkInsert(recs); err != nil {
		log.Fatalf("[FATAL] bulk insert: %v", err)
	}

	withMA200 := 0
	for _, r := range recs {
		if r.MA200 != nil {
			withMA200++
		}
	}
	log.Printf("[INFO] loaded %d records (%d with MA200)", len(recs), withMA200)
	log.Println("[INFO] historical load completed successfully")
}

func confirm() bool {
	log.Println("[WARN] this will overwrite any existing records for the loaded dates")
	os.Stdout.WriteString("Continue? (yes/no): ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(strings.ToLower(line)) == "yes"
}
