package notifier

import (
	"fmt"
	"strings"
	"time"

	"StockSentry/internal/detector"
	"StockSentry/internal/model"
)

func bySeverity(alerts []model.Alert, sev model.Severity) []model.Alert {
	var out []model.Alert
	for _, a := range alerts {
		if a.Severity == sev {
			out = append(out, a)
		}
	}
	return out
}

func optional(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("$%.2f", *v)
}

// FormatText renders the plain-text alternative part.
func FormatText(symbol string, alerts []model.Alert, rec model.DayRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s STOCK ALERTS\n%s\n\n", strings.ToUpper(symbol), time.Now().Format("January 2, 2006 at 3:04 PM"))
	fmt.Fprintf(&b, "Current Price: $%.2f\n", rec.CurrentPrice)
	fmt.Fprintf(&b, "Change: %+.2f (%+.2f%%)\n\nALERTS:\n", rec.PriceChange, rec.PriceChangePct)
	for _, a := range alerts {
		fmt.Fprintf(&b, "\n%s\n%s\n", a.Title, a.Message)
	}
	return b.String()
}

// FormatHTML renders the alert email body: price summary, alerts grouped by
// severity, a key-metrics table, and the configured thresholds in the footer.
func FormatHTML(symbol string, alerts []model.Alert, rec model.DayRecord, th detector.Thresholds) string {
	var b strings.Builder

	changeColor := "green"
	if rec.PriceChange < 0 {
		changeColor = "red"
	}

	b.WriteString(`<html><head><style>
		body { font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px; }
		.container { background-color: white; border-radius: 10px; padding: 20px; max-width: 600px; margin: 0 auto; }
		.header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 20px; border-radius: 10px 10px 0 0; margin: -20px -20px 20px -20px; }
		.alert-high { border-left: 4px solid #dc3545; padding: 10px; margin: 10px 0; background-color: #fff5f5; }
		.alert-medium { border-left: 4px solid #ffc107; padding: 10px; margin: 10px 0; background-color: #fffdf5; }
		.metric { display: inline-block; margin: 10px 20px 10px 0; }
		.metric-label { color: #666; font-size: 12px; }
		.metric-value { font-size: 18px; font-weight: bold; color: #333; }
		td { padding: 8px; border-bottom: 1px solid #ddd; }
		.footer { margin-top: 30px; padding-top: 20px; border-top: 1px solid #ddd; font-size: 12px; color: #666; }
	</style></head><body><div class="container">`)

	fmt.Fprintf(&b, `<div class="header"><div style="font-size: 24px; font-weight: bold;">%s Stock Alerts</div>
		<div style="font-size: 14px; margin-top: 10px;">%s</div></div>`,
		symbol, time.Now().Format("January 2, 2006 at 3:04 PM"))

	fmt.Fprintf(&b, `<div>
		<div class="metric"><div class="metric-label">Current Price</div><div class="metric-value">$%.2f</div></div>
		<div class="metric"><div class="metric-label">Change</div><div class="metric-value" style="color: %s;">%+.2f (%+.2f%%)</div></div>
		<div class="metric"><div class="metric-label">Volume</div><div class="metric-value">%d</div></div>
		</div>`,
		rec.CurrentPrice, changeColor, rec.PriceChange, rec.PriceChangePct, rec.Volume)

	if high := bySeverity(alerts, model.SeverityHigh); len(high) > 0 {
		b.WriteString("<h3>High Priority Alerts</h3>")
		for _, a := range high {
			fmt.Fprintf(&b, `<div class="alert-high"><strong>%s</strong><br>%s</div>`, a.Title, a.Message)
		}
	}
	if medium := bySeverity(alerts, model.SeverityMedium); len(medium) > 0 {
		b.WriteString("<h3>Medium Priority Alerts</h3>")
		for _, a := range medium {
			fmt.Fprintf(&b, `<div class="alert-medium"><strong>%s</strong><br>%s</div>`, a.Title, a.Message)
		}
	}

	rsi := "N/A"
	if rec.RSI14 != nil {
		rsi = fmt.Sprintf("%.2f", *rec.RSI14)
	}
	volumeRatio := "N/A"
	if rec.VolumeRatio != nil {
		volumeRatio = fmt.Sprintf("%.2fx", *rec.VolumeRatio)
	}
	fiftyTwoWeek := "N/A"
	if rec.FiftyTwoWeekLow != nil && rec.FiftyTwoWeekHigh != nil {
		fiftyTwoWeek = fmt.Sprintf("$%.2f - $%.2f", *rec.FiftyTwoWeekLow, *rec.FiftyTwoWeekHigh)
	}

	b.WriteString(`<h3>Key Metrics</h3><table style="width: 100%; border-collapse: collapse;">`)
	fmt.Fprintf(&b, `<tr><td><strong>RSI (14)</strong></td><td style="text-align: right;">%s</td></tr>`, rsi)
	fmt.Fprintf(&b, `<tr><td><strong>MA50</strong></td><td style="text-align: right;">%s</td></tr>`, optional(rec.MA50))
	fmt.Fprintf(&b, `<tr><td><strong>MA200</strong></td><td style="text-align: right;">%s</td></tr>`, optional(rec.MA200))
	fmt.Fprintf(&b, `<tr><td><strong>52-Week Range</strong></td><td style="text-align: right;">%s</td></tr>`, fiftyTwoWeek)
	fmt.Fprintf(&b, `<tr><td><strong>Volume Ratio</strong></td><td style="text-align: right;">%s</td></tr>`, volumeRatio)
	if rec.MarketCapBillions > 0 {
		fmt.Fprintf(&b, `<tr><td><strong>Market Cap</strong></td><td style="text-align: right;">$%.3fB</td></tr>`, rec.MarketCapBillions)
	}
	b.WriteString(`</table>`)

	fmt.Fprintf(&b, `<div class="footer">
		<p>This is an automated alert from your stock monitoring system.</p>
		<p>Alert thresholds: Price change &ge;%.1f%% | Volume &ge;%.1fx | RSI &le;%.0f or &ge;%.0f</p>
		</div></div></body></html>`,
		th.PriceChangePct, th.VolumeSpikeRatio, th.RSIOversold, th.RSIOverbought)

	return b.String()
}
