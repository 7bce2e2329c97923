package model

// AlertType identifies an alert rule. It is the deduplication key component,
// so values must stay stable across runs.
type AlertType string

const (
	AlertPriceMovement AlertType = "PRICE_MOVEMENT"
	AlertVolumeSpike   AlertType = "VOLUME_SPIKE"
	AlertRSIOversold   AlertType = "RSI_OVERSOLD"
	AlertRSIOverbought AlertType = "RSI_OVERBOUGHT"
	AlertGoldenCross   AlertType = "GOLDEN_CROSS"
	AlertDeathCross    AlertType = "DEATH_CROSS"
	AlertBreakout      AlertType = "BREAKOUT"
	AlertNear52WHigh   AlertType = "NEAR_52W_HIGH"
	AlertNear52WLow    AlertType = "NEAR_52W_LOW"
	AlertGapUp         AlertType = "GAP_UP"
	AlertGapDown       AlertType = "GAP_DOWN"
)

// Severity ranks alerts for presentation grouping.
type Severity string

const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
)

// Alert is a candidate notification produced by the detector. Ephemeral:
// rebuilt on every evaluation, never persisted directly.
type Alert struct {
	Type     AlertType
	Severity Severity
	Title    string
	Message  string
}
