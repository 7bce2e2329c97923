package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Symbol string `yaml:"symbol"`
	SMTP   struct {
		Server     string   `yaml:"server"`
		Port       int      `yaml:"port"`
		Sender     string   `yaml:"sender"`
		Password   string   `yaml:"password"`
		Recipients []string `yaml:"recipients"`
	} `yaml:"smtp"`
	Alerts struct {
		PriceChangePct   float64 `yaml:"price_change_pct"`
		VolumeSpikeRatio float64 `yaml:"volume_spike_ratio"`
		RSIOversold      float64 `yaml:"rsi_oversold"`
		RSIOverbought    float64 `yaml:"rsi_overbought"`
	} `yaml:"alerts"`
	Schedule struct {
		UpdateCron string `yaml:"update_cron"`
		AlertCron  string `yaml:"alert_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	History struct {
		File string `yaml:"file"`
	} `yaml:"history"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("STOCK_SYMBOL"); v != "" {
		cfg.Symbol = v
	}
	if v := os.Getenv("SMTP_SERVER"); strings.TrimSpace(v) != "" {
		cfg.SMTP.Server = v
	}
	if v := os.Getenv("SMTP_PORT"); strings.TrimSpace(v) != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.SMTP.Port = port
		}
	}
	if v := os.Getenv("SENDER_EMAIL"); v != "" {
		cfg.SMTP.Sender = v
	}
	if v := os.Getenv("SENDER_PASSWORD"); v != "" {
		cfg.SMTP.Password = v
	}
	if v := os.Getenv("RECIPIENT_EMAILS"); v != "" {
		cfg.SMTP.Recipients = splitList(v)
	}
	overrideFloat("PRICE_CHANGE_THRESHOLD", &cfg.Alerts.PriceChangePct)
	overrideFloat("VOLUME_SPIKE_THRESHOLD", &cfg.Alerts.VolumeSpikeRatio)
	overrideFloat("RSI_OVERSOLD", &cfg.Alerts.RSIOversold)
	overrideFloat("RSI_OVERBOUGHT", &cfg.Alerts.RSIOverbought)
	if v := os.Getenv("CRON_UPDATE"); v != "" {
		cfg.Schedule.UpdateCron = v
	}
	if v := os.Getenv("CRON_ALERT"); v != "" {
		cfg.Schedule.AlertCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Symbol == "" {
		cfg.Symbol = "WMT"
	}
	if cfg.SMTP.Server == "" {
		cfg.SMTP.Server = "smtp.gmail.com"
	}
	if cfg.SMTP.Port == 0 {
		cfg.SMTP.Port = 587
	}
	if cfg.Alerts.PriceChangePct == 0 {
		cfg.Alerts.PriceChangePct = 2.0
	}
	if cfg.Alerts.VolumeSpikeRatio == 0 {
		cfg.Alerts.VolumeSpikeRatio = 1.5
	}
	if cfg.Alerts.RSIOversold == 0 {
		cfg.Alerts.RSIOversold = 30
	}
	if cfg.Alerts.RSIOverbought == 0 {
		cfg.Alerts.RSIOverbought = 70
	}
	if cfg.Schedule.UpdateCron == "" {
		// Every 30 minutes during US market hours, weekdays (UTC).
		cfg.Schedule.UpdateCron = "0 */30 13-21 * * 1-5"
	}
	if cfg.Schedule.AlertCron == "" {
		cfg.Schedule.AlertCron = "0 5 13-21 * * 1-5"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/stock_sentry.db"
	}
	if cfg.History.File == "" {
		cfg.History.File = "data/alert_history.json"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.SMTP.Sender == "" {
		return fmt.Errorf("smtp.sender is required")
	}
	if c.SMTP.Password == "" {
		return fmt.Errorf("smtp.password is required")
	}
	if len(c.SMTP.Recipients) == 0 {
		return fmt.Errorf("smtp.recipients is required")
	}
	if c.Alerts.RSIOversold >= c.Alerts.RSIOverbought {
		return fmt.Errorf("alerts.rsi_oversold must be below alerts.rsi_overbought")
	}
	return nil
}

func overrideFloat(env string, dst *float64) {
	v := strings.TrimSpace(os.Getenv(env))
	if v == "" {
		return
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		*dst = f
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
