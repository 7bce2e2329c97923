package notifier

import (
	"context"
	"fmt"
	"log"

	"github.com/cenkalti/backoff/v4"
	"gopkg.in/gomail.v2"

	"StockSentry/internal/detector"
	"StockSentry/internal/model"
)

// Sender delivers rendered alerts. A failed delivery must be reported so the
// caller can skip recording the alerts and retry on the next run.
type Sender interface {
	Send(ctx context.Context, alerts []model.Alert, rec model.DayRecord) error
}

// Mailer sends alert emails over SMTP.
type Mailer struct {
	Symbol     string
	Recipients []string
	Thresholds detector.Thresholds
	dialer     *gomail.Dialer
	from       string
}

// NewMailer creates a Mailer for the given SMTP account.
func NewMailer(host string, port int, sender, password string, recipients []string, symbol string, th detector.Thresholds) *Mailer {
	return &Mailer{
		Symbol:     symbol,
		Recipients: recipients,
		Thresholds: th,
		dialer:     gomail.NewDialer(host, port, sender, password),
		from:       sender,
	}
}

// Send renders the alerts as HTML with a plain-text alternative and delivers
// them, retrying transient failures with exponential backoff.
func (m *Mailer) Send(ctx context.Context, alerts []model.Alert, rec model.DayRecord) error {
	if len(alerts) == 0 {
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.Recipients...)
	msg.SetHeader("Subject", fmt.Sprintf("%s Stock Alert: %s", m.Symbol, alerts[0].Title))
	msg.SetBody("text/plain", FormatText(m.Symbol, alerts, rec))
	msg.AddAlternative("text/html", FormatHTML(m.Symbol, alerts, rec, m.Thresholds))

	op := func() error {
		if err := m.dialer.DialAndSend(msg); err != nil {
			log.Printf("[WARN] smtp send failed: %v", err)
			return err
		}
		return nil
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return fmt.Errorf("send alert mail: %w", err)
	}

	log.Printf("[INFO] alert mail sent to %d recipients (%d alerts)", len(m.Recipients), len(alerts))
	return nil
}
