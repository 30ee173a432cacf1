package worker

// notify_worker.go
// Processes movement-notification jobs from QueueNotify: every check-in or
// check-out produces one email to the configured operations address.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/amirda88/gas-cylinder-tracker/internal/infra"
	"github.com/amirda88/gas-cylinder-tracker/internal/service"

	"github.com/rs/zerolog/log"
)

// NotifyWorker sends movement notifications via SMTP.
type NotifyWorker struct {
	mailer *infra.Mailer
	to     string
}

// NewNotifyWorker creates a NotifyWorker. An empty recipient disables sending.
func NewNotifyWorker(mailer *infra.Mailer, to string) *NotifyWorker {
	return &NotifyWorker{mailer: mailer, to: to}
}

// Process sends the notification email for one movement.
func (w *NotifyWorker) Process(_ context.Context, raw json.RawMessage) error {
	var n service.MovementNotification
	if err := json.Unmarshal(raw, &n); err != nil {
		log.Error().Err(err).Msg("notify_worker: invalid payload")
		return nil // malformed payloads are not retryable
	}
	if w.to == "" {
		log.Debug().Str("barcode", n.Barcode).Msg("notify_worker: no recipient configured — skipping")
		return nil
	}

	subject := fmt.Sprintf("Cylinder %s checked %s", n.Barcode, verb(n.Action))
	body := fmt.Sprintf(
		"Cylinder %s was checked %s by %s at %s.\nNote: %s\n",
		n.Barcode, verb(n.Action), n.Actor, n.At.Format("2006-01-02 15:04"), n.Note,
	)

	if err := w.mailer.Send(w.to, subject, body); err != nil {
		log.Error().Err(err).Str("barcode", n.Barcode).Msg("notify_worker: failed to send email")
		return err
	}
	log.Info().Str("barcode", n.Barcode).Str("action", n.Action).Msg("notify_worker: notification sent")
	return nil
}

func verb(action string) string {
	if action == "IN" {
		return "in"
	}
	return "out"
}
