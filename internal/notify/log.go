package notify

import (
	"context"
	"log/slog"

	"github.com/digkill/cinexa/internal/service"
)

// Log records checkout events in the service log when no chat is configured.
type Log struct {
	log *slog.Logger
}

func NewLog(log *slog.Logger) *Log {
	return &Log{log: log}
}

func (l *Log) NotifyCheckout(_ context.Context, event service.CheckoutEvent) error {
	l.log.Info("checkout awaiting reconciliation",
		"account_id", event.Account.ID,
		"plan", event.Plan.ID,
		"method", event.Method.ID,
		"at", event.At,
	)
	return nil
}
