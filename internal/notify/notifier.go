// Package notify abstracts outbound email. Delivery is a collaborator
// behind a one-method contract; the default implementation only logs.
package notify

import (
	"context"
	"log/slog"
)

type Notifier interface {
	Send(ctx context.Context, to []string, subject, body string) error
}

// LogNotifier writes the message to the structured log instead of
// delivering it.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Send(_ context.Context, to []string, subject, body string) error {
	slog.Info("sending email", "to", to, "subject", subject)
	slog.Debug("email body", "body", body)
	return nil
}
