package workers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/megalai/backend/internal/notify"
	"github.com/megalai/backend/internal/queue"
)

type EmailWorker struct {
	notifier notify.Notifier
}

func NewEmailWorker(notifier notify.Notifier) *EmailWorker {
	return &EmailWorker{notifier: notifier}
}

func (w *EmailWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload queue.EmailSendPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal email payload: %w", err)
	}
	if err := w.notifier.Send(ctx, payload.To, payload.Subject, payload.Body); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
