package notification

import (
	"context"
	"fmt"

	"cardioconsult/models"
	"cardioconsult/services/tasks"

	"github.com/hibiken/asynq"
)

// Enqueuer is satisfied by *asynq.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueuedSender hands messages to the notification worker instead of
// calling Telegram inline.
type QueuedSender struct {
	client Enqueuer
}

func NewQueuedSender(client Enqueuer) *QueuedSender {
	return &QueuedSender{client: client}
}

func (q *QueuedSender) SendMessage(ctx context.Context, chatID, text string) error {
	if chatID == "" {
		return ErrNoChatID
	}
	task, opts, err := tasks.NewTelegramTask(models.NotificationPayload{ChatID: chatID, Text: text})
	if err != nil {
		return fmt.Errorf("build notification task: %w", err)
	}
	if _, err := q.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("enqueue notification task: %w", err)
	}
	return nil
}
