package tasks

import (
	"encoding/json"
	"time"

	"cardioconsult/models"

	"github.com/hibiken/asynq"
)

const TypeTelegramSend = "notification:telegram"

func NewTelegramTask(payload models.NotificationPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeTelegramSend, b)
	opts := []asynq.Option{
		asynq.MaxRetry(5),
		asynq.Timeout(30 * time.Second),
	}

	return task, opts, nil
}

func ParseTelegramTask(task *asynq.Task) (models.NotificationPayload, error) {
	var p models.NotificationPayload
	err := json.Unmarshal(task.Payload(), &p)
	return p, err
}
