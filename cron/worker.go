package cron

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cardioconsult/config"
	"cardioconsult/services/notification"
	"cardioconsult/services/tasks"
	"cardioconsult/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// QueueRedisOpt is the asynq connection shared by the client and the worker.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitNotificationWorker runs the Telegram delivery worker in background.
// The returned server is stopped by the caller on shutdown.
func InitNotificationWorker(ctx context.Context, sender notification.Sender) *asynq.Server {
	logger := utils.GetLogger()

	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeTelegramSend, HandleTelegramTask(sender))

	go monitorRedisConnection(ctx)

	go func() {
		logger.Info("[NotificationWorker] starting async worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Error("[NotificationWorker] failed to start worker",
				zap.Int("attempt", attempts),
				zap.Int("maxAttempts", maxAttempts),
				zap.Error(err))
			if attempts == maxAttempts {
				logger.Fatal("[NotificationWorker] max retry attempts reached")
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Duration(attempts*2) * time.Second):
			}
		}
	}()
	return srv
}

// HandleTelegramTask delivers one queued message. Malformed payloads are not retried.
func HandleTelegramTask(sender notification.Sender) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		p, err := tasks.ParseTelegramTask(task)
		if err != nil {
			logger.Error("[NotificationHandler] invalid payload", zap.Error(err))
			return fmt.Errorf("decode %s payload: %v: %w", task.Type(), err, asynq.SkipRetry)
		}
		if p.ChatID == "" {
			return fmt.Errorf("%s payload has no chat id: %w", task.Type(), asynq.SkipRetry)
		}

		if err := sender.SendMessage(ctx, p.ChatID, p.Text); err != nil {
			if errors.Is(err, notification.ErrTelegramNotConfigured) {
				logger.Warn("[NotificationHandler] telegram not configured, dropping message",
					zap.String("chatID", p.ChatID))
				return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
			}
			logger.Error("[NotificationHandler] failed to send message",
				zap.String("chatID", p.ChatID),
				zap.Error(err))
			return err
		}

		logger.Debug("[NotificationHandler] message delivered", zap.String("chatID", p.ChatID))
		return nil
	}
}

// monitorRedisConnection pings the queue database to surface outages at runtime.
func monitorRedisConnection(ctx context.Context) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer client.Close()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil {
				utils.GetLogger().Warn("[NotificationWorker] redis connection lost", zap.Error(err))
			}
		}
	}
}
