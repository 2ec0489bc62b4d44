package queue

import (
	"context"
	"log/slog"

	"github.com/getsentry/sentry-go"
	"github.com/guru-bharadwaj20/Team-Dashboard/pkg/config"
	"github.com/hibiken/asynq"
)

// Queue names. Maintenance work such as inbox pruning never competes with default traffic.
const (
	QueueDefault     = "default"
	QueueMaintenance = "maintenance"
)

func redisOpt(cfg *config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
	}
}

func NewServer(cfg *config.RedisConfig, concurrency int, logger *slog.Logger) *asynq.Server {
	if concurrency <= 0 {
		concurrency = 5
	}

	return asynq.NewServer(
		redisOpt(cfg),
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				QueueDefault:     3,
				QueueMaintenance: 1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Error("task failed", "type", task.Type(), "error", err)
				if hub := sentry.CurrentHub(); hub.Client() != nil {
					hub.CaptureException(err)
				}
			}),
		},
	)
}

// NewScheduler returns a scheduler for periodic tasks registered by the worker.
func NewScheduler(cfg *config.RedisConfig) *asynq.Scheduler {
	return asynq.NewScheduler(redisOpt(cfg), &asynq.SchedulerOpts{})
}
