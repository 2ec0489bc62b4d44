package tasks

import (
	"encoding/json"
	"time"

	"github.com/guru-bharadwaj20/Team-Dashboard/pkg/queue"
	"github.com/hibiken/asynq"
)

// Task type names
const (
	TypeNotificationsPrune = "notifications:prune"
)

// PrunePayload carries the retention window; zero means the worker's configured default.
type PrunePayload struct {
	RetentionDays int `json:"retention_days,omitempty"`
}

// NewPruneTask builds the periodic inbox cleanup task. It runs on the maintenance queue
// and is not retried aggressively since the next tick covers any miss.
func NewPruneTask(retentionDays int) (*asynq.Task, error) {
	data, err := json.Marshal(PrunePayload{RetentionDays: retentionDays})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeNotificationsPrune, data,
		asynq.Queue(queue.QueueMaintenance),
		asynq.MaxRetry(2),
		asynq.Timeout(5*time.Minute),
	), nil
}
