package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

// Pruner removes old read notifications.
type Pruner interface {
	Prune(ctx context.Context, olderThan time.Time) (int64, error)
}

type Handler struct {
	inbox     Pruner
	retention time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

// NewHandler wires the task handlers. retention is used when a task does not carry its own
// window.
func NewHandler(inbox Pruner, retention time.Duration, logger *slog.Logger) *Handler {
	return &Handler{
		inbox:     inbox,
		retention: retention,
		logger:    logger,
		now:       time.Now,
	}
}

func (h *Handler) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeNotificationsPrune, h.HandlePrune)
}

func (h *Handler) HandlePrune(ctx context.Context, t *asynq.Task) error {
	var payload PrunePayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			// Retrying a malformed payload cannot succeed.
			return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
		}
	}

	retention := h.retention
	if payload.RetentionDays > 0 {
		retention = time.Duration(payload.RetentionDays) * 24 * time.Hour
	}
	if retention <= 0 {
		return fmt.Errorf("no retention window configured: %w", asynq.SkipRetry)
	}

	cutoff := h.now().Add(-retention)
	start := time.Now()
	pruned, err := h.inbox.Prune(ctx, cutoff)
	if err != nil {
		return err
	}

	h.logger.Info("notification prune completed",
		"pruned", pruned,
		"cutoff", cutoff.Format(time.RFC3339),
		"duration", time.Since(start).String(),
	)
	return nil
}
