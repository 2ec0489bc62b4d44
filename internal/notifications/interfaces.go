package notifications

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/database/models"
)

// Broadcaster pushes live events to connected sessions.
type Broadcaster interface {
	Emit(room, event string, payload any)
}

// Notifier is what other services use to drop a message in a user's inbox.
type Notifier interface {
	Enqueue(ctx context.Context, userID uuid.UUID, input Input) (*models.Notification, error)
}

// Inbox covers the owner-facing operations.
type Inbox interface {
	Notifier
	List(ctx context.Context, userID uuid.UUID, limit int) ([]models.Notification, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, id, requestingUserID uuid.UUID) (*models.Notification, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id, requestingUserID uuid.UUID) error
	ClearAll(ctx context.Context, userID uuid.UUID) (int64, error)
	Prune(ctx context.Context, olderThan time.Time) (int64, error)
}

var _ Inbox = (*Service)(nil)
