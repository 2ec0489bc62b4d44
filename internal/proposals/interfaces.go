package proposals

import (
	"context"

	"github.com/google/uuid"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/database/models"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/notifications"
)

// Broadcaster pushes live events to connected sessions.
type Broadcaster interface {
	Emit(room, event string, payload any)
}

// Notifier drops a message in a user's inbox.
type Notifier interface {
	Enqueue(ctx context.Context, userID uuid.UUID, input notifications.Input) (*models.Notification, error)
}

// Store is the proposal surface consumed by the HTTP layer.
type Store interface {
	Create(ctx context.Context, input CreateInput) (*models.Proposal, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Proposal, error)
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]models.Proposal, error)
	Delete(ctx context.Context, id, requestingUserID uuid.UUID) error
	AddComment(ctx context.Context, proposalID, authorID uuid.UUID, text string) (*models.Comment, error)
	Comments(ctx context.Context, proposalID uuid.UUID) ([]models.Comment, error)
}

var _ Store = (*Service)(nil)
