package teams

import (
	"context"

	"github.com/google/uuid"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/database/models"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/notifications"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/votes"
)

// Broadcaster pushes live events to connected sessions.
type Broadcaster interface {
	Emit(room, event string, payload any)
}

// Notifier drops a message in a user's inbox.
type Notifier interface {
	Enqueue(ctx context.Context, userID uuid.UUID, input notifications.Input) (*models.Notification, error)
}

// Tallier computes results for the public board.
type Tallier interface {
	TallyProposals(ctx context.Context, proposals []models.Proposal) (map[uuid.UUID][]votes.OptionCount, error)
}

// Directory is the team surface consumed by the HTTP layer.
type Directory interface {
	Create(ctx context.Context, creatorID uuid.UUID, name, description string) (*models.Team, error)
	List(ctx context.Context) ([]models.Team, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Team, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Team, error)
	Update(ctx context.Context, id, requestingUserID uuid.UUID, input UpdateInput) (*models.Team, error)
	Delete(ctx context.Context, id, requestingUserID uuid.UUID) error
	Join(ctx context.Context, id, userID uuid.UUID) (*models.Team, error)
	Leave(ctx context.Context, id, userID uuid.UUID) error
	PublicBoard(ctx context.Context, shareID string) (*Board, error)
}

var _ Directory = (*Service)(nil)
