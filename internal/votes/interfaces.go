package votes

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

// Ledger is the vote store consumed by the HTTP layer and the public board.
type Ledger interface {
	CastVote(ctx context.Context, proposalID, userID, optionID uuid.UUID) error
	RetractVote(ctx context.Context, proposalID, userID uuid.UUID) error
	VoteOf(ctx context.Context, proposalID, userID uuid.UUID) (*models.Vote, error)
	Tally(ctx context.Context, proposalID uuid.UUID) ([]OptionCount, error)
	TallyProposals(ctx context.Context, proposals []models.Proposal) (map[uuid.UUID][]OptionCount, error)
}

var _ Ledger = (*Service)(nil)
