package teams

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/database/models"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/domain"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/votes"
	"gorm.io/gorm"
)

// Board is the unauthenticated read-only view of a team's results.
type Board struct {
	Team      BoardTeam       `json:"team"`
	Proposals []BoardProposal `json:"proposals"`
}

type BoardTeam struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ShareID     string    `json:"shareId"`
	CreatorName string    `json:"creatorName,omitempty"`
}

type BoardProposal struct {
	ID          uuid.UUID           `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Results     []votes.OptionCount `json:"results"`
	TotalVotes  int64               `json:"totalVotes"`
	CreatedAt   time.Time           `json:"createdAt"`
}

func (s *Service) PublicBoard(ctx context.Context, shareID string) (*Board, error) {
	shareID = strings.ToLower(strings.TrimSpace(shareID))
	if shareID == "" {
		return nil, fmt.Errorf("board %q: %w", shareID, domain.ErrNotFound)
	}

	var team models.Team
	if err := s.db.WithContext(ctx).Preload("Creator").First(&team, "share_id = ?", shareID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("board %q: %w", shareID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("loading board: %w", err)
	}

	var proposals []models.Proposal
	if err := s.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("team_id = ?", team.ID).
		Order("created_at DESC").
		Find(&proposals).Error; err != nil {
		return nil, fmt.Errorf("listing board proposals: %w", err)
	}

	tallies, err := s.tallier.TallyProposals(ctx, proposals)
	if err != nil {
		return nil, err
	}

	board := &Board{
		Team: BoardTeam{
			ID:          team.ID,
			Name:        team.Name,
			Description: team.Description,
			ShareID:     team.ShareID,
		},
		Proposals: make([]BoardProposal, 0, len(proposals)),
	}
	if team.Creator != nil {
		board.Team.CreatorName = team.Creator.Name
	}
	for _, p := range proposals {
		results := tallies[p.ID]
		board.Proposals = append(board.Proposals, BoardProposal{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Results:     results,
			TotalVotes:  votes.Total(results),
			CreatedAt:   p.CreatedAt,
		})
	}
	return board, nil
}
