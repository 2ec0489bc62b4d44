// Package votes records each user's single live vote per proposal and computes tallies.
package votes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/database/models"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/domain"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/notifications"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Service struct {
	db       *gorm.DB
	events   Broadcaster
	notifier Notifier
	logger   *slog.Logger
}

func NewService(db *gorm.DB, events Broadcaster, notifier Notifier, logger *slog.Logger) *Service {
	return &Service{db: db, events: events, notifier: notifier, logger: logger}
}

// Recorded is the payload of a vote:recorded event.
type Recorded struct {
	ProposalID uuid.UUID     `json:"proposalId"`
	UserID     uuid.UUID     `json:"userId"`
	OptionID   *uuid.UUID    `json:"optionId"`
	Results    []OptionCount `json:"results"`
	TotalVotes int64         `json:"totalVotes"`
}

func (s *Service) loadProposal(ctx context.Context, proposalID uuid.UUID) (*models.Proposal, error) {
	var p models.Proposal
	err := s.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&p, "id = ?", proposalID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("proposal %s: %w", proposalID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("loading proposal: %w", err)
	}
	return &p, nil
}

// CastVote records or replaces userID's vote on the proposal.
func (s *Service) CastVote(ctx context.Context, proposalID, userID, optionID uuid.UUID) error {
	if optionID == uuid.Nil {
		return fmt.Errorf("option is required: %w", domain.ErrInvalidArgument)
	}

	proposal, err := s.loadProposal(ctx, proposalID)
	if err != nil {
		return err
	}
	var chosen *models.Option
	for i := range proposal.Options {
		if proposal.Options[i].ID == optionID {
			chosen = &proposal.Options[i]
			break
		}
	}
	if chosen == nil {
		return fmt.Errorf("option %s on proposal %s: %w", optionID, proposalID, domain.ErrNotFound)
	}

	vote := models.Vote{
		ProposalID: proposalID,
		UserID:     userID,
		OptionID:   optionID,
		CastAt:     time.Now(),
	}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "proposal_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"option_id", "cast_at"}),
	}).Create(&vote).Error
	if err != nil {
		return fmt.Errorf("recording vote: %w", err)
	}

	s.broadcast(ctx, proposal, userID, &optionID)

	if userID != proposal.CreatorID {
		voter := s.userName(ctx, userID)
		_, err := s.notifier.Enqueue(ctx, proposal.CreatorID, notifications.Input{
			Type:        models.NotificationSuccess,
			Title:       "New Vote",
			Message:     fmt.Sprintf("%s voted %q on %q", voter, chosen.Text, proposal.Title),
			Link:        "/proposals/" + proposalID.String(),
			RelatedID:   &proposal.ID,
			RelatedType: models.RelatedProposal,
		})
		if err != nil {
			s.logger.Warn("vote notification failed", "proposal_id", proposalID, "error", err)
		}
	}
	return nil
}

// RetractVote removes userID's vote. NotFound when there is nothing to remove.
func (s *Service) RetractVote(ctx context.Context, proposalID, userID uuid.UUID) error {
	proposal, err := s.loadProposal(ctx, proposalID)
	if err != nil {
		return err
	}

	res := s.db.WithContext(ctx).
		Where("proposal_id = ? AND user_id = ?", proposalID, userID).
		Delete(&models.Vote{})
	if res.Error != nil {
		return fmt.Errorf("retracting vote: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("vote on proposal %s: %w", proposalID, domain.ErrNotFound)
	}

	s.broadcast(ctx, proposal, userID, nil)
	return nil
}

func (s *Service) broadcast(ctx context.Context, proposal *models.Proposal, userID uuid.UUID, optionID *uuid.UUID) {
	counts, err := s.countVotes(ctx, []uuid.UUID{proposal.ID})
	if err != nil {
		s.logger.Warn("tally for broadcast failed", "proposal_id", proposal.ID, "error", err)
		return
	}
	results := buildTally(proposal.Options, counts[proposal.ID])
	s.events.Emit(domain.ProposalRoom(proposal.ID), domain.EventVoteRecorded, Recorded{
		ProposalID: proposal.ID,
		UserID:     userID,
		OptionID:   optionID,
		Results:    results,
		TotalVotes: Total(results),
	})
}

func (s *Service) userName(ctx context.Context, userID uuid.UUID) string {
	var user models.User
	if err := s.db.WithContext(ctx).Select("name").First(&user, "id = ?", userID).Error; err != nil || user.Name == "" {
		return "Someone"
	}
	return user.Name
}

func (s *Service) VoteOf(ctx context.Context, proposalID, userID uuid.UUID) (*models.Vote, error) {
	var vote models.Vote
	err := s.db.WithContext(ctx).
		Where("proposal_id = ? AND user_id = ?", proposalID, userID).
		First(&vote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("vote on proposal %s: %w", proposalID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("loading vote: %w", err)
	}
	return &vote, nil
}

// Tally returns one entry per option in declaration order.
func (s *Service) Tally(ctx context.Context, proposalID uuid.UUID) ([]OptionCount, error) {
	proposal, err := s.loadProposal(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	counts, err := s.countVotes(ctx, []uuid.UUID{proposalID})
	if err != nil {
		return nil, err
	}
	return buildTally(proposal.Options, counts[proposalID]), nil
}

// TallyProposals tallies many proposals with one grouped query. The proposals must carry
// their options.
func (s *Service) TallyProposals(ctx context.Context, proposals []models.Proposal) (map[uuid.UUID][]OptionCount, error) {
	ids := make([]uuid.UUID, 0, len(proposals))
	for _, p := range proposals {
		ids = append(ids, p.ID)
	}
	counts, err := s.countVotes(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make(map[uuid.UUID][]OptionCount, len(proposals))
	for _, p := range proposals {
		options := append([]models.Option(nil), p.Options...)
		sort.SliceStable(options, func(i, j int) bool { return options[i].Position < options[j].Position })
		out[p.ID] = buildTally(options, counts[p.ID])
	}
	return out, nil
}

type optionVotes struct {
	ProposalID uuid.UUID
	OptionID   uuid.UUID
	Votes      int64
}

func (s *Service) countVotes(ctx context.Context, proposalIDs []uuid.UUID) (map[uuid.UUID]map[uuid.UUID]int64, error) {
	out := make(map[uuid.UUID]map[uuid.UUID]int64, len(proposalIDs))
	if len(proposalIDs) == 0 {
		return out, nil
	}

	var rows []optionVotes
	err := s.db.WithContext(ctx).Model(&models.Vote{}).
		Select("proposal_id, option_id, COUNT(*) AS votes").
		Where("proposal_id IN ?", proposalIDs).
		Group("proposal_id, option_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("counting votes: %w", err)
	}

	for _, r := range rows {
		if out[r.ProposalID] == nil {
			out[r.ProposalID] = make(map[uuid.UUID]int64)
		}
		out[r.ProposalID][r.OptionID] = r.Votes
	}
	return out, nil
}
