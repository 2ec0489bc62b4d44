// Package proposals stores proposals with their fixed option lists and comment threads.
package proposals

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/database"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/database/models"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/domain"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/notifications"
	"gorm.io/gorm"
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

type CreateInput struct {
	TeamID      uuid.UUID
	CreatorID   uuid.UUID
	Title       string
	Description string
	Options     []string
}

func (in *CreateInput) normalize() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.Title == "" {
		return fmt.Errorf("title is required: %w", domain.ErrInvalidArgument)
	}
	if n := len(in.Options); n < models.MinOptions || n > models.MaxOptions {
		return fmt.Errorf("proposal needs %d to %d options, got %d: %w",
			models.MinOptions, models.MaxOptions, n, domain.ErrInvalidArgument)
	}
	for i, text := range in.Options {
		in.Options[i] = strings.TrimSpace(text)
		if in.Options[i] == "" {
			return fmt.Errorf("option %d is blank: %w", i+1, domain.ErrInvalidArgument)
		}
	}
	return nil
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*models.Proposal, error) {
	input.Options = append([]string(nil), input.Options...)
	if err := input.normalize(); err != nil {
		return nil, err
	}

	var team models.Team
	if err := s.db.WithContext(ctx).First(&team, "id = ?", input.TeamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("team %s: %w", input.TeamID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("loading team: %w", err)
	}

	proposal := models.Proposal{
		TeamID:      input.TeamID,
		Title:       input.Title,
		Description: input.Description,
		CreatorID:   input.CreatorID,
	}
	for i, text := range input.Options {
		proposal.Options = append(proposal.Options, models.Option{Position: i, Text: text})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&proposal).Error
	})
	if err != nil {
		return nil, fmt.Errorf("creating proposal: %w", err)
	}

	s.events.Emit(domain.TeamRoom(team.ID), domain.EventProposalCreated, &proposal)
	s.notifyMembers(ctx, &team, &proposal)

	return &proposal, nil
}

func (s *Service) notifyMembers(ctx context.Context, team *models.Team, proposal *models.Proposal) {
	var memberIDs []uuid.UUID
	if err := s.db.WithContext(ctx).Model(&models.TeamMember{}).
		Where("team_id = ? AND user_id <> ?", team.ID, proposal.CreatorID).
		Pluck("user_id", &memberIDs).Error; err != nil {
		s.logger.Warn("listing members for notification failed", "team_id", team.ID, "error", err)
		return
	}

	for _, memberID := range memberIDs {
		_, err := s.notifier.Enqueue(ctx, memberID, notifications.Input{
			Type:        models.NotificationInfo,
			Title:       "New Proposal",
			Message:     fmt.Sprintf("%q was proposed in %s", proposal.Title, team.Name),
			Link:        "/proposals/" + proposal.ID.String(),
			RelatedID:   &proposal.ID,
			RelatedType: models.RelatedProposal,
		})
		if err != nil {
			s.logger.Warn("proposal notification failed", "user_id", memberID, "error", err)
		}
	}
}

func withOrderedOptions(db *gorm.DB) *gorm.DB {
	return db.Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") })
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Proposal, error) {
	var p models.Proposal
	err := withOrderedOptions(s.db.WithContext(ctx)).
		Preload("Creator").
		First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("proposal %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("loading proposal: %w", err)
	}
	return &p, nil
}

// ListByTeam returns the team's proposals newest first.
func (s *Service) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]models.Proposal, error) {
	if err := s.teamExists(ctx, teamID); err != nil {
		return nil, err
	}

	var out []models.Proposal
	err := withOrderedOptions(s.db.WithContext(ctx)).
		Preload("Creator").
		Where("team_id = ?", teamID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("listing proposals: %w", err)
	}
	return out, nil
}

func (s *Service) teamExists(ctx context.Context, teamID uuid.UUID) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Team{}).Where("id = ?", teamID).Count(&count).Error; err != nil {
		return fmt.Errorf("checking team: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("team %s: %w", teamID, domain.ErrNotFound)
	}
	return nil
}

// Delete removes the proposal with its options, votes and comments. Only the creator may.
func (s *Service) Delete(ctx context.Context, id, requestingUserID uuid.UUID) error {
	var p models.Proposal
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("proposal %s: %w", id, domain.ErrNotFound)
		}
		return fmt.Errorf("loading proposal: %w", err)
	}
	if p.CreatorID != requestingUserID {
		return fmt.Errorf("only the creator can delete proposal %s: %w", id, domain.ErrForbidden)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return database.DeleteProposalsCascade(tx, []uuid.UUID{id})
	})
	if err != nil {
		return fmt.Errorf("deleting proposal: %w", err)
	}

	s.events.Emit(domain.TeamRoom(p.TeamID), domain.EventProposalDeleted, map[string]any{
		"proposalId": id,
		"teamId":     p.TeamID,
	})
	return nil
}
