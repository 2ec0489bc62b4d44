// Package teams manages teams, their member sets and the public results board.
package teams

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/database"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/database/models"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/domain"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/notifications"
	"github.com/guru-bharadwaj20/Team-Dashboard/pkg/crypto"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const shareIDAttempts = 5

type Service struct {
	db       *gorm.DB
	events   Broadcaster
	notifier Notifier
	tallier  Tallier
	logger   *slog.Logger

	newShareID func() (string, error)
}

func NewService(db *gorm.DB, events Broadcaster, notifier Notifier, tallier Tallier, logger *slog.Logger) *Service {
	return &Service{
		db:         db,
		events:     events,
		notifier:   notifier,
		tallier:    tallier,
		logger:     logger,
		newShareID: crypto.NewShareID,
	}
}

type UpdateInput struct {
	Name        *string
	Description *string
}

// MemberEvent is the payload of team:member-joined and team:member-left.
type MemberEvent struct {
	TeamID uuid.UUID `json:"teamId"`
	UserID uuid.UUID `json:"userId"`
	Name   string    `json:"name,omitempty"`
}

func notFound(id uuid.UUID) error {
	return fmt.Errorf("team %s: %w", id, domain.ErrNotFound)
}

func (s *Service) Create(ctx context.Context, creatorID uuid.UUID, name, description string) (*models.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("team name is required: %w", domain.ErrInvalidArgument)
	}

	team := models.Team{
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatorID:   creatorID,
	}
	if err := s.insertWithShareID(ctx, &team); err != nil {
		return nil, err
	}

	created, err := s.Get(ctx, team.ID)
	if err != nil {
		return nil, err
	}
	s.events.Emit(domain.RoomGlobal, domain.EventTeamCreated, created)
	return created, nil
}

// insertWithShareID inserts the team and its creator membership, drawing a fresh share id
// whenever the unique index rejects the previous one.
func (s *Service) insertWithShareID(ctx context.Context, team *models.Team) error {
	for attempt := 0; attempt < shareIDAttempts; attempt++ {
		shareID, err := s.newShareID()
		if err != nil {
			return fmt.Errorf("generating share id: %w", err)
		}
		team.ID = uuid.Nil
		team.ShareID = shareID

		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(team).Error; err != nil {
				return err
			}
			return tx.Create(&models.TeamMember{TeamID: team.ID, UserID: team.CreatorID, JoinedAt: time.Now()}).Error
		})
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("creating team: %w", err)
		}
		s.logger.Warn("share id collision", "attempt", attempt+1)
	}
	return fmt.Errorf("no free share id after %d attempts: %w", shareIDAttempts, domain.ErrConflict)
}

func withPeople(db *gorm.DB) *gorm.DB {
	return db.Preload("Creator").Preload("Members", func(db *gorm.DB) *gorm.DB {
		return db.Order("joined_at ASC")
	}).Preload("Members.User")
}

func (s *Service) List(ctx context.Context) ([]models.Team, error) {
	var out []models.Team
	if err := withPeople(s.db.WithContext(ctx)).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("listing teams: %w", err)
	}
	return out, nil
}

// ListForUser returns the teams the user is a member of.
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Team, error) {
	var out []models.Team
	err := withPeople(s.db.WithContext(ctx)).
		Where("id IN (?)", s.db.Model(&models.TeamMember{}).Select("team_id").Where("user_id = ?", userID)).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("listing teams for user: %w", err)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	var team models.Team
	if err := withPeople(s.db.WithContext(ctx)).First(&team, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(id)
		}
		return nil, fmt.Errorf("loading team: %w", err)
	}
	return &team, nil
}

func (s *Service) load(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	var team models.Team
	if err := s.db.WithContext(ctx).First(&team, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(id)
		}
		return nil, fmt.Errorf("loading team: %w", err)
	}
	return &team, nil
}

// Join adds the user to the team. Joining twice is a no-op.
func (s *Service) Join(ctx context.Context, id, userID uuid.UUID) (*models.Team, error) {
	team, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.TeamMember{TeamID: id, UserID: userID, JoinedAt: time.Now()})
	if res.Error != nil {
		return nil, fmt.Errorf("joining team: %w", res.Error)
	}

	if res.RowsAffected > 0 {
		var user models.User
		name := "Someone"
		if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err == nil {
			name = user.Name
		}

		s.events.Emit(domain.TeamRoom(id), domain.EventTeamMemberJoined, MemberEvent{TeamID: id, UserID: userID, Name: name})

		if userID != team.CreatorID {
			_, err := s.notifier.Enqueue(ctx, team.CreatorID, notifications.Input{
				Type:        models.NotificationInfo,
				Title:       "New Team Member",
				Message:     fmt.Sprintf("%s joined %s", name, team.Name),
				Link:        "/teams/" + id.String(),
				RelatedID:   &team.ID,
				RelatedType: models.RelatedTeam,
			})
			if err != nil {
				s.logger.Warn("member notification failed", "team_id", id, "error", err)
			}
		}
	}

	return s.Get(ctx, id)
}

// Leave removes the user from the team. The creator cannot leave their own team.
func (s *Service) Leave(ctx context.Context, id, userID uuid.UUID) error {
	team, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if team.CreatorID == userID {
		return fmt.Errorf("creator cannot leave team %s: %w", id, domain.ErrForbidden)
	}

	res := s.db.WithContext(ctx).Where("team_id = ? AND user_id = ?", id, userID).Delete(&models.TeamMember{})
	if res.Error != nil {
		return fmt.Errorf("leaving team: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		s.events.Emit(domain.TeamRoom(id), domain.EventTeamMemberLeft, MemberEvent{TeamID: id, UserID: userID})
	}
	return nil
}

func (s *Service) Update(ctx context.Context, id, requestingUserID uuid.UUID, input UpdateInput) (*models.Team, error) {
	team, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if team.CreatorID != requestingUserID {
		return nil, fmt.Errorf("only the creator can edit team %s: %w", id, domain.ErrForbidden)
	}

	updates := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, fmt.Errorf("team name is required: %w", domain.ErrInvalidArgument)
		}
		updates["name"] = name
	}
	if input.Description != nil {
		updates["description"] = strings.TrimSpace(*input.Description)
	}
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(team).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("updating team: %w", err)
		}
	}

	updated, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.events.Emit(domain.TeamRoom(id), domain.EventTeamUpdated, updated)
	return updated, nil
}

// Delete removes the team with its memberships and proposals. Only the creator may.
func (s *Service) Delete(ctx context.Context, id, requestingUserID uuid.UUID) error {
	team, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if team.CreatorID != requestingUserID {
		return fmt.Errorf("only the creator can delete team %s: %w", id, domain.ErrForbidden)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return database.DeleteTeamsCascade(tx, []uuid.UUID{id})
	})
	if err != nil {
		return fmt.Errorf("deleting team: %w", err)
	}

	s.events.Emit(domain.RoomGlobal, domain.EventTeamDeleted, map[string]any{"teamId": id})
	return nil
}
