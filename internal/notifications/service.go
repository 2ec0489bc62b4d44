// Package notifications persists per-user inbox messages and pushes them live to the
// owner's user room when they are connected.
package notifications

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/database/models"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/domain"
	"gorm.io/gorm"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

// Input describes a notification to enqueue. An empty Type means info.
type Input struct {
	Type        models.NotificationType
	Title       string
	Message     string
	Link        string
	RelatedID   *uuid.UUID
	RelatedType string
}

type Service struct {
	db     *gorm.DB
	events Broadcaster
	logger *slog.Logger
}

func NewService(db *gorm.DB, events Broadcaster, logger *slog.Logger) *Service {
	return &Service{db: db, events: events, logger: logger}
}

func (s *Service) Enqueue(ctx context.Context, userID uuid.UUID, input Input) (*models.Notification, error) {
	if input.Type == "" {
		input.Type = models.NotificationInfo
	}
	if !input.Type.Valid() {
		return nil, fmt.Errorf("notification type %q: %w", input.Type, domain.ErrInvalidArgument)
	}
	input.Title = strings.TrimSpace(input.Title)
	input.Message = strings.TrimSpace(input.Message)
	if input.Title == "" || input.Message == "" {
		return nil, fmt.Errorf("notification title and message are required: %w", domain.ErrInvalidArgument)
	}
	switch input.RelatedType {
	case "", models.RelatedProposal, models.RelatedTeam, models.RelatedComment:
	default:
		return nil, fmt.Errorf("related type %q: %w", input.RelatedType, domain.ErrInvalidArgument)
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("checking recipient: %w", err)
	}
	if count == 0 {
		return nil, fmt.Errorf("recipient %s: %w", userID, domain.ErrNotFound)
	}

	n := &models.Notification{
		UserID:      userID,
		Type:        input.Type,
		Title:       input.Title,
		Message:     input.Message,
		Link:        input.Link,
		RelatedID:   input.RelatedID,
		RelatedType: input.RelatedType,
	}
	if err := s.db.WithContext(ctx).Create(n).Error; err != nil {
		return nil, fmt.Errorf("creating notification: %w", err)
	}

	s.events.Emit(domain.UserRoom(userID), domain.EventNotificationNew, n)
	return n, nil
}

// List returns the newest notifications first. A non-positive limit means DefaultListLimit.
func (s *Service) List(ctx context.Context, userID uuid.UUID, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	var out []models.Notification
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	return out, nil
}

func (s *Service) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&n).Error; err != nil {
		return 0, fmt.Errorf("counting unread: %w", err)
	}
	return n, nil
}

func (s *Service) owned(ctx context.Context, id, requestingUserID uuid.UUID) (*models.Notification, error) {
	var n models.Notification
	if err := s.db.WithContext(ctx).First(&n, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("notification %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("loading notification: %w", err)
	}
	if n.UserID != requestingUserID {
		return nil, fmt.Errorf("notification %s: %w", id, domain.ErrForbidden)
	}
	return &n, nil
}

func (s *Service) MarkRead(ctx context.Context, id, requestingUserID uuid.UUID) (*models.Notification, error) {
	n, err := s.owned(ctx, id, requestingUserID)
	if err != nil {
		return nil, err
	}
	if n.Read {
		return n, nil
	}
	if err := s.db.WithContext(ctx).Model(n).Update("read", true).Error; err != nil {
		return nil, fmt.Errorf("marking read: %w", err)
	}
	n.Read = true
	return n, nil
}

func (s *Service) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true)
	if res.Error != nil {
		return 0, fmt.Errorf("marking all read: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (s *Service) Delete(ctx context.Context, id, requestingUserID uuid.UUID) error {
	n, err := s.owned(ctx, id, requestingUserID)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(n).Error; err != nil {
		return fmt.Errorf("deleting notification: %w", err)
	}
	return nil
}

func (s *Service) ClearAll(ctx context.Context, userID uuid.UUID) (int64, error) {
	res := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Notification{})
	if res.Error != nil {
		return 0, fmt.Errorf("clearing notifications: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// Prune deletes read notifications created before the cutoff. Unread ones are kept.
func (s *Service) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("read = ? AND created_at < ?", true, olderThan).
		Delete(&models.Notification{})
	if res.Error != nil {
		return 0, fmt.Errorf("pruning notifications: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		s.logger.Info("pruned notifications", "count", res.RowsAffected, "cutoff", olderThan)
	}
	return res.RowsAffected, nil
}
