// Package contact stores messages submitted through the public contact form.
package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/database/models"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/domain"
	"gorm.io/gorm"
)

// MinMessageLength is the shortest message body accepted.
const MinMessageLength = 10

type Inbox interface {
	Submit(ctx context.Context, input SubmitInput) (*models.ContactMessage, error)
	List(ctx context.Context) ([]models.ContactMessage, error)
	Get(ctx context.Context, id uuid.UUID) (*models.ContactMessage, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ContactStatus) (*models.ContactMessage, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

var _ Inbox = (*Service)(nil)

type SubmitInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

type Service struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewService(db *gorm.DB, logger *slog.Logger) *Service {
	return &Service{db: db, logger: logger}
}

func (s *Service) Submit(ctx context.Context, input SubmitInput) (*models.ContactMessage, error) {
	msg := models.ContactMessage{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.ToLower(strings.TrimSpace(input.Email)),
		Subject: strings.TrimSpace(input.Subject),
		Message: strings.TrimSpace(input.Message),
		Status:  models.ContactNew,
	}
	if msg.Name == "" || msg.Email == "" || msg.Subject == "" {
		return nil, fmt.Errorf("name, email and subject are required: %w", domain.ErrInvalidArgument)
	}
	if len([]rune(msg.Message)) < MinMessageLength {
		return nil, fmt.Errorf("message must be at least %d characters: %w", MinMessageLength, domain.ErrInvalidArgument)
	}

	if err := s.db.WithContext(ctx).Create(&msg).Error; err != nil {
		return nil, fmt.Errorf("saving contact message: %w", err)
	}
	s.logger.Info("contact message received", "id", msg.ID, "subject", msg.Subject)
	return &msg, nil
}

// List returns every message newest first.
func (s *Service) List(ctx context.Context) ([]models.ContactMessage, error) {
	var out []models.ContactMessage
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("listing contact messages: %w", err)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.ContactMessage, error) {
	var msg models.ContactMessage
	if err := s.db.WithContext(ctx).First(&msg, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("contact message %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("loading contact message: %w", err)
	}
	return &msg, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ContactStatus) (*models.ContactMessage, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("contact status %q: %w", status, domain.ErrInvalidArgument)
	}
	msg, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(msg).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("updating contact status: %w", err)
	}
	msg.Status = status
	return msg, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ContactMessage{})
	if res.Error != nil {
		return fmt.Errorf("deleting contact message: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("contact message %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
