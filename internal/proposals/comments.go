package proposals

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/database/models"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/domain"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/notifications"
	"gorm.io/gorm"
)

// AddComment appends a comment to the proposal thread.
func (s *Service) AddComment(ctx context.Context, proposalID, authorID uuid.UUID, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("comment text is required: %w", domain.ErrInvalidArgument)
	}

	var p models.Proposal
	if err := s.db.WithContext(ctx).First(&p, "id = ?", proposalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("proposal %s: %w", proposalID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("loading proposal: %w", err)
	}

	comment := models.Comment{
		ProposalID: proposalID,
		AuthorID:   authorID,
		Text:       text,
	}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("creating comment: %w", err)
	}

	var author models.User
	if err := s.db.WithContext(ctx).First(&author, "id = ?", authorID).Error; err == nil {
		comment.Author = &author
	}

	s.events.Emit(domain.ProposalRoom(proposalID), domain.EventCommentAdded, &comment)

	if authorID != p.CreatorID {
		name := "Someone"
		if comment.Author != nil {
			name = comment.Author.Name
		}
		_, err := s.notifier.Enqueue(ctx, p.CreatorID, notifications.Input{
			Type:        models.NotificationInfo,
			Title:       "New Comment",
			Message:     fmt.Sprintf("%s commented on %q", name, p.Title),
			Link:        "/proposals/" + proposalID.String(),
			RelatedID:   &comment.ID,
			RelatedType: models.RelatedComment,
		})
		if err != nil {
			s.logger.Warn("comment notification failed", "proposal_id", proposalID, "error", err)
		}
	}

	return &comment, nil
}

// Comments returns the thread oldest first.
func (s *Service) Comments(ctx context.Context, proposalID uuid.UUID) ([]models.Comment, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Proposal{}).Where("id = ?", proposalID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("checking proposal: %w", err)
	}
	if count == 0 {
		return nil, fmt.Errorf("proposal %s: %w", proposalID, domain.ErrNotFound)
	}

	var out []models.Comment
	if err := s.db.WithContext(ctx).
		Preload("Author").
		Where("proposal_id = ?", proposalID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	return out, nil
}
