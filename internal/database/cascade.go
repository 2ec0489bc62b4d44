package database

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/database/models"
	"gorm.io/gorm"
)

// DeleteProposalsCascade removes the proposals and everything hanging off them.
// Callers run it inside a transaction.
func DeleteProposalsCascade(tx *gorm.DB, proposalIDs []uuid.UUID) error {
	if len(proposalIDs) == 0 {
		return nil
	}
	steps := []struct {
		what  string
		model any
		where string
	}{
		{"votes", &models.Vote{}, "proposal_id IN ?"},
		{"comments", &models.Comment{}, "proposal_id IN ?"},
		{"options", &models.Option{}, "proposal_id IN ?"},
		{"proposals", &models.Proposal{}, "id IN ?"},
	}
	for _, s := range steps {
		if err := tx.Where(s.where, proposalIDs).Delete(s.model).Error; err != nil {
			return fmt.Errorf("deleting %s: %w", s.what, err)
		}
	}
	return nil
}

// DeleteTeamsCascade removes the teams, their memberships and their proposals.
func DeleteTeamsCascade(tx *gorm.DB, teamIDs []uuid.UUID) error {
	if len(teamIDs) == 0 {
		return nil
	}

	var proposalIDs []uuid.UUID
	if err := tx.Model(&models.Proposal{}).Where("team_id IN ?", teamIDs).Pluck("id", &proposalIDs).Error; err != nil {
		return fmt.Errorf("listing team proposals: %w", err)
	}
	if err := DeleteProposalsCascade(tx, proposalIDs); err != nil {
		return err
	}
	if err := tx.Where("team_id IN ?", teamIDs).Delete(&models.TeamMember{}).Error; err != nil {
		return fmt.Errorf("deleting memberships: %w", err)
	}
	if err := tx.Where("id IN ?", teamIDs).Delete(&models.Team{}).Error; err != nil {
		return fmt.Errorf("deleting teams: %w", err)
	}
	return nil
}

// DeleteUserCascade removes a user and everything they own: notifications, created teams,
// memberships, proposals created in other teams and their votes.
func DeleteUserCascade(tx *gorm.DB, userID uuid.UUID) error {
	if err := tx.Where("user_id = ?", userID).Delete(&models.Notification{}).Error; err != nil {
		return fmt.Errorf("deleting notifications: %w", err)
	}

	var teamIDs []uuid.UUID
	if err := tx.Model(&models.Team{}).Where("creator_id = ?", userID).Pluck("id", &teamIDs).Error; err != nil {
		return fmt.Errorf("listing created teams: %w", err)
	}
	if err := DeleteTeamsCascade(tx, teamIDs); err != nil {
		return err
	}

	if err := tx.Where("user_id = ?", userID).Delete(&models.TeamMember{}).Error; err != nil {
		return fmt.Errorf("deleting memberships: %w", err)
	}

	var proposalIDs []uuid.UUID
	if err := tx.Model(&models.Proposal{}).Where("creator_id = ?", userID).Pluck("id", &proposalIDs).Error; err != nil {
		return fmt.Errorf("listing created proposals: %w", err)
	}
	if err := DeleteProposalsCascade(tx, proposalIDs); err != nil {
		return err
	}

	if err := tx.Where("user_id = ?", userID).Delete(&models.Vote{}).Error; err != nil {
		return fmt.Errorf("deleting votes: %w", err)
	}
	if err := tx.Where("author_id = ?", userID).Delete(&models.Comment{}).Error; err != nil {
		return fmt.Errorf("deleting comments: %w", err)
	}
	if err := tx.Where("id = ?", userID).Delete(&models.User{}).Error; err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	return nil
}
