package dto

import (
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/database/models"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/votes"
)

type CreateTeamRequest struct {
	Name        string `json:"name" validate:"notblank,max=100"`
	Description string `json:"description" validate:"max=1000"`
}

type UpdateTeamRequest struct {
	Name        *string `json:"name" validate:"omitempty,notblank,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

type TeamDetailResponse struct {
	Team      *models.Team      `json:"team"`
	Proposals []models.Proposal `json:"proposals"`
}

type CreateProposalRequest struct {
	Title       string   `json:"title" validate:"notblank,max=200"`
	Description string   `json:"description" validate:"max=2000"`
	Options     []string `json:"options" validate:"min=2,max=5,dive,notblank,max=200"`
}

type CastVoteRequest struct {
	OptionID string `json:"optionId" validate:"required,uuid"`
}

type VoteResponse struct {
	Vote *models.Vote `json:"vote"`
}

type ResultsResponse struct {
	ProposalID string              `json:"proposalId"`
	Results    []votes.OptionCount `json:"results"`
	TotalVotes int64               `json:"totalVotes"`
}

type CommentRequest struct {
	Text string `json:"text" validate:"notblank,max=2000"`
}
