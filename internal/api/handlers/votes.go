package handlers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/api/dto"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/api/middleware"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/votes"
)

type VoteHandler struct {
	ledger votes.Ledger
	logger *slog.Logger
}

func NewVoteHandler(ledger votes.Ledger, logger *slog.Logger) *VoteHandler {
	return &VoteHandler{ledger: ledger, logger: logger}
}

// Cast handles PUT /api/v1/proposals/{id}/vote. Voting again replaces the previous choice.
func (h *VoteHandler) Cast(w http.ResponseWriter, r *http.Request) {
	proposalID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req dto.CastVoteRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	userID := middleware.GetUserID(r.Context())
	if err := h.ledger.CastVote(r.Context(), proposalID, userID, uuid.MustParse(req.OptionID)); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	vote, err := h.ledger.VoteOf(r.Context(), proposalID, userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.VoteResponse{Vote: vote})
}

// Mine handles GET /api/v1/proposals/{id}/vote
func (h *VoteHandler) Mine(w http.ResponseWriter, r *http.Request) {
	proposalID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	vote, err := h.ledger.VoteOf(r.Context(), proposalID, middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.VoteResponse{Vote: vote})
}

// Retract handles DELETE /api/v1/proposals/{id}/vote
func (h *VoteHandler) Retract(w http.ResponseWriter, r *http.Request) {
	proposalID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.ledger.RetractVote(r.Context(), proposalID, middleware.GetUserID(r.Context())); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Results handles GET /api/v1/proposals/{id}/results
func (h *VoteHandler) Results(w http.ResponseWriter, r *http.Request) {
	proposalID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	tally, err := h.ledger.Tally(r.Context(), proposalID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.ResultsResponse{
		ProposalID: proposalID.String(),
		Results:    tally,
		TotalVotes: votes.Total(tally),
	})
}
