package handlers

import (
	"log/slog"
	"net/http"

	"github.com/guru-bharadwaj20/Team-Dashboard/internal/api/dto"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/api/middleware"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/api/validation"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/proposals"
)

type ProposalHandler struct {
	proposals proposals.Store
	logger    *slog.Logger
}

func NewProposalHandler(store proposals.Store, logger *slog.Logger) *ProposalHandler {
	return &ProposalHandler{proposals: store, logger: logger}
}

// ListByTeam handles GET /api/v1/teams/{id}/proposals
func (h *ProposalHandler) ListByTeam(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	list, err := h.proposals.ListByTeam(r.Context(), teamID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Create handles POST /api/v1/teams/{id}/proposals
func (h *ProposalHandler) Create(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req dto.CreateProposalRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	options := make([]string, len(req.Options))
	for i, o := range req.Options {
		options[i] = validation.SanitizeString(o)
	}

	proposal, err := h.proposals.Create(r.Context(), proposals.CreateInput{
		TeamID:      teamID,
		CreatorID:   middleware.GetUserID(r.Context()),
		Title:       validation.SanitizeString(req.Title),
		Description: validation.SanitizeString(req.Description),
		Options:     options,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, proposal)
}

// Get handles GET /api/v1/proposals/{id}
func (h *ProposalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	proposal, err := h.proposals.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, proposal)
}

// Delete handles DELETE /api/v1/proposals/{id}
func (h *ProposalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.proposals.Delete(r.Context(), id, middleware.GetUserID(r.Context())); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Comments handles GET /api/v1/proposals/{id}/comments
func (h *ProposalHandler) Comments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	comments, err := h.proposals.Comments(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

// AddComment handles POST /api/v1/proposals/{id}/comments
func (h *ProposalHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req dto.CommentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	comment, err := h.proposals.AddComment(r.Context(), id, middleware.GetUserID(r.Context()),
		validation.SanitizeString(req.Text))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}
