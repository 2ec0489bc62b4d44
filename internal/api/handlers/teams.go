package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/api/dto"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/api/middleware"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/api/validation"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/proposals"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/teams"
)

type TeamHandler struct {
	teams     teams.Directory
	proposals proposals.Store
	logger    *slog.Logger
}

func NewTeamHandler(directory teams.Directory, store proposals.Store, logger *slog.Logger) *TeamHandler {
	return &TeamHandler{teams: directory, proposals: store, logger: logger}
}

// List handles GET /api/v1/teams
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.teams.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Mine handles GET /api/v1/teams/mine
func (h *TeamHandler) Mine(w http.ResponseWriter, r *http.Request) {
	list, err := h.teams.ListForUser(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Create handles POST /api/v1/teams
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTeamRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	team, err := h.teams.Create(r.Context(), middleware.GetUserID(r.Context()),
		validation.SanitizeString(req.Name), validation.SanitizeString(req.Description))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, team)
}

// Get handles GET /api/v1/teams/{id}
func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	team, err := h.teams.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	list, err := h.proposals.ListByTeam(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.TeamDetailResponse{Team: team, Proposals: list})
}

// Update handles PUT /api/v1/teams/{id}
func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req dto.UpdateTeamRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	input := teams.UpdateInput{}
	if req.Name != nil {
		name := validation.SanitizeString(*req.Name)
		input.Name = &name
	}
	if req.Description != nil {
		description := validation.SanitizeString(*req.Description)
		input.Description = &description
	}

	team, err := h.teams.Update(r.Context(), id, middleware.GetUserID(r.Context()), input)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

// Delete handles DELETE /api/v1/teams/{id}
func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.teams.Delete(r.Context(), id, middleware.GetUserID(r.Context())); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Join handles POST /api/v1/teams/{id}/join
func (h *TeamHandler) Join(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	team, err := h.teams.Join(r.Context(), id, middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

// Leave handles POST /api/v1/teams/{id}/leave
func (h *TeamHandler) Leave(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.teams.Leave(r.Context(), id, middleware.GetUserID(r.Context())); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Left team"})
}

// PublicBoard handles GET /api/v1/public/board/{shareId}
func (h *TeamHandler) PublicBoard(w http.ResponseWriter, r *http.Request) {
	board, err := h.teams.PublicBoard(r.Context(), chi.URLParam(r, "shareId"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}
