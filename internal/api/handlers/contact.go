package handlers

import (
	"log/slog"
	"net/http"

	"github.com/guru-bharadwaj20/Team-Dashboard/internal/api/dto"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/api/validation"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/contact"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/database/models"
)

type ContactHandler struct {
	inbox  contact.Inbox
	logger *slog.Logger
}

func NewContactHandler(inbox contact.Inbox, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{inbox: inbox, logger: logger}
}

// Submit handles POST /api/v1/contact
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req dto.ContactRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	msg, err := h.inbox.Submit(r.Context(), contact.SubmitInput{
		Name:    validation.SanitizeString(req.Name),
		Email:   req.Email,
		Subject: validation.SanitizeString(req.Subject),
		Message: validation.SanitizeString(req.Message),
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

// List handles GET /api/v1/contact
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.inbox.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Get handles GET /api/v1/contact/{id}
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	msg, err := h.inbox.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

// UpdateStatus handles PUT /api/v1/contact/{id}/status
func (h *ContactHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req dto.ContactStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	msg, err := h.inbox.UpdateStatus(r.Context(), id, models.ContactStatus(req.Status))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

// Delete handles DELETE /api/v1/contact/{id}
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.inbox.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
