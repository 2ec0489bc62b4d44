package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/guru-bharadwaj20/Team-Dashboard/internal/api/dto"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/api/middleware"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/notifications"
)

type NotificationHandler struct {
	inbox  notifications.Inbox
	logger *slog.Logger
}

func NewNotificationHandler(inbox notifications.Inbox, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{inbox: inbox, logger: logger}
}

// List handles GET /api/v1/notifications?limit=
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid limit"})
			return
		}
		limit = n
	}

	list, err := h.inbox.List(r.Context(), middleware.GetUserID(r.Context()), limit)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// UnreadCount handles GET /api/v1/notifications/unread-count
func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	n, err := h.inbox.UnreadCount(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.CountResponse{Count: n})
}

// MarkRead handles PATCH /api/v1/notifications/{id}
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	n, err := h.inbox.MarkRead(r.Context(), id, middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// MarkAllRead handles POST /api/v1/notifications/read-all
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	n, err := h.inbox.MarkAllRead(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.CountResponse{Count: n})
}

// Delete handles DELETE /api/v1/notifications/{id}
func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.inbox.Delete(r.Context(), id, middleware.GetUserID(r.Context())); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearAll handles DELETE /api/v1/notifications
func (h *NotificationHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	n, err := h.inbox.ClearAll(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.CountResponse{Count: n})
}
