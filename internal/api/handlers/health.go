package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// SessionCounter reports live realtime sessions.
type SessionCounter interface {
	SessionCount() int
}

type HealthHandler struct {
	db       *gorm.DB
	redis    *redis.Client
	sessions SessionCounter
}

func NewHealthHandler(db *gorm.DB, redis *redis.Client, sessions SessionCounter) *HealthHandler {
	return &HealthHandler{db: db, redis: redis, sessions: sessions}
}

type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
	Sessions int               `json:"sessions"`
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	services := make(map[string]string)
	status := "healthy"

	// Check database
	sqlDB, err := h.db.DB()
	if err != nil || sqlDB.PingContext(ctx) != nil {
		services["database"] = "unhealthy"
		status = "unhealthy"
	} else {
		services["database"] = "healthy"
	}

	// Redis is optional; without it realtime events stay on this instance.
	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			services["redis"] = "unhealthy"
			status = "unhealthy"
		} else {
			services["redis"] = "healthy"
		}
	}

	resp := HealthResponse{Status: status, Services: services}
	if h.sessions != nil {
		resp.Sessions = h.sessions.SessionCount()
	}

	statusCode := http.StatusOK
	if status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}
	writeJSON(w, statusCode, resp)
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
