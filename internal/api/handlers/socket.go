package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/api/middleware"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/auth"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/realtime"
)

type SocketHandler struct {
	hub        *realtime.Hub
	tokens     auth.TokenService
	upgrader   websocket.Upgrader
	bufferSize int
	logger     *slog.Logger
}

func NewSocketHandler(hub *realtime.Hub, tokens auth.TokenService, allowedOrigins []string, bufferSize int, logger *slog.Logger) *SocketHandler {
	return &SocketHandler{
		hub:    hub,
		tokens: tokens,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		bufferSize: bufferSize,
		logger:     logger,
	}
}

// originChecker accepts same-host requests without an Origin header and any origin on
// the CORS allow list. "*" allows everything.
func originChecker(allowed []string) func(*http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if _, ok := set["*"]; ok {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}

// Serve handles GET /ws?token=. Browsers cannot set headers on a WebSocket handshake so
// the JWT travels in the query string; the usual headers are accepted as well.
func (h *SocketHandler) Serve(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		token = middleware.TokenFromRequest(r)
	}
	claims, err := h.tokens.ValidateToken(token)
	if token == "" || err != nil {
		middleware.Unauthorized(w)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		h.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	client, err := realtime.NewClient(conn, claims.UserID, h.bufferSize, h.logger)
	if err != nil {
		h.logger.Error("creating websocket session", "error", err)
		conn.Close()
		return
	}
	client.Run(h.hub)
}
