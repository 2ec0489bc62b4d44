package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/api/handlers"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/api/middleware"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/auth"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/contact"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/notifications"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/proposals"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/realtime"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/teams"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/votes"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Router struct {
	chi.Router
}

type RouterConfig struct {
	DB             *gorm.DB
	Redis          *redis.Client // optional
	Logger         *slog.Logger
	JWTService     *auth.JWTService
	Accounts       handlers.Accounts
	Teams          teams.Directory
	Proposals      proposals.Store
	Votes          votes.Ledger
	Notifications  notifications.Inbox
	Contact        contact.Inbox
	Hub            *realtime.Hub
	SendBufferSize int      // per-session outbound buffer
	AllowedOrigins []string // CORS and WebSocket allowed origins
	RateLimitReqs  int      // Rate limit requests per window
	WriteLimitReqs int      // Per-user mutating requests per window
	RateLimitSecs  int      // Rate limit window in seconds
}

func NewRouter(cfg RouterConfig) *Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	// Rate limiting - applied globally to prevent abuse
	if cfg.RateLimitReqs > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimitReqs, cfg.RateLimitSecs))
	}

	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:5173"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Auth-Token"},
		ExposedHeaders:   []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	healthHandler := handlers.NewHealthHandler(cfg.DB, cfg.Redis, cfg.Hub)
	authHandler := handlers.NewAuthHandler(cfg.Accounts, cfg.Logger)
	teamHandler := handlers.NewTeamHandler(cfg.Teams, cfg.Proposals, cfg.Logger)
	proposalHandler := handlers.NewProposalHandler(cfg.Proposals, cfg.Logger)
	voteHandler := handlers.NewVoteHandler(cfg.Votes, cfg.Logger)
	notificationHandler := handlers.NewNotificationHandler(cfg.Notifications, cfg.Logger)
	contactHandler := handlers.NewContactHandler(cfg.Contact, cfg.Logger)
	socketHandler := handlers.NewSocketHandler(cfg.Hub, cfg.JWTService, allowedOrigins, cfg.SendBufferSize, cfg.Logger)

	// Health endpoints (no auth required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Realtime; authenticates with ?token=
	r.Get("/ws", socketHandler.Serve)

	r.Route("/api/v1", func(r chi.Router) {
		// Public endpoints
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Get("/public/board/{shareId}", teamHandler.PublicBoard)
		r.Post("/contact", contactHandler.Submit)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWTService))
			if cfg.WriteLimitReqs > 0 {
				r.Use(middleware.RateLimitWritesByUser(cfg.WriteLimitReqs, cfg.RateLimitSecs))
			}

			r.Route("/me", func(r chi.Router) {
				r.Get("/", authHandler.Me)
				r.Put("/", authHandler.UpdateProfile)
				r.Delete("/", authHandler.DeleteAccount)
				r.Put("/password", authHandler.ChangePassword)
			})

			r.Route("/teams", func(r chi.Router) {
				r.Get("/", teamHandler.List)
				r.Post("/", teamHandler.Create)
				r.Get("/mine", teamHandler.Mine)
				r.Get("/{id}", teamHandler.Get)
				r.Put("/{id}", teamHandler.Update)
				r.Delete("/{id}", teamHandler.Delete)
				r.Post("/{id}/join", teamHandler.Join)
				r.Post("/{id}/leave", teamHandler.Leave)
				r.Get("/{id}/proposals", proposalHandler.ListByTeam)
				r.Post("/{id}/proposals", proposalHandler.Create)
			})

			r.Route("/proposals/{id}", func(r chi.Router) {
				r.Get("/", proposalHandler.Get)
				r.Delete("/", proposalHandler.Delete)
				r.Get("/results", voteHandler.Results)
				r.Put("/vote", voteHandler.Cast)
				r.Get("/vote", voteHandler.Mine)
				r.Delete("/vote", voteHandler.Retract)
				r.Get("/comments", proposalHandler.Comments)
				r.Post("/comments", proposalHandler.AddComment)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.List)
				r.Delete("/", notificationHandler.ClearAll)
				r.Get("/unread-count", notificationHandler.UnreadCount)
				r.Post("/read-all", notificationHandler.MarkAllRead)
				r.Patch("/{id}", notificationHandler.MarkRead)
				r.Delete("/{id}", notificationHandler.Delete)
			})

			// Contact inbox administration. Registered flat: mounting a subrouter on
			// /contact would shadow the public POST above.
			r.Get("/contact", contactHandler.List)
			r.Get("/contact/{id}", contactHandler.Get)
			r.Delete("/contact/{id}", contactHandler.Delete)
			r.Put("/contact/{id}/status", contactHandler.UpdateStatus)
		})
	})

	return &Router{r}
}
