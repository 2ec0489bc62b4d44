package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/api"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/auth"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/contact"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/database"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/domain"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/notifications"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/proposals"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/realtime"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/teams"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/votes"
	"github.com/guru-bharadwaj20/Team-Dashboard/pkg/config"
	"github.com/guru-bharadwaj20/Team-Dashboard/pkg/util"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := util.NewLogger(cfg.Server.Env, "server")
	slog.SetDefault(logger)

	logger.Info("starting team board server",
		"env", cfg.Server.Env,
		"addr", cfg.Server.Addr(),
	)

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.Sentry.DSN,
			Environment:      cfg.Server.Env,
			AttachStacktrace: true,
		}); err != nil {
			logger.Warn("sentry disabled", "error", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	// Connect to database
	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := database.Migrate(ctx, db, logger); err != nil {
		logger.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	hub := realtime.NewHub(logger)
	var events domain.Broadcaster = hub

	// Redis is optional: with it, realtime events fan out across every instance.
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("failed to connect to Redis, realtime stays local", "error", err)
			redisClient.Close()
			redisClient = nil
		}
	}
	if redisClient != nil {
		relay := realtime.NewRelay(hub, redisClient, cfg.Realtime.Channel, logger)
		go func() {
			if err := relay.Run(ctx); err != nil {
				logger.Error("realtime relay stopped, delivering locally", "error", err)
			}
		}()
		events = relay
	}

	// Initialize services
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry())
	inbox := notifications.NewService(db, events, logger)
	ledger := votes.NewService(db, events, inbox, logger)

	router := api.NewRouter(api.RouterConfig{
		DB:             db,
		Redis:          redisClient,
		Logger:         logger,
		JWTService:     jwtService,
		Accounts:       auth.NewService(db, jwtService, events, logger),
		Teams:          teams.NewService(db, events, inbox, ledger, logger),
		Proposals:      proposals.NewService(db, events, inbox, logger),
		Votes:          ledger,
		Notifications:  inbox,
		Contact:        contact.NewService(db, logger),
		Hub:            hub,
		SendBufferSize: cfg.Realtime.SendBufferSize,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RateLimitReqs:  cfg.RateLimit.Requests,
		WriteLimitReqs: cfg.RateLimit.WriteRequests,
		RateLimitSecs:  cfg.RateLimit.WindowSeconds,
	})

	// Create HTTP server. No write timeout: WebSocket connections manage their own deadlines.
	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server listening", "addr", cfg.Server.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	cancel()

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	// Close Redis connection
	if redisClient != nil {
		redisClient.Close()
	}

	// Close database connection
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Info("server stopped", "sessions_dropped", hub.SessionCount())
}
