package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/database"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/domain"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/notifications"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/tasks"
	"github.com/guru-bharadwaj20/Team-Dashboard/pkg/config"
	"github.com/guru-bharadwaj20/Team-Dashboard/pkg/queue"
	"github.com/guru-bharadwaj20/Team-Dashboard/pkg/util"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
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
	logger := util.NewLogger(cfg.Server.Env, "worker")
	slog.SetDefault(logger)

	logger.Info("starting team board worker")

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Server.Env,
		}); err != nil {
			logger.Warn("sentry disabled", "error", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	if err := util.ValidateCronExpr(cfg.Notifications.PruneCron); err != nil {
		logger.Error("invalid NOTIFICATION_PRUNE_CRON", "cron", cfg.Notifications.PruneCron, "error", err)
		os.Exit(1)
	}

	// Connect to database
	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	// Pruning never emits live events.
	inbox := notifications.NewService(db, domain.NopBroadcaster{}, logger)
	handler := tasks.NewHandler(inbox, cfg.Notifications.Retention(), logger)

	mux := asynq.NewServeMux()
	handler.RegisterHandlers(mux)

	srv := queue.NewServer(&cfg.Redis, 5, logger)
	if err := srv.Start(mux); err != nil {
		logger.Error("failed to start worker", "error", err)
		os.Exit(1)
	}

	scheduler := queue.NewScheduler(&cfg.Redis)
	pruneTask, err := tasks.NewPruneTask(cfg.Notifications.RetentionDays)
	if err != nil {
		logger.Error("failed to build prune task", "error", err)
		os.Exit(1)
	}
	entryID, err := scheduler.Register(cfg.Notifications.PruneCron, pruneTask)
	if err != nil {
		logger.Error("failed to schedule prune task", "error", err)
		os.Exit(1)
	}
	if err := scheduler.Start(); err != nil {
		logger.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}

	if next, err := util.NextCronTime(cfg.Notifications.PruneCron, time.Now()); err == nil {
		logger.Info("worker started", "prune_entry", entryID, "next_prune", next.Format(time.RFC3339))
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down worker...")
	scheduler.Shutdown()
	srv.Shutdown()

	// Close database connection
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Info("worker stopped")
}
