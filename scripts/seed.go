//go:build ignore

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/guru-bharadwaj20/Team-Dashboard/internal/auth"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/database"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/database/models"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/domain"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/notifications"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/proposals"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/teams"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/votes"
	"github.com/guru-bharadwaj20/Team-Dashboard/pkg/config"
	"github.com/guru-bharadwaj20/Team-Dashboard/pkg/util"
	"github.com/joho/godotenv"
)

// Seeds two demo accounts, a shared team and a proposal with a couple of votes.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.NewLogger(cfg.Server.Env, "seed")
	ctx := context.Background()

	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := database.Migrate(ctx, db, logger); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	events := domain.NopBroadcaster{}
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry())
	accounts := auth.NewService(db, jwtService, events, logger)
	inbox := notifications.NewService(db, events, logger)
	ledger := votes.NewService(db, events, inbox, logger)
	directory := teams.NewService(db, events, inbox, ledger, logger)
	store := proposals.NewService(db, events, inbox, logger)

	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "demo1234"
	}

	alice := ensureUser(ctx, accounts, "Alice", "alice@example.com", password)
	bob := ensureUser(ctx, accounts, "Bob", "bob@example.com", password)

	team, err := directory.Create(ctx, alice.ID, "Demo Team", "Seeded for local development")
	if err != nil {
		log.Fatalf("failed to create team: %v", err)
	}
	if _, err := directory.Join(ctx, team.ID, bob.ID); err != nil {
		log.Fatalf("failed to join team: %v", err)
	}

	proposal, err := store.Create(ctx, proposals.CreateInput{
		TeamID:      team.ID,
		CreatorID:   alice.ID,
		Title:       "Offsite location",
		Description: "Pick where we meet next quarter",
		Options:     []string{"Lisbon", "Berlin", "Remote"},
	})
	if err != nil {
		log.Fatalf("failed to create proposal: %v", err)
	}
	for _, v := range []struct {
		user   *models.User
		option int
	}{{alice, 0}, {bob, 2}} {
		if err := ledger.CastVote(ctx, proposal.ID, v.user.ID, proposal.Options[v.option].ID); err != nil {
			log.Fatalf("failed to cast vote: %v", err)
		}
	}

	fmt.Printf("Seed complete\n")
	fmt.Printf("Users: %s, %s (password %q)\n", alice.Email, bob.Email, password)
	fmt.Printf("Team: %s (public board /api/v1/public/board/%s)\n", team.Name, team.ShareID)
}

func ensureUser(ctx context.Context, accounts *auth.Service, name, email, password string) *models.User {
	resp, err := accounts.Register(ctx, auth.RegisterInput{Email: email, Password: password, Name: name})
	if err == nil {
		return resp.User
	}
	if !errors.Is(err, auth.ErrUserExists) {
		log.Fatalf("failed to create %s: %v", email, err)
	}
	login, err := accounts.Login(ctx, auth.LoginInput{Email: email, Password: password})
	if err != nil {
		log.Fatalf("%s exists with a different password: %v", email, err)
	}
	return login.User
}
