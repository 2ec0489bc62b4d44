package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/api/handlers"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/api/middleware"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/auth"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/contact"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/database/models"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/notifications"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/proposals"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/teams"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/testutil"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/votes"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	*testutil.TestSetup
	router    *chi.Mux
	inbox     *notifications.Service
	teams     *teams.Service
	proposals *proposals.Service
	ledger    *votes.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tc := testutil.NewTestContext(t)
	logger := testutil.Logger()

	inbox := notifications.NewService(tc.DB, tc.Events, logger)
	ledger := votes.NewService(tc.DB, tc.Events, inbox, logger)
	store := proposals.NewService(tc.DB, tc.Events, inbox, logger)
	directory := teams.NewService(tc.DB, tc.Events, inbox, ledger, logger)
	accounts := auth.NewService(tc.DB, tc.JWTService, tc.Events, logger)

	authHandler := handlers.NewAuthHandler(accounts, logger)
	teamHandler := handlers.NewTeamHandler(directory, store, logger)
	proposalHandler := handlers.NewProposalHandler(store, logger)
	voteHandler := handlers.NewVoteHandler(ledger, logger)
	notificationHandler := handlers.NewNotificationHandler(inbox, logger)
	contactHandler := handlers.NewContactHandler(contact.NewService(tc.DB, logger), logger)

	r := chi.NewRouter()
	r.Post("/auth/register", authHandler.Register)
	r.Post("/auth/login", authHandler.Login)
	r.Get("/public/board/{shareId}", teamHandler.PublicBoard)
	r.Post("/contact", contactHandler.Submit)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(tc.JWTService))

		r.Get("/me", authHandler.Me)
		r.Put("/me", authHandler.UpdateProfile)
		r.Delete("/me", authHandler.DeleteAccount)
		r.Put("/me/password", authHandler.ChangePassword)

		r.Get("/teams", teamHandler.List)
		r.Post("/teams", teamHandler.Create)
		r.Get("/teams/mine", teamHandler.Mine)
		r.Get("/teams/{id}", teamHandler.Get)
		r.Put("/teams/{id}", teamHandler.Update)
		r.Delete("/teams/{id}", teamHandler.Delete)
		r.Post("/teams/{id}/join", teamHandler.Join)
		r.Post("/teams/{id}/leave", teamHandler.Leave)
		r.Get("/teams/{id}/proposals", proposalHandler.ListByTeam)
		r.Post("/teams/{id}/proposals", proposalHandler.Create)

		r.Get("/proposals/{id}", proposalHandler.Get)
		r.Delete("/proposals/{id}", proposalHandler.Delete)
		r.Get("/proposals/{id}/results", voteHandler.Results)
		r.Put("/proposals/{id}/vote", voteHandler.Cast)
		r.Get("/proposals/{id}/vote", voteHandler.Mine)
		r.Delete("/proposals/{id}/vote", voteHandler.Retract)
		r.Get("/proposals/{id}/comments", proposalHandler.Comments)
		r.Post("/proposals/{id}/comments", proposalHandler.AddComment)

		r.Get("/notifications", notificationHandler.List)
		r.Delete("/notifications", notificationHandler.ClearAll)
		r.Get("/notifications/unread-count", notificationHandler.UnreadCount)
		r.Post("/notifications/read-all", notificationHandler.MarkAllRead)
		r.Patch("/notifications/{id}", notificationHandler.MarkRead)
		r.Delete("/notifications/{id}", notificationHandler.Delete)

		r.Get("/contact", contactHandler.List)
		r.Get("/contact/{id}", contactHandler.Get)
		r.Delete("/contact/{id}", contactHandler.Delete)
		r.Put("/contact/{id}/status", contactHandler.UpdateStatus)
	})

	return &fixture{
		TestSetup: tc,
		router:    r,
		inbox:     inbox,
		teams:     directory,
		proposals: store,
		ledger:    ledger,
	}
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

// secondUser creates another account and returns it with a token.
func (f *fixture) secondUser(t *testing.T, name string) (*models.User, string) {
	t.Helper()
	user := testutil.CreateTestUser(t, f.DB, name)
	return user, testutil.GenerateTestToken(t, f.JWTService, user)
}

func (f *fixture) createTeam(t *testing.T, token, name string) models.Team {
	t.Helper()
	rec := f.do(testutil.AuthenticatedRequest(t, "POST", "/teams", map[string]any{"name": name}, token))
	testutil.AssertStatus(t, rec, http.StatusCreated)
	var team models.Team
	testutil.ParseJSONResponse(t, rec, &team)
	require.NotEmpty(t, team.ShareID)
	return team
}

func (f *fixture) createProposal(t *testing.T, token string, teamID string, options ...string) models.Proposal {
	t.Helper()
	rec := f.do(testutil.AuthenticatedRequest(t, "POST", "/teams/"+teamID+"/proposals", map[string]any{
		"title":   "Where to eat",
		"options": options,
	}, token))
	testutil.AssertStatus(t, rec, http.StatusCreated)
	var p models.Proposal
	testutil.ParseJSONResponse(t, rec, &p)
	require.Len(t, p.Options, len(options))
	return p
}
