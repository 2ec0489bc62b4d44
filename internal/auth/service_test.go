package auth_test

import (
	"testing"

	"github.com/guru-bharadwaj20/Team-Dashboard/internal/auth"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/database/models"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/domain"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (*auth.Service, *testutil.TestSetup) {
	t.Helper()
	ts := testutil.NewTestContext(t)
	return auth.NewService(ts.DB, ts.JWTService, ts.Events, testutil.Logger()), ts
}

func TestService_Register(t *testing.T) {
	svc, ts := newService(t)
	ctx := testutil.TestContext(t)

	t.Run("creates user and token", func(t *testing.T) {
		resp, err := svc.Register(ctx, auth.RegisterInput{Name: "Ada", Email: " Ada@Example.com ", Password: "secret1"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "ada@example.com", resp.User.Email)

		claims, err := ts.JWTService.ValidateToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, resp.User.ID, claims.UserID)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, auth.RegisterInput{Name: "Other", Email: "ada@example.com", Password: "secret1"})
		assert.ErrorIs(t, err, auth.ErrUserExists)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := svc.Register(ctx, auth.RegisterInput{Name: "Bob", Email: "bob@example.com", Password: "12345"})
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})

	t.Run("rejects missing name", func(t *testing.T) {
		_, err := svc.Register(ctx, auth.RegisterInput{Name: "  ", Email: "carl@example.com", Password: "secret1"})
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})
}

func TestService_Login(t *testing.T) {
	svc, ts := newService(t)
	ctx := testutil.TestContext(t)

	t.Run("accepts correct password", func(t *testing.T) {
		resp, err := svc.Login(ctx, auth.LoginInput{Email: ts.User.Email, Password: "testpassword123"})
		require.NoError(t, err)
		assert.Equal(t, ts.User.ID, resp.User.ID)
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.LoginInput{Email: ts.User.Email, Password: "nope"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("rejects unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.LoginInput{Email: "ghost@example.com", Password: "testpassword123"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestService_UpdateProfile(t *testing.T) {
	svc, ts := newService(t)
	ctx := testutil.TestContext(t)
	other := testutil.CreateTestUser(t, ts.DB, "Other")

	user, err := svc.UpdateProfile(ctx, ts.User.ID, auth.ProfileInput{Name: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", user.Name)
	assert.Equal(t, ts.User.Email, user.Email)

	_, err = svc.UpdateProfile(ctx, ts.User.ID, auth.ProfileInput{Email: other.Email})
	assert.ErrorIs(t, err, auth.ErrUserExists)
}

func TestService_ChangePassword(t *testing.T) {
	svc, ts := newService(t)
	ctx := testutil.TestContext(t)

	err := svc.ChangePassword(ctx, ts.User.ID, "wrong", "newsecret")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	err = svc.ChangePassword(ctx, ts.User.ID, "testpassword123", "short")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	require.NoError(t, svc.ChangePassword(ctx, ts.User.ID, "testpassword123", "newsecret"))
	_, err = svc.Login(ctx, auth.LoginInput{Email: ts.User.Email, Password: "newsecret"})
	assert.NoError(t, err)
}

func TestService_DeleteAccount(t *testing.T) {
	svc, ts := newService(t)
	ctx := testutil.TestContext(t)
	db := ts.DB
	member := testutil.CreateTestUser(t, db, "Member")

	team := &models.Team{Name: "Owned", CreatorID: ts.User.ID, ShareID: "a1b2c3d4e5f6"}
	require.NoError(t, db.Create(team).Error)
	require.NoError(t, db.Create(&models.TeamMember{TeamID: team.ID, UserID: ts.User.ID}).Error)
	require.NoError(t, db.Create(&models.TeamMember{TeamID: team.ID, UserID: member.ID}).Error)

	proposal := &models.Proposal{TeamID: team.ID, Title: "Lunch", CreatorID: member.ID,
		Options: []models.Option{{Position: 0, Text: "Pizza"}, {Position: 1, Text: "Sushi"}}}
	require.NoError(t, db.Create(proposal).Error)
	require.NoError(t, db.Create(&models.Vote{ProposalID: proposal.ID, UserID: member.ID, OptionID: proposal.Options[0].ID}).Error)
	require.NoError(t, db.Create(&models.Notification{UserID: ts.User.ID, Type: models.NotificationInfo, Title: "t", Message: "m"}).Error)

	require.NoError(t, svc.DeleteAccount(ctx, ts.User.ID))

	for _, model := range []any{&models.Team{}, &models.TeamMember{}, &models.Proposal{}, &models.Option{}, &models.Vote{}, &models.Notification{}} {
		var n int64
		require.NoError(t, db.Model(model).Count(&n).Error)
		assert.Zero(t, n, "%T rows left", model)
	}

	_, err := svc.GetUserByID(ctx, ts.User.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	deleted := ts.Events.Named(domain.EventTeamDeleted)
	require.Len(t, deleted, 1)
	assert.Equal(t, domain.RoomGlobal, deleted[0].Room)

	assert.ErrorIs(t, svc.DeleteAccount(ctx, ts.User.ID), auth.ErrUserNotFound)
}
