package proposals_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/database/models"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/domain"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/notifications"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/proposals"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	*testutil.TestSetup
	svc    *proposals.Service
	team   *models.Team
	member *models.User
}

func setup(t *testing.T) *fixture {
	t.Helper()
	ts := testutil.NewTestContext(t)
	log := testutil.Logger()

	member := testutil.CreateTestUser(t, ts.DB, "Member")
	team := &models.Team{Name: "Core", CreatorID: ts.User.ID, ShareID: "abcdef012345"}
	require.NoError(t, ts.DB.Create(team).Error)
	for _, id := range []uuid.UUID{ts.User.ID, member.ID} {
		require.NoError(t, ts.DB.Create(&models.TeamMember{TeamID: team.ID, UserID: id, JoinedAt: time.Now()}).Error)
	}

	notifier := notifications.NewService(ts.DB, ts.Events, log)
	return &fixture{
		TestSetup: ts,
		svc:       proposals.NewService(ts.DB, ts.Events, notifier, log),
		team:      team,
		member:    member,
	}
}

func (f *fixture) input(options ...string) proposals.CreateInput {
	return proposals.CreateInput{
		TeamID:    f.team.ID,
		CreatorID: f.User.ID,
		Title:     "Pick one",
		Options:   options,
	}
}

func optionList(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("Option %d", i+1)
	}
	return out
}

func TestService_CreateOptionBounds(t *testing.T) {
	f := setup(t)
	ctx := testutil.TestContext(t)

	tests := []struct {
		count   int
		wantErr bool
	}{
		{count: 1, wantErr: true},
		{count: 2},
		{count: 5},
		{count: 6, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d options", tt.count), func(t *testing.T) {
			p, err := f.svc.Create(ctx, f.input(optionList(tt.count)...))
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Len(t, p.Options, tt.count)
		})
	}
}

func TestService_CreateValidation(t *testing.T) {
	f := setup(t)
	ctx := testutil.TestContext(t)

	in := f.input("Yes", "  ")
	_, err := f.svc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	in = f.input("Yes", "No")
	in.Title = "   "
	_, err = f.svc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	in = f.input("Yes", "No")
	in.TeamID = uuid.New()
	_, err = f.svc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var n int64
	require.NoError(t, f.DB.Model(&models.Proposal{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestService_CreateKeepsOptionOrderAndNotifies(t *testing.T) {
	f := setup(t)
	ctx := testutil.TestContext(t)

	created, err := f.svc.Create(ctx, f.input("Zebra", "Apple", "Mango"))
	require.NoError(t, err)

	got, err := f.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	texts := []string{got.Options[0].Text, got.Options[1].Text, got.Options[2].Text}
	assert.Equal(t, []string{"Zebra", "Apple", "Mango"}, texts)

	emitted := f.Events.Named(domain.EventProposalCreated)
	require.Len(t, emitted, 1)
	assert.Equal(t, domain.TeamRoom(f.team.ID), emitted[0].Room)

	var inbox []models.Notification
	require.NoError(t, f.DB.Find(&inbox).Error)
	require.Len(t, inbox, 1)
	assert.Equal(t, f.member.ID, inbox[0].UserID)
	assert.Equal(t, "New Proposal", inbox[0].Title)
}

func TestService_ListByTeam(t *testing.T) {
	f := setup(t)
	ctx := testutil.TestContext(t)

	_, err := f.svc.ListByTeam(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	first, err := f.svc.Create(ctx, f.input("a", "b"))
	require.NoError(t, err)
	require.NoError(t, f.DB.Model(first).Update("created_at", time.Now().Add(-time.Hour)).Error)
	second, err := f.svc.Create(ctx, f.input("c", "d"))
	require.NoError(t, err)

	list, err := f.svc.ListByTeam(ctx, f.team.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestService_Comments(t *testing.T) {
	f := setup(t)
	ctx := testutil.TestContext(t)
	p, err := f.svc.Create(ctx, f.input("a", "b"))
	require.NoError(t, err)

	_, err = f.svc.AddComment(ctx, p.ID, f.member.ID, "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	_, err = f.svc.AddComment(ctx, uuid.New(), f.member.ID, "hi")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	c1, err := f.svc.AddComment(ctx, p.ID, f.member.ID, "first")
	require.NoError(t, err)
	require.NoError(t, f.DB.Model(c1).Update("created_at", time.Now().Add(-time.Minute)).Error)
	_, err = f.svc.AddComment(ctx, p.ID, f.User.ID, "second")
	require.NoError(t, err)

	thread, err := f.svc.Comments(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, thread, 2)
	assert.Equal(t, "first", thread[0].Text)
	assert.Equal(t, "second", thread[1].Text)
	require.NotNil(t, thread[0].Author)
	assert.Equal(t, "Member", thread[0].Author.Name)

	assert.Len(t, f.Events.Named(domain.EventCommentAdded), 2)

	// Only the member's comment notifies the creator.
	var n int64
	require.NoError(t, f.DB.Model(&models.Notification{}).
		Where("user_id = ? AND title = ?", f.User.ID, "New Comment").Count(&n).Error)
	assert.EqualValues(t, 1, n)

	_, err = f.svc.Comments(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_Delete(t *testing.T) {
	f := setup(t)
	ctx := testutil.TestContext(t)
	p, err := f.svc.Create(ctx, f.input("a", "b"))
	require.NoError(t, err)
	require.NoError(t, f.DB.Create(&models.Vote{ProposalID: p.ID, UserID: f.member.ID, OptionID: p.Options[0].ID, CastAt: time.Now()}).Error)
	_, err = f.svc.AddComment(ctx, p.ID, f.member.ID, "nice")
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.Delete(ctx, p.ID, f.member.ID), domain.ErrForbidden)
	assert.ErrorIs(t, f.svc.Delete(ctx, uuid.New(), f.User.ID), domain.ErrNotFound)

	require.NoError(t, f.svc.Delete(ctx, p.ID, f.User.ID))

	for _, model := range []any{&models.Proposal{}, &models.Option{}, &models.Vote{}, &models.Comment{}} {
		var n int64
		require.NoError(t, f.DB.Model(model).Count(&n).Error)
		assert.Zero(t, n, "%T rows left", model)
	}

	deleted := f.Events.Named(domain.EventProposalDeleted)
	require.Len(t, deleted, 1)
	assert.Equal(t, domain.TeamRoom(f.team.ID), deleted[0].Room)

	_, err = f.svc.Get(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
