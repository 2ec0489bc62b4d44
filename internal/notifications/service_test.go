package notifications_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/database/models"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/domain"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/notifications"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Enqueue(t *testing.T) {
	ts := testutil.NewTestContext(t)
	svc := notifications.NewService(ts.DB, ts.Events, testutil.Logger())
	ctx := testutil.TestContext(t)

	t.Run("persists and pushes to the user room", func(t *testing.T) {
		n, err := svc.Enqueue(ctx, ts.User.ID, notifications.Input{Title: "Hello", Message: "World"})
		require.NoError(t, err)
		assert.Equal(t, models.NotificationInfo, n.Type)
		assert.False(t, n.Read)
		assert.False(t, n.CreatedAt.IsZero())

		pushed := ts.Events.Named(domain.EventNotificationNew)
		require.Len(t, pushed, 1)
		assert.Equal(t, domain.UserRoom(ts.User.ID), pushed[0].Room)
	})

	t.Run("unknown recipient", func(t *testing.T) {
		_, err := svc.Enqueue(ctx, uuid.New(), notifications.Input{Title: "a", Message: "b"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("invalid input", func(t *testing.T) {
		cases := []notifications.Input{
			{Type: "urgent", Title: "a", Message: "b"},
			{Title: " ", Message: "b"},
			{Title: "a", Message: ""},
			{Title: "a", Message: "b", RelatedType: "user"},
		}
		for _, in := range cases {
			_, err := svc.Enqueue(ctx, ts.User.ID, in)
			assert.ErrorIs(t, err, domain.ErrInvalidArgument)
		}
	})
}

func TestService_ListAndCounts(t *testing.T) {
	ts := testutil.NewTestContext(t)
	svc := notifications.NewService(ts.DB, ts.Events, testutil.Logger())
	ctx := testutil.TestContext(t)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		n := &models.Notification{UserID: ts.User.ID, Type: models.NotificationInfo,
			Title: "t", Message: "m", CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, ts.DB.Create(n).Error)
	}

	list, err := svc.List(ctx, ts.User.ID, 0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.True(t, list[0].CreatedAt.After(list[1].CreatedAt))
	assert.True(t, list[1].CreatedAt.After(list[2].CreatedAt))

	limited, err := svc.List(ctx, ts.User.ID, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	unread, err := svc.UnreadCount(ctx, ts.User.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, unread)

	_, err = svc.MarkRead(ctx, list[0].ID, ts.User.ID)
	require.NoError(t, err)
	unread, _ = svc.UnreadCount(ctx, ts.User.ID)
	assert.EqualValues(t, 2, unread)

	marked, err := svc.MarkAllRead(ctx, ts.User.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, marked)

	cleared, err := svc.ClearAll(ctx, ts.User.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, cleared)
}

func TestService_Ownership(t *testing.T) {
	ts := testutil.NewTestContext(t)
	svc := notifications.NewService(ts.DB, ts.Events, testutil.Logger())
	ctx := testutil.TestContext(t)
	stranger := testutil.CreateTestUser(t, ts.DB, "Stranger")

	n, err := svc.Enqueue(ctx, ts.User.ID, notifications.Input{Type: models.NotificationWarning, Title: "a", Message: "b"})
	require.NoError(t, err)

	_, err = svc.MarkRead(ctx, n.ID, stranger.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.ErrorIs(t, svc.Delete(ctx, n.ID, stranger.ID), domain.ErrForbidden)

	_, err = svc.MarkRead(ctx, uuid.New(), ts.User.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, uuid.New(), ts.User.ID), domain.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, n.ID, ts.User.ID))
	list, err := svc.List(ctx, ts.User.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestService_Prune(t *testing.T) {
	ts := testutil.NewTestContext(t)
	svc := notifications.NewService(ts.DB, ts.Events, testutil.Logger())
	ctx := testutil.TestContext(t)

	old := time.Now().Add(-60 * 24 * time.Hour)
	rows := []models.Notification{
		{UserID: ts.User.ID, Type: models.NotificationInfo, Title: "old read", Message: "m", Read: true, CreatedAt: old},
		{UserID: ts.User.ID, Type: models.NotificationInfo, Title: "old unread", Message: "m", CreatedAt: old},
		{UserID: ts.User.ID, Type: models.NotificationInfo, Title: "new read", Message: "m", Read: true, CreatedAt: time.Now()},
	}
	require.NoError(t, ts.DB.Create(&rows).Error)

	pruned, err := svc.Prune(ctx, time.Now().Add(-30*24*time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, pruned)

	list, err := svc.List(ctx, ts.User.ID, 0)
	require.NoError(t, err)
	titles := []string{list[0].Title, list[1].Title}
	assert.ElementsMatch(t, []string{"old unread", "new read"}, titles)
}
