package contact_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/contact"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/database/models"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/domain"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() contact.SubmitInput {
	return contact.SubmitInput{
		Name:    "Dana",
		Email:   "Dana@Example.com",
		Subject: "Feature idea",
		Message: "Ranked-choice voting would be great.",
	}
}

func TestService_Submit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := contact.NewService(db, testutil.Logger())
	ctx := testutil.TestContext(t)

	msg, err := svc.Submit(ctx, validInput())
	require.NoError(t, err)
	assert.Equal(t, models.ContactNew, msg.Status)
	assert.Equal(t, "dana@example.com", msg.Email)

	short := validInput()
	short.Message = "too short"
	_, err = svc.Submit(ctx, short)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	noSubject := validInput()
	noSubject.Subject = " "
	_, err = svc.Submit(ctx, noSubject)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestService_Lifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := contact.NewService(db, testutil.Logger())
	ctx := testutil.TestContext(t)

	first, err := svc.Submit(ctx, validInput())
	require.NoError(t, err)
	require.NoError(t, db.Model(first).Update("created_at", time.Now().Add(-time.Hour)).Error)
	second, err := svc.Submit(ctx, validInput())
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)

	updated, err := svc.UpdateStatus(ctx, first.ID, models.ContactResponded)
	require.NoError(t, err)
	assert.Equal(t, models.ContactResponded, updated.Status)

	_, err = svc.UpdateStatus(ctx, first.ID, "archived")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	_, err = svc.UpdateStatus(ctx, uuid.New(), models.ContactRead)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, first.ID))
	assert.ErrorIs(t, svc.Delete(ctx, first.ID), domain.ErrNotFound)
	_, err = svc.Get(ctx, first.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
