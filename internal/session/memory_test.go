package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/dangerclosesec/jobdesk/internal/domain"
	"github.com/dangerclosesec/jobdesk/internal/form"
	"github.com/dangerclosesec/jobdesk/internal/model"
	"github.com/dangerclosesec/jobdesk/internal/review"
	"github.com/dangerclosesec/jobdesk/internal/session"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T) *session.Session {
	t.Helper()
	f, err := form.New(model.TypeProfessionalJob)
	require.NoError(t, err)
	return session.New(uuid.New(), f)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore(time.Minute, time.Minute)

	s := newSession(t)
	require.NoError(t, store.Create(ctx, s))

	t.Run("get returns an independent copy", func(t *testing.T) {
		got, err := store.Get(ctx, s.ID)
		require.NoError(t, err)
		require.NoError(t, got.Form.SetField(form.FieldTitle, "Changed"))

		again, err := store.Get(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, "", again.Form.Common.Title)
	})

	t.Run("save persists edits", func(t *testing.T) {
		got, err := store.Get(ctx, s.ID)
		require.NoError(t, err)
		require.NoError(t, got.Form.SetField(form.FieldTitle, "Backend Engineer"))
		got.Step = form.StepOperations
		id := uuid.New()
		got.ExistingID = &id
		got.Revision = 3
		got.WasVerified = true
		got.Snapshot = review.TakeSnapshot(got.Form)
		require.NoError(t, store.Save(ctx, got))

		again, err := store.Get(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, "Backend Engineer", again.Form.Common.Title)
		assert.Equal(t, form.StepOperations, again.Step)
		assert.True(t, again.Editing())
		assert.Equal(t, int64(3), again.Revision)
		require.NotNil(t, again.Snapshot)
		assert.Equal(t, "Backend Engineer", again.Snapshot.Values[form.FieldTitle])
		assert.Equal(t, form.Lines{""}, again.Form.Common.Description)
	})

	t.Run("delete discards", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, s.ID))
		_, err := store.Get(ctx, s.ID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
		assert.ErrorIs(t, store.Save(ctx, s), domain.ErrSessionNotFound)
	})
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore(20*time.Millisecond, time.Minute)

	s := newSession(t)
	require.NoError(t, store.Create(ctx, s))
	time.Sleep(40 * time.Millisecond)

	_, err := store.Get(ctx, s.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestMemoryStoreAcquire(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore(time.Minute, time.Minute)

	release, err := store.Acquire(ctx, "s1", session.ActionSave)
	require.NoError(t, err)

	_, err = store.Acquire(ctx, "s1", session.ActionSave)
	assert.ErrorIs(t, err, domain.ErrActionInFlight)

	// Locks are per session.
	releaseOther, err := store.Acquire(ctx, "s2", session.ActionSave)
	require.NoError(t, err)
	releaseOther()

	release()
	release, err = store.Acquire(ctx, "s1", session.ActionSave)
	require.NoError(t, err)
	release()
}
