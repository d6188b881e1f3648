package formsession

import (
	"context"
	"errors"
	"testing"
	"time"

	"mrchemist-admin-service/internal/app/config"
	"mrchemist-admin-service/internal/app/models"
	"mrchemist-admin-service/internal/app/services/shared/locker"
	"mrchemist-admin-service/internal/app/services/shared/redis/redistest"
	"mrchemist-admin-service/internal/pkg/constvars"
	"mrchemist-admin-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *draftStore[models.Consultation] {
	repo := redistest.NewRepository(t)
	cfg := &config.InternalConfig{Draft: config.Draft{TTL: time.Hour, LockTTL: time.Minute}}
	return NewDraftStore[models.Consultation](constvars.DraftKindConsultation, repo, locker.NewLockService(repo, zap.NewNop()), cfg, zap.NewNop()).(*draftStore[models.Consultation])
}

func TestDraftStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Save And Find Round Trip", func(t *testing.T) {
		store := newTestStore(t)
		session := models.NewFormSession(constvars.DraftKindConsultation, "admin", models.NewConsultation())
		session.Draft.Title = "Skin Assessment"
		session.SetPendingBranch("q:yes", "{broken")

		require.NoError(t, store.Save(ctx, session))

		found, err := store.Find(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, "Skin Assessment", found.Draft.Title)
		assert.Equal(t, models.FormStatePristine, found.State)
		assert.Equal(t, "{broken", found.PendingBranches["q:yes"])
	})

	t.Run("Missing Draft Is Not Found", func(t *testing.T) {
		store := newTestStore(t)
		_, err := store.Find(ctx, "nope")

		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
	})

	t.Run("Delete", func(t *testing.T) {
		store := newTestStore(t)
		session := models.NewFormSession(constvars.DraftKindConsultation, "admin", models.NewConsultation())
		require.NoError(t, store.Save(ctx, session))
		require.NoError(t, store.Delete(ctx, session.ID))

		_, err := store.Find(ctx, session.ID)
		assert.Error(t, err)
	})

	t.Run("Lock Is Exclusive", func(t *testing.T) {
		store := newTestStore(t)

		err := store.WithLock(ctx, "d1", func() error {
			inner := store.WithLock(ctx, "d1", func() error { return nil })
			var customErr *exceptions.CustomError
			require.True(t, errors.As(inner, &customErr))
			assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
			return nil
		})
		require.NoError(t, err)

		called := false
		require.NoError(t, store.WithLock(ctx, "d1", func() error {
			called = true
			return nil
		}))
		assert.True(t, called, "lock is released after the first holder returns")
	})

	t.Run("Function Error Is Returned", func(t *testing.T) {
		store := newTestStore(t)
		boom := errors.New("boom")
		assert.ErrorIs(t, store.WithLock(ctx, "d2", func() error { return boom }), boom)
	})
}
