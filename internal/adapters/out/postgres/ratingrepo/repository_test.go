package ratingrepo_test

import (
	"testing"
	"time"

	"parcel/internal/adapters/out/postgres/pgtest"
	"parcel/internal/adapters/out/postgres/ratingrepo"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/rating"
	"parcel/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restored(t *testing.T, orderID, to kernel.UUID, score int, at time.Time) *rating.Rating {
	t.Helper()
	r, err := rating.RestoreRating(kernel.NewUUID(), orderID, kernel.NewUUID(), to,
		rating.TargetDriver, score, "", at)
	require.NoError(t, err)
	return r
}

func TestGormRatingRepository(t *testing.T) {
	repo := ratingrepo.NewGormRatingRepository(pgtest.SQLite(t))
	driverUser := kernel.NewUUID()
	rated := kernel.NewUUID()
	now := time.Now().UTC()

	require.NoError(t, repo.Add(t.Context(), restored(t, rated, driverUser, 3, now)))
	require.NoError(t, repo.Add(t.Context(), restored(t, kernel.NewUUID(), driverUser, 5, now.Add(time.Second))))
	require.NoError(t, repo.Add(t.Context(), restored(t, kernel.NewUUID(), kernel.NewUUID(), 1, now)))

	t.Run("exists for order", func(t *testing.T) {
		exists, err := repo.ExistsForOrder(t.Context(), rated)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsForOrder(t.Context(), kernel.NewUUID())
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("scores for user", func(t *testing.T) {
		scores, err := repo.ScoresForUser(t.Context(), driverUser)

		require.NoError(t, err)
		assert.Equal(t, []int{3, 5}, scores)
	})

	t.Run("second rating for an order", func(t *testing.T) {
		err := repo.Add(t.Context(), restored(t, rated, driverUser, 4, now))

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Contains(t, err.Error(), rating.RuleAlreadyRated)
	})
}
