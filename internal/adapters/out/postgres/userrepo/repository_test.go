package userrepo_test

import (
	"testing"

	"parcel/internal/adapters/out/postgres/pgtest"
	"parcel/internal/adapters/out/postgres/userrepo"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/user"
	"parcel/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormUserRepository(t *testing.T) {
	repo := userrepo.NewGormUserRepository(pgtest.SQLite(t))
	u, err := user.NewUser(kernel.NewUUID(), "Ann Smith", "Ann@Example.com", user.RoleDriver)
	require.NoError(t, err)

	require.NoError(t, repo.Add(t.Context(), u))

	t.Run("get round trips", func(t *testing.T) {
		got, err := repo.Get(t.Context(), u.ID())

		require.NoError(t, err)
		assert.Equal(t, "Ann Smith", got.Name())
		assert.Equal(t, "ann@example.com", got.Email())
		assert.Equal(t, user.RoleDriver, got.Role())
	})

	t.Run("email is unique", func(t *testing.T) {
		dup, err := user.NewUser(kernel.NewUUID(), "Other", "ann@example.com", user.RoleCustomer)
		require.NoError(t, err)

		err = repo.Add(t.Context(), dup)

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Contains(t, err.Error(), userrepo.RuleEmailTaken)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := repo.Get(t.Context(), kernel.NewUUID())

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}
