package rating_test

import (
	"testing"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/order"
	"parcel/internal/core/domain/model/rating"
	"parcel/internal/core/domain/model/user"
	"parcel/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)

type parties struct {
	customer user.Actor
	driver   user.Actor
}

func newPendingOrder(t *testing.T, customerID kernel.UUID) *order.Order {
	t.Helper()
	m := kernel.MustMoney
	pricing, err := order.NewPricing(decimal.NewFromInt(1), m("5.00"), m("0.00"), m("5.00"), m("0.75"), m("4.25"), 2)
	require.NoError(t, err)
	details := order.Details{
		Package:  order.Package{Type: order.PackageSmall},
		Pickup:   order.Address{Line: "A"},
		Delivery: order.Address{Line: "B"},
	}
	o, err := order.NewOrder(kernel.NewUUID(), "N-1", "Q-1", customerID, details, pricing, now)
	require.NoError(t, err)
	return o
}

func newOrder(t *testing.T, deliver bool) (*order.Order, parties) {
	t.Helper()
	p := parties{
		customer: user.Actor{ID: kernel.NewUUID(), Role: user.RoleCustomer},
		driver:   user.Actor{ID: kernel.NewUUID(), Role: user.RoleDriver},
	}
	o := newPendingOrder(t, p.customer.ID)
	require.NoError(t, o.Accept(p.driver, now))
	if deliver {
		require.NoError(t, o.PickUp(p.driver, now))
		require.NoError(t, o.Deliver(p.driver, now))
	}
	return o, p
}

func TestNewRating(t *testing.T) {
	t.Run("customer rates the driver", func(t *testing.T) {
		o, p := newOrder(t, true)

		r, err := rating.NewRating(kernel.NewUUID(), o, p.customer, 5, " great ", now)

		require.NoError(t, err)
		require.NoError(t, r.Validate())
		assert.True(t, r.FromUserID().IsEqual(p.customer.ID))
		assert.True(t, r.ToUserID().IsEqual(p.driver.ID))
		assert.True(t, r.TargetsDriver())
		assert.Equal(t, 5, r.Score())
		assert.Equal(t, "great", r.Comment())
	})

	t.Run("driver rates the customer", func(t *testing.T) {
		o, p := newOrder(t, true)

		r, err := rating.NewRating(kernel.NewUUID(), o, p.driver, 3, "", now)

		require.NoError(t, err)
		assert.True(t, r.ToUserID().IsEqual(p.customer.ID))
		assert.Equal(t, rating.TargetCustomer, r.Target())
		assert.False(t, r.TargetsDriver())
	})

	t.Run("strangers are forbidden", func(t *testing.T) {
		o, _ := newOrder(t, true)
		stranger := user.Actor{ID: kernel.NewUUID(), Role: user.RoleAdmin}

		_, err := rating.NewRating(kernel.NewUUID(), o, stranger, 4, "", now)

		require.ErrorIs(t, err, errs.ErrForbidden)
		assert.Contains(t, err.Error(), rating.RuleNotParticipant)
	})

	t.Run("undelivered orders conflict", func(t *testing.T) {
		o, p := newOrder(t, false)

		_, err := rating.NewRating(kernel.NewUUID(), o, p.customer, 4, "", now)

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Contains(t, err.Error(), rating.RuleNotDelivered)
	})

	t.Run("customer rating an order no driver took conflicts", func(t *testing.T) {
		p := parties{customer: user.Actor{ID: kernel.NewUUID(), Role: user.RoleCustomer}}
		o := newPendingOrder(t, p.customer.ID)

		_, err := rating.NewRating(kernel.NewUUID(), o, p.customer, 4, "", now)
		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, errs.KindConflict, errs.KindOf(err))
		assert.Contains(t, err.Error(), rating.RuleNotDelivered)

		require.NoError(t, o.Cancel(p.customer, "changed my mind", now))

		_, err = rating.NewRating(kernel.NewUUID(), o, p.customer, 4, "", now)
		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Contains(t, err.Error(), "CANCELLED")
	})

	t.Run("stranger on an undelivered order is still forbidden", func(t *testing.T) {
		o, _ := newOrder(t, false)
		stranger := user.Actor{ID: kernel.NewUUID(), Role: user.RoleCustomer}

		_, err := rating.NewRating(kernel.NewUUID(), o, stranger, 4, "", now)

		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("score out of range is a validation error", func(t *testing.T) {
		o, p := newOrder(t, true)

		for _, score := range []int{0, 6, -1} {
			_, err := rating.NewRating(kernel.NewUUID(), o, p.customer, score, "", now)

			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
			assert.Equal(t, errs.KindValidation, errs.KindOf(err))
		}
	})
}

func TestRestoreRating(t *testing.T) {
	r, err := rating.RestoreRating(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		rating.TargetDriver, 4, "ok", now)
	require.NoError(t, err)
	assert.Equal(t, 4, r.Score())

	_, err = rating.RestoreRating(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		rating.TargetUnknown, 4, "ok", now)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	target, err := rating.ParseTarget("customer")
	require.NoError(t, err)
	assert.Equal(t, rating.TargetCustomer, target)
}
