package payment_test

import (
	"testing"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/payment"
	"parcel/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCompleted(t *testing.T) {
	now := time.Now()

	t.Run("should create completed payment", func(t *testing.T) {
		orderID := kernel.NewUUID()

		p, err := payment.NewCompleted(kernel.NewUUID(), orderID, kernel.MustMoney("12.48"), "eur", now)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.Equal(t, payment.StatusCompleted, p.Status())
		assert.Equal(t, "EUR", p.Currency())
		assert.Equal(t, "12.48", p.Amount().String())
		assert.True(t, p.OrderID().IsEqual(orderID))
	})

	t.Run("should reject invalid fields", func(t *testing.T) {
		p, err := payment.NewCompleted(kernel.NewUUID(), kernel.UUID{}, kernel.MustMoney("-1"), "euro", now)

		require.Error(t, err)
		assert.Nil(t, p)
		assert.Contains(t, err.Error(), "amount")
		assert.Contains(t, err.Error(), "currency")
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestRestorePayment(t *testing.T) {
	_, err := payment.RestorePayment(kernel.NewUUID(), kernel.NewUUID(), kernel.ZeroMoney, "USD", payment.StatusUnknown, time.Now())
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	status, err := payment.ParseStatus("refunded")
	require.NoError(t, err)
	p, err := payment.RestorePayment(kernel.NewUUID(), kernel.NewUUID(), kernel.ZeroMoney, "USD", status, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "REFUNDED", p.Status().String())
}
