package order_test

import (
	"fmt"
	"testing"

	"parcel/internal/core/domain/model/order"
	"parcel/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStatuses = []order.Status{
	order.Pending,
	order.Accepted,
	order.PickedUp,
	order.InTransit,
	order.Delivered,
	order.Cancelled,
	order.Refunded,
}

func TestStatus_Validate(t *testing.T) {
	for _, status := range allStatuses {
		t.Run(fmt.Sprintf("should validate %s status", status), func(t *testing.T) {
			require.NoError(t, status.Validate())
		})
	}

	t.Run("should reject Unknown status", func(t *testing.T) {
		err := order.Unknown.Validate()

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, "UNKNOWN", order.Unknown.String())
	})

	t.Run("should reject out of range status", func(t *testing.T) {
		require.ErrorIs(t, order.Status(42).Validate(), errs.ErrValueIsInvalid)
	})
}

func TestParseStatus(t *testing.T) {
	t.Run("should round trip every wire name", func(t *testing.T) {
		for _, status := range allStatuses {
			parsed, err := order.ParseStatus(status.String())

			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		}
	})

	t.Run("should accept lower case", func(t *testing.T) {
		parsed, err := order.ParseStatus("picked_up")

		require.NoError(t, err)
		assert.Equal(t, order.PickedUp, parsed)
	})

	t.Run("should reject unknown name", func(t *testing.T) {
		_, err := order.ParseStatus("LOST")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	terminal := map[order.Status]bool{
		order.Delivered: true,
		order.Cancelled: true,
		order.Refunded:  true,
	}
	for _, status := range allStatuses {
		assert.Equal(t, terminal[status], status.IsTerminal(), status.String())
	}
}

func TestStatus_Transitions(t *testing.T) {
	type transition func(order.Status) (order.Status, error)

	accept := func(s order.Status) (order.Status, error) { return s.Accept() }
	pickUp := func(s order.Status) (order.Status, error) { return s.PickUp() }
	deliver := func(s order.Status) (order.Status, error) { return s.Deliver() }
	cancel := func(s order.Status) (order.Status, error) { return s.Cancel() }

	tests := []struct {
		name     string
		from     order.Status
		apply    transition
		expected order.Status
		rule     string
	}{
		{"accept pending", order.Pending, accept, order.Accepted, ""},
		{"accept accepted", order.Accepted, accept, order.Unknown, order.RuleAlreadyAccepted},
		{"accept picked up", order.PickedUp, accept, order.Unknown, order.RuleAlreadyAccepted},
		{"accept delivered", order.Delivered, accept, order.Unknown, order.RuleTerminalState},
		{"accept cancelled", order.Cancelled, accept, order.Unknown, order.RuleTerminalState},
		{"pick up accepted", order.Accepted, pickUp, order.PickedUp, ""},
		{"pick up pending", order.Pending, pickUp, order.Unknown, order.RuleNotYetAccepted},
		{"pick up picked up", order.PickedUp, pickUp, order.Unknown, order.RuleNotYetAccepted},
		{"pick up refunded", order.Refunded, pickUp, order.Unknown, order.RuleTerminalState},
		{"deliver picked up", order.PickedUp, deliver, order.Delivered, ""},
		{"deliver in transit", order.InTransit, deliver, order.Delivered, ""},
		{"deliver accepted", order.Accepted, deliver, order.Unknown, order.RuleNotYetPickedUp},
		{"deliver delivered", order.Delivered, deliver, order.Unknown, order.RuleTerminalState},
		{"cancel pending", order.Pending, cancel, order.Cancelled, ""},
		{"cancel accepted", order.Accepted, cancel, order.Cancelled, ""},
		{"cancel picked up", order.PickedUp, cancel, order.Cancelled, ""},
		{"cancel delivered", order.Delivered, cancel, order.Unknown, order.RuleTerminalState},
		{"cancel cancelled", order.Cancelled, cancel, order.Unknown, order.RuleTerminalState},
		{"cancel refunded", order.Refunded, cancel, order.Unknown, order.RuleTerminalState},
		{"cancel in transit", order.InTransit, cancel, order.Cancelled, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := tt.apply(tt.from)

			assert.Equal(t, tt.expected, next)
			if tt.rule == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, errs.ErrConflict)
			assert.Equal(t, errs.KindConflict, errs.KindOf(err))
			assert.Contains(t, err.Error(), tt.rule)
		})
	}

	t.Run("should reject cancelling an unknown status", func(t *testing.T) {
		_, err := order.Unknown.Cancel()

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
