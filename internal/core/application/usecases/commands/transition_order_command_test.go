package commands_test

import (
	"testing"

	"parcel/internal/core/application/usecases/commands"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransitionOrderCommand(t *testing.T) {
	orderID, callerID := kernel.NewUUID(), kernel.NewUUID()

	cmd, err := commands.NewTransitionOrderCommand(orderID, callerID, order.ActionCancel, "changed my mind")
	require.NoError(t, err)
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, callerID, cmd.CallerID())
	assert.Equal(t, order.ActionCancel, cmd.Action())
	assert.Equal(t, "changed my mind", cmd.Reason())
}

func TestNewTransitionOrderCommand_InvalidInput(t *testing.T) {
	_, err := commands.NewTransitionOrderCommand(kernel.UUID{}, kernel.NewUUID(), order.ActionUnknown, "")
	require.Error(t, err)
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	assert.Contains(t, err.Error(), "action")
}
