package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCancelOrderCommand(t *testing.T) {
	orderID, partID, vendorID := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()

	t.Run("customer cancels whole order", func(t *testing.T) {
		cmd, err := commands.NewCancelOrderCommand(orderID, order.ActorCustomer, nil, nil, " too slow ")

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, orderID, cmd.OrderID())
		assert.Equal(t, order.ActorCustomer, cmd.Actor())
		assert.Nil(t, cmd.TargetPartID())
		assert.Nil(t, cmd.VendorID())
		assert.Equal(t, "too slow", cmd.Reason())
	})

	t.Run("vendor cancels own part", func(t *testing.T) {
		cmd, err := commands.NewCancelOrderCommand(orderID, order.ActorVendor, &partID, &vendorID, "")

		require.NoError(t, err)
		require.NotNil(t, cmd.TargetPartID())
		assert.Equal(t, partID, *cmd.TargetPartID())
		require.NotNil(t, cmd.VendorID())
		assert.Equal(t, vendorID, *cmd.VendorID())
	})

	t.Run("vendor must target a part", func(t *testing.T) {
		_, err := commands.NewCancelOrderCommand(orderID, order.ActorVendor, nil, &vendorID, "")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), commands.ErrActorIsNotAllowed.Error())
	})

	t.Run("vendor must identify itself", func(t *testing.T) {
		_, err := commands.NewCancelOrderCommand(orderID, order.ActorVendor, &partID, nil, "")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "vendorId")
	})

	t.Run("unknown actor", func(t *testing.T) {
		_, err := commands.NewCancelOrderCommand(orderID, order.Actor("robot"), nil, nil, "")

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero target part", func(t *testing.T) {
		_, err := commands.NewCancelOrderCommand(orderID, order.ActorAdmin, &kernel.UUID{}, nil, "")

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value", func(t *testing.T) {
		var cmd commands.CancelOrderCommand

		assert.ErrorIs(t, cmd.Validate(), commands.ErrCancelOrderCommandIsNotConstructed)
	})
}
