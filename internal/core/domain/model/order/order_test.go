package order_test

import (
	"testing"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/order"
	"parcel/internal/core/domain/model/user"
	"parcel/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func validDetails() order.Details {
	return order.Details{
		Package: order.Package{
			Type:                        order.PackageLarge,
			Description:                 "  books  ",
			ProhibitedItemsAcknowledged: true,
		},
		Pickup:   order.Address{Line: " 1 Main St ", ContactName: "Ann"},
		Delivery: order.Address{Line: "2 High St"},
	}
}

func validPricing(t *testing.T) order.Pricing {
	t.Helper()
	m := kernel.MustMoney
	p, err := order.NewPricing(decimal.RequireFromString("5.2"),
		m("12.48"), m("0.00"), m("12.48"), m("1.87"), m("10.61"), 11)
	require.NoError(t, err)
	return p
}

func newPendingOrder(t *testing.T, customerID kernel.UUID) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "GMC-1-ABCDEF01", "QR-GMC-1-ABCDEF01-0123456789AB",
		customerID, validDetails(), validPricing(t), now)
	require.NoError(t, err)
	o.ClearDomainEvents()
	return o
}

func driverActor() user.Actor {
	return user.Actor{ID: kernel.NewUUID(), Role: user.RoleDriver}
}

func TestNewOrder(t *testing.T) {
	customerID := kernel.NewUUID()

	t.Run("should create pending order without driver", func(t *testing.T) {
		id := kernel.NewUUID()

		o, err := order.NewOrder(id, "GMC-1-ABCDEF01", "QR-1", customerID, validDetails(), validPricing(t), now)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.Equal(t, order.Pending, o.Status())
		assert.Nil(t, o.DriverID())
		assert.Nil(t, o.AcceptedAt())
		assert.Equal(t, now, o.CreatedAt())
		assert.Equal(t, "1 Main St", o.Details().Pickup.Line)
		assert.Equal(t, "books", o.Details().Package.Description)
		assert.Equal(t, "12.48", o.Pricing().TotalPrice().String())
		assert.Equal(t, 0, o.Version())
	})

	t.Run("should record created event", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), "GMC-1-ABCDEF01", "QR-1", customerID, validDetails(), validPricing(t), now)
		require.NoError(t, err)

		events := o.DomainEvents()

		require.Len(t, events, 1)
		created, ok := events[0].(order.CreatedEvent)
		require.True(t, ok)
		assert.Equal(t, order.EventNameCreated, created.EventName())
		assert.True(t, created.AggregateID().IsEqual(o.ID()))
		assert.Equal(t, "GMC-1-ABCDEF01", created.OrderNumber)
	})

	t.Run("should report every invalid field", func(t *testing.T) {
		details := validDetails()
		details.Package.Type = order.PackageUnknown
		details.Delivery.Line = "  "
		weight := -1.0
		details.Package.WeightKg = &weight
		details.IsScheduled = true

		o, err := order.NewOrder(kernel.UUID{}, "", "", kernel.UUID{}, details, order.Pricing{}, now)

		require.Error(t, err)
		assert.Nil(t, o)
		fields := map[string]bool{}
		for _, v := range errs.FieldViolations(err) {
			fields[v.Field] = true
		}
		for _, field := range []string{"orderNumber", "qrCode", "customerID", "packageType",
			"deliveryAddress", "packageWeight", "scheduledFor"} {
			assert.True(t, fields[field], "missing violation for %s", field)
		}
		require.ErrorIs(t, err, order.ErrPricingIsNotConstructed)
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	})

	t.Run("should drop schedule time of unscheduled order", func(t *testing.T) {
		details := validDetails()
		details.ScheduledFor = &now

		o, err := order.NewOrder(kernel.NewUUID(), "N", "Q", customerID, details, validPricing(t), now)

		require.NoError(t, err)
		assert.Nil(t, o.Details().ScheduledFor)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should restore accepted order", func(t *testing.T) {
		o := newPendingOrder(t, kernel.NewUUID())
		require.NoError(t, o.Accept(driverActor(), now))
		snapshot := o.Snapshot()
		snapshot.Version = 3

		restored, err := order.RestoreOrder(snapshot)

		require.NoError(t, err)
		assert.True(t, restored.IsEqual(o))
		assert.Equal(t, order.Accepted, restored.Status())
		assert.Equal(t, 3, restored.Version())
		assert.Empty(t, restored.DomainEvents())
	})

	t.Run("should reject accepted order without driver", func(t *testing.T) {
		snapshot := newPendingOrder(t, kernel.NewUUID()).Snapshot()
		snapshot.Status = order.Accepted

		_, err := order.RestoreOrder(snapshot)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "driverID")
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		snapshot := newPendingOrder(t, kernel.NewUUID()).Snapshot()
		snapshot.Status = order.Unknown

		_, err := order.RestoreOrder(snapshot)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_Validate(t *testing.T) {
	var nilOrder *order.Order
	require.ErrorIs(t, nilOrder.Validate(), order.ErrOrderIsNotConstructed)
	require.ErrorIs(t, (&order.Order{}).Validate(), order.ErrOrderIsNotConstructed)
}

func TestOrder_Accept(t *testing.T) {
	t.Run("should assign driver and stamp acceptedAt", func(t *testing.T) {
		o := newPendingOrder(t, kernel.NewUUID())
		driver := driverActor()

		err := o.Accept(driver, now.Add(time.Minute))

		require.NoError(t, err)
		assert.Equal(t, order.Accepted, o.Status())
		require.NotNil(t, o.DriverID())
		assert.True(t, o.DriverID().IsEqual(driver.ID))
		require.NotNil(t, o.AcceptedAt())
		assert.Equal(t, now.Add(time.Minute), *o.AcceptedAt())

		require.Len(t, o.DomainEvents(), 1)
		changed := o.DomainEvents()[0].(order.StatusChangedEvent)
		assert.Equal(t, "PENDING", changed.From)
		assert.Equal(t, "ACCEPTED", changed.To)
		assert.True(t, changed.ActorID.IsEqual(driver.ID))
	})

	t.Run("should forbid non drivers", func(t *testing.T) {
		o := newPendingOrder(t, kernel.NewUUID())

		for _, role := range []user.Role{user.RoleCustomer, user.RoleAdmin} {
			err := o.Accept(user.Actor{ID: kernel.NewUUID(), Role: role}, now)

			require.ErrorIs(t, err, errs.ErrForbidden)
			assert.Contains(t, err.Error(), order.RuleOnlyDriversAccept)
		}
		assert.Equal(t, order.Pending, o.Status())
		assert.Nil(t, o.DriverID())
	})

	t.Run("should conflict when already accepted", func(t *testing.T) {
		o := newPendingOrder(t, kernel.NewUUID())
		first := driverActor()
		require.NoError(t, o.Accept(first, now))
		acceptedAt := *o.AcceptedAt()

		err := o.Accept(driverActor(), now.Add(time.Hour))

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, errs.KindConflict, errs.KindOf(err))
		assert.Contains(t, err.Error(), order.RuleAlreadyAccepted)
		assert.True(t, o.DriverID().IsEqual(first.ID))
		assert.Equal(t, acceptedAt, *o.AcceptedAt())
	})

	t.Run("should conflict on cancelled order", func(t *testing.T) {
		customer := user.Actor{ID: kernel.NewUUID(), Role: user.RoleCustomer}
		o := newPendingOrder(t, customer.ID)
		require.NoError(t, o.Cancel(customer, "", now))

		err := o.Accept(driverActor(), now)

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Contains(t, err.Error(), order.RuleTerminalState)
	})
}

func TestOrder_PickUpAndDeliver(t *testing.T) {
	t.Run("should walk the happy path", func(t *testing.T) {
		o := newPendingOrder(t, kernel.NewUUID())
		driver := driverActor()
		require.NoError(t, o.Accept(driver, now))

		require.NoError(t, o.PickUp(driver, now.Add(time.Minute)))
		assert.Equal(t, order.PickedUp, o.Status())
		assert.Equal(t, now.Add(time.Minute), *o.PickedUpAt())

		require.NoError(t, o.Deliver(driver, now.Add(time.Hour)))
		assert.Equal(t, order.Delivered, o.Status())
		assert.Equal(t, now.Add(time.Hour), *o.DeliveredAt())
		assert.Len(t, o.DomainEvents(), 3)
	})

	t.Run("should forbid other drivers", func(t *testing.T) {
		o := newPendingOrder(t, kernel.NewUUID())
		require.NoError(t, o.Accept(driverActor(), now))

		err := o.PickUp(driverActor(), now)

		require.ErrorIs(t, err, errs.ErrForbidden)
		assert.Contains(t, err.Error(), order.RuleWrongActor)
		assert.Equal(t, order.Accepted, o.Status())
	})

	t.Run("should forbid pick up of unassigned order", func(t *testing.T) {
		o := newPendingOrder(t, kernel.NewUUID())

		err := o.PickUp(driverActor(), now)

		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("should require pick up before delivery", func(t *testing.T) {
		o := newPendingOrder(t, kernel.NewUUID())
		driver := driverActor()
		require.NoError(t, o.Accept(driver, now))

		err := o.Deliver(driver, now)

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Contains(t, err.Error(), order.RuleNotYetPickedUp)
		assert.Nil(t, o.DeliveredAt())
	})

	t.Run("should reject second delivery", func(t *testing.T) {
		o := newPendingOrder(t, kernel.NewUUID())
		driver := driverActor()
		require.NoError(t, o.Accept(driver, now))
		require.NoError(t, o.PickUp(driver, now))
		require.NoError(t, o.Deliver(driver, now))

		err := o.Deliver(driver, now.Add(time.Hour))

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Contains(t, err.Error(), order.RuleTerminalState)
		assert.Equal(t, now, *o.DeliveredAt())
	})
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("customer should cancel pending order with reason", func(t *testing.T) {
		customer := user.Actor{ID: kernel.NewUUID(), Role: user.RoleCustomer}
		o := newPendingOrder(t, customer.ID)

		err := o.Cancel(customer, "  changed my mind ", now)

		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, o.Status())
		assert.Equal(t, "changed my mind", o.CancellationReason())
		changed := o.DomainEvents()[0].(order.StatusChangedEvent)
		assert.Equal(t, "changed my mind", changed.Reason)
	})

	t.Run("assigned driver and admin may cancel", func(t *testing.T) {
		o := newPendingOrder(t, kernel.NewUUID())
		driver := driverActor()
		require.NoError(t, o.Accept(driver, now))
		require.NoError(t, o.Cancel(driver, "", now))

		other := newPendingOrder(t, kernel.NewUUID())
		require.NoError(t, other.Cancel(user.Actor{ID: kernel.NewUUID(), Role: user.RoleAdmin}, "", now))
	})

	t.Run("should forbid strangers", func(t *testing.T) {
		o := newPendingOrder(t, kernel.NewUUID())

		err := o.Cancel(user.Actor{ID: kernel.NewUUID(), Role: user.RoleCustomer}, "", now)

		require.ErrorIs(t, err, errs.ErrForbidden)
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("should reject cancelling delivered order", func(t *testing.T) {
		customer := user.Actor{ID: kernel.NewUUID(), Role: user.RoleCustomer}
		o := newPendingOrder(t, customer.ID)
		driver := driverActor()
		require.NoError(t, o.Accept(driver, now))
		require.NoError(t, o.PickUp(driver, now))
		require.NoError(t, o.Deliver(driver, now))

		err := o.Cancel(customer, "late", now)

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Empty(t, o.CancellationReason())
	})
}

func TestOrder_CanBeViewedBy(t *testing.T) {
	customer := user.Actor{ID: kernel.NewUUID(), Role: user.RoleCustomer}
	o := newPendingOrder(t, customer.ID)
	driver := driverActor()
	require.NoError(t, o.Accept(driver, now))

	assert.True(t, o.CanBeViewedBy(customer))
	assert.True(t, o.CanBeViewedBy(driver))
	assert.True(t, o.CanBeViewedBy(user.Actor{ID: kernel.NewUUID(), Role: user.RoleAdmin}))
	assert.False(t, o.CanBeViewedBy(driverActor()))
}
