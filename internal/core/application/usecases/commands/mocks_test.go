package commands_test

import (
	"context"
	"io"
	"testing"
	"time"

	"parcel/internal/core/application/usecases/commands"
	"parcel/internal/core/domain/model/driver"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/order"
	"parcel/internal/core/domain/model/payment"
	"parcel/internal/core/domain/model/rating"
	"parcel/internal/core/domain/model/user"
	"parcel/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockDriverRepository struct{ mock.Mock }

func (m *MockDriverRepository) Add(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) Update(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) GetByUserID(ctx context.Context, userID kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) GetByDocumentID(ctx context.Context, documentID kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

type MockRatingRepository struct{ mock.Mock }

func (m *MockRatingRepository) Add(ctx context.Context, r *rating.Rating) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRatingRepository) ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRatingRepository) ScoresForUser(ctx context.Context, userID kernel.UUID) ([]int, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

type MockPaymentRepository struct{ mock.Mock }

func (m *MockPaymentRepository) Add(ctx context.Context, p *payment.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.OutboxMessage), args.Error(1)
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	args := m.Called(ctx, ids, at)
	return args.Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, msg ports.OutboxMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

type MockDocumentStorage struct{ mock.Mock }

func (m *MockDocumentStorage) Save(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, key, body, contentType)
	return args.String(0), args.Error(1)
}

// MockUoW satisfies every unit of work interface the handlers depend on.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	args := m.Called()
	return args.Get(0).(ports.UserRepository)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) DriverRepository() ports.DriverRepository {
	args := m.Called()
	return args.Get(0).(ports.DriverRepository)
}

func (m *MockUoW) RatingRepository() ports.RatingRepository {
	args := m.Called()
	return args.Get(0).(ports.RatingRepository)
}

func (m *MockUoW) PaymentRepository() ports.PaymentRepository {
	args := m.Called()
	return args.Get(0).(ports.PaymentRepository)
}

func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockAccountUoWFactory struct{ mock.Mock }

func (m *MockAccountUoWFactory) Create() commands.AccountUoW {
	args := m.Called()
	return args.Get(0).(commands.AccountUoW)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	args := m.Called()
	return args.Get(0).(commands.OutboxUoW)
}

// repos bundles one mock of each repository wired to a MockUoW. The unit of work hands
// out its repositories any number of times.
type repos struct {
	uow      *MockUoW
	users    *MockUserRepository
	orders   *MockOrderRepository
	drivers  *MockDriverRepository
	ratings  *MockRatingRepository
	payments *MockPaymentRepository
}

func newRepos() repos {
	r := repos{
		uow:      new(MockUoW),
		users:    new(MockUserRepository),
		orders:   new(MockOrderRepository),
		drivers:  new(MockDriverRepository),
		ratings:  new(MockRatingRepository),
		payments: new(MockPaymentRepository),
	}
	r.uow.On("UserRepository").Return(r.users).Maybe()
	r.uow.On("OrderRepository").Return(r.orders).Maybe()
	r.uow.On("DriverRepository").Return(r.drivers).Maybe()
	r.uow.On("RatingRepository").Return(r.ratings).Maybe()
	r.uow.On("PaymentRepository").Return(r.payments).Maybe()
	return r
}

func (r repos) assert(t *testing.T) {
	t.Helper()
	r.uow.AssertExpectations(t)
	r.users.AssertExpectations(t)
	r.orders.AssertExpectations(t)
	r.drivers.AssertExpectations(t)
	r.ratings.AssertExpectations(t)
	r.payments.AssertExpectations(t)
}

func newUser(t *testing.T, role user.Role) *user.User {
	t.Helper()
	id := kernel.NewUUID()
	u, err := user.NewUser(id, "user "+role.String(), id.String()+"@example.com", role)
	require.NoError(t, err)
	return u
}

func newDriverProfile(t *testing.T, userID kernel.UUID) *driver.Driver {
	t.Helper()
	d, err := driver.NewDriver(kernel.NewUUID(), userID, driver.VehicleCar)
	require.NoError(t, err)
	return d
}

func validDetails() order.Details {
	return order.Details{
		Package: order.Package{
			Type:                        order.PackageMedium,
			ProhibitedItemsAcknowledged: true,
		},
		Pickup:   order.Address{Line: "1 Main St"},
		Delivery: order.Address{Line: "2 High St"},
	}
}

func newPendingOrder(t *testing.T, customerID kernel.UUID) *order.Order {
	t.Helper()
	m := kernel.MustMoney
	pricing, err := order.NewPricing(kernel.MustMoney("5").Decimal(),
		m("12.00"), m("0.00"), m("12.00"), m("1.80"), m("10.20"), 10)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), "GMC-1-ABCDEF0123", "QR-GMC-1-ABCDEF0123-01234567",
		customerID, validDetails(), pricing, time.Now())
	require.NoError(t, err)
	o.ClearDomainEvents()
	return o
}

func newDeliveredOrder(t *testing.T, customerID, driverUserID kernel.UUID) *order.Order {
	t.Helper()
	o := newPendingOrder(t, customerID)
	d := user.Actor{ID: driverUserID, Role: user.RoleDriver}
	require.NoError(t, o.Accept(d, time.Now()))
	require.NoError(t, o.PickUp(d, time.Now()))
	require.NoError(t, o.Deliver(d, time.Now()))
	o.ClearDomainEvents()
	return o
}
