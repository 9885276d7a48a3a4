package queries_test

import (
	"testing"
	"time"

	"parcel/internal/adapters/out/postgres/driverrepo"
	"parcel/internal/adapters/out/postgres/orderrepo"
	"parcel/internal/adapters/out/postgres/paymentrepo"
	"parcel/internal/adapters/out/postgres/pgtest"
	"parcel/internal/adapters/out/postgres/ratingrepo"
	"parcel/internal/adapters/out/postgres/userrepo"
	"parcel/internal/core/domain/model/driver"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/order"
	"parcel/internal/core/domain/model/payment"
	"parcel/internal/core/domain/model/rating"
	"parcel/internal/core/domain/model/user"
	"parcel/internal/core/domain/services"

	"github.com/jaswdr/faker"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

// world seeds a SQLite database through the real repositories.
type world struct {
	t       *testing.T
	db      *gorm.DB
	fake    faker.Faker
	codes   *services.OrderCodeGenerator
	pricing *services.PricingEngine
	clock   time.Time
}

func newWorld(t *testing.T) *world {
	t.Helper()
	return &world{
		t:       t,
		db:      pgtest.SQLite(t),
		fake:    faker.New(),
		codes:   services.NewOrderCodeGenerator(services.DefaultOrderNumberPrefix),
		pricing: services.NewPricingEngine(services.DefaultPricingRates()),
		clock:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

// tick advances the fixture clock so rows get distinct, ordered timestamps.
func (w *world) tick() time.Time {
	w.clock = w.clock.Add(time.Minute)
	return w.clock
}

func (w *world) user(role user.Role) *user.User {
	w.t.Helper()
	u, err := user.NewUser(kernel.NewUUID(), w.fake.Person().Name(), w.fake.Internet().Email(), role)
	require.NoError(w.t, err)
	require.NoError(w.t, userrepo.NewGormUserRepository(w.db).Add(w.t.Context(), u))
	if role == user.RoleDriver {
		d, dErr := driver.NewDriver(kernel.NewUUID(), u.ID(), driver.DefaultVehicleType)
		require.NoError(w.t, dErr)
		require.NoError(w.t, driverrepo.NewGormDriverRepository(w.db, noopTracker{}).Add(w.t.Context(), d))
	}
	return u
}

func (w *world) order(customer *user.User) *order.Order {
	w.t.Helper()
	details := order.Details{
		Package:  order.Package{Type: order.PackageMedium, ProhibitedItemsAcknowledged: true},
		Pickup:   order.Address{Line: w.fake.Address().Address()},
		Delivery: order.Address{Line: w.fake.Address().Address()},
	}
	pricing, err := w.pricing.Calculate(5.2, details.Package.Type, false)
	require.NoError(w.t, err)

	number, qr := w.codes.Next()
	o, err := order.NewOrder(kernel.NewUUID(), number, qr, customer.ID(), details, pricing, w.tick())
	require.NoError(w.t, err)
	require.NoError(w.t, w.orders().Add(w.t.Context(), o))
	return o
}

func (w *world) accept(o *order.Order, by *user.User) {
	w.t.Helper()
	require.NoError(w.t, o.Accept(by.Actor(), w.tick()))
	require.NoError(w.t, w.orders().Update(w.t.Context(), o))
}

func (w *world) deliver(o *order.Order, by *user.User) {
	w.t.Helper()
	require.NoError(w.t, o.Accept(by.Actor(), w.tick()))
	require.NoError(w.t, o.PickUp(by.Actor(), w.tick()))
	require.NoError(w.t, o.Deliver(by.Actor(), w.tick()))
	require.NoError(w.t, w.orders().Update(w.t.Context(), o))

	p, err := payment.NewCompleted(kernel.NewUUID(), o.ID(), o.Pricing().TotalPrice(), payment.DefaultCurrency, w.clock)
	require.NoError(w.t, err)
	require.NoError(w.t, paymentrepo.NewGormPaymentRepository(w.db).Add(w.t.Context(), p))
}

func (w *world) rate(o *order.Order, by *user.User, score int) *rating.Rating {
	w.t.Helper()
	r, err := rating.NewRating(kernel.NewUUID(), o, by.Actor(), score, "thanks", w.tick())
	require.NoError(w.t, err)
	require.NoError(w.t, ratingrepo.NewGormRatingRepository(w.db).Add(w.t.Context(), r))
	return r
}

func (w *world) upload(driverUser *user.User, docType driver.DocumentType) *driver.Document {
	w.t.Helper()
	repo := driverrepo.NewGormDriverRepository(w.db, noopTracker{})
	d, err := repo.GetByUserID(w.t.Context(), driverUser.ID())
	require.NoError(w.t, err)
	doc, err := d.UploadDocument(kernel.NewUUID(), docType, "documents/"+docType.String(), w.tick())
	require.NoError(w.t, err)
	require.NoError(w.t, repo.Update(w.t.Context(), d))
	return doc
}

func (w *world) approve(driverUser, admin *user.User, docID kernel.UUID) {
	w.t.Helper()
	repo := driverrepo.NewGormDriverRepository(w.db, noopTracker{})
	d, err := repo.GetByUserID(w.t.Context(), driverUser.ID())
	require.NoError(w.t, err)
	_, err = d.ApproveDocument(admin.Actor(), docID, w.tick())
	require.NoError(w.t, err)
	require.NoError(w.t, repo.Update(w.t.Context(), d))
}

func (w *world) orders() *orderrepo.GormOrderRepository {
	return orderrepo.NewGormOrderRepository(w.db, noopTracker{})
}
