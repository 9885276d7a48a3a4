package commands_test

import (
	"testing"

	"parcel/internal/core/application/usecases/commands"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/rating"
	"parcel/internal/core/domain/model/user"
	"parcel/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func ratingCmd(t *testing.T, orderID, callerID kernel.UUID, score int) commands.SubmitRatingCommand {
	t.Helper()
	cmd, err := commands.NewSubmitRatingCommand(orderID, callerID, score, " great ")
	require.NoError(t, err)
	return cmd
}

func TestSubmitRatingCommandHandler_CustomerRatesDriver(t *testing.T) {
	ctx := t.Context()
	customer := newUser(t, user.RoleCustomer)
	driverUser := newUser(t, user.RoleDriver)
	profile := newDriverProfile(t, driverUser.ID())
	o := newDeliveredOrder(t, customer.ID(), driverUser.ID())

	r := newRepos()
	var added *rating.Rating
	mock.InOrder(
		r.uow.On("Begin", ctx).Return(nil).Once(),
		r.users.On("Get", ctx, customer.ID()).Return(customer, nil).Once(),
		r.orders.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		r.ratings.On("ExistsForOrder", ctx, o.ID()).Return(false, nil).Once(),
		r.ratings.On("Add", ctx, mock.AnythingOfType("*rating.Rating")).
			Run(func(args mock.Arguments) { added = args.Get(1).(*rating.Rating) }).
			Return(nil).Once(),
		r.drivers.On("GetByUserID", ctx, driverUser.ID()).Return(profile, nil).Once(),
		r.ratings.On("ScoresForUser", ctx, driverUser.ID()).Return([]int{3, 5}, nil).Once(),
		r.drivers.On("Update", ctx, profile).Return(nil).Once(),
		r.uow.On("Commit", ctx).Return(nil).Once(),
		r.uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(r.uow).Once()

	id, err := commands.NewSubmitRatingCommandHandler(factory).Handle(ctx, ratingCmd(t, o.ID(), customer.ID(), 5))
	require.NoError(t, err)

	require.NotNil(t, added)
	assert.Equal(t, added.ID(), id)
	assert.True(t, added.ToUserID().IsEqual(driverUser.ID()))
	assert.Equal(t, rating.TargetDriver, added.Target())
	assert.Equal(t, "great", added.Comment())
	assert.Equal(t, "4.00", profile.AverageRating().StringFixed(2))
	r.assert(t)
}

func TestSubmitRatingCommandHandler_DriverRatesCustomer(t *testing.T) {
	ctx := t.Context()
	customer := newUser(t, user.RoleCustomer)
	driverUser := newUser(t, user.RoleDriver)
	o := newDeliveredOrder(t, customer.ID(), driverUser.ID())

	r := newRepos()
	r.uow.On("Begin", ctx).Return(nil).Once()
	r.users.On("Get", ctx, driverUser.ID()).Return(driverUser, nil).Once()
	r.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
	r.ratings.On("ExistsForOrder", ctx, o.ID()).Return(false, nil).Once()
	r.ratings.On("Add", ctx, mock.AnythingOfType("*rating.Rating")).Return(nil).Once()
	r.uow.On("Commit", ctx).Return(nil).Once()
	r.uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(r.uow).Once()

	_, err := commands.NewSubmitRatingCommandHandler(factory).Handle(ctx, ratingCmd(t, o.ID(), driverUser.ID(), 4))
	require.NoError(t, err)
	r.drivers.AssertNotCalled(t, "GetByUserID", mock.Anything, mock.Anything)
	r.assert(t)
}

func TestSubmitRatingCommandHandler_AlreadyRated(t *testing.T) {
	ctx := t.Context()
	customer := newUser(t, user.RoleCustomer)
	o := newDeliveredOrder(t, customer.ID(), kernel.NewUUID())

	r := newRepos()
	r.uow.On("Begin", ctx).Return(nil).Once()
	r.users.On("Get", ctx, customer.ID()).Return(customer, nil).Once()
	r.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
	r.ratings.On("ExistsForOrder", ctx, o.ID()).Return(true, nil).Once()
	r.uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(r.uow).Once()

	_, err := commands.NewSubmitRatingCommandHandler(factory).Handle(ctx, ratingCmd(t, o.ID(), customer.ID(), 5))

	var conflict *errs.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, rating.RuleAlreadyRated, conflict.Rule)
	r.ratings.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	r.assert(t)
}

func TestSubmitRatingCommandHandler_Rejections(t *testing.T) {
	customer := newUser(t, user.RoleCustomer)
	stranger := newUser(t, user.RoleCustomer)
	driverID := kernel.NewUUID()

	tests := []struct {
		name    string
		caller  *user.User
		score   int
		pending bool
		wantErr error
	}{
		{"score above range", customer, 6, false, errs.ErrValueIsOutOfRange},
		{"score below range", customer, 0, false, errs.ErrValueIsOutOfRange},
		{"not a participant", stranger, 5, false, errs.ErrForbidden},
		{"not delivered", customer, 5, true, errs.ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			o := newDeliveredOrder(t, customer.ID(), driverID)
			if tt.pending {
				o = newAcceptedOrder(t, customer.ID(), driverID)
			}

			r := newRepos()
			r.uow.On("Begin", ctx).Return(nil).Once()
			r.users.On("Get", ctx, tt.caller.ID()).Return(tt.caller, nil).Once()
			r.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
			r.uow.On("Rollback", ctx).Return(nil).Once()
			factory := new(MockUoWFactory)
			factory.On("Create").Return(r.uow).Once()

			_, err := commands.NewSubmitRatingCommandHandler(factory).Handle(ctx, ratingCmd(t, o.ID(), tt.caller.ID(), tt.score))
			require.ErrorIs(t, err, tt.wantErr)
			r.ratings.AssertNotCalled(t, "ExistsForOrder", mock.Anything, mock.Anything)
			r.assert(t)
		})
	}
}
