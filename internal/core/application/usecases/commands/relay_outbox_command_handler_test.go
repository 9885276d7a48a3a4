package commands_test

import (
	"errors"
	"testing"
	"time"

	"parcel/internal/core/application/usecases/commands"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/ports"
	"parcel/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func outboxMessages(n int) []ports.OutboxMessage {
	out := make([]ports.OutboxMessage, 0, n)
	for range n {
		out = append(out, ports.OutboxMessage{
			ID:          kernel.NewUUID(),
			AggregateID: kernel.NewUUID(),
			EventName:   "order.created",
			Payload:     []byte(`{}`),
			OccurredAt:  time.Now(),
		})
	}
	return out
}

func newOutboxUoW() (*MockUoW, *MockOutboxRepository) {
	uow := new(MockUoW)
	repo := new(MockOutboxRepository)
	uow.On("OutboxRepository").Return(repo).Maybe()
	return uow, repo
}

func TestNewRelayOutboxCommand(t *testing.T) {
	_, err := commands.NewRelayOutboxCommand(0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	cmd, err := commands.NewRelayOutboxCommand(commands.DefaultRelayBatchSize)
	require.NoError(t, err)
	assert.Equal(t, commands.DefaultRelayBatchSize, cmd.BatchSize())
}

func TestRelayOutboxCommandHandler_PublishesBatch(t *testing.T) {
	ctx := t.Context()
	msgs := outboxMessages(3)
	uow, repo := newOutboxUoW()
	publisher := new(MockEventPublisher)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		repo.On("GetUnpublished", ctx, 10).Return(msgs, nil).Once(),
		publisher.On("Publish", ctx, msgs[0]).Return(nil).Once(),
		publisher.On("Publish", ctx, msgs[1]).Return(nil).Once(),
		publisher.On("Publish", ctx, msgs[2]).Return(nil).Once(),
		repo.On("MarkPublished", ctx, []kernel.UUID{msgs[0].ID, msgs[1].ID, msgs[2].ID}, mock.AnythingOfType("time.Time")).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOutboxUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewRelayOutboxCommand(10)
	require.NoError(t, err)

	n, err := commands.NewRelayOutboxCommandHandler(factory, publisher).Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	uow.AssertExpectations(t)
	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestRelayOutboxCommandHandler_StopsAtFirstFailure(t *testing.T) {
	ctx := t.Context()
	msgs := outboxMessages(3)
	uow, repo := newOutboxUoW()
	publisher := new(MockEventPublisher)

	uow.On("Begin", ctx).Return(nil).Once()
	repo.On("GetUnpublished", ctx, 10).Return(msgs, nil).Once()
	publisher.On("Publish", ctx, msgs[0]).Return(nil).Once()
	publisher.On("Publish", ctx, msgs[1]).Return(errors.New("broker down")).Once()
	repo.On("MarkPublished", ctx, []kernel.UUID{msgs[0].ID}, mock.AnythingOfType("time.Time")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockOutboxUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewRelayOutboxCommand(10)
	require.NoError(t, err)

	n, err := commands.NewRelayOutboxCommandHandler(factory, publisher).Handle(ctx, cmd)
	require.EqualError(t, err, "broker down")
	assert.Equal(t, 1, n)
	publisher.AssertNotCalled(t, "Publish", ctx, msgs[2])
	uow.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestRelayOutboxCommandHandler_NothingToDo(t *testing.T) {
	ctx := t.Context()
	uow, repo := newOutboxUoW()
	publisher := new(MockEventPublisher)

	uow.On("Begin", ctx).Return(nil).Once()
	repo.On("GetUnpublished", ctx, 5).Return([]ports.OutboxMessage{}, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockOutboxUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewRelayOutboxCommand(5)
	require.NoError(t, err)

	n, err := commands.NewRelayOutboxCommandHandler(factory, publisher).Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Zero(t, n)
	uow.AssertNotCalled(t, "Commit", ctx)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}
