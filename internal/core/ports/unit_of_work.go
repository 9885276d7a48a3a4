package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. Repositories it returns are
// bound to the transaction started by Begin. Commit also writes the domain events of
// every aggregate the repositories saved to the outbox.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	DriverRepository() DriverRepository
	UserRepository() UserRepository
	RatingRepository() RatingRepository
	PaymentRepository() PaymentRepository
	OutboxRepository() OutboxRepository
}
