// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"parcel/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends on the narrowest combination it needs.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	DriverRepoFactory interface {
		DriverRepository() ports.DriverRepository
	}

	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	RatingRepoFactory interface {
		RatingRepository() ports.RatingRepository
	}

	PaymentRepoFactory interface {
		PaymentRepository() ports.PaymentRepository
	}

	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// AccountUoW covers user registration and driver document operations.
	AccountUoW interface {
		TxManager
		UserRepoFactory
		DriverRepoFactory
	}

	AccountUoWFactory interface {
		Create() AccountUoW
	}

	// OrderUoW covers order creation.
	OrderUoW interface {
		TxManager
		UserRepoFactory
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW spans every aggregate an order transition or a rating can touch.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().Get(ctx, orderID)
	//   d, err := uow.DriverRepository().GetByUserID(ctx, *o.DriverID())
	//   // ... mutate both, Update both, add the payment
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		UserRepoFactory
		OrderRepoFactory
		DriverRepoFactory
		RatingRepoFactory
		PaymentRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}

	// OutboxUoW covers the outbox relay.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)
