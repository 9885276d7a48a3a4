package ports

import (
	"context"

	"parcel/internal/core/domain/model/payment"
)

type PaymentRepository interface {
	// Add persists the payment of a delivered order. One payment per order.
	Add(ctx context.Context, aggregate *payment.Payment) error
}
