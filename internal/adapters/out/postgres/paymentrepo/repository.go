// Package paymentrepo persists the payment recorded when an order is delivered.
package paymentrepo

import (
	"context"
	"errors"
	"time"

	"parcel/internal/core/domain/model/payment"
	"parcel/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const RuleAlreadyPaid = "order already has a payment"

type PaymentDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	Amount    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Currency  string          `gorm:"size:3;not null"`
	Status    string          `gorm:"size:16;not null"`
	CreatedAt time.Time       `gorm:"not null"`
}

func (PaymentDTO) TableName() string {
	return "payments"
}

type GormPaymentRepository struct {
	db *gorm.DB
}

func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

func (r *GormPaymentRepository) Add(ctx context.Context, aggregate *payment.Payment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := PaymentDTO{
		ID:        aggregate.ID().Bytes(),
		OrderID:   aggregate.OrderID().Bytes(),
		Amount:    aggregate.Amount().Decimal(),
		Currency:  aggregate.Currency(),
		Status:    aggregate.Status().String(),
		CreatedAt: aggregate.CreatedAt(),
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause(RuleAlreadyPaid, err)
		}
		return err
	}
	return nil
}
