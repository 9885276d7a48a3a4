package queries

import (
	"context"

	"parcel/internal/core/domain/model/order"

	"gorm.io/gorm"
)

type ListAvailableOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListAvailableOrdersQueryHandler(db *gorm.DB) ListAvailableOrdersQueryHandler {
	return ListAvailableOrdersQueryHandler{db: db}
}

func (h ListAvailableOrdersQueryHandler) Handle(ctx context.Context, query ListAvailableOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders o
		WHERE o.status = ? AND o.driver_id IS NULL
		ORDER BY o.created_at DESC, o.id
		LIMIT ?
	`, order.Pending.String(), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	return scanOrders(rows)
}
