package queries

import (
	"context"

	"parcel/internal/core/domain/model/user"

	"gorm.io/gorm"
)

type ListOrdersForUserQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersForUserQueryHandler(db *gorm.DB) ListOrdersForUserQueryHandler {
	return ListOrdersForUserQueryHandler{db: db}
}

func (h ListOrdersForUserQueryHandler) Handle(ctx context.Context, query ListOrdersForUserQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	caller, err := loadCaller(ctx, h.db, query.UserID())
	if err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	const selectOrders = `SELECT ` + orderColumns + ` FROM orders o`
	const newestFirst = ` ORDER BY o.created_at DESC, o.id`

	var raw *gorm.DB
	switch caller.Role {
	case user.RoleCustomer:
		raw = db.Raw(selectOrders+` WHERE o.customer_id = ?`+newestFirst, caller.ID.Bytes())
	case user.RoleDriver:
		raw = db.Raw(selectOrders+` WHERE o.driver_id = ?`+newestFirst, caller.ID.Bytes())
	default:
		raw = db.Raw(selectOrders + newestFirst)
	}

	rows, err := raw.Rows()
	if err != nil {
		return nil, err
	}
	return scanOrders(rows)
}
