package queries

import (
	"context"
	"database/sql"
	"errors"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/user"
	"parcel/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RuleNotParticipant is returned when a caller reads an order they are not part of.
const RuleNotParticipant = "caller is not a participant of the order"

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns the order view. A missing order is NotFound; a caller who is neither
// customer, assigned driver nor admin is Forbidden.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	caller, err := loadCaller(ctx, h.db, query.CallerID())
	if err != nil {
		return OrderView{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders o
		WHERE o.id = ?
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return OrderView{}, err
	}
	orders, err := scanOrders(rows)
	if err != nil {
		return OrderView{}, err
	}
	if len(orders) == 0 {
		return OrderView{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	view := orders[0]
	if !canView(view, caller) {
		return OrderView{}, errs.NewForbiddenError(RuleNotParticipant)
	}

	if view.Payment, err = h.payment(ctx, view.ID); err != nil {
		return OrderView{}, err
	}
	if view.Rating, err = h.rating(ctx, view.ID); err != nil {
		return OrderView{}, err
	}
	return view, nil
}

func canView(v OrderView, caller user.Actor) bool {
	if caller.IsAdmin() || caller.Is(v.CustomerID) {
		return true
	}
	return v.DriverID != nil && caller.Is(*v.DriverID)
}

func (h GetOrderQueryHandler) payment(ctx context.Context, orderID kernel.UUID) (*PaymentView, error) {
	var (
		p      PaymentView
		id     uuid.UUID
		amount decimal.Decimal
	)
	err := h.db.WithContext(ctx).Raw(`
		SELECT id, amount, currency, status, created_at
		FROM payments
		WHERE order_id = ?
	`, orderID.Bytes()).Row().Scan(&id, &amount, &p.Currency, &p.Status, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if p.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return nil, err
	}
	p.Amount = kernel.NewMoney(amount)
	p.CreatedAt = p.CreatedAt.UTC()
	return &p, nil
}

func (h GetOrderQueryHandler) rating(ctx context.Context, orderID kernel.UUID) (*RatingView, error) {
	var (
		r        RatingView
		id       uuid.UUID
		from, to uuid.UUID
	)
	err := h.db.WithContext(ctx).Raw(`
		SELECT id, from_user_id, to_user_id, target, score, comment, created_at
		FROM ratings
		WHERE order_id = ?
	`, orderID.Bytes()).Row().Scan(&id, &from, &to, &r.Target, &r.Score, &r.Comment, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if r.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return nil, err
	}
	if r.FromUserID, err = kernel.UUIDFromBytes(from[:]); err != nil {
		return nil, err
	}
	if r.ToUserID, err = kernel.UUIDFromBytes(to[:]); err != nil {
		return nil, err
	}
	r.CreatedAt = r.CreatedAt.UTC()
	return &r, nil
}
