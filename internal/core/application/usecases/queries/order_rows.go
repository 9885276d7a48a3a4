package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/user"
	"parcel/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// orderColumns is the select list scanOrder expects, in order.
const orderColumns = `
	o.id,
	o.order_number,
	o.qr_code,
	o.customer_id,
	o.driver_id,
	o.status,
	o.package_type,
	o.package_weight_kg,
	o.package_description,
	o.pickup_address,
	o.pickup_lat,
	o.pickup_lng,
	o.pickup_contact_name,
	o.pickup_contact_phone,
	o.delivery_address,
	o.delivery_lat,
	o.delivery_lng,
	o.delivery_contact_name,
	o.delivery_contact_phone,
	o.delivery_instructions,
	o.is_urgent,
	o.is_scheduled,
	o.scheduled_for,
	o.distance_km,
	o.base_price,
	o.urgency_fee,
	o.total_price,
	o.commission,
	o.driver_earnings,
	o.estimated_minutes,
	o.cancellation_reason,
	o.created_at,
	o.accepted_at,
	o.picked_up_at,
	o.delivered_at`

func scanOrder(rows *sql.Rows) (OrderView, error) {
	var (
		v                                   OrderView
		id, customerID                      uuid.UUID
		driverID                            uuid.NullUUID
		distance                            decimal.Decimal
		base, fee, total, commission, share decimal.Decimal
	)

	err := rows.Scan(
		&id,
		&v.OrderNumber,
		&v.QRCode,
		&customerID,
		&driverID,
		&v.Status,
		&v.Package.Type,
		&v.Package.WeightKg,
		&v.Package.Description,
		&v.Pickup.Address,
		&v.Pickup.Lat,
		&v.Pickup.Lng,
		&v.Pickup.ContactName,
		&v.Pickup.ContactPhone,
		&v.Delivery.Address,
		&v.Delivery.Lat,
		&v.Delivery.Lng,
		&v.Delivery.ContactName,
		&v.Delivery.ContactPhone,
		&v.DeliveryInstructions,
		&v.IsUrgent,
		&v.IsScheduled,
		&v.ScheduledFor,
		&distance,
		&base,
		&fee,
		&total,
		&commission,
		&share,
		&v.Pricing.EstimatedMinutes,
		&v.CancellationReason,
		&v.CreatedAt,
		&v.AcceptedAt,
		&v.PickedUpAt,
		&v.DeliveredAt,
	)
	if err != nil {
		return OrderView{}, err
	}

	if v.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderView{}, err
	}
	if v.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return OrderView{}, err
	}
	if driverID.Valid {
		dID, idErr := kernel.UUIDFromBytes(driverID.UUID[:])
		if idErr != nil {
			return OrderView{}, idErr
		}
		v.DriverID = &dID
	}

	v.Pricing.DistanceKm = distance.String()
	v.Pricing.BasePrice = kernel.NewMoney(base)
	v.Pricing.UrgencyFee = kernel.NewMoney(fee)
	v.Pricing.TotalPrice = kernel.NewMoney(total)
	v.Pricing.Commission = kernel.NewMoney(commission)
	v.Pricing.DriverEarnings = kernel.NewMoney(share)

	v.CreatedAt = v.CreatedAt.UTC()
	v.ScheduledFor = utc(v.ScheduledFor)
	v.AcceptedAt = utc(v.AcceptedAt)
	v.PickedUpAt = utc(v.PickedUpAt)
	v.DeliveredAt = utc(v.DeliveredAt)
	return v, nil
}

func scanOrders(rows *sql.Rows) ([]OrderView, error) {
	defer rows.Close()

	orders := make([]OrderView, 0)
	for rows.Next() {
		v, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

// loadCaller resolves the caller's role. An unknown caller is NotFound.
func loadCaller(ctx context.Context, db *gorm.DB, callerID kernel.UUID) (user.Actor, error) {
	var role string
	err := db.WithContext(ctx).Raw(`SELECT role FROM users WHERE id = ?`, callerID.Bytes()).Row().Scan(&role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.Actor{}, errs.NewObjectNotFoundError("user", callerID.String())
		}
		return user.Actor{}, err
	}

	parsed, err := user.ParseRole(role)
	if err != nil {
		return user.Actor{}, err
	}
	return user.Actor{ID: callerID, Role: parsed}, nil
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
