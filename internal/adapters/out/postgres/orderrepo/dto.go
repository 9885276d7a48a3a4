// Package orderrepo maps order aggregates to the orders table.
package orderrepo

import (
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is one row of the orders table. Details and pricing are flattened into columns
// so the read side can query them directly.
type OrderDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Number     string     `gorm:"column:order_number;size:64;uniqueIndex"`
	QRCode     string     `gorm:"column:qr_code;size:128;uniqueIndex"`
	CustomerID uuid.UUID  `gorm:"type:uuid;index;not null"`
	DriverID   *uuid.UUID `gorm:"type:uuid;index"`
	Status     string     `gorm:"size:16;index;not null"`

	PackageType                 string `gorm:"size:16;not null"`
	PackageWeightKg             *float64
	PackageDescription          string
	ProhibitedItemsAcknowledged bool

	Pickup   AddressDTO `gorm:"embedded;embeddedPrefix:pickup_"`
	Delivery AddressDTO `gorm:"embedded;embeddedPrefix:delivery_"`

	DeliveryInstructions string
	IsUrgent             bool
	IsScheduled          bool
	ScheduledFor         *time.Time

	DistanceKm       decimal.Decimal `gorm:"type:numeric(10,3);not null"`
	BasePrice        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	UrgencyFee       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TotalPrice       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Commission       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DriverEarnings   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	EstimatedMinutes int

	CancellationReason string
	CreatedAt          time.Time `gorm:"index;not null"`
	AcceptedAt         *time.Time
	PickedUpAt         *time.Time
	DeliveredAt        *time.Time

	Version int `gorm:"not null;default:0"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO is one end of the delivery, embedded twice in the orders table.
type AddressDTO struct {
	Address      string `gorm:"column:address;not null"`
	Lat          *float64
	Lng          *float64
	ContactName  string
	ContactPhone string `gorm:"size:32"`
}

func fromDomain(o *order.Order) OrderDTO {
	s := o.Snapshot()

	var driverID *uuid.UUID
	if s.DriverID != nil {
		raw := s.DriverID.Bytes()
		driverID = &raw
	}

	return OrderDTO{
		ID:         s.ID.Bytes(),
		Number:     s.Number,
		QRCode:     s.QRCode,
		CustomerID: s.CustomerID.Bytes(),
		DriverID:   driverID,
		Status:     s.Status.String(),

		PackageType:                 s.Details.Package.Type.String(),
		PackageWeightKg:             s.Details.Package.WeightKg,
		PackageDescription:          s.Details.Package.Description,
		ProhibitedItemsAcknowledged: s.Details.Package.ProhibitedItemsAcknowledged,

		Pickup:   addressFromDomain(s.Details.Pickup),
		Delivery: addressFromDomain(s.Details.Delivery),

		DeliveryInstructions: s.Details.DeliveryInstructions,
		IsUrgent:             s.Details.IsUrgent,
		IsScheduled:          s.Details.IsScheduled,
		ScheduledFor:         s.Details.ScheduledFor,

		DistanceKm:       s.Pricing.DistanceKm(),
		BasePrice:        s.Pricing.BasePrice().Decimal(),
		UrgencyFee:       s.Pricing.UrgencyFee().Decimal(),
		TotalPrice:       s.Pricing.TotalPrice().Decimal(),
		Commission:       s.Pricing.Commission().Decimal(),
		DriverEarnings:   s.Pricing.DriverEarnings().Decimal(),
		EstimatedMinutes: s.Pricing.EstimatedMinutes(),

		CancellationReason: s.CancellationReason,
		CreatedAt:          s.CreatedAt,
		AcceptedAt:         s.AcceptedAt,
		PickedUpAt:         s.PickedUpAt,
		DeliveredAt:        s.DeliveredAt,

		Version: s.Version,
	}
}

func addressFromDomain(a order.Address) AddressDTO {
	dto := AddressDTO{
		Address:      a.Line,
		ContactName:  a.ContactName,
		ContactPhone: a.ContactPhone,
	}
	if a.Location != nil {
		lat, lng := a.Location.Lat(), a.Location.Lng()
		dto.Lat, dto.Lng = &lat, &lng
	}
	return dto
}

func (a AddressDTO) toDomain() (order.Address, error) {
	addr := order.Address{
		Line:         a.Address,
		ContactName:  a.ContactName,
		ContactPhone: a.ContactPhone,
	}
	if a.Lat != nil && a.Lng != nil {
		loc, err := kernel.NewLocation(*a.Lat, *a.Lng)
		if err != nil {
			return order.Address{}, err
		}
		addr.Location = &loc
	}
	return addr, nil
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes(dto.DriverID[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	packageType, err := order.ParsePackageType(dto.PackageType)
	if err != nil {
		return nil, err
	}
	pickup, err := dto.Pickup.toDomain()
	if err != nil {
		return nil, err
	}
	delivery, err := dto.Delivery.toDomain()
	if err != nil {
		return nil, err
	}

	pricing, err := order.NewPricing(
		dto.DistanceKm,
		kernel.NewMoney(dto.BasePrice),
		kernel.NewMoney(dto.UrgencyFee),
		kernel.NewMoney(dto.TotalPrice),
		kernel.NewMoney(dto.Commission),
		kernel.NewMoney(dto.DriverEarnings),
		dto.EstimatedMinutes,
	)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:         id,
		Number:     dto.Number,
		QRCode:     dto.QRCode,
		CustomerID: customerID,
		DriverID:   driverID,
		Details: order.Details{
			Package: order.Package{
				Type:                        packageType,
				WeightKg:                    dto.PackageWeightKg,
				Description:                 dto.PackageDescription,
				ProhibitedItemsAcknowledged: dto.ProhibitedItemsAcknowledged,
			},
			Pickup:               pickup,
			Delivery:             delivery,
			DeliveryInstructions: dto.DeliveryInstructions,
			IsUrgent:             dto.IsUrgent,
			IsScheduled:          dto.IsScheduled,
			ScheduledFor:         dto.ScheduledFor,
		},
		Pricing:            pricing,
		Status:             status,
		CreatedAt:          dto.CreatedAt,
		AcceptedAt:         dto.AcceptedAt,
		PickedUpAt:         dto.PickedUpAt,
		DeliveredAt:        dto.DeliveredAt,
		CancellationReason: dto.CancellationReason,
		Version:            dto.Version,
	})
}
