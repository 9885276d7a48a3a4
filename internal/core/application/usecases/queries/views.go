// Package queries contains read-only operations for the CQRS architecture.
// Handlers read straight from the database with raw SQL and return flat view structs,
// bypassing the aggregates. Caller permissions are still enforced here.
package queries

import (
	"time"

	"parcel/internal/core/domain/model/kernel"
)

// OrderView is the read model of an order.
type OrderView struct {
	ID                   kernel.UUID  `json:"id"`
	OrderNumber          string       `json:"orderNumber"`
	QRCode               string       `json:"qrCode"`
	CustomerID           kernel.UUID  `json:"customerId"`
	DriverID             *kernel.UUID `json:"driverId,omitempty"`
	Status               string       `json:"status"`
	Package              PackageView  `json:"package"`
	Pickup               AddressView  `json:"pickup"`
	Delivery             AddressView  `json:"delivery"`
	DeliveryInstructions string       `json:"deliveryInstructions,omitempty"`
	IsUrgent             bool         `json:"isUrgent"`
	IsScheduled          bool         `json:"isScheduled"`
	ScheduledFor         *time.Time   `json:"scheduledFor,omitempty"`
	Pricing              PricingView  `json:"pricing"`
	CancellationReason   string       `json:"cancellationReason,omitempty"`
	CreatedAt            time.Time    `json:"createdAt"`
	AcceptedAt           *time.Time   `json:"acceptedAt,omitempty"`
	PickedUpAt           *time.Time   `json:"pickedUpAt,omitempty"`
	DeliveredAt          *time.Time   `json:"deliveredAt,omitempty"`
	Payment              *PaymentView `json:"payment,omitempty"`
	Rating               *RatingView  `json:"rating,omitempty"`
}

type PackageView struct {
	Type        string   `json:"type"`
	WeightKg    *float64 `json:"weightKg,omitempty"`
	Description string   `json:"description,omitempty"`
}

type AddressView struct {
	Address      string   `json:"address"`
	Lat          *float64 `json:"lat,omitempty"`
	Lng          *float64 `json:"lng,omitempty"`
	ContactName  string   `json:"contactName,omitempty"`
	ContactPhone string   `json:"contactPhone,omitempty"`
}

type PricingView struct {
	DistanceKm       string       `json:"distanceKm"`
	BasePrice        kernel.Money `json:"basePrice"`
	UrgencyFee       kernel.Money `json:"urgencyFee"`
	TotalPrice       kernel.Money `json:"totalPrice"`
	Commission       kernel.Money `json:"commission"`
	DriverEarnings   kernel.Money `json:"driverEarnings"`
	EstimatedMinutes int          `json:"estimatedMinutes"`
}

type PaymentView struct {
	ID        kernel.UUID  `json:"id"`
	Amount    kernel.Money `json:"amount"`
	Currency  string       `json:"currency"`
	Status    string       `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
}

type RatingView struct {
	ID         kernel.UUID `json:"id"`
	FromUserID kernel.UUID `json:"fromUserId"`
	ToUserID   kernel.UUID `json:"toUserId"`
	Target     string      `json:"target"`
	Score      int         `json:"score"`
	Comment    string      `json:"comment,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// DocumentView is the read model of a driver document.
type DocumentView struct {
	ID              kernel.UUID `json:"id"`
	DriverID        kernel.UUID `json:"driverId"`
	DriverUserID    kernel.UUID `json:"driverUserId"`
	Type            string      `json:"type"`
	FileRef         string      `json:"fileRef"`
	Status          string      `json:"status"`
	RejectionReason string      `json:"rejectionReason,omitempty"`
	UploadedAt      time.Time   `json:"uploadedAt"`
	VerifiedAt      *time.Time  `json:"verifiedAt,omitempty"`
}
