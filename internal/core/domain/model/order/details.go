package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"
)

// Address is one end of a delivery: a free-form address line, an optional
// coordinate and the contact at that end.
type Address struct {
	Line         string
	Location     *kernel.Location
	ContactName  string
	ContactPhone string
}

// Package describes the parcel.
type Package struct {
	Type                        PackageType
	WeightKg                    *float64
	Description                 string
	ProhibitedItemsAcknowledged bool
}

// Details is everything a customer supplies about an order besides the
// distance used for pricing. It is plain data; Validate reports every
// field-level problem at once.
type Details struct {
	Package              Package
	Pickup               Address
	Delivery             Address
	DeliveryInstructions string
	IsUrgent             bool
	IsScheduled          bool
	ScheduledFor         *time.Time
}

// Validate returns the joined field errors, or nil.
func (d Details) Validate() error {
	return errors.Join(
		d.Package.validate(),
		d.Pickup.validate("pickup"),
		d.Delivery.validate("delivery"),
		d.validateSchedule(),
	)
}

func (p Package) validate() error {
	var weightErr error
	if p.WeightKg != nil && *p.WeightKg <= 0 {
		weightErr = errs.NewValueIsInvalidErrorWithCause(
			"packageWeight", fmt.Errorf("%v is not greater than 0", *p.WeightKg))
	}
	return errors.Join(p.Type.Validate(), weightErr)
}

func (a Address) validate(prefix string) error {
	var lineErr, locErr error
	if strings.TrimSpace(a.Line) == "" {
		lineErr = errs.NewValueIsRequiredError(prefix + "Address")
	}
	if a.Location != nil {
		if err := a.Location.Validate(); err != nil {
			locErr = errs.NewValueIsInvalidErrorWithCause(prefix+"Location", err)
		}
	}
	return errors.Join(lineErr, locErr)
}

func (d Details) validateSchedule() error {
	if d.IsScheduled && d.ScheduledFor == nil {
		return errs.NewValueIsRequiredError("scheduledFor")
	}
	return nil
}

// normalized trims free-text fields and drops scheduledFor for
// unscheduled orders.
func (d Details) normalized() Details {
	d.Pickup = d.Pickup.normalized()
	d.Delivery = d.Delivery.normalized()
	d.Package.Description = strings.TrimSpace(d.Package.Description)
	d.DeliveryInstructions = strings.TrimSpace(d.DeliveryInstructions)
	if !d.IsScheduled {
		d.ScheduledFor = nil
	}
	return d
}

func (a Address) normalized() Address {
	a.Line = strings.TrimSpace(a.Line)
	a.ContactName = strings.TrimSpace(a.ContactName)
	a.ContactPhone = strings.TrimSpace(a.ContactPhone)
	return a
}
