package order

import (
	"errors"
	"fmt"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrPricingIsNotConstructed = errors.New("Pricing must be created via NewPricing constructor")

// Pricing is the monetary snapshot taken when an order is created. It never
// changes afterwards.
//
// Invariants:
//   - basePrice + urgencyFee == totalPrice
//   - commission + driverEarnings == totalPrice
//   - no amount is negative
type Pricing struct {
	distanceKm       decimal.Decimal
	basePrice        kernel.Money
	urgencyFee       kernel.Money
	totalPrice       kernel.Money
	commission       kernel.Money
	driverEarnings   kernel.Money
	estimatedMinutes int
	guard            guard.ConstructorGuard
}

// NewPricing validates the reconciliation invariants. The pricing engine is
// the usual caller; repositories call it when restoring orders.
func NewPricing(
	distanceKm decimal.Decimal,
	basePrice, urgencyFee, totalPrice, commission, driverEarnings kernel.Money,
	estimatedMinutes int,
) (Pricing, error) {
	var problems []error
	if distanceKm.IsNegative() {
		problems = append(problems, errs.NewValueIsOutOfRangeError("distance", distanceKm, 0, "+Inf"))
	}
	amounts := []struct {
		name  string
		value kernel.Money
	}{
		{"basePrice", basePrice},
		{"urgencyFee", urgencyFee},
		{"totalPrice", totalPrice},
		{"commission", commission},
		{"driverEarnings", driverEarnings},
	}
	for _, a := range amounts {
		if a.value.IsNegative() {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(a.name, fmt.Errorf("%s is negative", a.value)))
		}
	}
	if estimatedMinutes < 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("estimatedMinutes", estimatedMinutes, 0, "+Inf"))
	}
	if !basePrice.Add(urgencyFee).Equal(totalPrice) {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("totalPrice",
			fmt.Errorf("%s + %s != %s", basePrice, urgencyFee, totalPrice)))
	}
	if !commission.Add(driverEarnings).Equal(totalPrice) {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("driverEarnings",
			fmt.Errorf("%s + %s != %s", commission, driverEarnings, totalPrice)))
	}
	if err := errors.Join(problems...); err != nil {
		return Pricing{}, err
	}

	return Pricing{
		distanceKm:       distanceKm,
		basePrice:        basePrice,
		urgencyFee:       urgencyFee,
		totalPrice:       totalPrice,
		commission:       commission,
		driverEarnings:   driverEarnings,
		estimatedMinutes: estimatedMinutes,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func (p Pricing) Validate() error {
	return p.guard.Validate(ErrPricingIsNotConstructed)
}

func (p Pricing) DistanceKm() decimal.Decimal { return p.distanceKm }
func (p Pricing) BasePrice() kernel.Money { return p.basePrice }
func (p Pricing) UrgencyFee() kernel.Money { return p.urgencyFee }
func (p Pricing) TotalPrice() kernel.Money { return p.totalPrice }
func (p Pricing) Commission() kernel.Money { return p.commission }
func (p Pricing) DriverEarnings() kernel.Money { return p.driverEarnings }
func (p Pricing) EstimatedMinutes() int { return p.estimatedMinutes }
