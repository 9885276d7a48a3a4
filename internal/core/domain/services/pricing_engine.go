package services

import (
	"fmt"
	"math"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/order"
	"parcel/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// PricingRates are the constants the engine prices with.
type PricingRates struct {
	PerKm          decimal.Decimal
	MinimumBase    decimal.Decimal
	Multipliers    map[order.PackageType]decimal.Decimal
	UrgencyRate    decimal.Decimal
	CommissionRate decimal.Decimal
	AverageKmh     decimal.Decimal
}

// DefaultPricingRates returns the marketplace tariff: 1.50 per km, 5.00 minimum, a 30%
// urgency markup, 15% commission and a 30 km/h ETA speed.
func DefaultPricingRates() PricingRates {
	return PricingRates{
		PerKm:       decimal.RequireFromString("1.50"),
		MinimumBase: decimal.RequireFromString("5.00"),
		Multipliers: map[order.PackageType]decimal.Decimal{
			order.PackageSmall:      decimal.RequireFromString("1.0"),
			order.PackageMedium:     decimal.RequireFromString("1.3"),
			order.PackageLarge:      decimal.RequireFromString("1.6"),
			order.PackageExtraLarge: decimal.RequireFromString("2.0"),
		},
		UrgencyRate:    decimal.RequireFromString("0.30"),
		CommissionRate: decimal.RequireFromString("0.15"),
		AverageKmh:     decimal.NewFromInt(30),
	}
}

// PricingEngine computes order prices. All arithmetic is decimal and every monetary step
// rounds half-up to cents.
//
// Example:
//
//	engine := services.NewPricingEngine(services.DefaultPricingRates())
//	p, err := engine.Calculate(5.2, order.PackageLarge, false)
//	// p.BasePrice() == 12.48, p.Commission() == 1.87, p.DriverEarnings() == 10.61
type PricingEngine struct {
	rates PricingRates
}

func NewPricingEngine(rates PricingRates) *PricingEngine {
	return &PricingEngine{rates: rates}
}

// Calculate prices a delivery.
//
// Returns:
//   - Validation when distanceKm is negative, NaN or infinite
//   - Validation when the package type has no multiplier
func (e *PricingEngine) Calculate(distanceKm float64, packageType order.PackageType, isUrgent bool) (order.Pricing, error) {
	if math.IsNaN(distanceKm) || math.IsInf(distanceKm, 0) || distanceKm < 0 {
		return order.Pricing{}, errs.NewValueIsOutOfRangeError("distance", distanceKm, 0, "+Inf")
	}
	multiplier, ok := e.rates.Multipliers[packageType]
	if !ok {
		return order.Pricing{}, errs.NewValueIsInvalidErrorWithCause("packageType",
			fmt.Errorf("no multiplier for %s", packageType))
	}

	distance := decimal.NewFromFloat(distanceKm)

	base := kernel.NewMoney(decimal.Max(e.rates.MinimumBase, distance.Mul(e.rates.PerKm).Mul(multiplier)))
	urgency := kernel.ZeroMoney
	if isUrgent {
		urgency = base.MulRate(e.rates.UrgencyRate)
	}
	total := base.Add(urgency)
	commission := total.MulRate(e.rates.CommissionRate)
	earnings := total.Sub(commission)

	return order.NewPricing(distance, base, urgency, total, commission, earnings, e.EstimateMinutes(distance))
}

// EstimateMinutes is ceil(distance / speed * 60).
func (e *PricingEngine) EstimateMinutes(distanceKm decimal.Decimal) int {
	if e.rates.AverageKmh.IsZero() {
		return 0
	}
	return int(distanceKm.Mul(decimal.NewFromInt(60)).Div(e.rates.AverageKmh).Ceil().IntPart())
}
