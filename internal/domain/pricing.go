package domain

import (
	"errors"
	"math"
)

// Errors
var (
	ErrInvalidRoute       = errors.New("origin and destination cannot be the same")
	ErrUnknownServiceType = errors.New("unknown service type")
)

// Pricing constants. Prices are in whole currency units.
const (
	baseCharge        = 10.0
	distanceCharge    = 5.0
	weightCharge      = 2.0
	weightFactorRate  = 0.5
	MinimumBasePrice  = 15.0
	InsuranceRate     = 0.01
	FuelSurchargeRate = 0.075
	DefaultWeight     = 1.0
)

// PriceBreakdown is the priced result of a quote calculation. Values are
// kept unrounded; rounding to two decimals happens at the presentation
// boundary only, so intermediate steps do not compound rounding error.
type PriceBreakdown struct {
	BasePrice     float64
	InsuranceCost float64
	Surcharge     float64
	TotalPrice    float64
}

// CalculateQuote prices a shipment from the rate table and service catalog.
// The calculation is deterministic for identical inputs.
//
// A non-positive or NaN weight falls back to DefaultWeight rather than
// failing, and a negative insurance value is treated as zero; the
// reconciliation layer depends on this permissiveness so the local and
// remote paths accept the same inputs.
func CalculateQuote(rates RateTable, catalog ServiceCatalog, origin, destination, serviceType string, weight, insuranceValue float64) (PriceBreakdown, error) {
	if NormalizeCountry(origin) == NormalizeCountry(destination) {
		return PriceBreakdown{}, ErrInvalidRoute
	}

	svc, ok := catalog.Lookup(serviceType)
	if !ok {
		return PriceBreakdown{}, ErrUnknownServiceType
	}

	if weight <= 0 || math.IsNaN(weight) {
		weight = DefaultWeight
	}

	distanceFactor := rates.DistanceFactor(origin, destination)
	weightFactor := weight * weightFactorRate

	basePrice := baseCharge + distanceFactor*distanceCharge + weightFactor*weightCharge*svc.Multiplier
	basePrice = math.Max(basePrice, MinimumBasePrice)

	insuranceCost := 0.0
	if insuranceValue > 0 {
		insuranceCost = insuranceValue * InsuranceRate
	}

	surcharge := basePrice * FuelSurchargeRate

	return PriceBreakdown{
		BasePrice:     basePrice,
		InsuranceCost: insuranceCost,
		Surcharge:     surcharge,
		TotalPrice:    basePrice + insuranceCost + surcharge,
	}, nil
}

// Round2 rounds a monetary value to two decimal places, half-cent values
// rounding up. Called when prices cross the presentation boundary, never
// between calculation steps. The epsilon keeps values like 27*0.075, which
// sit a hair below the half-cent in binary, rounding to 2.03 rather than
// 2.02.
func Round2(v float64) float64 {
	return math.Round(v*100+1e-9) / 100
}
