package reconciliation

import (
	"fmt"

	"prefacturation_service/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// roundingTolerance is the allowed gap, in currency units, between a total and
// the sum it is derived from.
var roundingTolerance = decimal.RequireFromString("0.01")

// ValidateSnapshot checks that the snapshot carries its totals and that they
// reconstruct from the components:
//
//	totalHT  = base + distance + options + waiting - penalties
//	totalTTC = totalHT * (1 + tva)
func ValidateSnapshot(c entities.Calculation) error {
	if c.TotalHT <= 0 {
		return fmt.Errorf("%w: total_ht is missing", ErrInvalidSnapshot)
	}
	if c.TotalTTC <= 0 {
		return fmt.Errorf("%w: total_ttc is missing", ErrInvalidSnapshot)
	}
	if c.TVA < 0 {
		return fmt.Errorf("%w: tva must not be negative", ErrInvalidSnapshot)
	}

	totalHT := decimal.NewFromFloat(c.TotalHT)
	sum := decimal.NewFromFloat(c.BasePrice).
		Add(decimal.NewFromFloat(c.DistancePrice)).
		Add(decimal.NewFromFloat(c.OptionsPrice)).
		Add(decimal.NewFromFloat(c.WaitingTimePrice)).
		Sub(decimal.NewFromFloat(c.Penalties))
	if sum.Sub(totalHT).Abs().GreaterThan(roundingTolerance) {
		return fmt.Errorf("%w: total_ht %s does not match components %s", ErrInvalidSnapshot, totalHT.StringFixed(2), sum.StringFixed(2))
	}

	ttc := totalHT.Mul(decimal.NewFromInt(1).Add(decimal.NewFromFloat(c.TVA)))
	if ttc.Sub(decimal.NewFromFloat(c.TotalTTC)).Abs().GreaterThan(roundingTolerance) {
		return fmt.Errorf("%w: total_ttc %.2f does not match total_ht with tva (%s)", ErrInvalidSnapshot, c.TotalTTC, ttc.StringFixed(2))
	}
	return nil
}

// BuildSnapshot fills TotalHT and TotalTTC from the components, rounded to cents.
func BuildSnapshot(c entities.Calculation) entities.Calculation {
	sum := decimal.NewFromFloat(c.BasePrice).
		Add(decimal.NewFromFloat(c.DistancePrice)).
		Add(decimal.NewFromFloat(c.OptionsPrice)).
		Add(decimal.NewFromFloat(c.WaitingTimePrice)).
		Sub(decimal.NewFromFloat(c.Penalties)).
		Round(2)
	ttc := sum.Mul(decimal.NewFromInt(1).Add(decimal.NewFromFloat(c.TVA))).Round(2)
	c.TotalHT = sum.InexactFloat64()
	c.TotalTTC = ttc.InexactFloat64()
	return c
}
