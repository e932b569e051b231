package reconciliation

import (
	"prefacturation_service/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// Tolerance bounds the deviation accepted for one field.
//
// When the expected value is non-zero and Percent is positive, the field is
// out of tolerance once |differencePercent| > Percent. Otherwise (zero
// expected value, or a purely absolute tolerance such as waiting minutes) it
// is out of tolerance once |difference| > Absolute.
type Tolerance struct {
	Percent  float64 `json:"percent"`
	Absolute float64 `json:"absolute"`
}

// Tolerances maps each comparable field to its tolerance. Fields missing from
// the map are compared exactly.
type Tolerances map[entities.DiscrepancyType]Tolerance

// DefaultTolerances mirrors the values the billing portals used: 2% on
// monetary fields and one minute of waiting time. Pallet counts are exact.
func DefaultTolerances() Tolerances {
	return Tolerances{
		entities.DiscrepancyTypePrice:       {Percent: 2},
		entities.DiscrepancyTypeDistance:    {Percent: 5},
		entities.DiscrepancyTypeOptions:     {Percent: 2},
		entities.DiscrepancyTypePalettes:    {},
		entities.DiscrepancyTypeWaitingTime: {Absolute: 1},
		entities.DiscrepancyTypeVolume:      {Percent: 5},
	}
}

func (t Tolerance) exceeded(expected, difference, percent decimal.Decimal) bool {
	if !expected.IsZero() && t.Percent > 0 {
		return percent.Abs().GreaterThan(decimal.NewFromFloat(t.Percent))
	}
	return difference.Abs().GreaterThan(decimal.NewFromFloat(t.Absolute))
}
