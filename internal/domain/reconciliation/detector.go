package reconciliation

import (
	"fmt"

	"prefacturation_service/internal/domain/entities"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type comparableField struct {
	kind     entities.DiscrepancyType
	label    string
	expected *float64
	actual   *float64
}

func comparableFields(c entities.Calculation, d entities.DeclaredValues) []comparableField {
	totalHT := c.TotalHT
	optionsPrice := c.OptionsPrice
	return []comparableField{
		{kind: entities.DiscrepancyTypePrice, label: "total HT", expected: &totalHT, actual: d.TotalHT},
		{kind: entities.DiscrepancyTypeDistance, label: "distance (km)", expected: c.DistanceKm, actual: d.DistanceKm},
		{kind: entities.DiscrepancyTypeOptions, label: "options", expected: &optionsPrice, actual: d.OptionsPrice},
		{kind: entities.DiscrepancyTypePalettes, label: "pallets", expected: c.Pallets, actual: d.Pallets},
		{kind: entities.DiscrepancyTypeWaitingTime, label: "waiting time (min)", expected: c.WaitingMinutes, actual: d.WaitingMinutes},
		{kind: entities.DiscrepancyTypeVolume, label: "volume (m3)", expected: c.Volume, actual: d.Volume},
	}
}

// Detect compares the snapshot with the carrier declaration and returns one
// open discrepancy per field out of tolerance, in field enumeration order.
// Fields missing on either side are skipped. Detect has no side effects and
// returns the same result for the same inputs.
func Detect(snapshot entities.Calculation, declared entities.DeclaredValues, tolerances Tolerances) ([]entities.Discrepancy, error) {
	if err := ValidateSnapshot(snapshot); err != nil {
		return nil, err
	}

	out := make([]entities.Discrepancy, 0)
	for _, f := range comparableFields(snapshot, declared) {
		if f.expected == nil || f.actual == nil {
			continue
		}

		expected := decimal.NewFromFloat(*f.expected)
		actual := decimal.NewFromFloat(*f.actual)
		raw := actual.Sub(expected)
		rawPercent := decimal.Zero
		if !expected.IsZero() {
			rawPercent = raw.Div(expected).Mul(hundred)
		}

		// Rounded values are for display only.
		if !tolerances[f.kind].exceeded(expected, raw, rawPercent) {
			continue
		}

		difference := raw.Round(2).InexactFloat64()
		var percent *float64
		if !expected.IsZero() {
			percentValue := rawPercent.Round(2).InexactFloat64()
			percent = &percentValue
		}

		out = append(out, entities.Discrepancy{
			Type:              f.kind,
			Description:       describe(f.label, expected, actual, percent),
			ExpectedValue:     *f.expected,
			ActualValue:       *f.actual,
			Difference:        difference,
			DifferencePercent: percent,
			Status:            entities.DiscrepancyStatusOpen,
		})
	}
	return out, nil
}

func describe(label string, expected, actual decimal.Decimal, percent *float64) string {
	if percent == nil {
		return fmt.Sprintf("%s: expected %s, declared %s", label, expected.StringFixed(2), actual.StringFixed(2))
	}
	return fmt.Sprintf("%s: expected %s, declared %s (%+.2f%%)", label, expected.StringFixed(2), actual.StringFixed(2), *percent)
}

// MergeDetected replaces the previous discrepancy list with a fresh detection.
// A fresh finding identical to a previous one keeps the previous workflow
// state, so uploading the same invoice twice changes nothing.
func MergeDetected(previous, detected []entities.Discrepancy) []entities.Discrepancy {
	out := make([]entities.Discrepancy, 0, len(detected))
	used := make([]bool, len(previous))
	for _, d := range detected {
		merged := d
		for i, p := range previous {
			if used[i] || !p.SameFinding(d) {
				continue
			}
			used[i] = true
			merged = p
			break
		}
		out = append(out, merged)
	}
	return out
}
