package entities

import "time"

// DiscrepancyType names the billed field that diverged.
type DiscrepancyType string

const (
	DiscrepancyTypePrice       DiscrepancyType = "price"
	DiscrepancyTypeDistance    DiscrepancyType = "distance"
	DiscrepancyTypeOptions     DiscrepancyType = "options"
	DiscrepancyTypePalettes    DiscrepancyType = "palettes"
	DiscrepancyTypeWaitingTime DiscrepancyType = "waiting_time"
	DiscrepancyTypeVolume      DiscrepancyType = "volume"
)

// DiscrepancyTypes is the field enumeration order used by the detector.
var DiscrepancyTypes = []DiscrepancyType{
	DiscrepancyTypePrice,
	DiscrepancyTypeDistance,
	DiscrepancyTypeOptions,
	DiscrepancyTypePalettes,
	DiscrepancyTypeWaitingTime,
	DiscrepancyTypeVolume,
}

type DiscrepancyStatus string

const (
	DiscrepancyStatusOpen      DiscrepancyStatus = "open"
	DiscrepancyStatusAccepted  DiscrepancyStatus = "accepted"
	DiscrepancyStatusContested DiscrepancyStatus = "contested"
	DiscrepancyStatusResolved  DiscrepancyStatus = "resolved"
	DiscrepancyStatusRejected  DiscrepancyStatus = "rejected"
)

// Resolution records the logistician decision on a discrepancy.
type Resolution struct {
	Decision   string    `json:"decision"`
	ResolvedBy string    `json:"resolved_by"`
	ResolvedAt time.Time `json:"resolved_at"`
}

// Contestation records why the carrier disputes a discrepancy.
type Contestation struct {
	Reason      string    `json:"reason"`
	Documents   []string  `json:"documents,omitempty"`
	ContestedBy string    `json:"contested_by"`
	ContestedAt time.Time `json:"contested_at"`
}

// Discrepancy is a deviation between the snapshot and the carrier declaration.
// DifferencePercent is nil when ExpectedValue is zero.
type Discrepancy struct {
	Type              DiscrepancyType   `json:"type"`
	Description       string            `json:"description"`
	ExpectedValue     float64           `json:"expected_value"`
	ActualValue       float64           `json:"actual_value"`
	Difference        float64           `json:"difference"`
	DifferencePercent *float64          `json:"difference_percent,omitempty"`
	Status            DiscrepancyStatus `json:"status"`
	DetectedAt        *time.Time        `json:"detected_at,omitempty"`
	AcceptedBy        string            `json:"accepted_by,omitempty"`
	AcceptedAt        *time.Time        `json:"accepted_at,omitempty"`
	Contestation      *Contestation     `json:"contestation,omitempty"`
	Resolution        *Resolution       `json:"resolution,omitempty"`
}

// SameFinding reports whether o describes the same deviation as d, ignoring
// its workflow fields.
func (d Discrepancy) SameFinding(o Discrepancy) bool {
	return d.Type == o.Type && d.ExpectedValue == o.ExpectedValue && d.ActualValue == o.ActualValue
}

func (d Discrepancy) clone() Discrepancy {
	out := d
	if d.DifferencePercent != nil {
		v := *d.DifferencePercent
		out.DifferencePercent = &v
	}
	out.DetectedAt = cloneTime(d.DetectedAt)
	out.AcceptedAt = cloneTime(d.AcceptedAt)
	if d.Contestation != nil {
		c := *d.Contestation
		c.Documents = append([]string(nil), d.Contestation.Documents...)
		out.Contestation = &c
	}
	if d.Resolution != nil {
		r := *d.Resolution
		out.Resolution = &r
	}
	return out
}
