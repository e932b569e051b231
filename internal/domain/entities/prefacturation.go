package entities

import "time"

// PrefacturationStatus is the canonical state of a prefacturation.
//
// Display labels live in the HTTP response layer; these values are the only
// ones the state machine reads or writes.
type PrefacturationStatus string

const (
	PrefacturationStatusDraft               PrefacturationStatus = "draft"
	PrefacturationStatusGenerated           PrefacturationStatus = "generated"
	PrefacturationStatusDiscrepancyDetected PrefacturationStatus = "discrepancy_detected"
	PrefacturationStatusPendingValidation   PrefacturationStatus = "pending_validation"
	PrefacturationStatusValidated           PrefacturationStatus = "validated"
	PrefacturationStatusContested           PrefacturationStatus = "contested"
	PrefacturationStatusConflictClosed      PrefacturationStatus = "conflict_closed"
	PrefacturationStatusBlocked             PrefacturationStatus = "blocked"
	PrefacturationStatusFinalized           PrefacturationStatus = "finalized"
	PrefacturationStatusExported            PrefacturationStatus = "exported"
	PrefacturationStatusArchived            PrefacturationStatus = "archived"
)

// IsTerminal reports whether the status is past finalization (append-only history).
func (s PrefacturationStatus) IsTerminal() bool {
	switch s {
	case PrefacturationStatusFinalized, PrefacturationStatusExported, PrefacturationStatusArchived:
		return true
	}
	return false
}

// IsValid reports whether s is one of the known statuses.
func (s PrefacturationStatus) IsValid() bool {
	switch s {
	case PrefacturationStatusDraft, PrefacturationStatusGenerated, PrefacturationStatusDiscrepancyDetected,
		PrefacturationStatusPendingValidation, PrefacturationStatusValidated, PrefacturationStatusContested,
		PrefacturationStatusConflictClosed, PrefacturationStatusBlocked, PrefacturationStatusFinalized,
		PrefacturationStatusExported, PrefacturationStatusArchived:
		return true
	}
	return false
}

type CarrierValidationStatus string

const (
	CarrierValidationPending   CarrierValidationStatus = "pending"
	CarrierValidationAccepted  CarrierValidationStatus = "accepted"
	CarrierValidationContested CarrierValidationStatus = "contested"
	CarrierValidationTimeout   CarrierValidationStatus = "timeout"
)

// Calculation is the snapshot of what the platform computed for the order.
// It is written once at generation time and never mutated afterwards.
//
// Quantity fields are optional: a nil value means the pricing engine did not
// report that quantity, so the detector skips it.
type Calculation struct {
	BasePrice        float64 `json:"base_price"`
	DistancePrice    float64 `json:"distance_price"`
	OptionsPrice     float64 `json:"options_price"`
	WaitingTimePrice float64 `json:"waiting_time_price"`
	Penalties        float64 `json:"penalties"`
	TotalHT          float64 `json:"total_ht"`
	TVA              float64 `json:"tva"`
	TotalTTC         float64 `json:"total_ttc"`

	DistanceKm     *float64 `json:"distance_km,omitempty"`
	Pallets        *float64 `json:"pallets,omitempty"`
	WaitingMinutes *float64 `json:"waiting_minutes,omitempty"`
	Volume         *float64 `json:"volume,omitempty"`
}

// DeclaredValues are the carrier-declared amounts and quantities, extracted by
// OCR or typed by the carrier. Absent fields are nil.
type DeclaredValues struct {
	TotalHT        *float64 `json:"total_ht,omitempty"`
	DistanceKm     *float64 `json:"distance_km,omitempty"`
	OptionsPrice   *float64 `json:"options_price,omitempty"`
	Pallets        *float64 `json:"pallets,omitempty"`
	WaitingMinutes *float64 `json:"waiting_minutes,omitempty"`
	Volume         *float64 `json:"volume,omitempty"`
}

// CarrierInvoice is the document uploaded by the carrier.
type CarrierInvoice struct {
	InvoiceNumber string         `json:"invoice_number"`
	InvoiceDate   *time.Time     `json:"invoice_date,omitempty"`
	TotalHT       float64        `json:"total_ht"`
	TVA           float64        `json:"tva"`
	TotalTTC      float64        `json:"total_ttc"`
	DocumentURL   string         `json:"document_url,omitempty"`
	MatchScore    float64        `json:"match_score"`
	Declared      DeclaredValues `json:"declared"`
	UploadedAt    time.Time      `json:"uploaded_at"`
}

type CarrierValidation struct {
	Status      CarrierValidationStatus `json:"status"`
	SentAt      time.Time               `json:"sent_at"`
	RespondedAt *time.Time              `json:"responded_at,omitempty"`
	TimeoutAt   time.Time               `json:"timeout_at"`
}

type AuditEntry struct {
	Action      string    `json:"action"`
	PerformedBy string    `json:"performed_by"`
	Timestamp   time.Time `json:"timestamp"`
	Details     string    `json:"details,omitempty"`
}

// Prefacturation is the pre-invoice aggregate.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (order_id-index): order_id
//
// WorkflowStatus is the discrepancy-driven state. Status is what callers see:
// it equals WorkflowStatus unless at least one block is active, in which case
// it is "blocked". Version is bumped on every successful save.
type Prefacturation struct {
	ID          string `json:"id"`
	OrderID     string `json:"order_id"`
	CarrierID   string `json:"carrier_id"`
	CarrierName string `json:"carrier_name"`
	ClientID    string `json:"client_id"`
	ClientName  string `json:"client_name"`

	Calculation       Calculation       `json:"calculation"`
	CarrierInvoice    *CarrierInvoice   `json:"carrier_invoice,omitempty"`
	CarrierValidation CarrierValidation `json:"carrier_validation"`
	Discrepancies     []Discrepancy     `json:"discrepancies"`
	Blocks            []Block           `json:"blocks"`

	Status         PrefacturationStatus `json:"status"`
	WorkflowStatus PrefacturationStatus `json:"workflow_status"`

	ValidatedAt *time.Time `json:"validated_at,omitempty"`
	ValidatedBy string     `json:"validated_by,omitempty"`
	FinalizedAt *time.Time `json:"finalized_at,omitempty"`
	ExportedAt  *time.Time `json:"exported_at,omitempty"`
	ExportRef   string     `json:"export_ref,omitempty"`
	ArchivedAt  *time.Time `json:"archived_at,omitempty"`

	AuditTrail []AuditEntry `json:"audit_trail"`

	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasActiveBlocks reports whether any block is currently active.
func (p Prefacturation) HasActiveBlocks() bool {
	for _, b := range p.Blocks {
		if b.Active {
			return true
		}
	}
	return false
}

// HasPendingDiscrepancies reports whether any discrepancy is still open or contested.
func (p Prefacturation) HasPendingDiscrepancies() bool {
	for _, d := range p.Discrepancies {
		if d.Status == DiscrepancyStatusOpen || d.Status == DiscrepancyStatusContested {
			return true
		}
	}
	return false
}

// CountDiscrepancies returns how many discrepancies have the given status.
func (p Prefacturation) CountDiscrepancies(status DiscrepancyStatus) int {
	n := 0
	for _, d := range p.Discrepancies {
		if d.Status == status {
			n++
		}
	}
	return n
}

// Clone returns a deep copy so a mutation can be discarded when persisting fails.
func (p Prefacturation) Clone() Prefacturation {
	out := p
	out.Calculation = p.Calculation.clone()
	if p.CarrierInvoice != nil {
		inv := *p.CarrierInvoice
		inv.InvoiceDate = cloneTime(p.CarrierInvoice.InvoiceDate)
		inv.Declared = p.CarrierInvoice.Declared.clone()
		out.CarrierInvoice = &inv
	}
	out.CarrierValidation.RespondedAt = cloneTime(p.CarrierValidation.RespondedAt)
	if p.Discrepancies != nil {
		out.Discrepancies = make([]Discrepancy, len(p.Discrepancies))
		for i, d := range p.Discrepancies {
			out.Discrepancies[i] = d.clone()
		}
	}
	if p.Blocks != nil {
		out.Blocks = make([]Block, len(p.Blocks))
		for i, b := range p.Blocks {
			out.Blocks[i] = b.clone()
		}
	}
	if p.AuditTrail != nil {
		out.AuditTrail = append([]AuditEntry(nil), p.AuditTrail...)
	}
	out.ValidatedAt = cloneTime(p.ValidatedAt)
	out.FinalizedAt = cloneTime(p.FinalizedAt)
	out.ExportedAt = cloneTime(p.ExportedAt)
	out.ArchivedAt = cloneTime(p.ArchivedAt)
	return out
}

func (c Calculation) clone() Calculation {
	out := c
	out.DistanceKm = cloneFloat(c.DistanceKm)
	out.Pallets = cloneFloat(c.Pallets)
	out.WaitingMinutes = cloneFloat(c.WaitingMinutes)
	out.Volume = cloneFloat(c.Volume)
	return out
}

func (d DeclaredValues) clone() DeclaredValues {
	return DeclaredValues{
		TotalHT:        cloneFloat(d.TotalHT),
		DistanceKm:     cloneFloat(d.DistanceKm),
		OptionsPrice:   cloneFloat(d.OptionsPrice),
		Pallets:        cloneFloat(d.Pallets),
		WaitingMinutes: cloneFloat(d.WaitingMinutes),
		Volume:         cloneFloat(d.Volume),
	}
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneTime(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
