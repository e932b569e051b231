package response

import (
	"time"

	"prefacturation_service/internal/domain/entities"
)

// Display labels shown by the carrier and logistician portals. The API always
// returns the canonical value next to its label.
var (
	statusLabels = map[entities.PrefacturationStatus]string{
		entities.PrefacturationStatusDraft:               "Brouillon",
		entities.PrefacturationStatusGenerated:           "Générée",
		entities.PrefacturationStatusDiscrepancyDetected: "Écart détecté",
		entities.PrefacturationStatusPendingValidation:   "En attente de validation",
		entities.PrefacturationStatusValidated:           "Validée",
		entities.PrefacturationStatusContested:           "Contestée",
		entities.PrefacturationStatusConflictClosed:      "Conflit clos",
		entities.PrefacturationStatusBlocked:             "Bloquée",
		entities.PrefacturationStatusFinalized:           "Finalisée",
		entities.PrefacturationStatusExported:            "Exportée",
		entities.PrefacturationStatusArchived:            "Archivée",
	}
	discrepancyTypeLabels = map[entities.DiscrepancyType]string{
		entities.DiscrepancyTypePrice:       "Prix",
		entities.DiscrepancyTypeDistance:    "Distance",
		entities.DiscrepancyTypeOptions:     "Options",
		entities.DiscrepancyTypePalettes:    "Palettes",
		entities.DiscrepancyTypeWaitingTime: "Temps d'attente",
		entities.DiscrepancyTypeVolume:      "Volume",
	}
	discrepancyStatusLabels = map[entities.DiscrepancyStatus]string{
		entities.DiscrepancyStatusOpen:      "Ouvert",
		entities.DiscrepancyStatusAccepted:  "Accepté",
		entities.DiscrepancyStatusContested: "Contesté",
		entities.DiscrepancyStatusResolved:  "Résolu",
		entities.DiscrepancyStatusRejected:  "Rejeté",
	}
	blockTypeLabels = map[entities.BlockType]string{
		entities.BlockTypeMissingDocuments: "Documents manquants",
		entities.BlockTypeVigilance:        "Vigilance",
		entities.BlockTypePallets:          "Dette palettes",
		entities.BlockTypeLate:             "Retard de livraison",
		entities.BlockTypeManual:           "Blocage manuel",
	}
	carrierValidationLabels = map[entities.CarrierValidationStatus]string{
		entities.CarrierValidationPending:   "En attente",
		entities.CarrierValidationAccepted:  "Acceptée",
		entities.CarrierValidationContested: "Contestée",
		entities.CarrierValidationTimeout:   "Délai expiré",
	}
)

func label[K ~string](labels map[K]string, k K) string {
	if l, ok := labels[k]; ok {
		return l
	}
	return string(k)
}

type DiscrepancyResponse struct {
	Index             int                    `json:"index"`
	Type              string                 `json:"type"`
	TypeLabel         string                 `json:"type_label"`
	Description       string                 `json:"description"`
	ExpectedValue     float64                `json:"expected_value"`
	ActualValue       float64                `json:"actual_value"`
	Difference        float64                `json:"difference"`
	DifferencePercent *float64               `json:"difference_percent,omitempty"`
	Status            string                 `json:"status"`
	StatusLabel       string                 `json:"status_label"`
	DetectedAt        *time.Time             `json:"detected_at,omitempty"`
	AcceptedBy        string                 `json:"accepted_by,omitempty"`
	AcceptedAt        *time.Time             `json:"accepted_at,omitempty"`
	Contestation      *entities.Contestation `json:"contestation,omitempty"`
	Resolution        *entities.Resolution   `json:"resolution,omitempty"`
}

type BlockResponse struct {
	Index            int                    `json:"index"`
	ID               string                 `json:"id"`
	Type             string                 `json:"type"`
	TypeLabel        string                 `json:"type_label"`
	Reason           string                 `json:"reason"`
	Details          *entities.BlockDetails `json:"details,omitempty"`
	Active           bool                   `json:"active"`
	BlockedAt        time.Time              `json:"blocked_at"`
	BlockedBy        string                 `json:"blocked_by"`
	ResolvedAt       *time.Time             `json:"resolved_at,omitempty"`
	ResolvedBy       string                 `json:"resolved_by,omitempty"`
	ResolutionReason string                 `json:"resolution_reason,omitempty"`
}

type CarrierValidationResponse struct {
	Status      string     `json:"status"`
	StatusLabel string     `json:"status_label"`
	SentAt      time.Time  `json:"sent_at"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
	TimeoutAt   time.Time  `json:"timeout_at"`
}

type PrefacturationResponse struct {
	ID          string `json:"id"`
	OrderID     string `json:"order_id"`
	CarrierID   string `json:"carrier_id"`
	CarrierName string `json:"carrier_name"`
	ClientID    string `json:"client_id"`
	ClientName  string `json:"client_name"`

	Status              string `json:"status"`
	StatusLabel         string `json:"status_label"`
	WorkflowStatus      string `json:"workflow_status"`
	WorkflowStatusLabel string `json:"workflow_status_label"`

	Calculation       entities.Calculation      `json:"calculation"`
	CarrierInvoice    *entities.CarrierInvoice  `json:"carrier_invoice,omitempty"`
	CarrierValidation CarrierValidationResponse `json:"carrier_validation"`
	Discrepancies     []DiscrepancyResponse     `json:"discrepancies"`
	Blocks            []BlockResponse           `json:"blocks"`
	AuditTrail        []entities.AuditEntry     `json:"audit_trail"`

	ValidatedAt *time.Time `json:"validated_at,omitempty"`
	ValidatedBy string     `json:"validated_by,omitempty"`
	FinalizedAt *time.Time `json:"finalized_at,omitempty"`
	ExportedAt  *time.Time `json:"exported_at,omitempty"`
	ExportRef   string     `json:"export_ref,omitempty"`
	ArchivedAt  *time.Time `json:"archived_at,omitempty"`

	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PrefacturationSummaryResponse is the listing row.
type PrefacturationSummaryResponse struct {
	ID                string    `json:"id"`
	OrderID           string    `json:"order_id"`
	CarrierID         string    `json:"carrier_id"`
	CarrierName       string    `json:"carrier_name"`
	ClientID          string    `json:"client_id"`
	ClientName        string    `json:"client_name"`
	Status            string    `json:"status"`
	StatusLabel       string    `json:"status_label"`
	TotalHT           float64   `json:"total_ht"`
	OpenDiscrepancies int       `json:"open_discrepancies"`
	ActiveBlocks      int       `json:"active_blocks"`
	CarrierTimeoutAt  time.Time `json:"carrier_timeout_at"`
	Version           int64     `json:"version"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type PrefacturationListResponse struct {
	Items []PrefacturationSummaryResponse `json:"items"`
	Count int                             `json:"count"`
}

func FromPrefacturation(p entities.Prefacturation) PrefacturationResponse {
	out := PrefacturationResponse{
		ID:                  p.ID,
		OrderID:             p.OrderID,
		CarrierID:           p.CarrierID,
		CarrierName:         p.CarrierName,
		ClientID:            p.ClientID,
		ClientName:          p.ClientName,
		Status:              string(p.Status),
		StatusLabel:         label(statusLabels, p.Status),
		WorkflowStatus:      string(p.WorkflowStatus),
		WorkflowStatusLabel: label(statusLabels, p.WorkflowStatus),
		Calculation:         p.Calculation,
		CarrierInvoice:      p.CarrierInvoice,
		CarrierValidation: CarrierValidationResponse{
			Status:      string(p.CarrierValidation.Status),
			StatusLabel: label(carrierValidationLabels, p.CarrierValidation.Status),
			SentAt:      p.CarrierValidation.SentAt,
			RespondedAt: p.CarrierValidation.RespondedAt,
			TimeoutAt:   p.CarrierValidation.TimeoutAt,
		},
		Discrepancies: make([]DiscrepancyResponse, 0, len(p.Discrepancies)),
		Blocks:        make([]BlockResponse, 0, len(p.Blocks)),
		AuditTrail:    p.AuditTrail,
		ValidatedAt:   p.ValidatedAt,
		ValidatedBy:   p.ValidatedBy,
		FinalizedAt:   p.FinalizedAt,
		ExportedAt:    p.ExportedAt,
		ExportRef:     p.ExportRef,
		ArchivedAt:    p.ArchivedAt,
		Version:       p.Version,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if out.AuditTrail == nil {
		out.AuditTrail = []entities.AuditEntry{}
	}
	for i, d := range p.Discrepancies {
		out.Discrepancies = append(out.Discrepancies, DiscrepancyResponse{
			Index:             i,
			Type:              string(d.Type),
			TypeLabel:         label(discrepancyTypeLabels, d.Type),
			Description:       d.Description,
			ExpectedValue:     d.ExpectedValue,
			ActualValue:       d.ActualValue,
			Difference:        d.Difference,
			DifferencePercent: d.DifferencePercent,
			Status:            string(d.Status),
			StatusLabel:       label(discrepancyStatusLabels, d.Status),
			DetectedAt:        d.DetectedAt,
			AcceptedBy:        d.AcceptedBy,
			AcceptedAt:        d.AcceptedAt,
			Contestation:      d.Contestation,
			Resolution:        d.Resolution,
		})
	}
	for i, b := range p.Blocks {
		out.Blocks = append(out.Blocks, BlockResponse{
			Index:            i,
			ID:               b.ID,
			Type:             string(b.Type),
			TypeLabel:        label(blockTypeLabels, b.Type),
			Reason:           b.Reason,
			Details:          b.Details,
			Active:           b.Active,
			BlockedAt:        b.BlockedAt,
			BlockedBy:        b.BlockedBy,
			ResolvedAt:       b.ResolvedAt,
			ResolvedBy:       b.ResolvedBy,
			ResolutionReason: b.ResolutionReason,
		})
	}
	return out
}

func FromPrefacturationSummary(p entities.Prefacturation) PrefacturationSummaryResponse {
	active := 0
	for _, b := range p.Blocks {
		if b.Active {
			active++
		}
	}
	return PrefacturationSummaryResponse{
		ID:                p.ID,
		OrderID:           p.OrderID,
		CarrierID:         p.CarrierID,
		CarrierName:       p.CarrierName,
		ClientID:          p.ClientID,
		ClientName:        p.ClientName,
		Status:            string(p.Status),
		StatusLabel:       label(statusLabels, p.Status),
		TotalHT:           p.Calculation.TotalHT,
		OpenDiscrepancies: p.CountDiscrepancies(entities.DiscrepancyStatusOpen),
		ActiveBlocks:      active,
		CarrierTimeoutAt:  p.CarrierValidation.TimeoutAt,
		Version:           p.Version,
		UpdatedAt:         p.UpdatedAt,
	}
}

func FromPrefacturationList(items []entities.Prefacturation) PrefacturationListResponse {
	out := PrefacturationListResponse{Items: make([]PrefacturationSummaryResponse, 0, len(items))}
	for _, p := range items {
		out.Items = append(out.Items, FromPrefacturationSummary(p))
	}
	out.Count = len(out.Items)
	return out
}
