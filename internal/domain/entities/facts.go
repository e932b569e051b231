package entities

import "time"

// Document names used in the delivery checklist.
const (
	DocumentProofOfDelivery = "proof_of_delivery"
	DocumentSignedCMR       = "signed_cmr"
)

// Vigilance document kinds a carrier must keep current.
const (
	VigilanceURSSAF           = "urssaf"
	VigilanceInsurance        = "insurance"
	VigilanceTransportLicense = "transport_license"
	VigilanceKbis             = "kbis"
)

// DocumentChecklist lists which delivery documents are on file.
type DocumentChecklist struct {
	ProofOfDelivery bool `json:"proof_of_delivery"`
	SignedCMR       bool `json:"signed_cmr"`
}

type VigilanceDocument struct {
	Type      string     `json:"type"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// VigilanceRecord is the carrier's compliance document set.
type VigilanceRecord struct {
	CarrierID string              `json:"carrier_id"`
	Documents []VigilanceDocument `json:"documents"`
}

type PalletBalance struct {
	PalletType string  `json:"pallet_type"`
	Balance    float64 `json:"balance"`
}

type DeliveryTimestamps struct {
	ScheduledAt time.Time `json:"scheduled_at"`
	ActualAt    time.Time `json:"actual_at"`
}

// BlockFacts are the external facts the block evaluator decides on.
// A nil member means the fact could not be obtained.
type BlockFacts struct {
	Documents *DocumentChecklist  `json:"documents,omitempty"`
	Vigilance *VigilanceRecord    `json:"vigilance,omitempty"`
	Pallets   *PalletBalance      `json:"pallets,omitempty"`
	Delivery  *DeliveryTimestamps `json:"delivery,omitempty"`
}
