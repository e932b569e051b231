package entities

import "time"

type BlockType string

const (
	BlockTypeMissingDocuments BlockType = "missing_documents"
	BlockTypeVigilance        BlockType = "vigilance"
	BlockTypePallets          BlockType = "pallets"
	BlockTypeLate             BlockType = "late"
	BlockTypeManual           BlockType = "manual"
)

// IsValid reports whether t is a known block type.
func (t BlockType) IsValid() bool {
	switch t {
	case BlockTypeMissingDocuments, BlockTypeVigilance, BlockTypePallets, BlockTypeLate, BlockTypeManual:
		return true
	}
	return false
}

// BlockDetails carries the facts that explain why a block was raised.
type BlockDetails struct {
	MissingDocuments []string `json:"missing_documents,omitempty"`
	ExpiredDocuments []string `json:"expired_documents,omitempty"`
	PalletType       string   `json:"pallet_type,omitempty"`
	PalletBalance    *float64 `json:"pallet_balance,omitempty"`
	DelayMinutes     *int     `json:"delay_minutes,omitempty"`
}

// Block is a condition preventing finalization. Only active blocks count.
type Block struct {
	ID               string        `json:"id"`
	Type             BlockType     `json:"type"`
	Reason           string        `json:"reason"`
	Details          *BlockDetails `json:"details,omitempty"`
	Active           bool          `json:"active"`
	BlockedAt        time.Time     `json:"blocked_at"`
	BlockedBy        string        `json:"blocked_by"`
	ResolvedAt       *time.Time    `json:"resolved_at,omitempty"`
	ResolvedBy       string        `json:"resolved_by,omitempty"`
	ResolutionReason string        `json:"resolution_reason,omitempty"`
}

func (b Block) clone() Block {
	out := b
	out.ResolvedAt = cloneTime(b.ResolvedAt)
	if b.Details != nil {
		d := *b.Details
		d.MissingDocuments = append([]string(nil), b.Details.MissingDocuments...)
		d.ExpiredDocuments = append([]string(nil), b.Details.ExpiredDocuments...)
		d.PalletBalance = cloneFloat(b.Details.PalletBalance)
		if b.Details.DelayMinutes != nil {
			m := *b.Details.DelayMinutes
			d.DelayMinutes = &m
		}
		out.Details = &d
	}
	return out
}
