package request

import (
	"prefacturation_service/internal/domain/entities"
	"prefacturation_service/internal/usecase"
)

type ContestDiscrepancyRequest struct {
	Reason    string   `json:"reason" binding:"required,notblank"`
	Documents []string `json:"documents" binding:"omitempty,dive,notblank"`
}

func (r ContestDiscrepancyRequest) ToInput(actor string) usecase.ContestInput {
	return usecase.ContestInput{Reason: r.Reason, Documents: r.Documents, Actor: actor}
}

// ResolveDiscrepancyRequest closes a contested discrepancy. Reject keeps the
// platform value instead of the carrier's.
type ResolveDiscrepancyRequest struct {
	Decision string `json:"decision" binding:"required,notblank"`
	Reject   bool   `json:"reject"`
}

func (r ResolveDiscrepancyRequest) ToInput(actor string) usecase.ResolveInput {
	return usecase.ResolveInput{Decision: r.Decision, Reject: r.Reject, Actor: actor}
}

// UnblockRequest targets a block by index or by type.
type UnblockRequest struct {
	BlockType  string `json:"block_type" binding:"required_without=BlockIndex,block_type"`
	BlockIndex *int   `json:"block_index" binding:"omitempty,gte=0"`
	Reason     string `json:"reason" binding:"required,notblank"`
}

func (r UnblockRequest) ToInput(actor string) usecase.UnblockInput {
	return usecase.UnblockInput{
		Index:  r.BlockIndex,
		Type:   entities.BlockType(r.BlockType),
		Reason: r.Reason,
		Actor:  actor,
	}
}

type ManualBlockRequest struct {
	Reason string `json:"reason" binding:"required,notblank"`
}
