package usecase

import (
	"context"
	"log"
	"prefacturation_service/internal/domain/entities"
	"prefacturation_service/internal/domain/reconciliation"
	"prefacturation_service/internal/usecase/interfaces"
	"time"
)

// ContestInput is the carrier's dispute of one discrepancy.
type ContestInput struct {
	Reason    string
	Documents []string
	Actor     string
}

// ResolveInput is the logistician's ruling on one discrepancy.
type ResolveInput struct {
	Decision string
	Reject   bool
	Actor    string
}

// UnblockInput targets a block by index or, when Index is nil, by type.
type UnblockInput struct {
	Index  *int
	Type   entities.BlockType
	Reason string
	Actor  string
}

// IResolutionUseCase exposes the carrier and logistician actions on
// discrepancies and blocks. Every call is serialized per prefacturation.

type IResolutionUseCase interface {
	AcceptDiscrepancy(ctx context.Context, id string, index int, actor string) (entities.Prefacturation, error)
	ContestDiscrepancy(ctx context.Context, id string, index int, in ContestInput) (entities.Prefacturation, error)
	ResolveDiscrepancy(ctx context.Context, id string, index int, in ResolveInput) (entities.Prefacturation, error)
	Unblock(ctx context.Context, id string, in UnblockInput) (entities.Prefacturation, error)
	RaiseManualBlock(ctx context.Context, id, reason, actor string) (entities.Prefacturation, error)
}

type ResolutionUseCase struct {
	*aggregateMutator
	machine *reconciliation.StateMachine
}

var _ IResolutionUseCase = (*ResolutionUseCase)(nil)

func NewResolutionUseCase(
	repo interfaces.IPrefacturationRepository,
	locker interfaces.ILocker,
	publisher interfaces.IEventPublisher,
	metrics interfaces.IReconciliationMetrics,
	machine *reconciliation.StateMachine,
) *ResolutionUseCase {
	return &ResolutionUseCase{
		aggregateMutator: newAggregateMutator(repo, locker, publisher, metrics),
		machine:          machine,
	}
}

func (u *ResolutionUseCase) AcceptDiscrepancy(ctx context.Context, id string, index int, actor string) (entities.Prefacturation, error) {
	log.Printf("[resolution][usecase] accept start id=%s index=%d", id, index)
	return u.mutate(ctx, id, "accept_discrepancy", func(p *entities.Prefacturation, now time.Time) error {
		return u.machine.AcceptDiscrepancy(p, index, actorOrDefault(actor), now)
	})
}

func (u *ResolutionUseCase) ContestDiscrepancy(ctx context.Context, id string, index int, in ContestInput) (entities.Prefacturation, error) {
	log.Printf("[resolution][usecase] contest start id=%s index=%d documents=%d", id, index, len(in.Documents))
	return u.mutate(ctx, id, "contest_discrepancy", func(p *entities.Prefacturation, now time.Time) error {
		return u.machine.ContestDiscrepancy(p, index, in.Reason, in.Documents, actorOrDefault(in.Actor), now)
	})
}

func (u *ResolutionUseCase) ResolveDiscrepancy(ctx context.Context, id string, index int, in ResolveInput) (entities.Prefacturation, error) {
	log.Printf("[resolution][usecase] resolve start id=%s index=%d reject=%t", id, index, in.Reject)
	decision := reconciliation.Decision{Text: in.Decision, Reject: in.Reject}
	return u.mutate(ctx, id, "resolve_discrepancy", func(p *entities.Prefacturation, now time.Time) error {
		return u.machine.ResolveDiscrepancy(p, index, decision, actorOrDefault(in.Actor), now)
	})
}

func (u *ResolutionUseCase) Unblock(ctx context.Context, id string, in UnblockInput) (entities.Prefacturation, error) {
	log.Printf("[resolution][usecase] unblock start id=%s type=%s", id, in.Type)
	target := reconciliation.BlockTarget{Index: in.Index, Type: in.Type}
	return u.mutate(ctx, id, "unblock", func(p *entities.Prefacturation, now time.Time) error {
		return u.machine.Unblock(p, target, in.Reason, actorOrDefault(in.Actor), now)
	})
}

func (u *ResolutionUseCase) RaiseManualBlock(ctx context.Context, id, reason, actor string) (entities.Prefacturation, error) {
	log.Printf("[resolution][usecase] manual-block start id=%s", id)
	return u.mutate(ctx, id, "raise_manual_block", func(p *entities.Prefacturation, now time.Time) error {
		return u.machine.RaiseManualBlock(p, reason, actorOrDefault(actor), now)
	})
}
