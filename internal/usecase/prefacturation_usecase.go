package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"prefacturation_service/internal/domain/entities"
	"prefacturation_service/internal/domain/reconciliation"
	"prefacturation_service/internal/usecase/interfaces"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const defaultListLimit = 100

// GenerateInput is the delivered order handed over by the order service.
type GenerateInput struct {
	OrderID     string
	CarrierID   string
	CarrierName string
	ClientID    string
	ClientName  string
	Calculation entities.Calculation
	Actor       string
}

// IPrefacturationUseCase drives the prefacturation lifecycle:
//   - generation from a delivered order (draft -> generated)
//   - carrier invoice upload, which runs the discrepancy detector
//   - block evaluation against external facts
//   - validation, finalization, export and archiving
//   - the carrier validation timeout (forceAcceptAllOpen)

type IPrefacturationUseCase interface {
	Generate(ctx context.Context, in GenerateInput) (entities.Prefacturation, error)
	GetByID(ctx context.Context, id string) (entities.Prefacturation, error)
	List(ctx context.Context, filter interfaces.PrefacturationFilter) ([]entities.Prefacturation, error)
	Stats(ctx context.Context, filter interfaces.PrefacturationFilter) (entities.PrefacturationStats, error)
	AttachInvoice(ctx context.Context, id string, invoice entities.CarrierInvoice, actor string) (entities.Prefacturation, error)
	EvaluateBlocks(ctx context.Context, id string) (entities.Prefacturation, error)
	Validate(ctx context.Context, id, actor string) (entities.Prefacturation, error)
	Finalize(ctx context.Context, id, actor string) (entities.Prefacturation, error)
	MarkExported(ctx context.Context, id, exportRef, actor string) (entities.Prefacturation, error)
	Archive(ctx context.Context, id, actor string) (entities.Prefacturation, error)
	ForceAcceptAllOpen(ctx context.Context, id string) (entities.Prefacturation, error)
}

type PrefacturationUseCase struct {
	*aggregateMutator
	facts      interfaces.IFactsProvider
	machine    *reconciliation.StateMachine
	statsGroup singleflight.Group
}

var _ IPrefacturationUseCase = (*PrefacturationUseCase)(nil)

func NewPrefacturationUseCase(
	repo interfaces.IPrefacturationRepository,
	locker interfaces.ILocker,
	facts interfaces.IFactsProvider,
	publisher interfaces.IEventPublisher,
	metrics interfaces.IReconciliationMetrics,
	machine *reconciliation.StateMachine,
) *PrefacturationUseCase {
	return &PrefacturationUseCase{
		aggregateMutator: newAggregateMutator(repo, locker, publisher, metrics),
		facts:            facts,
		machine:          machine,
	}
}

func (u *PrefacturationUseCase) Generate(ctx context.Context, in GenerateInput) (entities.Prefacturation, error) {
	orderID := strings.TrimSpace(in.OrderID)
	if orderID == "" {
		return entities.Prefacturation{}, ErrInvalidOrderID
	}
	if strings.TrimSpace(in.CarrierID) == "" || strings.TrimSpace(in.ClientID) == "" {
		return entities.Prefacturation{}, fmt.Errorf("%w: carrier_id and client_id are required", reconciliation.ErrValidation)
	}
	log.Printf("[prefacturation][usecase] generate start order_id=%s carrier_id=%s", orderID, in.CarrierID)

	// Enforce: 1 prefacturation per order.
	if existing, err := u.repo.GetByOrderID(ctx, orderID); err != nil {
		return entities.Prefacturation{}, err
	} else if existing.ID != "" {
		return entities.Prefacturation{}, ErrPrefacturationAlreadyExists
	}

	calc := in.Calculation
	if calc.TotalHT == 0 && calc.TotalTTC == 0 {
		calc = reconciliation.BuildSnapshot(calc)
	}

	now := u.now()
	p := entities.Prefacturation{
		ID:             uuid.NewString(),
		OrderID:        orderID,
		CarrierID:      strings.TrimSpace(in.CarrierID),
		CarrierName:    strings.TrimSpace(in.CarrierName),
		ClientID:       strings.TrimSpace(in.ClientID),
		ClientName:     strings.TrimSpace(in.ClientName),
		Calculation:    calc,
		WorkflowStatus: entities.PrefacturationStatusDraft,
		Status:         entities.PrefacturationStatusDraft,
		Version:        1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := u.machine.Generate(&p, actorOrDefault(in.Actor), now); err != nil {
		u.observeOperation("generate", err)
		return entities.Prefacturation{}, err
	}

	created, err := u.repo.Create(ctx, p)
	if errors.Is(err, interfaces.ErrDuplicatePrefacturation) {
		err = ErrPrefacturationAlreadyExists
	}
	u.observeOperation("generate", err)
	if err != nil {
		log.Printf("[prefacturation][usecase] generate persist failed order_id=%s err=%v", orderID, err)
		return entities.Prefacturation{}, err
	}
	log.Printf("[prefacturation][usecase] generate success id=%s order_id=%s total_ht=%.2f", created.ID, orderID, created.Calculation.TotalHT)
	u.publish(created, "generate", now)
	return created, nil
}

func (u *PrefacturationUseCase) GetByID(ctx context.Context, id string) (entities.Prefacturation, error) {
	return u.load(ctx, id)
}

func (u *PrefacturationUseCase) List(ctx context.Context, filter interfaces.PrefacturationFilter) ([]entities.Prefacturation, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", reconciliation.ErrValidation, filter.Status)
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	return u.repo.List(ctx, filter)
}

func (u *PrefacturationUseCase) AttachInvoice(ctx context.Context, id string, invoice entities.CarrierInvoice, actor string) (entities.Prefacturation, error) {
	log.Printf("[prefacturation][usecase] attach-invoice start id=%s invoice=%s match_score=%.1f", id, invoice.InvoiceNumber, invoice.MatchScore)
	saved, err := u.mutate(ctx, id, "attach_invoice", func(p *entities.Prefacturation, now time.Time) error {
		return u.machine.AttachInvoice(p, invoice, actorOrDefault(actor), now)
	})
	if err == nil && u.metrics != nil {
		u.metrics.ObserveDiscrepancies(saved.Discrepancies)
	}
	return saved, err
}

// EvaluateBlocks fetches the facts first, outside the lock, then reconciles
// the blocks in a single read-modify-write.
func (u *PrefacturationUseCase) EvaluateBlocks(ctx context.Context, id string) (entities.Prefacturation, error) {
	current, err := u.load(ctx, id)
	if err != nil {
		return entities.Prefacturation{}, err
	}
	if u.facts == nil {
		return entities.Prefacturation{}, fmt.Errorf("%w: no facts provider configured", reconciliation.ErrMissingFacts)
	}

	facts, err := u.facts.Fetch(ctx, current)
	if err != nil {
		log.Printf("[prefacturation][usecase] evaluate-blocks facts failed id=%s err=%v", current.ID, err)
		u.observeOperation("evaluate_blocks", err)
		return entities.Prefacturation{}, fmt.Errorf("%w: %v", reconciliation.ErrMissingFacts, err)
	}

	return u.mutate(ctx, current.ID, "evaluate_blocks", func(p *entities.Prefacturation, now time.Time) error {
		return u.machine.ApplyFacts(p, facts, now)
	})
}

func (u *PrefacturationUseCase) Validate(ctx context.Context, id, actor string) (entities.Prefacturation, error) {
	return u.mutate(ctx, id, "validate", func(p *entities.Prefacturation, now time.Time) error {
		return u.machine.Validate(p, actorOrDefault(actor), now)
	})
}

func (u *PrefacturationUseCase) Finalize(ctx context.Context, id, actor string) (entities.Prefacturation, error) {
	return u.mutate(ctx, id, "finalize", func(p *entities.Prefacturation, now time.Time) error {
		return u.machine.Finalize(p, actorOrDefault(actor), now)
	})
}

func (u *PrefacturationUseCase) MarkExported(ctx context.Context, id, exportRef, actor string) (entities.Prefacturation, error) {
	return u.mutate(ctx, id, "export", func(p *entities.Prefacturation, now time.Time) error {
		return u.machine.MarkExported(p, exportRef, actorOrDefault(actor), now)
	})
}

func (u *PrefacturationUseCase) Archive(ctx context.Context, id, actor string) (entities.Prefacturation, error) {
	return u.mutate(ctx, id, "archive", func(p *entities.Prefacturation, now time.Time) error {
		return u.machine.Archive(p, actorOrDefault(actor), now)
	})
}

func (u *PrefacturationUseCase) ForceAcceptAllOpen(ctx context.Context, id string) (entities.Prefacturation, error) {
	return u.mutate(ctx, id, "carrier_timeout", func(p *entities.Prefacturation, now time.Time) error {
		return u.machine.ForceAcceptAllOpen(p, now)
	})
}
