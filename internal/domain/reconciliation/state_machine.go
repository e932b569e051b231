package reconciliation

import (
	"fmt"
	"strings"
	"time"

	"prefacturation_service/internal/domain/entities"
)

// Audit actions recorded on the prefacturation.
const (
	ActionGenerated           = "generated"
	ActionInvoiceAttached     = "invoice_attached"
	ActionDiscrepancyAccepted = "discrepancy_accepted"
	ActionDiscrepancyContest  = "discrepancy_contested"
	ActionDiscrepancyResolved = "discrepancy_resolved"
	ActionDiscrepancyRejected = "discrepancy_rejected"
	ActionBlockRaised         = "block_raised"
	ActionBlocksEvaluated     = "blocks_evaluated"
	ActionUnblocked           = "unblocked"
	ActionValidated           = "validated"
	ActionFinalized           = "finalized"
	ActionExported            = "exported"
	ActionArchived            = "archived"
	ActionCarrierTimeout      = "carrier_timeout"
)

// CarrierTimeoutActor is recorded on discrepancies accepted by a carrier
// validation timeout.
const CarrierTimeoutActor = "system:carrier-timeout"

// StateMachine applies transitions to a prefacturation in place. Callers work
// on a clone and discard it when a method returns an error, so a failed
// transition never leaves a partial update behind.
type StateMachine struct {
	tolerances    Tolerances
	evaluator     *BlockEvaluator
	carrierWindow time.Duration
}

func NewStateMachine(tolerances Tolerances, evaluator *BlockEvaluator, carrierWindow time.Duration) *StateMachine {
	if tolerances == nil {
		tolerances = DefaultTolerances()
	}
	if evaluator == nil {
		evaluator = NewBlockEvaluator(DefaultBlockPolicy())
	}
	return &StateMachine{tolerances: tolerances, evaluator: evaluator, carrierWindow: carrierWindow}
}

// Derive recomputes the workflow status from the discrepancies and the
// displayed status from the blocks. It never moves the workflow backwards.
func Derive(p *entities.Prefacturation) {
	switch p.WorkflowStatus {
	case entities.PrefacturationStatusGenerated:
		if p.CarrierInvoice != nil {
			p.WorkflowStatus = discrepancyStatus(p)
		}
	case entities.PrefacturationStatusDiscrepancyDetected,
		entities.PrefacturationStatusPendingValidation,
		entities.PrefacturationStatusContested,
		entities.PrefacturationStatusConflictClosed:
		p.WorkflowStatus = discrepancyStatus(p)
	}

	p.Status = p.WorkflowStatus
	if p.HasActiveBlocks() && !p.WorkflowStatus.IsTerminal() {
		p.Status = entities.PrefacturationStatusBlocked
	}
}

func discrepancyStatus(p *entities.Prefacturation) entities.PrefacturationStatus {
	open := p.CountDiscrepancies(entities.DiscrepancyStatusOpen)
	contested := p.CountDiscrepancies(entities.DiscrepancyStatusContested)
	inConflict := p.WorkflowStatus == entities.PrefacturationStatusContested ||
		p.WorkflowStatus == entities.PrefacturationStatusConflictClosed

	switch {
	case contested > 0:
		return entities.PrefacturationStatusContested
	case inConflict && open > 0:
		return entities.PrefacturationStatusContested
	case inConflict:
		return entities.PrefacturationStatusConflictClosed
	case open > 0:
		return entities.PrefacturationStatusDiscrepancyDetected
	default:
		return entities.PrefacturationStatusPendingValidation
	}
}

// Generate moves a draft to generated once its snapshot is valid and opens
// the carrier validation window.
func (m *StateMachine) Generate(p *entities.Prefacturation, actor string, now time.Time) error {
	if p.WorkflowStatus != "" && p.WorkflowStatus != entities.PrefacturationStatusDraft {
		return invalidState("generate", p.WorkflowStatus)
	}
	if err := ValidateSnapshot(p.Calculation); err != nil {
		return err
	}
	p.WorkflowStatus = entities.PrefacturationStatusGenerated
	p.CarrierValidation = entities.CarrierValidation{
		Status:    entities.CarrierValidationPending,
		SentAt:    now,
		TimeoutAt: now.Add(m.carrierWindow),
	}
	if p.Discrepancies == nil {
		p.Discrepancies = []entities.Discrepancy{}
	}
	if p.Blocks == nil {
		p.Blocks = []entities.Block{}
	}
	audit(p, ActionGenerated, actor, now, "")
	Derive(p)
	return nil
}

// AttachInvoice stores the carrier invoice and re-runs detection. The new
// detection replaces the previous discrepancy list.
func (m *StateMachine) AttachInvoice(p *entities.Prefacturation, invoice entities.CarrierInvoice, actor string, now time.Time) error {
	switch p.WorkflowStatus {
	case entities.PrefacturationStatusGenerated,
		entities.PrefacturationStatusDiscrepancyDetected,
		entities.PrefacturationStatusPendingValidation:
	default:
		return invalidState("attach invoice", p.WorkflowStatus)
	}
	if strings.TrimSpace(invoice.InvoiceNumber) == "" {
		return fmt.Errorf("%w: invoice number is required", ErrValidation)
	}
	if invoice.MatchScore < 0 || invoice.MatchScore > 100 {
		return fmt.Errorf("%w: match score must be between 0 and 100", ErrValidation)
	}

	detected, err := Detect(p.Calculation, invoice.Declared, m.tolerances)
	if err != nil {
		return err
	}
	merged := MergeDetected(p.Discrepancies, detected)
	for i := range merged {
		if merged[i].DetectedAt == nil {
			at := now
			merged[i].DetectedAt = &at
		}
	}

	invoice.UploadedAt = now
	p.CarrierInvoice = &invoice
	p.Discrepancies = merged
	p.WorkflowStatus = entities.PrefacturationStatusGenerated
	if p.CountDiscrepancies(entities.DiscrepancyStatusOpen) > 0 && p.CarrierValidation.Status != entities.CarrierValidationPending {
		// New open findings need a fresh carrier answer.
		p.CarrierValidation = entities.CarrierValidation{
			Status:    entities.CarrierValidationPending,
			SentAt:    now,
			TimeoutAt: now.Add(m.carrierWindow),
		}
	}
	audit(p, ActionInvoiceAttached, actor, now, fmt.Sprintf("invoice=%s discrepancies=%d", invoice.InvoiceNumber, len(merged)))
	Derive(p)
	return nil
}

// ApplyFacts reconciles the automatic blocks against fresh facts. On missing
// facts the blocks are left untouched.
func (m *StateMachine) ApplyFacts(p *entities.Prefacturation, facts entities.BlockFacts, now time.Time) error {
	if p.WorkflowStatus.IsTerminal() || p.WorkflowStatus == entities.PrefacturationStatusDraft {
		return invalidState("evaluate blocks", p.WorkflowStatus)
	}
	blocks, err := m.evaluator.Reconcile(p.Blocks, facts, now)
	if err != nil {
		return err
	}
	p.Blocks = blocks
	active := 0
	for _, b := range blocks {
		if b.Active {
			active++
		}
	}
	audit(p, ActionBlocksEvaluated, SystemActor, now, fmt.Sprintf("active=%d", active))
	Derive(p)
	return nil
}

// Validate is the explicit validation by the logistician or the carrier.
func (m *StateMachine) Validate(p *entities.Prefacturation, actor string, now time.Time) error {
	switch p.WorkflowStatus {
	case entities.PrefacturationStatusPendingValidation, entities.PrefacturationStatusConflictClosed:
	default:
		return invalidState("validate", p.WorkflowStatus)
	}
	if err := requireClear(p, "validate"); err != nil {
		return err
	}
	at := now
	p.WorkflowStatus = entities.PrefacturationStatusValidated
	p.ValidatedAt = &at
	p.ValidatedBy = actor
	audit(p, ActionValidated, actor, now, "")
	Derive(p)
	return nil
}

// Finalize closes the prefacturation for the billing cycle.
func (m *StateMachine) Finalize(p *entities.Prefacturation, actor string, now time.Time) error {
	if p.WorkflowStatus != entities.PrefacturationStatusValidated {
		return invalidState("finalize", p.WorkflowStatus)
	}
	if err := requireClear(p, "finalize"); err != nil {
		return err
	}
	at := now
	p.WorkflowStatus = entities.PrefacturationStatusFinalized
	p.FinalizedAt = &at
	audit(p, ActionFinalized, actor, now, "")
	Derive(p)
	return nil
}

func (m *StateMachine) MarkExported(p *entities.Prefacturation, exportRef, actor string, now time.Time) error {
	if p.WorkflowStatus != entities.PrefacturationStatusFinalized {
		return invalidState("export", p.WorkflowStatus)
	}
	at := now
	p.WorkflowStatus = entities.PrefacturationStatusExported
	p.ExportedAt = &at
	p.ExportRef = strings.TrimSpace(exportRef)
	audit(p, ActionExported, actor, now, p.ExportRef)
	Derive(p)
	return nil
}

func (m *StateMachine) Archive(p *entities.Prefacturation, actor string, now time.Time) error {
	if p.WorkflowStatus != entities.PrefacturationStatusExported {
		return invalidState("archive", p.WorkflowStatus)
	}
	at := now
	p.WorkflowStatus = entities.PrefacturationStatusArchived
	p.ArchivedAt = &at
	audit(p, ActionArchived, actor, now, "")
	Derive(p)
	return nil
}

// ForceAcceptAllOpen is called when the carrier validation deadline passed
// without a carrier answer. Open discrepancies are accepted on the carrier's
// behalf; contested ones are left to the logistician.
func (m *StateMachine) ForceAcceptAllOpen(p *entities.Prefacturation, now time.Time) error {
	switch p.WorkflowStatus {
	case entities.PrefacturationStatusGenerated, entities.PrefacturationStatusDiscrepancyDetected:
	default:
		return invalidState("force accept", p.WorkflowStatus)
	}

	accepted := 0
	for i := range p.Discrepancies {
		d := &p.Discrepancies[i]
		if d.Status != entities.DiscrepancyStatusOpen {
			continue
		}
		at := now
		d.Status = entities.DiscrepancyStatusAccepted
		d.AcceptedBy = CarrierTimeoutActor
		d.AcceptedAt = &at
		accepted++
	}

	p.CarrierValidation.Status = entities.CarrierValidationTimeout
	if p.WorkflowStatus == entities.PrefacturationStatusGenerated && p.CarrierInvoice == nil {
		p.WorkflowStatus = entities.PrefacturationStatusPendingValidation
	}
	audit(p, ActionCarrierTimeout, SystemActor, now, fmt.Sprintf("accepted=%d", accepted))
	Derive(p)
	return nil
}

func requireClear(p *entities.Prefacturation, op string) error {
	if p.HasActiveBlocks() {
		return fmt.Errorf("%w: cannot %s with active blocks", ErrInvalidState, op)
	}
	if p.HasPendingDiscrepancies() {
		return fmt.Errorf("%w: cannot %s with open or contested discrepancies", ErrInvalidState, op)
	}
	return nil
}

func invalidState(op string, status entities.PrefacturationStatus) error {
	return fmt.Errorf("%w: cannot %s from status %q", ErrInvalidState, op, status)
}

func audit(p *entities.Prefacturation, action, actor string, now time.Time, details string) {
	p.AuditTrail = append(p.AuditTrail, entities.AuditEntry{
		Action:      action,
		PerformedBy: actor,
		Timestamp:   now,
		Details:     details,
	})
	p.UpdatedAt = now
}
