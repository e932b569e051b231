package reconciliation

import (
	"fmt"
	"strings"
	"time"

	"prefacturation_service/internal/domain/entities"

	"github.com/google/uuid"
)

// Decision is the logistician's ruling on a discrepancy. Reject marks the
// carrier's position as rejected instead of resolved.
type Decision struct {
	Text   string
	Reject bool
}

// BlockTarget selects the block to lift, by position or by type.
type BlockTarget struct {
	Index *int
	Type  entities.BlockType
}

// AcceptDiscrepancy is the carrier accepting the platform value.
func (m *StateMachine) AcceptDiscrepancy(p *entities.Prefacturation, index int, actor string, now time.Time) error {
	d, err := discrepancyAt(p, index)
	if err != nil {
		return err
	}
	if d.Status != entities.DiscrepancyStatusOpen {
		return fmt.Errorf("%w: discrepancy %d is %s, only open discrepancies can be accepted", ErrInvalidState, index, d.Status)
	}

	at := now
	d.Status = entities.DiscrepancyStatusAccepted
	d.AcceptedBy = actor
	d.AcceptedAt = &at
	carrierResponded(p, now)
	audit(p, ActionDiscrepancyAccepted, actor, now, fmt.Sprintf("index=%d type=%s", index, d.Type))
	Derive(p)
	return nil
}

// ContestDiscrepancy is the carrier disputing a discrepancy.
func (m *StateMachine) ContestDiscrepancy(p *entities.Prefacturation, index int, reason string, documents []string, actor string, now time.Time) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return fmt.Errorf("%w: contest reason is required", ErrValidation)
	}
	d, err := discrepancyAt(p, index)
	if err != nil {
		return err
	}
	if d.Status != entities.DiscrepancyStatusOpen {
		return fmt.Errorf("%w: discrepancy %d is %s, only open discrepancies can be contested", ErrInvalidState, index, d.Status)
	}

	d.Status = entities.DiscrepancyStatusContested
	d.Contestation = &entities.Contestation{
		Reason:      reason,
		Documents:   nonEmpty(documents),
		ContestedBy: actor,
		ContestedAt: now,
	}
	carrierResponded(p, now)
	audit(p, ActionDiscrepancyContest, actor, now, fmt.Sprintf("index=%d type=%s reason=%s", index, d.Type, reason))
	Derive(p)
	return nil
}

// ResolveDiscrepancy is the logistician ruling on an open or contested discrepancy.
func (m *StateMachine) ResolveDiscrepancy(p *entities.Prefacturation, index int, decision Decision, actor string, now time.Time) error {
	text := strings.TrimSpace(decision.Text)
	if text == "" {
		return fmt.Errorf("%w: decision is required", ErrValidation)
	}
	d, err := discrepancyAt(p, index)
	if err != nil {
		return err
	}
	if d.Status != entities.DiscrepancyStatusOpen && d.Status != entities.DiscrepancyStatusContested {
		return fmt.Errorf("%w: discrepancy %d is %s, only open or contested discrepancies can be resolved", ErrInvalidState, index, d.Status)
	}

	action := ActionDiscrepancyResolved
	d.Status = entities.DiscrepancyStatusResolved
	if decision.Reject {
		action = ActionDiscrepancyRejected
		d.Status = entities.DiscrepancyStatusRejected
	}
	d.Resolution = &entities.Resolution{Decision: text, ResolvedBy: actor, ResolvedAt: now}
	audit(p, action, actor, now, fmt.Sprintf("index=%d type=%s", index, d.Type))
	Derive(p)
	return nil
}

// RaiseManualBlock adds a logistician-asserted block. It is only cleared by Unblock.
func (m *StateMachine) RaiseManualBlock(p *entities.Prefacturation, reason, actor string, now time.Time) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return fmt.Errorf("%w: block reason is required", ErrValidation)
	}
	if p.WorkflowStatus.IsTerminal() || p.WorkflowStatus == entities.PrefacturationStatusDraft {
		return invalidState("block", p.WorkflowStatus)
	}
	p.Blocks = append(p.Blocks, entities.Block{
		ID:        uuid.NewString(),
		Type:      entities.BlockTypeManual,
		Reason:    reason,
		Active:    true,
		BlockedAt: now,
		BlockedBy: actor,
	})
	audit(p, ActionBlockRaised, actor, now, reason)
	Derive(p)
	return nil
}

// Unblock lifts one active block for the current cycle. The evaluator may
// raise a block of the same type again if its condition still holds.
func (m *StateMachine) Unblock(p *entities.Prefacturation, target BlockTarget, reason, actor string, now time.Time) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return fmt.Errorf("%w: unblock reason is required", ErrValidation)
	}
	index, err := findBlock(p, target)
	if err != nil {
		return err
	}
	b := &p.Blocks[index]
	if !b.Active {
		return fmt.Errorf("%w: block %d is not active", ErrInvalidState, index)
	}

	at := now
	b.Active = false
	b.ResolvedAt = &at
	b.ResolvedBy = actor
	b.ResolutionReason = reason
	audit(p, ActionUnblocked, actor, now, fmt.Sprintf("index=%d type=%s reason=%s", index, b.Type, reason))
	Derive(p)
	return nil
}

func findBlock(p *entities.Prefacturation, target BlockTarget) (int, error) {
	if target.Index != nil {
		i := *target.Index
		if i < 0 || i >= len(p.Blocks) {
			return 0, fmt.Errorf("%w: block index %d out of range", ErrValidation, i)
		}
		return i, nil
	}
	if target.Type == "" {
		return 0, fmt.Errorf("%w: block index or block type is required", ErrValidation)
	}
	if !target.Type.IsValid() {
		return 0, fmt.Errorf("%w: unknown block type %q", ErrValidation, target.Type)
	}
	for i, b := range p.Blocks {
		if b.Type == target.Type && b.Active {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: no active %s block", ErrInvalidState, target.Type)
}

func discrepancyAt(p *entities.Prefacturation, index int) (*entities.Discrepancy, error) {
	if p.WorkflowStatus.IsTerminal() || p.WorkflowStatus == entities.PrefacturationStatusValidated {
		return nil, invalidState("change discrepancies", p.WorkflowStatus)
	}
	if index < 0 || index >= len(p.Discrepancies) {
		return nil, fmt.Errorf("%w: discrepancy index %d out of range", ErrValidation, index)
	}
	return &p.Discrepancies[index], nil
}

// carrierResponded records a carrier answer once nothing is left open for the carrier.
func carrierResponded(p *entities.Prefacturation, now time.Time) {
	at := now
	p.CarrierValidation.RespondedAt = &at
	switch {
	case p.CountDiscrepancies(entities.DiscrepancyStatusContested) > 0:
		p.CarrierValidation.Status = entities.CarrierValidationContested
	case p.CountDiscrepancies(entities.DiscrepancyStatusOpen) == 0:
		p.CarrierValidation.Status = entities.CarrierValidationAccepted
	}
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
