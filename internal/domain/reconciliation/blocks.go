package reconciliation

import (
	"fmt"
	"strings"
	"time"

	"prefacturation_service/internal/domain/entities"

	"github.com/google/uuid"
)

// SystemActor is recorded on blocks raised or cleared by the evaluator.
const SystemActor = "system"

// BlockPolicy holds the thresholds of the automatic block types.
type BlockPolicy struct {
	RequiredVigilance []string
	// PalletDebtThreshold is the debt tolerated before blocking: the pallets
	// block is active while balance < -PalletDebtThreshold.
	PalletDebtThreshold float64
	LateGracePeriod     time.Duration
}

func DefaultBlockPolicy() BlockPolicy {
	return BlockPolicy{
		RequiredVigilance: []string{
			entities.VigilanceURSSAF,
			entities.VigilanceInsurance,
			entities.VigilanceTransportLicense,
			entities.VigilanceKbis,
		},
		PalletDebtThreshold: 0,
		LateGracePeriod:     2 * time.Hour,
	}
}

// BlockEvaluator raises and clears the automatic blocks. Manual blocks are
// never touched here.
type BlockEvaluator struct {
	policy BlockPolicy
	newID  func() string
}

func NewBlockEvaluator(policy BlockPolicy) *BlockEvaluator {
	return &BlockEvaluator{policy: policy, newID: uuid.NewString}
}

// CheckFacts fails with ErrMissingFacts when a fact needed by a policy is absent.
func CheckFacts(facts entities.BlockFacts) error {
	var missing []string
	if facts.Documents == nil {
		missing = append(missing, "documents")
	}
	if facts.Vigilance == nil {
		missing = append(missing, "vigilance")
	}
	if facts.Pallets == nil {
		missing = append(missing, "pallets")
	}
	if facts.Delivery == nil || facts.Delivery.ScheduledAt.IsZero() || facts.Delivery.ActualAt.IsZero() {
		missing = append(missing, "delivery")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingFacts, strings.Join(missing, ", "))
	}
	return nil
}

// Evaluate returns the blocks the facts call for, in the order
// missing_documents, vigilance, pallets, late.
func (e *BlockEvaluator) Evaluate(facts entities.BlockFacts, now time.Time) ([]entities.Block, error) {
	if err := CheckFacts(facts); err != nil {
		return nil, err
	}

	var out []entities.Block
	raise := func(t entities.BlockType, reason string, details *entities.BlockDetails) {
		out = append(out, entities.Block{
			ID:        e.newID(),
			Type:      t,
			Reason:    reason,
			Details:   details,
			Active:    true,
			BlockedAt: now,
			BlockedBy: SystemActor,
		})
	}

	var missingDocs []string
	if !facts.Documents.ProofOfDelivery {
		missingDocs = append(missingDocs, entities.DocumentProofOfDelivery)
	}
	if !facts.Documents.SignedCMR {
		missingDocs = append(missingDocs, entities.DocumentSignedCMR)
	}
	if len(missingDocs) > 0 {
		raise(entities.BlockTypeMissingDocuments,
			"missing delivery documents: "+strings.Join(missingDocs, ", "),
			&entities.BlockDetails{MissingDocuments: missingDocs})
	}

	if missing, expired := e.vigilanceGaps(facts.Vigilance, now); len(missing)+len(expired) > 0 {
		var parts []string
		if len(missing) > 0 {
			parts = append(parts, "absent: "+strings.Join(missing, ", "))
		}
		if len(expired) > 0 {
			parts = append(parts, "expired: "+strings.Join(expired, ", "))
		}
		raise(entities.BlockTypeVigilance,
			"vigilance documents not current ("+strings.Join(parts, "; ")+")",
			&entities.BlockDetails{MissingDocuments: missing, ExpiredDocuments: expired})
	}

	if balance := facts.Pallets.Balance; balance < -e.policy.PalletDebtThreshold {
		b := balance
		raise(entities.BlockTypePallets,
			fmt.Sprintf("pallet debt of %.0f %s pallets", -balance, facts.Pallets.PalletType),
			&entities.BlockDetails{PalletType: facts.Pallets.PalletType, PalletBalance: &b})
	}

	if delay := facts.Delivery.ActualAt.Sub(facts.Delivery.ScheduledAt); delay > e.policy.LateGracePeriod {
		minutes := int(delay / time.Minute)
		raise(entities.BlockTypeLate,
			fmt.Sprintf("delivered %d minutes late", minutes),
			&entities.BlockDetails{DelayMinutes: &minutes})
	}

	return out, nil
}

func (e *BlockEvaluator) vigilanceGaps(record *entities.VigilanceRecord, now time.Time) (missing, expired []string) {
	latest := make(map[string]*time.Time, len(record.Documents))
	present := make(map[string]bool, len(record.Documents))
	for _, d := range record.Documents {
		present[d.Type] = true
		if d.ExpiresAt == nil {
			continue
		}
		if cur := latest[d.Type]; cur == nil || d.ExpiresAt.After(*cur) {
			exp := *d.ExpiresAt
			latest[d.Type] = &exp
		}
	}
	for _, required := range e.policy.RequiredVigilance {
		switch {
		case !present[required]:
			missing = append(missing, required)
		case latest[required] != nil && !latest[required].After(now):
			expired = append(expired, required)
		}
	}
	return missing, expired
}

// Reconcile merges freshly evaluated blocks into the existing list. Active
// automatic blocks whose condition cleared are deactivated, unmet conditions
// without an active block are raised again, and manual blocks are left as is.
// On missing facts the existing list is returned unchanged with the error.
func (e *BlockEvaluator) Reconcile(existing []entities.Block, facts entities.BlockFacts, now time.Time) ([]entities.Block, error) {
	raised, err := e.Evaluate(facts, now)
	if err != nil {
		return existing, err
	}

	wanted := make(map[entities.BlockType]entities.Block, len(raised))
	for _, b := range raised {
		wanted[b.Type] = b
	}

	out := make([]entities.Block, 0, len(existing)+len(raised))
	activeTypes := make(map[entities.BlockType]bool)
	for _, b := range existing {
		if b.Type == entities.BlockTypeManual || !b.Active {
			out = append(out, b)
			continue
		}
		if fresh, ok := wanted[b.Type]; ok {
			b.Reason = fresh.Reason
			b.Details = fresh.Details
			activeTypes[b.Type] = true
			out = append(out, b)
			continue
		}
		resolvedAt := now
		b.Active = false
		b.ResolvedAt = &resolvedAt
		b.ResolvedBy = SystemActor
		b.ResolutionReason = "condition cleared"
		out = append(out, b)
	}

	for _, b := range raised {
		if activeTypes[b.Type] {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}
