package reconciliation

import (
	"testing"
	"time"

	"prefacturation_service/internal/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var smNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func newMachine() *StateMachine {
	return NewStateMachine(DefaultTolerances(), NewBlockEvaluator(DefaultBlockPolicy()), 72*time.Hour)
}

func generated(t *testing.T, m *StateMachine) *entities.Prefacturation {
	t.Helper()
	p := &entities.Prefacturation{
		ID:             "pf-1",
		OrderID:        "order-1",
		CarrierID:      "carrier-1",
		ClientID:       "client-1",
		Calculation:    baseSnapshot(),
		WorkflowStatus: entities.PrefacturationStatusDraft,
	}
	require.NoError(t, m.Generate(p, "orders", smNow))
	return p
}

func withInvoice(t *testing.T, m *StateMachine, declared entities.DeclaredValues) *entities.Prefacturation {
	t.Helper()
	p := generated(t, m)
	require.NoError(t, m.AttachInvoice(p, entities.CarrierInvoice{InvoiceNumber: "INV-1", TotalHT: 700, MatchScore: 92, Declared: declared}, "carrier", smNow))
	return p
}

func TestStateMachine_Generate(t *testing.T) {
	m := newMachine()

	t.Run("draft to generated", func(t *testing.T) {
		p := generated(t, m)
		assert.Equal(t, entities.PrefacturationStatusGenerated, p.WorkflowStatus)
		assert.Equal(t, entities.PrefacturationStatusGenerated, p.Status)
		assert.Equal(t, entities.CarrierValidationPending, p.CarrierValidation.Status)
		assert.Equal(t, smNow.Add(72*time.Hour), p.CarrierValidation.TimeoutAt)
		require.Len(t, p.AuditTrail, 1)
		assert.Equal(t, ActionGenerated, p.AuditTrail[0].Action)
	})

	t.Run("invalid snapshot", func(t *testing.T) {
		p := &entities.Prefacturation{Calculation: entities.Calculation{BasePrice: 10}}
		assert.ErrorIs(t, m.Generate(p, "orders", smNow), ErrInvalidSnapshot)
	})

	t.Run("already generated", func(t *testing.T) {
		p := generated(t, m)
		assert.ErrorIs(t, m.Generate(p, "orders", smNow), ErrInvalidState)
	})
}

func TestStateMachine_AttachInvoice(t *testing.T) {
	m := newMachine()

	t.Run("discrepancy detected", func(t *testing.T) {
		p := withInvoice(t, m, entities.DeclaredValues{TotalHT: f(700)})
		assert.Equal(t, entities.PrefacturationStatusDiscrepancyDetected, p.Status)
		require.Len(t, p.Discrepancies, 1)
		assert.NotNil(t, p.Discrepancies[0].DetectedAt)
		require.NotNil(t, p.CarrierInvoice)
		assert.Equal(t, smNow, p.CarrierInvoice.UploadedAt)
	})

	t.Run("no discrepancy goes to pending validation", func(t *testing.T) {
		p := withInvoice(t, m, entities.DeclaredValues{TotalHT: f(650)})
		assert.Equal(t, entities.PrefacturationStatusPendingValidation, p.Status)
		assert.Empty(t, p.Discrepancies)
	})

	t.Run("re-upload replaces discrepancies", func(t *testing.T) {
		p := withInvoice(t, m, entities.DeclaredValues{TotalHT: f(700)})
		inv := entities.CarrierInvoice{InvoiceNumber: "INV-1", Declared: entities.DeclaredValues{TotalHT: f(700)}}
		require.NoError(t, m.AttachInvoice(p, inv, "carrier", smNow.Add(time.Hour)))
		assert.Len(t, p.Discrepancies, 1)
		assert.Equal(t, smNow, *p.Discrepancies[0].DetectedAt)
	})

	t.Run("new open findings reopen carrier validation", func(t *testing.T) {
		p := withInvoice(t, m, entities.DeclaredValues{TotalHT: f(700)})
		require.NoError(t, m.AcceptDiscrepancy(p, 0, "carrier", smNow.Add(time.Hour)))
		require.Equal(t, entities.CarrierValidationAccepted, p.CarrierValidation.Status)
		require.Equal(t, entities.PrefacturationStatusPendingValidation, p.WorkflowStatus)

		reupload := smNow.Add(2 * time.Hour)
		inv := entities.CarrierInvoice{InvoiceNumber: "INV-1b", Declared: entities.DeclaredValues{TotalHT: f(700), OptionsPrice: f(80)}}
		require.NoError(t, m.AttachInvoice(p, inv, "carrier", reupload))

		assert.Equal(t, entities.PrefacturationStatusDiscrepancyDetected, p.WorkflowStatus)
		assert.Equal(t, entities.CarrierValidationPending, p.CarrierValidation.Status)
		assert.Equal(t, reupload, p.CarrierValidation.SentAt)
		assert.Equal(t, reupload.Add(72*time.Hour), p.CarrierValidation.TimeoutAt)
		assert.Nil(t, p.CarrierValidation.RespondedAt)
	})

	t.Run("same invoice keeps the carrier answer", func(t *testing.T) {
		p := withInvoice(t, m, entities.DeclaredValues{TotalHT: f(700)})
		require.NoError(t, m.AcceptDiscrepancy(p, 0, "carrier", smNow.Add(time.Hour)))

		inv := entities.CarrierInvoice{InvoiceNumber: "INV-1", Declared: entities.DeclaredValues{TotalHT: f(700)}}
		require.NoError(t, m.AttachInvoice(p, inv, "carrier", smNow.Add(2*time.Hour)))
		assert.Equal(t, entities.CarrierValidationAccepted, p.CarrierValidation.Status)
		assert.Equal(t, entities.PrefacturationStatusPendingValidation, p.WorkflowStatus)
	})

	t.Run("missing invoice number", func(t *testing.T) {
		p := generated(t, m)
		err := m.AttachInvoice(p, entities.CarrierInvoice{}, "carrier", smNow)
		assert.ErrorIs(t, err, ErrValidation)
		assert.Nil(t, p.CarrierInvoice)
	})

	t.Run("not allowed once contested", func(t *testing.T) {
		p := withInvoice(t, m, entities.DeclaredValues{TotalHT: f(700)})
		require.NoError(t, m.ContestDiscrepancy(p, 0, "extra km", nil, "carrier", smNow))
		err := m.AttachInvoice(p, entities.CarrierInvoice{InvoiceNumber: "INV-2"}, "carrier", smNow)
		assert.ErrorIs(t, err, ErrInvalidState)
	})
}

func TestStateMachine_PriceScenario(t *testing.T) {
	m := newMachine()
	p := withInvoice(t, m, entities.DeclaredValues{TotalHT: f(700)})
	require.Equal(t, entities.PrefacturationStatusDiscrepancyDetected, p.Status)

	require.NoError(t, m.AcceptDiscrepancy(p, 0, "carrier-user", smNow))
	assert.Equal(t, entities.DiscrepancyStatusAccepted, p.Discrepancies[0].Status)
	assert.Equal(t, entities.PrefacturationStatusPendingValidation, p.Status)
	assert.Equal(t, entities.CarrierValidationAccepted, p.CarrierValidation.Status)

	require.NoError(t, m.Validate(p, "logistician", smNow))
	assert.Equal(t, entities.PrefacturationStatusValidated, p.Status)

	require.NoError(t, m.Finalize(p, "billing-cycle", smNow))
	assert.Equal(t, entities.PrefacturationStatusFinalized, p.Status)

	require.NoError(t, m.MarkExported(p, "EXP-2026-03", "accounting", smNow))
	assert.Equal(t, entities.PrefacturationStatusExported, p.Status)
	assert.Equal(t, "EXP-2026-03", p.ExportRef)

	require.NoError(t, m.Archive(p, "retention", smNow))
	assert.Equal(t, entities.PrefacturationStatusArchived, p.Status)

	assert.ErrorIs(t, m.Archive(p, "retention", smNow), ErrInvalidState)
}

func TestStateMachine_ContestFlow(t *testing.T) {
	m := newMachine()
	p := withInvoice(t, m, entities.DeclaredValues{TotalHT: f(700), OptionsPrice: f(80)})
	require.Len(t, p.Discrepancies, 2)

	require.NoError(t, m.ContestDiscrepancy(p, 0, "  tolls were agreed  ", []string{"doc-1", " "}, "carrier", smNow))
	assert.Equal(t, entities.PrefacturationStatusContested, p.Status)
	require.NotNil(t, p.Discrepancies[0].Contestation)
	assert.Equal(t, "tolls were agreed", p.Discrepancies[0].Contestation.Reason)
	assert.Equal(t, []string{"doc-1"}, p.Discrepancies[0].Contestation.Documents)
	assert.Equal(t, entities.CarrierValidationContested, p.CarrierValidation.Status)

	require.NoError(t, m.ResolveDiscrepancy(p, 0, Decision{Text: "tolls accepted"}, "logistician", smNow))
	assert.Equal(t, entities.DiscrepancyStatusResolved, p.Discrepancies[0].Status)
	assert.Equal(t, entities.PrefacturationStatusContested, p.Status, "open discrepancy keeps the conflict open")

	require.NoError(t, m.ResolveDiscrepancy(p, 1, Decision{Text: "options not ordered", Reject: true}, "logistician", smNow))
	assert.Equal(t, entities.DiscrepancyStatusRejected, p.Discrepancies[1].Status)
	require.NotNil(t, p.Discrepancies[1].Resolution)
	assert.Equal(t, "logistician", p.Discrepancies[1].Resolution.ResolvedBy)
	assert.Equal(t, entities.PrefacturationStatusConflictClosed, p.Status)

	require.NoError(t, m.Validate(p, "logistician", smNow))
	assert.Equal(t, entities.PrefacturationStatusValidated, p.Status)
}

func TestStateMachine_ResolutionErrors(t *testing.T) {
	m := newMachine()

	t.Run("accept non-open", func(t *testing.T) {
		p := withInvoice(t, m, entities.DeclaredValues{TotalHT: f(700)})
		require.NoError(t, m.AcceptDiscrepancy(p, 0, "carrier", smNow))
		assert.ErrorIs(t, m.AcceptDiscrepancy(p, 0, "carrier", smNow), ErrInvalidState)
	})

	t.Run("contest non-open", func(t *testing.T) {
		p := withInvoice(t, m, entities.DeclaredValues{TotalHT: f(700)})
		require.NoError(t, m.ResolveDiscrepancy(p, 0, Decision{Text: "ok"}, "logistician", smNow))
		assert.ErrorIs(t, m.ContestDiscrepancy(p, 0, "reason", nil, "carrier", smNow), ErrInvalidState)
	})

	t.Run("contest without reason", func(t *testing.T) {
		p := withInvoice(t, m, entities.DeclaredValues{TotalHT: f(700)})
		assert.ErrorIs(t, m.ContestDiscrepancy(p, 0, "   ", nil, "carrier", smNow), ErrValidation)
		assert.Equal(t, entities.DiscrepancyStatusOpen, p.Discrepancies[0].Status)
	})

	t.Run("resolve accepted", func(t *testing.T) {
		p := withInvoice(t, m, entities.DeclaredValues{TotalHT: f(700)})
		require.NoError(t, m.AcceptDiscrepancy(p, 0, "carrier", smNow))
		assert.ErrorIs(t, m.ResolveDiscrepancy(p, 0, Decision{Text: "x"}, "logistician", smNow), ErrInvalidState)
	})

	t.Run("resolve without decision", func(t *testing.T) {
		p := withInvoice(t, m, entities.DeclaredValues{TotalHT: f(700)})
		assert.ErrorIs(t, m.ResolveDiscrepancy(p, 0, Decision{}, "logistician", smNow), ErrValidation)
	})

	t.Run("index out of range", func(t *testing.T) {
		p := withInvoice(t, m, entities.DeclaredValues{TotalHT: f(700)})
		assert.ErrorIs(t, m.AcceptDiscrepancy(p, 3, "carrier", smNow), ErrValidation)
		assert.ErrorIs(t, m.AcceptDiscrepancy(p, -1, "carrier", smNow), ErrValidation)
	})
}

func TestStateMachine_Blocks(t *testing.T) {
	m := newMachine()

	t.Run("blocked overlay and vigilance scenario", func(t *testing.T) {
		p := withInvoice(t, m, entities.DeclaredValues{TotalHT: f(650)})
		require.Equal(t, entities.PrefacturationStatusPendingValidation, p.Status)

		require.NoError(t, m.ApplyFacts(p, expiredInsurance(clearFacts()), smNow))
		require.Len(t, p.Blocks, 1)
		assert.Equal(t, entities.PrefacturationStatusBlocked, p.Status)
		assert.Equal(t, entities.PrefacturationStatusPendingValidation, p.WorkflowStatus)
		assert.ErrorIs(t, m.Validate(p, "logistician", smNow), ErrInvalidState)

		require.NoError(t, m.Unblock(p, BlockTarget{Type: entities.BlockTypeVigilance}, "renewed offline", "logistician", smNow))
		assert.False(t, p.Blocks[0].Active)
		assert.Equal(t, "renewed offline", p.Blocks[0].ResolutionReason)
		assert.Equal(t, entities.PrefacturationStatusPendingValidation, p.Status)

		require.NoError(t, m.ApplyFacts(p, expiredInsurance(clearFacts()), smNow.Add(time.Hour)))
		require.Len(t, p.Blocks, 2)
		assert.True(t, p.Blocks[1].Active)
		assert.Equal(t, entities.BlockTypeVigilance, p.Blocks[1].Type)
		assert.Equal(t, entities.PrefacturationStatusBlocked, p.Status)
	})

	t.Run("unblock inactive block", func(t *testing.T) {
		p := withInvoice(t, m, entities.DeclaredValues{TotalHT: f(650)})
		require.NoError(t, m.RaiseManualBlock(p, "awaiting client approval", "logistician", smNow))
		idx := 0
		require.NoError(t, m.Unblock(p, BlockTarget{Index: &idx}, "approved", "logistician", smNow))
		assert.ErrorIs(t, m.Unblock(p, BlockTarget{Index: &idx}, "again", "logistician", smNow), ErrInvalidState)
		assert.ErrorIs(t, m.Unblock(p, BlockTarget{Type: entities.BlockTypeManual}, "again", "logistician", smNow), ErrInvalidState)
	})

	t.Run("unblock validation", func(t *testing.T) {
		p := withInvoice(t, m, entities.DeclaredValues{TotalHT: f(650)})
		require.NoError(t, m.RaiseManualBlock(p, "hold", "logistician", smNow))
		idx := 0
		assert.ErrorIs(t, m.Unblock(p, BlockTarget{Index: &idx}, " ", "logistician", smNow), ErrValidation)
		assert.ErrorIs(t, m.Unblock(p, BlockTarget{}, "reason", "logistician", smNow), ErrValidation)
		assert.ErrorIs(t, m.Unblock(p, BlockTarget{Type: "unknown"}, "reason", "logistician", smNow), ErrValidation)
		bad := 5
		assert.ErrorIs(t, m.Unblock(p, BlockTarget{Index: &bad}, "reason", "logistician", smNow), ErrValidation)
	})

	t.Run("manual block survives evaluation", func(t *testing.T) {
		p := withInvoice(t, m, entities.DeclaredValues{TotalHT: f(650)})
		require.NoError(t, m.RaiseManualBlock(p, "hold", "logistician", smNow))
		require.NoError(t, m.ApplyFacts(p, clearFacts(), smNow))
		assert.Equal(t, entities.PrefacturationStatusBlocked, p.Status)
	})

	t.Run("missing facts keep blocks", func(t *testing.T) {
		p := withInvoice(t, m, entities.DeclaredValues{TotalHT: f(650)})
		require.NoError(t, m.ApplyFacts(p, expiredInsurance(clearFacts()), smNow))
		facts := clearFacts()
		facts.Delivery = nil
		assert.ErrorIs(t, m.ApplyFacts(p, facts, smNow), ErrMissingFacts)
		assert.True(t, p.Blocks[0].Active)
	})

	t.Run("finalize requires zero active blocks", func(t *testing.T) {
		p := withInvoice(t, m, entities.DeclaredValues{TotalHT: f(650)})
		require.NoError(t, m.Validate(p, "logistician", smNow))
		require.NoError(t, m.RaiseManualBlock(p, "dispute with client", "logistician", smNow))
		assert.Equal(t, entities.PrefacturationStatusBlocked, p.Status)
		assert.ErrorIs(t, m.Finalize(p, "billing-cycle", smNow), ErrInvalidState)

		require.NoError(t, m.Unblock(p, BlockTarget{Type: entities.BlockTypeManual}, "settled", "logistician", smNow))
		require.NoError(t, m.Finalize(p, "billing-cycle", smNow))
		assert.ErrorIs(t, m.ApplyFacts(p, clearFacts(), smNow), ErrInvalidState)
		assert.ErrorIs(t, m.RaiseManualBlock(p, "late hold", "logistician", smNow), ErrInvalidState)
	})
}

func TestStateMachine_ForceAcceptAllOpen(t *testing.T) {
	m := newMachine()

	t.Run("accepts open discrepancies", func(t *testing.T) {
		p := withInvoice(t, m, entities.DeclaredValues{TotalHT: f(700), OptionsPrice: f(80)})
		require.NoError(t, m.ForceAcceptAllOpen(p, smNow))
		for _, d := range p.Discrepancies {
			assert.Equal(t, entities.DiscrepancyStatusAccepted, d.Status)
			assert.Equal(t, CarrierTimeoutActor, d.AcceptedBy)
		}
		assert.Equal(t, entities.CarrierValidationTimeout, p.CarrierValidation.Status)
		assert.Equal(t, entities.PrefacturationStatusPendingValidation, p.Status)
	})

	t.Run("no invoice uploaded", func(t *testing.T) {
		p := generated(t, m)
		require.NoError(t, m.ForceAcceptAllOpen(p, smNow))
		assert.Equal(t, entities.PrefacturationStatusPendingValidation, p.Status)
	})

	t.Run("contested is left alone", func(t *testing.T) {
		p := withInvoice(t, m, entities.DeclaredValues{TotalHT: f(700)})
		require.NoError(t, m.ContestDiscrepancy(p, 0, "reason", nil, "carrier", smNow))
		assert.ErrorIs(t, m.ForceAcceptAllOpen(p, smNow), ErrInvalidState)
		assert.Equal(t, entities.DiscrepancyStatusContested, p.Discrepancies[0].Status)
	})
}

func TestStateMachine_FinalizeInvariant(t *testing.T) {
	m := newMachine()
	p := withInvoice(t, m, entities.DeclaredValues{TotalHT: f(700)})

	assert.ErrorIs(t, m.Finalize(p, "billing-cycle", smNow), ErrInvalidState)
	assert.ErrorIs(t, m.Validate(p, "logistician", smNow), ErrInvalidState)

	// Forced state: finalize still checks the discrepancies itself.
	p.WorkflowStatus = entities.PrefacturationStatusValidated
	assert.ErrorIs(t, m.Finalize(p, "billing-cycle", smNow), ErrInvalidState)
}

func TestDerive(t *testing.T) {
	t.Run("terminal status ignores blocks", func(t *testing.T) {
		p := &entities.Prefacturation{
			WorkflowStatus: entities.PrefacturationStatusExported,
			Blocks:         []entities.Block{{Type: entities.BlockTypeManual, Active: true}},
		}
		Derive(p)
		assert.Equal(t, entities.PrefacturationStatusExported, p.Status)
	})

	t.Run("generated without invoice stays generated", func(t *testing.T) {
		p := &entities.Prefacturation{WorkflowStatus: entities.PrefacturationStatusGenerated}
		Derive(p)
		assert.Equal(t, entities.PrefacturationStatusGenerated, p.Status)
	})

	t.Run("generated with an active block", func(t *testing.T) {
		p := &entities.Prefacturation{
			WorkflowStatus: entities.PrefacturationStatusGenerated,
			Blocks:         []entities.Block{{Type: entities.BlockTypeLate, Active: true}},
		}
		Derive(p)
		assert.Equal(t, entities.PrefacturationStatusBlocked, p.Status)
		assert.Equal(t, entities.PrefacturationStatusGenerated, p.WorkflowStatus)
	})
}
