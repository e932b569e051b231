package usecase

import (
	"testing"
	"time"

	"prefacturation_service/internal/domain/entities"
	"prefacturation_service/internal/domain/reconciliation"
)

var fixtureNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func newMachine() *reconciliation.StateMachine {
	return reconciliation.NewStateMachine(
		reconciliation.DefaultTolerances(),
		reconciliation.NewBlockEvaluator(reconciliation.DefaultBlockPolicy()),
		72*time.Hour,
	)
}

func snapshot() entities.Calculation {
	return entities.Calculation{
		BasePrice:     500,
		DistancePrice: 100,
		OptionsPrice:  50,
		TotalHT:       650,
		TVA:           0.20,
		TotalTTC:      780,
	}
}

func floatPtr(v float64) *float64 { return &v }

// generatedFixture returns a stored prefacturation in "generated".
func generatedFixture(t *testing.T) entities.Prefacturation {
	t.Helper()
	p := entities.Prefacturation{
		ID:             "pf-1",
		OrderID:        "order-1",
		CarrierID:      "carrier-1",
		CarrierName:    "Transports Martin",
		ClientID:       "client-1",
		ClientName:     "Industrie SA",
		Calculation:    snapshot(),
		WorkflowStatus: entities.PrefacturationStatusDraft,
		Version:        1,
		CreatedAt:      fixtureNow,
		UpdatedAt:      fixtureNow,
	}
	if err := newMachine().Generate(&p, "orders", fixtureNow); err != nil {
		t.Fatalf("generate fixture: %v", err)
	}
	return p
}

// detectedFixture returns a stored prefacturation with one open price discrepancy.
func detectedFixture(t *testing.T) entities.Prefacturation {
	t.Helper()
	p := generatedFixture(t)
	inv := entities.CarrierInvoice{InvoiceNumber: "INV-1", TotalHT: 700, MatchScore: 90, Declared: entities.DeclaredValues{TotalHT: floatPtr(700)}}
	if err := newMachine().AttachInvoice(&p, inv, "carrier", fixtureNow); err != nil {
		t.Fatalf("attach fixture: %v", err)
	}
	p.Version = 2
	return p
}

func noopUnlock() {}
