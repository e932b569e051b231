package response

import (
	"testing"
	"time"

	"prefacturation_service/internal/domain/entities"
)

func TestFromPrefacturation(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	pct := 7.69
	p := entities.Prefacturation{
		ID:             "pf-1",
		OrderID:        "order-1",
		Status:         entities.PrefacturationStatusBlocked,
		WorkflowStatus: entities.PrefacturationStatusDiscrepancyDetected,
		Calculation:    entities.Calculation{TotalHT: 650},
		CarrierValidation: entities.CarrierValidation{
			Status:    entities.CarrierValidationPending,
			TimeoutAt: now.Add(72 * time.Hour),
		},
		Discrepancies: []entities.Discrepancy{
			{Type: entities.DiscrepancyTypePrice, ExpectedValue: 650, ActualValue: 700, Difference: 50, DifferencePercent: &pct, Status: entities.DiscrepancyStatusOpen},
			{Type: entities.DiscrepancyTypeOptions, ExpectedValue: 0, ActualValue: 25, Difference: 25, Status: entities.DiscrepancyStatusAccepted},
		},
		Blocks: []entities.Block{
			{ID: "b-1", Type: entities.BlockTypeVigilance, Active: true, BlockedAt: now},
			{ID: "b-2", Type: entities.BlockTypeManual, Active: false, BlockedAt: now},
		},
		Version: 3,
	}

	got := FromPrefacturation(p)
	if got.Status != "blocked" || got.StatusLabel != "Bloquée" {
		t.Fatalf("unexpected status: %s / %s", got.Status, got.StatusLabel)
	}
	if got.WorkflowStatus != "discrepancy_detected" || got.WorkflowStatusLabel != "Écart détecté" {
		t.Fatalf("unexpected workflow status: %s / %s", got.WorkflowStatus, got.WorkflowStatusLabel)
	}
	if len(got.Discrepancies) != 2 || got.Discrepancies[1].Index != 1 || got.Discrepancies[1].DifferencePercent != nil {
		t.Fatalf("unexpected discrepancies: %+v", got.Discrepancies)
	}
	if got.Discrepancies[0].TypeLabel != "Prix" || got.Discrepancies[0].StatusLabel != "Ouvert" {
		t.Fatalf("unexpected discrepancy labels: %+v", got.Discrepancies[0])
	}
	if got.Blocks[0].TypeLabel != "Vigilance" || got.Blocks[1].Index != 1 {
		t.Fatalf("unexpected blocks: %+v", got.Blocks)
	}
	if got.AuditTrail == nil {
		t.Fatalf("expected an empty audit trail, not nil")
	}

	summary := FromPrefacturationSummary(p)
	if summary.OpenDiscrepancies != 1 || summary.ActiveBlocks != 1 || summary.TotalHT != 650 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestLabelFallsBackToValue(t *testing.T) {
	if got := label(statusLabels, entities.PrefacturationStatus("unknown")); got != "unknown" {
		t.Fatalf("expected raw value, got %q", got)
	}
}

func TestFromPrefacturationList(t *testing.T) {
	list := FromPrefacturationList(nil)
	if list.Items == nil || list.Count != 0 {
		t.Fatalf("unexpected empty list: %+v", list)
	}
}
