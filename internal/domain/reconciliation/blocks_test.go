package reconciliation

import (
	"testing"
	"time"

	"prefacturation_service/internal/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var evalNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func clearFacts() entities.BlockFacts {
	valid := evalNow.AddDate(0, 6, 0)
	return entities.BlockFacts{
		Documents: &entities.DocumentChecklist{ProofOfDelivery: true, SignedCMR: true},
		Vigilance: &entities.VigilanceRecord{
			CarrierID: "carrier-1",
			Documents: []entities.VigilanceDocument{
				{Type: entities.VigilanceURSSAF, ExpiresAt: &valid},
				{Type: entities.VigilanceInsurance, ExpiresAt: &valid},
				{Type: entities.VigilanceTransportLicense, ExpiresAt: &valid},
				{Type: entities.VigilanceKbis, ExpiresAt: &valid},
			},
		},
		Pallets: &entities.PalletBalance{PalletType: "EUR", Balance: 0},
		Delivery: &entities.DeliveryTimestamps{
			ScheduledAt: evalNow.Add(-3 * time.Hour),
			ActualAt:    evalNow.Add(-150 * time.Minute),
		},
	}
}

func expiredInsurance(facts entities.BlockFacts) entities.BlockFacts {
	expired := evalNow.AddDate(0, 0, -1)
	docs := append([]entities.VigilanceDocument(nil), facts.Vigilance.Documents...)
	docs[1].ExpiresAt = &expired
	facts.Vigilance = &entities.VigilanceRecord{CarrierID: facts.Vigilance.CarrierID, Documents: docs}
	return facts
}

func blockTypes(blocks []entities.Block) []entities.BlockType {
	var out []entities.BlockType
	for _, b := range blocks {
		out = append(out, b.Type)
	}
	return out
}

func TestBlockEvaluator_Evaluate(t *testing.T) {
	ev := NewBlockEvaluator(DefaultBlockPolicy())

	t.Run("all conditions met", func(t *testing.T) {
		got, err := ev.Evaluate(clearFacts(), evalNow)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("missing documents", func(t *testing.T) {
		facts := clearFacts()
		facts.Documents = &entities.DocumentChecklist{ProofOfDelivery: false, SignedCMR: true}
		got, err := ev.Evaluate(facts, evalNow)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, entities.BlockTypeMissingDocuments, got[0].Type)
		assert.Equal(t, []string{entities.DocumentProofOfDelivery}, got[0].Details.MissingDocuments)
		assert.True(t, got[0].Active)
		assert.Equal(t, SystemActor, got[0].BlockedBy)
		assert.Equal(t, evalNow, got[0].BlockedAt)
	})

	t.Run("expired vigilance document", func(t *testing.T) {
		got, err := ev.Evaluate(expiredInsurance(clearFacts()), evalNow)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, entities.BlockTypeVigilance, got[0].Type)
		assert.Equal(t, []string{entities.VigilanceInsurance}, got[0].Details.ExpiredDocuments)
	})

	t.Run("absent vigilance document", func(t *testing.T) {
		facts := clearFacts()
		facts.Vigilance = &entities.VigilanceRecord{Documents: facts.Vigilance.Documents[:3]}
		got, err := ev.Evaluate(facts, evalNow)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, []string{entities.VigilanceKbis}, got[0].Details.MissingDocuments)
	})

	t.Run("pallet debt", func(t *testing.T) {
		facts := clearFacts()
		facts.Pallets = &entities.PalletBalance{PalletType: "EUR", Balance: -3}
		got, err := ev.Evaluate(facts, evalNow)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, entities.BlockTypePallets, got[0].Type)
		assert.Equal(t, -3.0, *got[0].Details.PalletBalance)
	})

	t.Run("pallet debt within threshold", func(t *testing.T) {
		policy := DefaultBlockPolicy()
		policy.PalletDebtThreshold = 5
		facts := clearFacts()
		facts.Pallets = &entities.PalletBalance{PalletType: "EUR", Balance: -3}
		got, err := NewBlockEvaluator(policy).Evaluate(facts, evalNow)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("late beyond grace period", func(t *testing.T) {
		facts := clearFacts()
		facts.Delivery.ActualAt = facts.Delivery.ScheduledAt.Add(3 * time.Hour)
		got, err := ev.Evaluate(facts, evalNow)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, entities.BlockTypeLate, got[0].Type)
		assert.Equal(t, 180, *got[0].Details.DelayMinutes)
	})

	t.Run("evaluation order", func(t *testing.T) {
		facts := expiredInsurance(clearFacts())
		facts.Documents = &entities.DocumentChecklist{}
		facts.Pallets = &entities.PalletBalance{Balance: -1}
		facts.Delivery.ActualAt = facts.Delivery.ScheduledAt.Add(5 * time.Hour)
		got, err := ev.Evaluate(facts, evalNow)
		require.NoError(t, err)
		assert.Equal(t, []entities.BlockType{
			entities.BlockTypeMissingDocuments,
			entities.BlockTypeVigilance,
			entities.BlockTypePallets,
			entities.BlockTypeLate,
		}, blockTypes(got))
	})

	t.Run("missing facts", func(t *testing.T) {
		facts := clearFacts()
		facts.Vigilance = nil
		_, err := ev.Evaluate(facts, evalNow)
		assert.ErrorIs(t, err, ErrMissingFacts)
	})
}

func TestBlockEvaluator_Reconcile(t *testing.T) {
	ev := NewBlockEvaluator(DefaultBlockPolicy())
	earlier := evalNow.Add(-24 * time.Hour)

	t.Run("cleared condition deactivates the block", func(t *testing.T) {
		existing := []entities.Block{{ID: "b1", Type: entities.BlockTypeLate, Active: true, BlockedAt: earlier, BlockedBy: SystemActor}}
		got, err := ev.Reconcile(existing, clearFacts(), evalNow)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.False(t, got[0].Active)
		require.NotNil(t, got[0].ResolvedAt)
		assert.Equal(t, evalNow, *got[0].ResolvedAt)
		assert.True(t, existing[0].Active, "input slice must not be mutated")
	})

	t.Run("unmet condition keeps the existing block", func(t *testing.T) {
		existing := []entities.Block{{ID: "b1", Type: entities.BlockTypeVigilance, Active: true, BlockedAt: earlier}}
		got, err := ev.Reconcile(existing, expiredInsurance(clearFacts()), evalNow)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "b1", got[0].ID)
		assert.True(t, got[0].Active)
		assert.Equal(t, earlier, got[0].BlockedAt)
	})

	t.Run("manually lifted block is raised again", func(t *testing.T) {
		resolved := earlier.Add(time.Hour)
		existing := []entities.Block{{
			ID: "b1", Type: entities.BlockTypeVigilance, Active: false,
			BlockedAt: earlier, ResolvedAt: &resolved, ResolvedBy: "logistician", ResolutionReason: "renewed offline",
		}}
		got, err := ev.Reconcile(existing, expiredInsurance(clearFacts()), evalNow)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.False(t, got[0].Active)
		assert.Equal(t, entities.BlockTypeVigilance, got[1].Type)
		assert.True(t, got[1].Active)
	})

	t.Run("manual blocks are never auto-cleared", func(t *testing.T) {
		existing := []entities.Block{{ID: "m1", Type: entities.BlockTypeManual, Active: true, BlockedAt: earlier}}
		got, err := ev.Reconcile(existing, clearFacts(), evalNow)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.True(t, got[0].Active)
	})

	t.Run("missing facts leave blocks untouched", func(t *testing.T) {
		existing := []entities.Block{{ID: "b1", Type: entities.BlockTypeLate, Active: true, BlockedAt: earlier}}
		facts := clearFacts()
		facts.Pallets = nil
		got, err := ev.Reconcile(existing, facts, evalNow)
		assert.ErrorIs(t, err, ErrMissingFacts)
		assert.Equal(t, existing, got)
		assert.True(t, got[0].Active)
	})
}
