package interfaces

import (
	"context"
	"prefacturation_service/internal/domain/entities"
)

// IFactsProvider gathers the external facts the block evaluator needs:
// delivery documents, carrier vigilance documents, pallet ledger balance and
// delivery timestamps. Facts it could not obtain are left nil.
type IFactsProvider interface {
	Fetch(ctx context.Context, p entities.Prefacturation) (entities.BlockFacts, error)
}
