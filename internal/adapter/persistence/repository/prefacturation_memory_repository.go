package repository

import (
	"context"
	"sync"

	"prefacturation_service/internal/domain/entities"
	"prefacturation_service/internal/domain/reconciliation"
	"prefacturation_service/internal/usecase/interfaces"
)

// PrefacturationMemoryRepository keeps prefacturations in process memory.
// Used for local runs and tests. Values are cloned on the way in and out.
type PrefacturationMemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]entities.Prefacturation
	byOrder map[string]string
}

var _ interfaces.IPrefacturationRepository = (*PrefacturationMemoryRepository)(nil)

func NewPrefacturationMemoryRepository() *PrefacturationMemoryRepository {
	return &PrefacturationMemoryRepository{
		byID:    make(map[string]entities.Prefacturation),
		byOrder: make(map[string]string),
	}
}

func (r *PrefacturationMemoryRepository) Create(_ context.Context, p entities.Prefacturation) (entities.Prefacturation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[p.ID]; ok {
		return entities.Prefacturation{}, interfaces.ErrDuplicatePrefacturation
	}
	if _, ok := r.byOrder[p.OrderID]; ok {
		return entities.Prefacturation{}, interfaces.ErrDuplicatePrefacturation
	}
	r.byID[p.ID] = p.Clone()
	r.byOrder[p.OrderID] = p.ID
	return p.Clone(), nil
}

func (r *PrefacturationMemoryRepository) GetByID(_ context.Context, id string) (entities.Prefacturation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return entities.Prefacturation{}, nil
	}
	return p.Clone(), nil
}

func (r *PrefacturationMemoryRepository) GetByOrderID(ctx context.Context, orderID string) (entities.Prefacturation, error) {
	r.mu.RLock()
	id, ok := r.byOrder[orderID]
	r.mu.RUnlock()
	if !ok {
		return entities.Prefacturation{}, nil
	}
	return r.GetByID(ctx, id)
}

func (r *PrefacturationMemoryRepository) Update(_ context.Context, p entities.Prefacturation, expectedVersion int64) (entities.Prefacturation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[p.ID]
	if !ok || current.Version != expectedVersion {
		return entities.Prefacturation{}, reconciliation.ErrConcurrentModification
	}
	p.Version = expectedVersion + 1
	r.byID[p.ID] = p.Clone()
	return p.Clone(), nil
}

func (r *PrefacturationMemoryRepository) List(_ context.Context, filter interfaces.PrefacturationFilter) ([]entities.Prefacturation, error) {
	r.mu.RLock()
	out := make([]entities.Prefacturation, 0, len(r.byID))
	for _, p := range r.byID {
		if filter.Matches(p) {
			out = append(out, p.Clone())
		}
	}
	r.mu.RUnlock()

	sortNewestFirst(out)
	return page(out, filter), nil
}
