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
)

var (
	ErrPrefacturationNotFound      = errors.New("prefacturation not found")
	ErrPrefacturationAlreadyExists = errors.New("prefacturation already exists")
	ErrInvalidPrefacturationID     = errors.New("invalid prefacturation id")
	ErrInvalidOrderID              = errors.New("invalid order_id")
)

const lockKeyPrefix = "prefacturation:"

// aggregateMutator runs every write on a prefacturation as
// lock -> load -> clone -> mutate -> conditional save -> unlock.
//
// The mutation works on a clone, so an error at any step leaves the stored
// aggregate exactly as it was.
type aggregateMutator struct {
	repo      interfaces.IPrefacturationRepository
	locker    interfaces.ILocker
	publisher interfaces.IEventPublisher
	metrics   interfaces.IReconciliationMetrics
	now       func() time.Time
}

func newAggregateMutator(
	repo interfaces.IPrefacturationRepository,
	locker interfaces.ILocker,
	publisher interfaces.IEventPublisher,
	metrics interfaces.IReconciliationMetrics,
) *aggregateMutator {
	return &aggregateMutator{
		repo:      repo,
		locker:    locker,
		publisher: publisher,
		metrics:   metrics,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

type mutation func(p *entities.Prefacturation, now time.Time) error

func (m *aggregateMutator) mutate(ctx context.Context, id, operation string, apply mutation) (entities.Prefacturation, error) {
	saved, err := m.doMutate(ctx, id, operation, apply)
	m.observeOperation(operation, err)
	return saved, err
}

func (m *aggregateMutator) doMutate(ctx context.Context, id, operation string, apply mutation) (entities.Prefacturation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Prefacturation{}, ErrInvalidPrefacturationID
	}

	unlock, err := m.locker.Lock(ctx, lockKeyPrefix+id)
	if err != nil {
		log.Printf("[prefacturation][usecase] %s lock failed id=%s err=%v", operation, id, err)
		return entities.Prefacturation{}, fmt.Errorf("%w: %v", reconciliation.ErrConcurrentModification, err)
	}
	defer unlock()

	current, err := m.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Prefacturation{}, err
	}
	if current.ID == "" {
		return entities.Prefacturation{}, ErrPrefacturationNotFound
	}

	next := current.Clone()
	now := m.now()
	if err := apply(&next, now); err != nil {
		log.Printf("[prefacturation][usecase] %s rejected id=%s status=%s err=%v", operation, id, current.Status, err)
		return entities.Prefacturation{}, err
	}

	saved, err := m.repo.Update(ctx, next, current.Version)
	if err != nil {
		log.Printf("[prefacturation][usecase] %s persist failed id=%s version=%d err=%v", operation, id, current.Version, err)
		return entities.Prefacturation{}, err
	}

	log.Printf("[prefacturation][usecase] %s success id=%s status=%s->%s version=%d", operation, id, current.Status, saved.Status, saved.Version)
	if current.Status != saved.Status && m.metrics != nil {
		m.metrics.ObserveTransition(current.Status, saved.Status)
	}
	m.publish(saved, operation, now)
	return saved, nil
}

func (m *aggregateMutator) publish(p entities.Prefacturation, action string, now time.Time) {
	if m.publisher == nil {
		return
	}
	m.publisher.Publish(entities.PrefacturationEvent{
		PrefacturationID: p.ID,
		Action:           action,
		Status:           p.Status,
		WorkflowStatus:   p.WorkflowStatus,
		Version:          p.Version,
		OccurredAt:       now,
	})
}

func (m *aggregateMutator) observeOperation(operation string, err error) {
	if m.metrics != nil {
		m.metrics.ObserveOperation(operation, err)
	}
}

func (m *aggregateMutator) load(ctx context.Context, id string) (entities.Prefacturation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Prefacturation{}, ErrInvalidPrefacturationID
	}
	p, err := m.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Prefacturation{}, err
	}
	if p.ID == "" {
		return entities.Prefacturation{}, ErrPrefacturationNotFound
	}
	return p, nil
}

func actorOrDefault(actor string) string {
	if actor = strings.TrimSpace(actor); actor != "" {
		return actor
	}
	return "anonymous"
}
