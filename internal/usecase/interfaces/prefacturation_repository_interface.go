package interfaces

import (
	"context"
	"errors"
	"slices"
	"time"

	"prefacturation_service/internal/domain/entities"
)

// ErrDuplicatePrefacturation is returned by Create when the id or the order is
// already stored.
var ErrDuplicatePrefacturation = errors.New("duplicate prefacturation")

// PrefacturationFilter narrows a listing. Status matches the displayed status
// (so "blocked" is filterable); zero values are ignored.
//
// Results are ordered newest first (created_at desc, then id), Offset rows
// are skipped and at most Limit are returned.
type PrefacturationFilter struct {
	Status    entities.PrefacturationStatus
	CarrierID string
	ClientID  string

	// WorkflowStatuses keeps rows whose workflow status is any of these.
	WorkflowStatuses  []entities.PrefacturationStatus
	CarrierValidation entities.CarrierValidationStatus
	// TimeoutDue keeps rows whose carrier validation deadline is set and not after it.
	TimeoutDue time.Time

	Offset int
	Limit  int
}

// Matches applies the filter predicates (not Offset or Limit) to p.
func (f PrefacturationFilter) Matches(p entities.Prefacturation) bool {
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.CarrierID != "" && p.CarrierID != f.CarrierID {
		return false
	}
	if f.ClientID != "" && p.ClientID != f.ClientID {
		return false
	}
	if len(f.WorkflowStatuses) > 0 && !slices.Contains(f.WorkflowStatuses, p.WorkflowStatus) {
		return false
	}
	if f.CarrierValidation != "" && p.CarrierValidation.Status != f.CarrierValidation {
		return false
	}
	if !f.TimeoutDue.IsZero() {
		due := p.CarrierValidation.TimeoutAt
		if due.IsZero() || due.After(f.TimeoutDue) {
			return false
		}
	}
	return true
}

// IPrefacturationRepository abstracts persistence of the Prefacturation aggregate.
//
// The reconciliation workflow must be able to:
//   - create one prefacturation per order
//   - read the aggregate by id or by order id
//   - replace the whole aggregate only if nobody saved it since it was read
//     (Update fails with reconciliation.ErrConcurrentModification otherwise)
//   - list prefacturations for dashboards and the background sweeps
//
// Lookups return a zero Prefacturation (empty ID) when nothing matches.

type IPrefacturationRepository interface {
	Create(ctx context.Context, p entities.Prefacturation) (entities.Prefacturation, error)
	GetByID(ctx context.Context, id string) (entities.Prefacturation, error)
	GetByOrderID(ctx context.Context, orderID string) (entities.Prefacturation, error)
	Update(ctx context.Context, p entities.Prefacturation, expectedVersion int64) (entities.Prefacturation, error)
	List(ctx context.Context, filter PrefacturationFilter) ([]entities.Prefacturation, error)
}
