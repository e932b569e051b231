package jobs

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"prefacturation_service/internal/domain/entities"
	"prefacturation_service/internal/domain/reconciliation"
	"prefacturation_service/internal/infrastructure/metrics"
	"prefacturation_service/internal/usecase/interfaces"

	"github.com/hibiken/asynq"
)

// prefacturations is the part of the prefacturation use case the sweeps drive.
type prefacturations interface {
	List(ctx context.Context, filter interfaces.PrefacturationFilter) ([]entities.Prefacturation, error)
	EvaluateBlocks(ctx context.Context, id string) (entities.Prefacturation, error)
	ForceAcceptAllOpen(ctx context.Context, id string) (entities.Prefacturation, error)
}

// SweepResult summarizes one sweep run.
type SweepResult struct {
	Scanned int
	Applied int
	Skipped int
	Failed  int
}

// SweepJob runs the periodic maintenance of open prefacturations: the carrier
// validation timeout and the re-evaluation of blocks against fresh facts.
type SweepJob struct {
	prefacturations prefacturations
	metrics         *metrics.Metrics
	clock           func() time.Time
}

func NewSweepJob(uc prefacturations, m *metrics.Metrics) *SweepJob {
	return &SweepJob{
		prefacturations: uc,
		metrics:         m,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// HandleCarrierTimeout is the asynq handler of TaskCarrierTimeoutSweep.
func (j *SweepJob) HandleCarrierTimeout(ctx context.Context, t *asynq.Task) error {
	payload, err := decodeSweepPayload(t)
	if err != nil {
		return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
	}
	_, err = j.SweepCarrierTimeouts(ctx, payload.Limit)
	return err
}

// HandleBlocksReevaluate is the asynq handler of TaskBlocksReevaluate.
func (j *SweepJob) HandleBlocksReevaluate(ctx context.Context, t *asynq.Task) error {
	payload, err := decodeSweepPayload(t)
	if err != nil {
		return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
	}
	_, err = j.ReevaluateBlocks(ctx, payload.Limit)
	return err
}

// SweepCarrierTimeouts accepts the open discrepancies of every prefacturation
// whose carrier validation deadline has passed.
func (j *SweepJob) SweepCarrierTimeouts(ctx context.Context, limit int) (result SweepResult, err error) {
	tracker := j.metrics.Track("carrier_timeout_sweep")
	defer func() { err = tracker.End(err) }()

	now := j.clock()
	items, err := j.collect(ctx, interfaces.PrefacturationFilter{
		WorkflowStatuses:  timeoutStatuses,
		CarrierValidation: entities.CarrierValidationPending,
		TimeoutDue:        now,
	}, limit)
	if err != nil {
		return result, err
	}
	for _, p := range items {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Scanned++
		if !carrierTimedOut(p, now) {
			continue
		}
		if _, err := j.prefacturations.ForceAcceptAllOpen(ctx, p.ID); err != nil {
			if errors.Is(err, reconciliation.ErrInvalidState) {
				result.Skipped++
				continue
			}
			result.Failed++
			log.Printf("[jobs][carrier-timeout] force accept failed id=%s err=%v", p.ID, err)
			continue
		}
		result.Applied++
	}
	log.Printf("[jobs][carrier-timeout] done scanned=%d applied=%d skipped=%d failed=%d",
		result.Scanned, result.Applied, result.Skipped, result.Failed)
	if result.Failed > 0 {
		return result, fmt.Errorf("carrier timeout sweep: %d prefacturations failed", result.Failed)
	}
	return result, nil
}

// ReevaluateBlocks refreshes the automatic blocks of every prefacturation that
// can still be finalized. Prefacturations whose facts are unavailable are skipped.
func (j *SweepJob) ReevaluateBlocks(ctx context.Context, limit int) (result SweepResult, err error) {
	tracker := j.metrics.Track("blocks_reevaluate")
	defer func() { err = tracker.End(err) }()

	items, err := j.collect(ctx, interfaces.PrefacturationFilter{WorkflowStatuses: reevaluateStatuses}, limit)
	if err != nil {
		return result, err
	}
	for _, p := range items {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Scanned++
		if _, err := j.prefacturations.EvaluateBlocks(ctx, p.ID); err != nil {
			if errors.Is(err, reconciliation.ErrMissingFacts) || errors.Is(err, reconciliation.ErrInvalidState) {
				result.Skipped++
				log.Printf("[jobs][blocks-reevaluate] skipped id=%s err=%v", p.ID, err)
				continue
			}
			result.Failed++
			log.Printf("[jobs][blocks-reevaluate] evaluate failed id=%s err=%v", p.ID, err)
			continue
		}
		result.Applied++
	}
	log.Printf("[jobs][blocks-reevaluate] done scanned=%d applied=%d skipped=%d failed=%d",
		result.Scanned, result.Applied, result.Skipped, result.Failed)
	if result.Failed > 0 {
		return result, fmt.Errorf("blocks re-evaluation: %d prefacturations failed", result.Failed)
	}
	return result, nil
}

var (
	timeoutStatuses = []entities.PrefacturationStatus{
		entities.PrefacturationStatusGenerated,
		entities.PrefacturationStatusDiscrepancyDetected,
	}
	reevaluateStatuses = []entities.PrefacturationStatus{
		entities.PrefacturationStatusGenerated,
		entities.PrefacturationStatusDiscrepancyDetected,
		entities.PrefacturationStatusPendingValidation,
		entities.PrefacturationStatusContested,
		entities.PrefacturationStatusConflictClosed,
		entities.PrefacturationStatusValidated,
	}
)

// collect reads every match page by page before anything is mutated, so rows
// leaving the filter mid-run do not shift later pages.
func (j *SweepJob) collect(ctx context.Context, filter interfaces.PrefacturationFilter, pageSize int) ([]entities.Prefacturation, error) {
	if pageSize <= 0 {
		pageSize = defaultSweepLimit
	}
	filter.Limit = pageSize
	seen := make(map[string]struct{})
	var out []entities.Prefacturation
	for {
		page, err := j.prefacturations.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		for _, p := range page {
			if _, ok := seen[p.ID]; ok {
				continue
			}
			seen[p.ID] = struct{}{}
			out = append(out, p)
		}
		if len(page) < pageSize {
			return out, nil
		}
		filter.Offset += pageSize
	}
}

func carrierTimedOut(p entities.Prefacturation, now time.Time) bool {
	switch p.WorkflowStatus {
	case entities.PrefacturationStatusGenerated, entities.PrefacturationStatusDiscrepancyDetected:
	default:
		return false
	}
	cv := p.CarrierValidation
	return cv.Status == entities.CarrierValidationPending && !cv.TimeoutAt.IsZero() && !cv.TimeoutAt.After(now)
}
