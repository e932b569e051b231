package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the queue the sweeps run on.
	QueueDefault = "default"

	TaskCarrierTimeoutSweep = "prefacturation:carrier-timeout-sweep"
	TaskBlocksReevaluate    = "prefacturation:blocks-reevaluate"

	defaultSweepLimit = 1000
)

// SweepPayload bounds how many prefacturations one sweep run inspects.
type SweepPayload struct {
	Limit int `json:"limit"`
}

func NewCarrierTimeoutSweepTask(limit int) (*asynq.Task, error) {
	return newSweepTask(TaskCarrierTimeoutSweep, limit)
}

func NewBlocksReevaluateTask(limit int) (*asynq.Task, error) {
	return newSweepTask(TaskBlocksReevaluate, limit)
}

func newSweepTask(taskType string, limit int) (*asynq.Task, error) {
	data, err := json.Marshal(SweepPayload{Limit: limit})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(taskType, data), nil
}

func decodeSweepPayload(t *asynq.Task) (SweepPayload, error) {
	var payload SweepPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return SweepPayload{}, err
		}
	}
	if payload.Limit <= 0 {
		payload.Limit = defaultSweepLimit
	}
	return payload, nil
}
