package entities

import "time"

// PrefacturationEvent is published after a prefacturation was saved.
type PrefacturationEvent struct {
	PrefacturationID string               `json:"prefacturation_id"`
	Action           string               `json:"action"`
	Status           PrefacturationStatus `json:"status"`
	WorkflowStatus   PrefacturationStatus `json:"workflow_status"`
	Version          int64                `json:"version"`
	OccurredAt       time.Time            `json:"occurred_at"`
}
