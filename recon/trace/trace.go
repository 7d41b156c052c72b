package trace

import "github.com/google/uuid"

// RunTrace collects iteration records during one reconstruction run.
type RunTrace struct {
	RunID      string            `json:"run_id"`
	Iterations []IterationRecord `json:"iterations"`
	StopReason string            `json:"stop_reason"`
}

// NewRunTrace creates a RunTrace with a fresh run ID.
func NewRunTrace() *RunTrace {
	return &RunTrace{
		RunID:      uuid.New().String(),
		Iterations: make([]IterationRecord, 0),
	}
}

// RecordIteration appends an iteration record.
func (rt *RunTrace) RecordIteration(record IterationRecord) {
	rt.Iterations = append(rt.Iterations, record)
}

// Stop records why the run ended.
func (rt *RunTrace) Stop(reason string) {
	rt.StopReason = reason
}
