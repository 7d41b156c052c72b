package trace

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_NilTrace_ZeroValues(t *testing.T) {
	// GIVEN no trace
	// WHEN summarized
	summary := Summarize(nil)

	// THEN all counts are zero and the visit map is usable
	require.NotNil(t, summary)
	assert.Equal(t, 0, summary.Iterations)
	assert.Equal(t, 0.0, summary.TotalCost)
	assert.NotNil(t, summary.TargetVisits)
	assert.Empty(t, summary.TargetVisits)
}

func TestSummarize_EmptyTrace_CarriesRunID(t *testing.T) {
	// GIVEN an empty trace
	rt := NewRunTrace()

	// WHEN summarized
	summary := Summarize(rt)

	// THEN the run ID is a valid UUID and counts are zero
	_, err := uuid.Parse(summary.RunID)
	assert.NoError(t, err)
	assert.Equal(t, 0, summary.Moves)
	assert.Equal(t, 0, summary.Acquisitions)
}

func TestSummarize_PopulatedTrace_CorrectCounts(t *testing.T) {
	// GIVEN a trace with mixed outcomes
	rt := NewRunTrace()
	rt.RecordIteration(IterationRecord{Iteration: 1, TargetID: "a", Cost: 1.5, CostKnown: true, Moved: true, Reception: "SUCCEEDED"})
	rt.RecordIteration(IterationRecord{Iteration: 2, TargetID: "b", CostKnown: false, Moved: false})
	rt.RecordIteration(IterationRecord{Iteration: 3, CurrentBad: true, TargetID: "b", Cost: 2.0, CostKnown: true, Moved: true, Reception: "FAILED"})
	rt.RecordIteration(IterationRecord{Iteration: 4, TargetID: "a", Cost: 0.5, CostKnown: true, Moved: true, Reception: "SUCCEEDED"})
	rt.Stop("terminated")

	// WHEN summarized
	summary := Summarize(rt)

	// THEN counts match
	assert.Equal(t, 4, summary.Iterations)
	assert.Equal(t, 3, summary.Moves)
	assert.Equal(t, 1, summary.FailedMoves)
	assert.Equal(t, 2, summary.Acquisitions)
	assert.Equal(t, 1, summary.FailedAcquisitions)
	assert.Equal(t, 1, summary.UnknownCosts)
	assert.Equal(t, 1, summary.BadCurrentViews)
	assert.InDelta(t, 4.0, summary.TotalCost, 1e-12)
	assert.Equal(t, "terminated", summary.StopReason)
	assert.Equal(t, map[string]int{"a": 2, "b": 1}, summary.TargetVisits)
}

func TestNewRunTrace_DistinctRunIDs(t *testing.T) {
	a, b := NewRunTrace(), NewRunTrace()
	assert.NotEqual(t, a.RunID, b.RunID)
}
