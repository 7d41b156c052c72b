// Package trace provides per-iteration decision recording for reconstruction runs.
// This package has no dependencies on recon/; it stores pure data types.
package trace

// IterationRecord captures one planning iteration.
type IterationRecord struct {
	Iteration  int     `json:"iteration"`
	CurrentBad bool    `json:"current_bad"` // current view could not be determined
	TargetID   string  `json:"target_id"`   // chosen candidate view
	Cost       float64 `json:"cost"`
	CostKnown  bool    `json:"cost_known"`
	Moved      bool    `json:"moved"`
	Reception  string  `json:"reception,omitempty"` // SUCCEEDED, FAILED, or "" when no acquisition was attempted
}
