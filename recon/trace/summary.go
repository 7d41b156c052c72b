package trace

// RunSummary aggregates statistics from a RunTrace.
type RunSummary struct {
	RunID              string         `json:"run_id"`
	Iterations         int            `json:"iterations"`
	Moves              int            `json:"moves"`
	FailedMoves        int            `json:"failed_moves"`
	Acquisitions       int            `json:"acquisitions"`
	FailedAcquisitions int            `json:"failed_acquisitions"`
	UnknownCosts       int            `json:"unknown_costs"`
	BadCurrentViews    int            `json:"bad_current_views"`
	TotalCost          float64        `json:"total_cost"`
	StopReason         string         `json:"stop_reason"`
	TargetVisits       map[string]int `json:"target_visits"` // view ID → successful moves
}

// Summarize computes aggregate statistics from a RunTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(rt *RunTrace) *RunSummary {
	summary := &RunSummary{
		TargetVisits: make(map[string]int),
	}
	if rt == nil {
		return summary
	}

	summary.RunID = rt.RunID
	summary.StopReason = rt.StopReason
	summary.Iterations = len(rt.Iterations)
	for _, it := range rt.Iterations {
		if it.CurrentBad {
			summary.BadCurrentViews++
		}
		if it.CostKnown {
			summary.TotalCost += it.Cost
		} else {
			summary.UnknownCosts++
		}
		if !it.Moved {
			summary.FailedMoves++
			continue
		}
		summary.Moves++
		summary.TargetVisits[it.TargetID]++
		switch it.Reception {
		case "SUCCEEDED":
			summary.Acquisitions++
		case "FAILED":
			summary.FailedAcquisitions++
		}
	}

	return summary
}
