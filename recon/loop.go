package recon

import (
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/activerecon/activerecon/recon/trace"
)

// StopReason says why a reconstruction loop ended.
type StopReason string

const (
	StopTerminated         StopReason = "terminated"
	StopViewSpaceExhausted StopReason = "viewspace-exhausted"
)

// Loop drives one reconstruction run.
// Trace is optional; when set every iteration is recorded.
type Loop struct {
	Comm        CommunicationInterface
	Termination TerminationCriteria
	Planner     ViewPlanner
	Trace       *trace.RunTrace
}

// LoopResult aggregates the outcome of Run.
type LoopResult struct {
	Iterations         int
	Moves              int
	FailedMoves        int
	Acquisitions       int
	FailedAcquisitions int
	TotalCost          float64 // sum of known live movement costs
	StopReason         StopReason
}

// Run iterates until the termination criteria or the planner says stop.
//
// Each iteration reads the current view, consults the termination criteria once,
// asks the planner for a target, estimates the live cost, moves, and retrieves
// data when the move succeeded. Flagged failures are counted, never retried here.
func (l *Loop) Run() LoopResult {
	var res LoopResult
	for {
		current := l.Comm.CurrentView()
		if current.Bad {
			logrus.Warnf("[iter %04d] current view unavailable: %v", res.Iterations+1, current.Err)
		}

		if l.Termination.IsDone() {
			res.StopReason = StopTerminated
			break
		}

		target, ok := l.Planner.NextView(current, l.Comm)
		if !ok {
			res.StopReason = StopViewSpaceExhausted
			break
		}
		res.Iterations++

		record := trace.IterationRecord{
			Iteration:  res.Iterations,
			CurrentBad: current.Bad,
			TargetID:   target.ID,
		}

		cost := l.Comm.MovementCost(target)
		if cost.Known() {
			record.Cost, record.CostKnown = cost.Cost, true
			res.TotalCost += cost.Cost
		}

		logrus.Infof("[iter %04d] moving to %s (cost=%s)", res.Iterations, target.ID, formatCost(cost))
		record.Moved = l.Comm.MoveTo(target)
		if !record.Moved {
			res.FailedMoves++
			l.record(record)
			continue
		}
		res.Moves++

		info := l.Comm.RetrieveData()
		record.Reception = info.String()
		if info == ReceptionSucceeded {
			res.Acquisitions++
		} else {
			res.FailedAcquisitions++
		}
		l.record(record)
	}

	if l.Trace != nil {
		l.Trace.Stop(string(res.StopReason))
	}
	logrus.Infof("Reconstruction loop ended after %d iterations: %s", res.Iterations, res.StopReason)
	return res
}

func (l *Loop) record(r trace.IterationRecord) {
	if l.Trace != nil {
		l.Trace.RecordIteration(r)
	}
}

func formatCost(c MovementCost) string {
	if !c.Known() {
		return c.Exception.String()
	}
	return strconv.FormatFloat(c.Cost, 'f', 3, 64)
}
