package recon

import (
	"fmt"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Pose is a position plus a unit-quaternion orientation.
// Values are immutable once returned by a controller or planner.
type Pose struct {
	Position    r3.Vec
	Orientation quat.Number
}

// IdentityOrientation is the zero rotation.
var IdentityOrientation = quat.Number{Real: 1}

// NewPose builds a Pose from an [x, y, z] position and a [w, x, y, z] quaternion.
func NewPose(position [3]float64, orientation [4]float64) Pose {
	return Pose{
		Position:    r3.Vec{X: position[0], Y: position[1], Z: position[2]},
		Orientation: quat.Number{Real: orientation[0], Imag: orientation[1], Jmag: orientation[2], Kmag: orientation[3]},
	}
}

// Distance returns the Euclidean distance between the positions of p and other.
// Orientation does not contribute.
func (p Pose) Distance(other Pose) float64 {
	return r3.Norm(r3.Sub(p.Position, other.Position))
}

func (p Pose) String() string {
	return fmt.Sprintf("pos=(%.3f, %.3f, %.3f) rot=(%.3f, %.3f, %.3f, %.3f)",
		p.Position.X, p.Position.Y, p.Position.Z,
		p.Orientation.Real, p.Orientation.Imag, p.Orientation.Jmag, p.Orientation.Kmag)
}

// View is a planning-time viewpoint descriptor.
//
// When Bad is set the Pose is not meaningful and must not be used for cost or
// movement computations; Err then holds the cause. NonViewSpace marks a vantage
// point that is not itself part of the space being reconstructed.
type View struct {
	ID           string
	Pose         Pose
	Bad          bool
	NonViewSpace bool
	Err          error
}

// ReceptionInfo is the outcome of a data acquisition attempt.
type ReceptionInfo int

const (
	ReceptionSucceeded ReceptionInfo = iota
	ReceptionFailed
)

func (r ReceptionInfo) String() string {
	switch r {
	case ReceptionSucceeded:
		return "SUCCEEDED"
	case ReceptionFailed:
		return "FAILED"
	default:
		return fmt.Sprintf("ReceptionInfo(%d)", int(r))
	}
}

// CostException tags a MovementCost whose Cost must be ignored.
type CostException int

const (
	CostExceptionNone CostException = iota
	CostUnknown
)

func (e CostException) String() string {
	switch e {
	case CostExceptionNone:
		return "NONE"
	case CostUnknown:
		return "COST_UNKNOWN"
	default:
		return fmt.Sprintf("CostException(%d)", int(e))
	}
}

// MovementCost is a distance-like cost estimate for a move between viewpoints.
// Callers must check Known before reading Cost.
type MovementCost struct {
	Cost      float64
	Exception CostException
	Err       error
}

// Known reports whether Cost carries a usable value.
func (c MovementCost) Known() bool {
	return c.Exception == CostExceptionNone
}

// CommunicationInterface is what a view planner needs from the robot or simulator.
// Implementations are fail-soft: every fault is reported through View.Bad,
// MovementCost.Exception, ReceptionFailed or a false MoveTo, never by panicking.
type CommunicationInterface interface {
	// CurrentView reports the live pose as a non-view-space View.
	CurrentView() View

	// RetrieveData makes a single acquisition attempt. No retry.
	RetrieveData() ReceptionInfo

	// MovementCost estimates the cost from the live pose to target.
	MovementCost(target View) MovementCost

	// MovementCostBetween estimates the cost between two given views without
	// querying the controller. fillAdditionalInfo is reserved for richer models.
	MovementCostBetween(start, target View, fillAdditionalInfo bool) MovementCost

	// MoveTo commands a move and blocks for the settling interval.
	MoveTo(target View) bool
}
