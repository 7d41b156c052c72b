// Package adapter implements recon.CommunicationInterface on top of a pose
// controller and a point-cloud rerouter.
//
// Every operation is fail-soft. Errors and panics from either collaborator are
// absorbed at this boundary and surfaced as View.Bad, recon.CostUnknown,
// recon.ReceptionFailed or a false MoveTo, with a *Fault carrying the cause
// where the result type has room for one.
package adapter

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/activerecon/activerecon/recon"
)

// PoseController drives the robot or simulated camera.
type PoseController interface {
	// CurrentPose returns the live pose. May fail.
	CurrentPose() (recon.Pose, error)
	// MoveTo commands a move and reports whether the controller accepted and completed it.
	MoveTo(pose recon.Pose) bool
}

// DataRerouter forwards sensor data from an input channel to an output channel.
// Implementations are constructed with the two channel names.
type DataRerouter interface {
	// RerouteOne attempts to transfer exactly one unit of data.
	RerouteOne() bool
}

// ViewCommunicationAdapter translates planner requests into controller and rerouter calls.
// Not safe for concurrent use.
type ViewCommunicationAdapter struct {
	controller PoseController
	rerouter   DataRerouter
	settler    Settler
	log        *logrus.Entry
}

var _ recon.CommunicationInterface = (*ViewCommunicationAdapter)(nil)

// Option configures a ViewCommunicationAdapter.
type Option func(*ViewCommunicationAdapter)

// WithSettler replaces the default fixed settling wait.
func WithSettler(s Settler) Option {
	return func(a *ViewCommunicationAdapter) { a.settler = s }
}

// WithLogger sets the entry absorbed faults are logged to.
func WithLogger(entry *logrus.Entry) Option {
	return func(a *ViewCommunicationAdapter) { a.log = entry }
}

// New creates an adapter that owns controller and rerouter.
// Without WithSettler, MoveTo waits recon.DefaultSettlingInterval after each command.
func New(controller PoseController, rerouter DataRerouter, opts ...Option) *ViewCommunicationAdapter {
	a := &ViewCommunicationAdapter{
		controller: controller,
		rerouter:   rerouter,
		settler:    NewFixedSettler(recon.DefaultSettlingInterval),
		log:        logrus.WithField("component", "adapter"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// CurrentView returns the live pose as a non-view-space View.
// On failure the View is Bad and Err wraps ErrPoseUnavailable.
func (a *ViewCommunicationAdapter) CurrentView() recon.View {
	pose, err := currentPose(a.controller)
	if err != nil {
		a.log.Warnf("current view unavailable: %v", err)
		return recon.View{
			Bad:          true,
			NonViewSpace: true,
			Err:          &Fault{Op: "current view", Err: fmt.Errorf("%w: %w", ErrPoseUnavailable, err)},
		}
	}
	return recon.View{Pose: pose, NonViewSpace: true}
}

// RetrieveData makes one transfer attempt on the rerouter.
func (a *ViewCommunicationAdapter) RetrieveData() recon.ReceptionInfo {
	if !rerouteOne(a.rerouter) {
		a.log.Warnf("retrieve data: %v", ErrAcquisitionFailed)
		return recon.ReceptionFailed
	}
	return recon.ReceptionSucceeded
}

// MovementCost returns the Euclidean distance from the live position to target.
// The cost is unknown when the live pose cannot be read or target is Bad.
func (a *ViewCommunicationAdapter) MovementCost(target recon.View) recon.MovementCost {
	if target.Bad {
		return unknownCost("movement cost", ErrBadView)
	}
	current, err := currentPose(a.controller)
	if err != nil {
		a.log.Warnf("movement cost unknown: %v", err)
		return unknownCost("movement cost", fmt.Errorf("%w: %w", ErrPoseUnavailable, err))
	}
	return recon.MovementCost{Cost: current.Distance(target.Pose)}
}

// MovementCostBetween returns the Euclidean distance between two given views.
// fillAdditionalInfo is accepted for interface compatibility; the distance model has nothing to add.
func (a *ViewCommunicationAdapter) MovementCostBetween(start, target recon.View, fillAdditionalInfo bool) recon.MovementCost {
	if start.Bad || target.Bad {
		return unknownCost("movement cost between", ErrBadView)
	}
	return recon.MovementCost{Cost: start.Pose.Distance(target.Pose)}
}

// MoveTo commands the controller and then blocks for the settler's interval.
// The return value is the controller's own success signal; it does not mean the
// target pose has been reached. A Bad target is refused without a command.
func (a *ViewCommunicationAdapter) MoveTo(target recon.View) bool {
	if target.Bad {
		a.log.Warnf("move refused: %v", ErrBadView)
		return false
	}
	ok := moveTo(a.controller, target.Pose)
	if !ok {
		a.log.Warnf("move to %s: %v", target.Pose, ErrMovementFailed)
	}
	a.settler.Settle(target.Pose)
	return ok
}

func unknownCost(op string, err error) recon.MovementCost {
	return recon.MovementCost{Exception: recon.CostUnknown, Err: &Fault{Op: op, Err: err}}
}

// The helpers below convert collaborator panics into ordinary failures.

func currentPose(c PoseController) (pose recon.Pose, err error) {
	defer func() {
		if r := recover(); r != nil {
			pose, err = recon.Pose{}, fmt.Errorf("controller panicked: %v", r)
		}
	}()
	return c.CurrentPose()
}

func moveTo(c PoseController, pose recon.Pose) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()
	return c.MoveTo(pose)
}

func rerouteOne(r DataRerouter) (ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			ok = false
		}
	}()
	return r.RerouteOne()
}
