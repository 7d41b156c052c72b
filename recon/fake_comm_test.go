package recon

import "errors"

var errFakePose = errors.New("pose unavailable")

// fakeComm is an in-package CommunicationInterface. Moves teleport instantly;
// per-call outcome scripts override the defaults when set.
type fakeComm struct {
	pose Pose

	poseFails    []bool // consumed by CurrentView and MovementCost, one entry per pose read
	moveResults  []bool
	receptions   []ReceptionInfo
	moveTargets  []string
	retrieveCall int
}

func (f *fakeComm) poseOK() bool {
	if len(f.poseFails) == 0 {
		return true
	}
	fail := f.poseFails[0]
	f.poseFails = f.poseFails[1:]
	return !fail
}

func (f *fakeComm) CurrentView() View {
	if !f.poseOK() {
		return View{Bad: true, NonViewSpace: true, Err: errFakePose}
	}
	return View{Pose: f.pose, NonViewSpace: true}
}

func (f *fakeComm) RetrieveData() ReceptionInfo {
	f.retrieveCall++
	if len(f.receptions) == 0 {
		return ReceptionSucceeded
	}
	r := f.receptions[0]
	f.receptions = f.receptions[1:]
	return r
}

func (f *fakeComm) MovementCost(target View) MovementCost {
	if !f.poseOK() {
		return MovementCost{Exception: CostUnknown, Err: errFakePose}
	}
	return MovementCost{Cost: f.pose.Distance(target.Pose)}
}

func (f *fakeComm) MovementCostBetween(start, target View, _ bool) MovementCost {
	if start.Bad || target.Bad {
		return MovementCost{Exception: CostUnknown}
	}
	return MovementCost{Cost: start.Pose.Distance(target.Pose)}
}

func (f *fakeComm) MoveTo(target View) bool {
	f.moveTargets = append(f.moveTargets, target.ID)
	ok := true
	if len(f.moveResults) > 0 {
		ok = f.moveResults[0]
		f.moveResults = f.moveResults[1:]
	}
	if ok {
		f.pose = target.Pose
	}
	return ok
}
