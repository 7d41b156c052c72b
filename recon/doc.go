// Package recon provides the planner-facing contracts for active reconstruction.
//
// # Reading Guide
//
// Start with these three files:
//   - view.go: Pose, View, ReceptionInfo and MovementCost value types
//   - termination.go: the TerminationCriteria family consulted once per iteration
//   - loop.go: the reconstruction loop that drives a CommunicationInterface
//
// # Architecture
//
// The recon package defines interfaces and value types; implementations live in
// sub-packages:
//   - recon/adapter/: ViewCommunicationAdapter over a pose controller and a data rerouter
//   - recon/flyingcam/: simulated flying camera, point-cloud bus and rerouter
//   - recon/trace/: per-iteration decision records
//
// # Key Interfaces
//
// The extension points are small interfaces:
//   - CommunicationInterface: current view, movement cost, move, data retrieval
//   - TerminationCriteria: stop decision with explicit reset
//   - ViewPlanner: next-view selection over a candidate view space
//
// None of these are safe for concurrent use. One loop owns one instance of each.
package recon
