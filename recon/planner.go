package recon

import (
	"fmt"
	"math"
)

// ViewPlanner selects the next view to visit from a candidate view space.
type ViewPlanner interface {
	// NextView returns the next target, or false once the view space is exhausted.
	// current may be Bad; planners must not read its Pose in that case.
	NextView(current View, comm CommunicationInterface) (View, bool)

	// Reset forgets which views were visited.
	Reset()
}

// NearestFirstPlanner greedily picks the unvisited candidate closest to the current view.
// A candidate whose cost is unknown (for example because the current view is Bad)
// is scored with the configured default cost, so ties fall back to configuration order.
// Candidates are marked visited when chosen, whether or not the move succeeds.
type NearestFirstPlanner struct {
	views       []View
	visited     []bool
	defaultCost float64
}

// NewNearestFirstPlanner creates a planner over views.
func NewNearestFirstPlanner(views []View, defaultUnknownCost float64) *NearestFirstPlanner {
	return &NearestFirstPlanner{
		views:       views,
		visited:     make([]bool, len(views)),
		defaultCost: defaultUnknownCost,
	}
}

func (p *NearestFirstPlanner) NextView(current View, comm CommunicationInterface) (View, bool) {
	best, bestCost := -1, math.Inf(1)
	for i, v := range p.views {
		if p.visited[i] {
			continue
		}
		cost := p.defaultCost
		if mc := comm.MovementCostBetween(current, v, false); mc.Known() {
			cost = mc.Cost
		}
		if cost < bestCost {
			best, bestCost = i, cost
		}
	}
	if best < 0 {
		return View{}, false
	}
	p.visited[best] = true
	return p.views[best], true
}

func (p *NearestFirstPlanner) Reset() {
	clear(p.visited)
}

// SequentialPlanner visits candidates in configuration order.
type SequentialPlanner struct {
	views []View
	next  int
}

// NewSequentialPlanner creates a planner over views.
func NewSequentialPlanner(views []View) *SequentialPlanner {
	return &SequentialPlanner{views: views}
}

func (p *SequentialPlanner) NextView(_ View, _ CommunicationInterface) (View, bool) {
	if p.next >= len(p.views) {
		return View{}, false
	}
	v := p.views[p.next]
	p.next++
	return v, true
}

func (p *SequentialPlanner) Reset() {
	p.next = 0
}

// NewViewPlanner creates a view planner by name.
// Valid names are defined in ValidViewPlanners (bundle.go). An empty name defaults to nearest.
// Panics on unrecognized names.
func NewViewPlanner(name string, views []View, defaultUnknownCost float64) ViewPlanner {
	if !IsValidViewPlanner(name) {
		panic(fmt.Sprintf("unknown view planner %q", name))
	}
	switch name {
	case "", "nearest":
		return NewNearestFirstPlanner(views, defaultUnknownCost)
	case "sequential":
		return NewSequentialPlanner(views)
	default:
		panic(fmt.Sprintf("unhandled view planner %q", name))
	}
}
