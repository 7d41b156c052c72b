package recon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func viewAt(id string, x, y, z float64) View {
	return View{ID: id, Pose: NewPose([3]float64{x, y, z}, [4]float64{1, 0, 0, 0})}
}

func drain(p ViewPlanner, comm *fakeComm) []string {
	var ids []string
	for {
		v, ok := p.NextView(comm.CurrentView(), comm)
		if !ok {
			return ids
		}
		ids = append(ids, v.ID)
		comm.MoveTo(v)
	}
}

func TestNearestFirstPlanner_GreedyByDistance(t *testing.T) {
	// GIVEN candidates on a line, listed out of order
	views := []View{viewAt("far", 10, 0, 0), viewAt("near", 1, 0, 0), viewAt("mid", 4, 0, 0)}
	comm := &fakeComm{pose: NewPose([3]float64{0, 0, 0}, [4]float64{1, 0, 0, 0})}
	p := NewNearestFirstPlanner(views, 0)

	// WHEN the planner is drained
	order := drain(p, comm)

	// THEN each step goes to the closest unvisited candidate
	assert.Equal(t, []string{"near", "mid", "far"}, order)
}

func TestNearestFirstPlanner_BadCurrentView_FallsBackToConfigOrder(t *testing.T) {
	views := []View{viewAt("a", 10, 0, 0), viewAt("b", 1, 0, 0)}
	p := NewNearestFirstPlanner(views, 1.0)

	v, ok := p.NextView(View{Bad: true, NonViewSpace: true}, &fakeComm{})

	require.True(t, ok)
	assert.Equal(t, "a", v.ID)
}

func TestNearestFirstPlanner_ResetForgetsVisits(t *testing.T) {
	views := []View{viewAt("a", 1, 0, 0), viewAt("b", 2, 0, 0)}
	p := NewNearestFirstPlanner(views, 0)
	comm := &fakeComm{}

	first := drain(p, comm)
	p.Reset()
	comm.pose = Pose{}
	second := drain(p, comm)

	assert.Equal(t, first, second)
}

func TestSequentialPlanner_ConfigOrder(t *testing.T) {
	views := []View{viewAt("far", 10, 0, 0), viewAt("near", 1, 0, 0)}
	p := NewSequentialPlanner(views)

	assert.Equal(t, []string{"far", "near"}, drain(p, &fakeComm{}))
	p.Reset()
	assert.Equal(t, []string{"far", "near"}, drain(p, &fakeComm{}))
}

func TestNewViewPlanner_ByName(t *testing.T) {
	_, ok := NewViewPlanner("", nil, 0).(*NearestFirstPlanner)
	assert.True(t, ok, "empty defaults to nearest")
	_, ok = NewViewPlanner("nearest", nil, 0).(*NearestFirstPlanner)
	assert.True(t, ok)
	_, ok = NewViewPlanner("sequential", nil, 0).(*SequentialPlanner)
	assert.True(t, ok)
	assert.Panics(t, func() { NewViewPlanner("random", nil, 0) })
}

func TestPlanners_EmptyViewSpace_ImmediatelyExhausted(t *testing.T) {
	for _, p := range []ViewPlanner{NewNearestFirstPlanner(nil, 0), NewSequentialPlanner(nil)} {
		_, ok := p.NextView(View{}, &fakeComm{})
		assert.False(t, ok)
	}
}
