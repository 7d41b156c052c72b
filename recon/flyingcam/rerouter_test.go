package flyingcam

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRerouter_RerouteOne_MovesExactlyOneUnit(t *testing.T) {
	// GIVEN two clouds on the input channel
	bus := NewBus()
	bus.Publish("in", PointCloud{ID: "a"})
	bus.Publish("in", PointCloud{ID: "b"})
	r := NewRerouter(bus, "in", "out")

	// WHEN one unit is rerouted
	require.True(t, r.RerouteOne())

	// THEN the oldest moved and was relabelled
	assert.Equal(t, 1, bus.Len("in"))
	out := bus.Drain("out")
	require.Len(t, out, 1)
	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, "out", out[0].Channel)
}

func TestRerouter_EmptyInput_ReturnsFalse(t *testing.T) {
	bus := NewBus()
	r := NewRerouter(bus, "in", "out")

	assert.False(t, r.RerouteOne())
	assert.Equal(t, 0, bus.Len("out"))
}

func TestRerouter_Channels(t *testing.T) {
	in, out := NewRerouter(NewBus(), "/stereo/points2", "/world/pcl_input").Channels()
	assert.Equal(t, "/stereo/points2", in)
	assert.Equal(t, "/world/pcl_input", out)
}

func TestBus_ConcurrentPublishers_NoLostClouds(t *testing.T) {
	bus := NewBus()
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				bus.Publish("in", PointCloud{})
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 800, bus.Len("in"))
	assert.Len(t, bus.Drain("in"), 800)
	assert.Equal(t, 0, bus.Len("in"))
}

func TestPartitionedRNG_SubsystemsIsolated(t *testing.T) {
	// Drawing from one subsystem must not shift another.
	a := NewPartitionedRNG(42)
	b := NewPartitionedRNG(42)
	for i := 0; i < 10; i++ {
		a.ForSubsystem(SubsystemPose).Float64()
	}
	assert.Equal(t, b.ForSubsystem(SubsystemMove).Float64(), a.ForSubsystem(SubsystemMove).Float64())
	assert.Same(t, a.ForSubsystem(SubsystemPose), a.ForSubsystem(SubsystemPose))
	assert.Equal(t, int64(42), a.Seed())
}
