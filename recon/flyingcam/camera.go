// Package flyingcam simulates a free-flying stereo camera and the point-cloud
// plumbing behind it. It satisfies the adapter's controller and rerouter
// contracts so a reconstruction loop can run without hardware.
package flyingcam

import (
	"errors"
	"math/rand"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/activerecon/activerecon/recon"
)

// ErrPoseLost is returned by CurrentPose when the simulated tracker drops out.
var ErrPoseLost = errors.New("camera pose lost")

// DefaultPointsPerCloud is the synthetic cloud size when Config leaves it unset.
const DefaultPointsPerCloud = 64

// Config configures a Camera.
type Config struct {
	Start           recon.Pose
	PoseFailureRate float64 // probability in [0, 1] that CurrentPose fails
	MoveFailureRate float64 // probability in [0, 1] that MoveTo fails
	OutputChannel   string  // bus channel each captured cloud is published on
	PointsPerCloud  int
}

// Camera teleports to commanded poses and publishes one cloud per successful move.
// Safe for concurrent use.
type Camera struct {
	mu   sync.Mutex
	cfg  Config
	pose recon.Pose
	bus  *Bus

	poseRNG   *rand.Rand
	moveRNG   *rand.Rand
	pointsRNG *rand.Rand
}

// NewCamera creates a camera at cfg.Start publishing on bus.
func NewCamera(cfg Config, bus *Bus, rng *PartitionedRNG) *Camera {
	if cfg.PointsPerCloud <= 0 {
		cfg.PointsPerCloud = DefaultPointsPerCloud
	}
	return &Camera{
		cfg:       cfg,
		pose:      cfg.Start,
		bus:       bus,
		poseRNG:   rng.ForSubsystem(SubsystemPose),
		moveRNG:   rng.ForSubsystem(SubsystemMove),
		pointsRNG: rng.ForSubsystem(SubsystemPoints),
	}
}

// NewCameraFromBundle builds the camera described by a run configuration.
func NewCameraFromBundle(b *recon.ReconBundle, bus *Bus, rng *PartitionedRNG) *Camera {
	in, _ := b.Adapter.Channels()
	return NewCamera(Config{
		Start:           b.Camera.Start.Pose(),
		PoseFailureRate: b.Camera.PoseFailureRate,
		MoveFailureRate: b.Camera.MoveFailureRate,
		OutputChannel:   in,
	}, bus, rng)
}

// CurrentPose returns the camera pose or ErrPoseLost.
func (c *Camera) CurrentPose() (recon.Pose, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if fails(c.poseRNG, c.cfg.PoseFailureRate) {
		return recon.Pose{}, ErrPoseLost
	}
	return c.pose, nil
}

// MoveTo teleports to pose and captures one cloud there.
func (c *Camera) MoveTo(pose recon.Pose) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if fails(c.moveRNG, c.cfg.MoveFailureRate) {
		logrus.Debugf("camera: move to %s failed", pose)
		return false
	}
	c.pose = pose
	c.bus.Publish(c.cfg.OutputChannel, sampleCloud(pose, c.cfg.OutputChannel, c.cfg.PointsPerCloud, c.pointsRNG))
	return true
}

// fails draws from rng only when rate is positive so a zero rate leaves the stream untouched.
func fails(rng *rand.Rand, rate float64) bool {
	return rate > 0 && rng.Float64() < rate
}
