package adapter

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/activerecon/activerecon/recon"
)

// Settler blocks after a move command until the caller may trust pose queries again.
type Settler interface {
	Settle(target recon.Pose)
}

// FixedSettler waits a fixed interval regardless of where the robot is.
type FixedSettler struct {
	interval time.Duration
	sleep    func(time.Duration)
}

// NewFixedSettler creates a settler that sleeps interval on every Settle.
func NewFixedSettler(interval time.Duration) *FixedSettler {
	return &FixedSettler{interval: interval, sleep: time.Sleep}
}

func (s *FixedSettler) Settle(_ recon.Pose) {
	s.sleep(s.interval)
}

// Interval returns the configured wait.
func (s *FixedSettler) Interval() time.Duration {
	return s.interval
}

// convergePollInterval is how often ConvergingSettler re-reads the pose.
const convergePollInterval = 50 * time.Millisecond

// ConvergingSettler waits at least minimum, then polls the controller until the
// live position is within tolerance of the target or timeout (measured from the
// start of Settle) elapses. Pose read failures count as "not yet converged".
type ConvergingSettler struct {
	controller PoseController
	minimum    time.Duration
	timeout    time.Duration
	tolerance  float64
	poll       time.Duration

	now   func() time.Time
	sleep func(time.Duration)
}

// NewConvergingSettler creates a polling settler over controller.
func NewConvergingSettler(controller PoseController, minimum, timeout time.Duration, tolerance float64) *ConvergingSettler {
	return &ConvergingSettler{
		controller: controller,
		minimum:    minimum,
		timeout:    timeout,
		tolerance:  tolerance,
		poll:       convergePollInterval,
		now:        time.Now,
		sleep:      time.Sleep,
	}
}

// Settle returns once converged or timed out. Either way at least minimum has passed.
func (s *ConvergingSettler) Settle(target recon.Pose) {
	start := s.now()
	s.sleep(s.minimum)
	deadline := start.Add(s.timeout)
	for {
		if pose, err := currentPose(s.controller); err == nil && pose.Distance(target) <= s.tolerance {
			return
		}
		if !s.now().Before(deadline) {
			logrus.Warnf("settle: pose did not converge to %s within %s", target, s.timeout)
			return
		}
		s.sleep(s.poll)
	}
}

// NewSettler creates a settling strategy by name from adapter configuration.
// Valid names are defined in recon.ValidSettlers. An empty name defaults to fixed.
// Panics on unrecognized names.
func NewSettler(cfg recon.AdapterConfig, controller PoseController) Settler {
	if !recon.IsValidSettler(cfg.Settler) {
		panic(fmt.Sprintf("unknown settler %q", cfg.Settler))
	}
	switch cfg.Settler {
	case "", "fixed":
		return NewFixedSettler(cfg.Interval())
	case "converge":
		return NewConvergingSettler(controller, cfg.Interval(), cfg.Timeout(), cfg.Tolerance())
	default:
		panic(fmt.Sprintf("unhandled settler %q", cfg.Settler))
	}
}
