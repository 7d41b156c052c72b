package recon

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"time"

	"gonum.org/v1/gonum/num/quat"
	"gopkg.in/yaml.v3"
)

// Defaults applied when a bundle leaves a field unset.
const (
	DefaultMaxCalls         = 10
	DefaultSettlingInterval = 3 * time.Second
	DefaultSettleTimeout    = 10 * time.Second
	DefaultSettleTolerance  = 0.01
	DefaultInputChannel     = "/stereo/points2"
	DefaultOutputChannel    = "/world/pcl_input"
)

// ReconBundle holds the full run configuration, loadable from a YAML file.
// Nil pointer fields mean "not set in YAML"; string fields use "" for "not set".
type ReconBundle struct {
	Termination TerminationConfig `yaml:"termination"`
	Adapter     AdapterConfig     `yaml:"adapter"`
	Camera      CameraConfig      `yaml:"camera"`
	Planner     PlannerConfig     `yaml:"planner"`
	Views       []ViewConfig      `yaml:"views"`
}

// TerminationConfig selects and parameterizes the termination criteria.
type TerminationConfig struct {
	Policy     string         `yaml:"policy"`
	MaxCalls   *int           `yaml:"max_calls"`
	TimeBudget *time.Duration `yaml:"time_budget"`
}

func (c TerminationConfig) maxCalls() int {
	if c.MaxCalls == nil {
		return DefaultMaxCalls
	}
	return *c.MaxCalls
}

// AdapterConfig holds settling and data-channel configuration for the view adapter.
type AdapterConfig struct {
	Settler          string         `yaml:"settler"`
	SettlingInterval *time.Duration `yaml:"settling_interval"`
	SettleTimeout    *time.Duration `yaml:"settle_timeout"`
	SettleTolerance  *float64       `yaml:"settle_tolerance"`
	InputChannel     string         `yaml:"input_channel"`
	OutputChannel    string         `yaml:"output_channel"`
}

// Interval returns the configured settling interval or DefaultSettlingInterval.
func (c AdapterConfig) Interval() time.Duration {
	if c.SettlingInterval == nil {
		return DefaultSettlingInterval
	}
	return *c.SettlingInterval
}

// Timeout returns the configured convergence timeout or DefaultSettleTimeout.
func (c AdapterConfig) Timeout() time.Duration {
	if c.SettleTimeout == nil {
		return DefaultSettleTimeout
	}
	return *c.SettleTimeout
}

// Tolerance returns the configured convergence tolerance or DefaultSettleTolerance.
func (c AdapterConfig) Tolerance() float64 {
	if c.SettleTolerance == nil {
		return DefaultSettleTolerance
	}
	return *c.SettleTolerance
}

// Channels returns the input and output channel names with defaults applied.
func (c AdapterConfig) Channels() (in, out string) {
	in, out = c.InputChannel, c.OutputChannel
	if in == "" {
		in = DefaultInputChannel
	}
	if out == "" {
		out = DefaultOutputChannel
	}
	return in, out
}

// CameraConfig configures the simulated flying camera.
type CameraConfig struct {
	Start           PoseConfig `yaml:"start"`
	PoseFailureRate float64    `yaml:"pose_failure_rate"`
	MoveFailureRate float64    `yaml:"move_failure_rate"`
}

// PlannerConfig selects the view planner.
type PlannerConfig struct {
	Policy             string  `yaml:"policy"`
	DefaultUnknownCost float64 `yaml:"default_unknown_cost"`
}

// PoseConfig is the YAML form of a Pose. A missing orientation means identity.
type PoseConfig struct {
	Position    [3]float64  `yaml:"position"`
	Orientation *[4]float64 `yaml:"orientation"`
}

// Pose converts the YAML form into a Pose with a normalized orientation.
func (p PoseConfig) Pose() Pose {
	if p.Orientation == nil {
		return NewPose(p.Position, [4]float64{1, 0, 0, 0})
	}
	pose := NewPose(p.Position, *p.Orientation)
	if n := quat.Abs(pose.Orientation); n > 0 {
		pose.Orientation = quat.Scale(1/n, pose.Orientation)
	}
	return pose
}

// ViewConfig is a candidate view in the view space.
type ViewConfig struct {
	ID         string `yaml:"id"`
	PoseConfig `yaml:",inline"`
}

// CandidateViews converts the configured view space into Views.
// Views without an ID are named by their index.
func (b *ReconBundle) CandidateViews() []View {
	views := make([]View, 0, len(b.Views))
	for i, vc := range b.Views {
		id := vc.ID
		if id == "" {
			id = fmt.Sprintf("view_%d", i)
		}
		views = append(views, View{ID: id, Pose: vc.Pose()})
	}
	return views
}

// LoadReconBundle reads and parses a YAML run configuration.
// Unknown fields are rejected so typos surface as errors.
func LoadReconBundle(path string) (*ReconBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading recon config: %w", err)
	}
	var bundle ReconBundle
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&bundle); err != nil {
		return nil, fmt.Errorf("parsing recon config: %w", err)
	}
	return &bundle, nil
}

// ValidTerminationPolicies is the set of recognized termination policy names.
// Shared by Validate() and NewTerminationCriteria().
var ValidTerminationPolicies = map[string]bool{"": true, "max-calls": true, "time-budget": true, "any": true}

// ValidSettlers is the set of recognized settling strategy names.
var ValidSettlers = map[string]bool{"": true, "fixed": true, "converge": true}

// ValidViewPlanners is the set of recognized view planner names.
var ValidViewPlanners = map[string]bool{"": true, "nearest": true, "sequential": true}

// IsValidTerminationPolicy reports whether name is a recognized termination policy.
func IsValidTerminationPolicy(name string) bool { return ValidTerminationPolicies[name] }

// IsValidSettler reports whether name is a recognized settling strategy.
func IsValidSettler(name string) bool { return ValidSettlers[name] }

// IsValidViewPlanner reports whether name is a recognized view planner.
func IsValidViewPlanner(name string) bool { return ValidViewPlanners[name] }

// ValidNames returns the non-empty names of a validity map in sorted order.
func ValidNames(valid map[string]bool) []string {
	names := make([]string, 0, len(valid))
	for name := range valid {
		if name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Validate checks that all policy names and parameter ranges in the bundle are valid.
func (b *ReconBundle) Validate() error {
	if err := b.Termination.Validate(); err != nil {
		return err
	}
	if !IsValidSettler(b.Adapter.Settler) {
		return fmt.Errorf("unknown settler %q; valid settlers: %v", b.Adapter.Settler, ValidNames(ValidSettlers))
	}
	if !IsValidViewPlanner(b.Planner.Policy) {
		return fmt.Errorf("unknown planner policy %q; valid policies: %v", b.Planner.Policy, ValidNames(ValidViewPlanners))
	}
	if b.Adapter.SettlingInterval != nil && *b.Adapter.SettlingInterval < 0 {
		return fmt.Errorf("settling_interval must be non-negative, got %s", *b.Adapter.SettlingInterval)
	}
	if b.Adapter.SettleTimeout != nil && *b.Adapter.SettleTimeout < 0 {
		return fmt.Errorf("settle_timeout must be non-negative, got %s", *b.Adapter.SettleTimeout)
	}
	if b.Adapter.SettleTolerance != nil && *b.Adapter.SettleTolerance < 0 {
		return fmt.Errorf("settle_tolerance must be non-negative, got %f", *b.Adapter.SettleTolerance)
	}
	if in, out := b.Adapter.Channels(); in == out {
		return fmt.Errorf("input_channel and output_channel must differ, both are %q", in)
	}
	if r := b.Camera.PoseFailureRate; r < 0 || r > 1 {
		return fmt.Errorf("pose_failure_rate must be in [0, 1], got %f", r)
	}
	if r := b.Camera.MoveFailureRate; r < 0 || r > 1 {
		return fmt.Errorf("move_failure_rate must be in [0, 1], got %f", r)
	}
	if b.Planner.DefaultUnknownCost < 0 {
		return fmt.Errorf("default_unknown_cost must be non-negative, got %f", b.Planner.DefaultUnknownCost)
	}
	if err := validateOrientation("camera.start", b.Camera.Start); err != nil {
		return err
	}
	seen := make(map[string]bool, len(b.Views))
	for i, v := range b.Views {
		if err := validateOrientation(fmt.Sprintf("views[%d]", i), v.PoseConfig); err != nil {
			return err
		}
		if v.ID == "" {
			continue
		}
		if seen[v.ID] {
			return fmt.Errorf("duplicate view id %q", v.ID)
		}
		seen[v.ID] = true
	}
	return nil
}

// Validate checks the termination policy name and its parameters.
func (c TerminationConfig) Validate() error {
	if !IsValidTerminationPolicy(c.Policy) {
		return fmt.Errorf("unknown termination policy %q; valid policies: %v", c.Policy, ValidNames(ValidTerminationPolicies))
	}
	if c.MaxCalls != nil && *c.MaxCalls < 1 {
		return fmt.Errorf("max_calls must be >= 1, got %d", *c.MaxCalls)
	}
	if c.TimeBudget != nil && *c.TimeBudget <= 0 {
		return fmt.Errorf("time_budget must be positive, got %s", *c.TimeBudget)
	}
	switch c.Policy {
	case "time-budget":
		if c.TimeBudget == nil {
			return fmt.Errorf("time-budget policy requires time_budget")
		}
	case "any":
		if c.MaxCalls == nil && c.TimeBudget == nil {
			return fmt.Errorf("any policy requires max_calls or time_budget")
		}
	}
	return nil
}

func validateOrientation(field string, p PoseConfig) error {
	if p.Orientation == nil {
		return nil
	}
	o := *p.Orientation
	if o[0] == 0 && o[1] == 0 && o[2] == 0 && o[3] == 0 {
		return fmt.Errorf("%s orientation must be a non-zero quaternion", field)
	}
	return nil
}
