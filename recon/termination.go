package recon

import (
	"fmt"
	"time"
)

// TerminationCriteria decides once per planning iteration whether reconstruction should stop.
// IsDone may mutate internal state; Reset returns the criteria to its initial state
// so the same instance can serve a new reconstruction run.
type TerminationCriteria interface {
	IsDone() bool
	Reset()
}

// MaxCallsTerminationCriteria reports done on the call whose 1-based ordinal equals maxCalls.
// The stored counter only advances on "not done" answers, so it stops at maxCalls-1.
type MaxCallsTerminationCriteria struct {
	maxCalls  int
	callCount int
}

// NewMaxCallsTerminationCriteria creates the criteria. maxCalls must be at least 1.
func NewMaxCallsTerminationCriteria(maxCalls int) (*MaxCallsTerminationCriteria, error) {
	if maxCalls < 1 {
		return nil, fmt.Errorf("max_calls must be >= 1, got %d", maxCalls)
	}
	return &MaxCallsTerminationCriteria{maxCalls: maxCalls}, nil
}

func (m *MaxCallsTerminationCriteria) IsDone() bool {
	if m.callCount+1 == m.maxCalls {
		return true
	}
	m.callCount++
	return false
}

func (m *MaxCallsTerminationCriteria) Reset() {
	m.callCount = 0
}

// Calls returns the stored counter.
func (m *MaxCallsTerminationCriteria) Calls() int {
	return m.callCount
}

// TimeBudgetTerminationCriteria reports done once budget has elapsed since the first IsDone call.
type TimeBudgetTerminationCriteria struct {
	budget  time.Duration
	started time.Time
	now     func() time.Time
}

// NewTimeBudgetTerminationCriteria creates a wall-clock budget. budget must be positive.
func NewTimeBudgetTerminationCriteria(budget time.Duration) (*TimeBudgetTerminationCriteria, error) {
	if budget <= 0 {
		return nil, fmt.Errorf("time_budget must be positive, got %s", budget)
	}
	return &TimeBudgetTerminationCriteria{budget: budget, now: time.Now}, nil
}

func (tb *TimeBudgetTerminationCriteria) IsDone() bool {
	now := tb.now()
	if tb.started.IsZero() {
		tb.started = now
	}
	return now.Sub(tb.started) >= tb.budget
}

func (tb *TimeBudgetTerminationCriteria) Reset() {
	tb.started = time.Time{}
}

// AnyTerminationCriteria is done when any child is done.
// Every child is consulted on every call so stateful children advance in lockstep.
type AnyTerminationCriteria struct {
	children []TerminationCriteria
}

// NewAnyTerminationCriteria combines children. With no children it never terminates.
func NewAnyTerminationCriteria(children ...TerminationCriteria) *AnyTerminationCriteria {
	return &AnyTerminationCriteria{children: children}
}

func (a *AnyTerminationCriteria) IsDone() bool {
	done := false
	for _, c := range a.children {
		if c.IsDone() {
			done = true
		}
	}
	return done
}

func (a *AnyTerminationCriteria) Reset() {
	for _, c := range a.children {
		c.Reset()
	}
}

// NewTerminationCriteria creates termination criteria from configuration.
// Valid names are defined in ValidTerminationPolicies (bundle.go).
// An empty policy defaults to max-calls.
// "any" combines max-calls and time-budget, each included when its parameter is set.
// Panics on unrecognized names; call TerminationConfig.Validate first.
func NewTerminationCriteria(cfg TerminationConfig) (TerminationCriteria, error) {
	if !IsValidTerminationPolicy(cfg.Policy) {
		panic(fmt.Sprintf("unknown termination policy %q", cfg.Policy))
	}
	switch cfg.Policy {
	case "", "max-calls":
		mc, err := NewMaxCallsTerminationCriteria(cfg.maxCalls())
		if err != nil {
			return nil, err
		}
		return mc, nil
	case "time-budget":
		if cfg.TimeBudget == nil {
			return nil, fmt.Errorf("time-budget policy requires time_budget")
		}
		tb, err := NewTimeBudgetTerminationCriteria(*cfg.TimeBudget)
		if err != nil {
			return nil, err
		}
		return tb, nil
	case "any":
		var children []TerminationCriteria
		if cfg.MaxCalls != nil {
			mc, err := NewMaxCallsTerminationCriteria(*cfg.MaxCalls)
			if err != nil {
				return nil, err
			}
			children = append(children, mc)
		}
		if cfg.TimeBudget != nil {
			tb, err := NewTimeBudgetTerminationCriteria(*cfg.TimeBudget)
			if err != nil {
				return nil, err
			}
			children = append(children, tb)
		}
		if len(children) == 0 {
			return nil, fmt.Errorf("any policy requires max_calls or time_budget")
		}
		return NewAnyTerminationCriteria(children...), nil
	default:
		panic(fmt.Sprintf("unhandled termination policy %q", cfg.Policy))
	}
}
