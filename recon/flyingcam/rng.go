package flyingcam

import (
	"hash/fnv"
	"math/rand"
)

// Subsystems with their own random streams. Adding draws to one never shifts another.
const (
	SubsystemPose   = "pose"
	SubsystemMove   = "move"
	SubsystemPoints = "points"
)

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
// Each subsystem is seeded with seed XOR fnv1a64(name).
//
// Thread-safety: NOT thread-safe. Camera serializes access under its own lock.
type PartitionedRNG struct {
	seed       int64
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a seed.
func NewPartitionedRNG(seed int64) *PartitionedRNG {
	return &PartitionedRNG{
		seed:       seed,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same name always returns the same *rand.Rand instance. Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewSource(p.seed ^ fnv1a64(name)))
	p.subsystems[name] = rng
	return rng
}

// Seed returns the seed used to create this PartitionedRNG.
func (p *PartitionedRNG) Seed() int64 {
	return p.seed
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
