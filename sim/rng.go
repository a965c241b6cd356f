// sim/rng.go
package sim

import (
	"hash/fnv"
	"math/rand"
)

// PartitionedRNG hands out isolated, deterministically-derived RNG streams
// per subsystem, so device generation, application generation, and arrival
// generation can each run independently reproducible sequences from one
// master seed without one generator's call count perturbing another's
// (grounded on the teacher's sim/cluster/rng.go PartitionedRNG).
type PartitionedRNG struct {
	masterSeed int64
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG rooted at masterSeed.
func NewPartitionedRNG(masterSeed int64) *PartitionedRNG {
	return &PartitionedRNG{masterSeed: masterSeed, subsystems: map[string]*rand.Rand{}}
}

// ForSubsystem returns the RNG for name, creating and seeding it on first
// use. Repeated calls with the same name return the same generator.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewSource(p.deriveSeed(name)))
	p.subsystems[name] = rng
	return rng
}

// deriveSeed computes masterSeed XOR fnv64a(name), giving an order-
// independent per-subsystem seed.
func (p *PartitionedRNG) deriveSeed(name string) int64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return p.masterSeed ^ int64(h.Sum64())
}

// Subsystem name constants for the workload generators (§6 CLI surface).
const (
	SubsystemDevices      = "devices"
	SubsystemApplications = "applications"
	SubsystemPlacements   = "placements"
)
