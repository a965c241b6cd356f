package workload

import (
	"math"
	"math/rand"

	"github.com/edgeplace/edgeplace/sim"
)

// GeneratePlacements produces one arrival per application id in [0, count),
// with inter-arrival gaps drawn from a Poisson process over the simulation
// horizon and a uniformly random requesting device, grounded on
// original_source's PlacementGenerator.py.
func GeneratePlacements(count, numDevices int, rng *sim.PartitionedRNG) []sim.PlacementArrival {
	r := rng.ForSubsystem(sim.SubsystemPlacements)

	lambda := float64(TimePeriod) / float64(count)

	arrivals := make([]sim.PlacementArrival, 0, count)
	var t int64
	for i := 0; i < count; i++ {
		t += poisson(r, lambda)
		device := 0
		if numDevices > 0 {
			device = r.Intn(numDevices)
		}
		arrivals = append(arrivals, sim.PlacementArrival{
			Time:             t,
			RequestingDevice: device,
			ApplicationID:    i,
		})
	}
	return arrivals
}

// poisson samples from a Poisson distribution with the given mean. Large
// means (this domain's defaults comfortably exceed 30) use the normal
// approximation to avoid Knuth's algorithm underflowing exp(-lambda) to
// zero; small means use Knuth's algorithm directly.
func poisson(r *rand.Rand, lambda float64) int64 {
	if lambda <= 0 {
		return 0
	}
	if lambda >= 30 {
		v := math.Round(r.NormFloat64()*math.Sqrt(lambda) + lambda)
		if v < 0 {
			v = 0
		}
		return int64(v)
	}

	l := math.Exp(-lambda)
	k := int64(0)
	p := 1.0
	for {
		k++
		p *= r.Float64()
		if p <= l {
			return k - 1
		}
	}
}
