// Package workload generates random device catalogs, application catalogs,
// and arrival streams for the CLI's generate-* stages (§6 "out of scope:
// random device/topology generation" means only that the core placement
// engine doesn't depend on generation — the generators themselves are
// still part of a complete repo, grounded on original_source's
// DeviceGenerator.py/AppGenerator.py/PlacementGenerator.py).
package workload

import (
	"github.com/edgeplace/edgeplace/sim"
)

// ResourcePresetNVIDIA and ResourcePresetARM mirror original_source's NVIDIA/ARM device
// profiles (modules/resource/Device.py DEFAULT_RESOURCE_LIMIT_NVIDIA /
// _ARM): an edge device is either a GPU-equipped NVIDIA-class board or a
// GPU-less high-core ARM board, chosen uniformly at random.
var (
	ResourcePresetNVIDIA = map[string]float64{"cpu": 8, "gpu": 8, "mem": 8 * 1024, "disk": 1000 * 1024}
	ResourcePresetARM    = map[string]float64{"cpu": 16, "gpu": 0, "mem": 32 * 1024, "disk": 1000 * 1024}
)

// GenerateDevices creates n devices with randomized positions within bounds
// and a randomly chosen NVIDIA/ARM resource preset, using rng's device
// subsystem stream for reproducibility.
func GenerateDevices(env *sim.Environment, n int, bounds sim.PositionBounds, rng *sim.PartitionedRNG) {
	r := rng.ForSubsystem(sim.SubsystemDevices)
	for i := 0; i < n; i++ {
		pos := sim.Position{
			X: bounds.XMin + r.Float64()*(bounds.XMax-bounds.XMin),
			Y: bounds.YMin + r.Float64()*(bounds.YMax-bounds.YMin),
			Z: bounds.ZMin + r.Float64()*(bounds.ZMax-bounds.ZMin),
		}
		preset := ResourcePresetARM
		if r.Intn(2) == 0 {
			preset = ResourcePresetNVIDIA
		}
		id := env.NextDeviceID()
		env.AddDevice(sim.NewDevice(id, pos, preset))
	}
}
