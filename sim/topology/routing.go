package topology

import (
	"math"

	"github.com/edgeplace/edgeplace/sim"
)

// ExternalLink is one externally supplied link, as parsed from Device JSON's
// links array (§6).
type ExternalLink struct {
	Source, Target int
	Weight         float64
}

// InstallExternalLinks adds a bidirectional PhysicalLink for each external
// link and seeds both endpoints' simple routing tables with the direct
// neighbor entry (§4.2 "Initial routing").
func InstallExternalLinks(env *sim.Environment, links []ExternalLink) {
	for _, l := range links {
		installBidirectional(env, l.Source, l.Target, l.Weight)
	}
}

// SynthesizeLinks connects every device pair whose distance is strictly
// less than the configured wifi_range, used when no external topology is
// supplied (§4.2).
func SynthesizeLinks(env *sim.Environment) {
	ids := env.DeviceIDs()
	devices := env.Devices()
	for i, a := range ids {
		for _, b := range ids[i+1:] {
			d := distance(devices[a].Position, devices[b].Position)
			if d < env.Config.WifiRange {
				installBidirectional(env, a, b, 0)
			}
		}
	}
}

func installBidirectional(env *sim.Environment, a, b int, weight float64) {
	if env.Network.Link(a, b) != nil {
		return
	}
	devices := env.Devices()
	d := distance(devices[a].Position, devices[b].Position)

	forward := env.Network.AddLink(a, b, 0, 0)
	backward := env.Network.AddLink(b, a, 0, 0)

	metric := weight
	if metric == 0 {
		metric = LinkMetric(forward.Capacity, d, env.Config.WifiRange, forward.Delay)
	}
	forward.Metric = metric
	backward.Metric = metric

	devices[a].AddRoute(b, b, metric)
	devices[b].AddRoute(a, a, metric)
}

func distance(a, b sim.Position) float64 {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
