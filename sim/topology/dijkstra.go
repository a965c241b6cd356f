package topology

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/edgeplace/edgeplace/sim"
)

// BootstrapShortestPaths computes, for every device, a single shortest Route
// to every other reachable device using Dijkstra over the OSPF link metric,
// and installs it as that device's OSPF routing table (§4.2 "Shortest-path
// bootstrap"). It also fills in each device's simple routing table's
// multi-hop entries (the direct-neighbor entries are seeded earlier, by
// InstallExternalLinks/SynthesizeLinks or by Environment.ImportDevices).
func BootstrapShortestPaths(env *sim.Environment, g graph.Graph) {
	ids := env.DeviceIDs()
	devices := env.Devices()

	for _, src := range ids {
		shortest := path.DijkstraFrom(simple.Node(src), g)
		device := devices[src]
		if device.OSPF == nil {
			device.OSPF = sim.NewOSPFTable()
		}

		for _, dst := range ids {
			if dst == src {
				continue
			}
			nodes, weight := shortest.To(int64(dst))
			if len(nodes) == 0 {
				continue
			}

			p, ok := nodesToPath(env, src, dst, nodes)
			if !ok {
				continue
			}

			route := &sim.Route{Origin: src, Destination: dst, Metric: weight, Path: p}
			device.OSPF.Routes[dst] = []*sim.Route{route}

			if len(p.Devices) > 1 {
				device.AddRoute(dst, p.Devices[1], weight)
			}
		}
	}
}

// nodesToPath resolves a gonum node sequence into a sim.Path, failing if any
// consecutive pair lacks an installed PhysicalLink.
func nodesToPath(env *sim.Environment, src, dst int, nodes []graph.Node) (*sim.Path, bool) {
	devices := make([]int, len(nodes))
	for i, n := range nodes {
		devices[i] = int(n.ID())
	}

	links := make([]int, 0, len(devices)-1)
	for i := 0; i < len(devices)-1; i++ {
		l := env.Network.Link(devices[i], devices[i+1])
		if l == nil {
			return nil, false
		}
		links = append(links, l.ID)
	}

	return &sim.Path{Source: src, Destination: dst, Devices: devices, Links: links}, true
}
