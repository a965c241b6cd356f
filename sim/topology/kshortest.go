package topology

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/edgeplace/edgeplace/sim"
)

// BootstrapKShortestPaths augments every device's OSPF table with up to k
// loopless alternate routes to every other device, ordered by ascending
// metric via OSPFTable.Ordered (§4.2 "k-shortest paths"), used by Phase B
// link mapping when the primary route lacks bandwidth.
func BootstrapKShortestPaths(env *sim.Environment, g graph.Graph, k int) {
	ids := env.DeviceIDs()
	devices := env.Devices()

	for _, src := range ids {
		device := devices[src]
		if device.OSPF == nil {
			device.OSPF = sim.NewOSPFTable()
		}

		for _, dst := range ids {
			if dst == src {
				continue
			}
			paths := path.YenKShortestPaths(g, k, simple.Node(src), simple.Node(dst))
			for _, nodes := range paths {
				p, metric, ok := nodesToWeightedPath(env, src, dst, nodes)
				if !ok {
					continue
				}
				route := &sim.Route{Origin: src, Destination: dst, Metric: metric, Path: p}
				if !hasEquivalentRoute(device.OSPF.Routes[dst], route) {
					device.OSPF.Routes[dst] = append(device.OSPF.Routes[dst], route)
				}
			}
		}
	}
}

func nodesToWeightedPath(env *sim.Environment, src, dst int, nodes []graph.Node) (*sim.Path, float64, bool) {
	devices := make([]int, len(nodes))
	for i, n := range nodes {
		devices[i] = int(n.ID())
	}

	links := make([]int, 0, len(devices)-1)
	metric := 0.0
	for i := 0; i < len(devices)-1; i++ {
		l := env.Network.Link(devices[i], devices[i+1])
		if l == nil {
			return nil, 0, false
		}
		links = append(links, l.ID)
		metric += l.Metric
	}

	return &sim.Path{Source: src, Destination: dst, Devices: devices, Links: links}, metric, true
}

func hasEquivalentRoute(existing []*sim.Route, candidate *sim.Route) bool {
	for _, r := range existing {
		if r.Equal(candidate) {
			return true
		}
	}
	return false
}
