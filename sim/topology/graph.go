package topology

import (
	"gonum.org/v1/gonum/graph/simple"

	"github.com/edgeplace/edgeplace/sim"
)

// BuildGraph renders env's PhysicalNetwork as a gonum weighted directed
// graph, edge weight = PhysicalLink.Metric, for consumption by the
// shortest-path and k-shortest-path bootstraps.
func BuildGraph(env *sim.Environment) *simple.WeightedDirectedGraph {
	g := simple.NewWeightedDirectedGraph(0, 0)
	for _, id := range env.DeviceIDs() {
		g.AddNode(simple.Node(id))
	}
	for _, link := range env.Network.AllLinks() {
		weight := link.Metric
		if weight <= 0 {
			weight = 1
		}
		g.SetWeightedEdge(g.NewWeightedEdge(simple.Node(link.Origin), simple.Node(link.Destination), weight))
	}
	return g
}
