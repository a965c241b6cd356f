package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgeplace/edgeplace/sim"
)

func smallEnv(wifiRange float64) *sim.Environment {
	cfg := sim.DefaultConfig()
	cfg.WifiRange = wifiRange
	env := sim.NewEnvironment(cfg)

	limit := map[string]float64{"cpu": 100, "gpu": 10, "mem": 1000, "disk": 5000}
	env.AddDevice(sim.NewDevice(0, sim.Position{X: 0, Y: 0, Z: 0}, limit))
	env.AddDevice(sim.NewDevice(1, sim.Position{X: 1, Y: 0, Z: 0}, limit))
	env.AddDevice(sim.NewDevice(2, sim.Position{X: 2, Y: 0, Z: 0}, limit))
	env.AddDevice(sim.NewDevice(3, sim.Position{X: 100, Y: 100, Z: 0}, limit))
	return env
}

func TestLinkMetric_ClampsBandwidthRatioToOne(t *testing.T) {
	// Bandwidth far above reference: ratio < 1 must clamp to 1.
	m := LinkMetric(ReferenceBandwidthKBs*100, 0, 0, 0)
	assert.Equal(t, 1.0, m)
}

func TestLinkMetric_AddsDistanceAndDelayTerms(t *testing.T) {
	m := LinkMetric(ReferenceBandwidthKBs, 10, 5, 2)
	// ratio=1, distance/range=2, delay=2 -> 5
	assert.Equal(t, 5.0, m)
}

func TestLinkMetric_ZeroRangeDisablesDistanceTerm(t *testing.T) {
	m := LinkMetric(ReferenceBandwidthKBs, 10, 0, 2)
	assert.Equal(t, 3.0, m)
}

func TestSynthesizeLinks_ConnectsOnlyDevicesWithinRange(t *testing.T) {
	env := smallEnv(1.5)
	SynthesizeLinks(env)

	assert.NotNil(t, env.Network.Link(0, 1), "devices 0 and 1, 1 m apart, within a 1.5 range must be linked")
	assert.Nil(t, env.Network.Link(0, 2), "devices 2 apart exceed a 1.5 range")
	assert.Nil(t, env.Network.Link(0, 3), "the far device must not be linked")
}

func TestSynthesizeLinks_InstallsSymmetricRoutesAndMetric(t *testing.T) {
	env := smallEnv(1.5)
	SynthesizeLinks(env)

	forward := env.Network.Link(0, 1)
	backward := env.Network.Link(1, 0)
	require.NotNil(t, forward)
	require.NotNil(t, backward)
	assert.Equal(t, forward.Metric, backward.Metric)

	entry, err := env.Devices()[0].RouteTo(1)
	require.NoError(t, err)
	assert.Equal(t, 1, entry.NextHop)
}

func TestBuildGraph_IncludesEveryDevice(t *testing.T) {
	env := smallEnv(1.5)
	SynthesizeLinks(env)

	g := BuildGraph(env)
	assert.Equal(t, 4, g.Nodes().Len())
}

func TestBootstrapShortestPaths_FindsMultiHopRoute(t *testing.T) {
	env := smallEnv(1.5) // 0-1 and 1-2 linked, 0-2 not directly linked
	SynthesizeLinks(env)
	g := BuildGraph(env)
	BootstrapShortestPaths(env, g)

	d0 := env.Devices()[0]
	require.NotNil(t, d0.OSPF)
	route := d0.OSPF.Best(2)
	require.NotNil(t, route)
	assert.Equal(t, []int{0, 1, 2}, route.Path.Devices)
}

func TestBootstrapKShortestPaths_OrderedByAscendingMetric(t *testing.T) {
	env := smallEnv(1.5)
	SynthesizeLinks(env)
	g := BuildGraph(env)
	BootstrapShortestPaths(env, g)
	BootstrapKShortestPaths(env, g, 3)

	d0 := env.Devices()[0]
	ordered := d0.OSPF.Ordered(2)
	require.NotEmpty(t, ordered)
	for i := 1; i < len(ordered); i++ {
		assert.LessOrEqual(t, ordered[i-1].Metric, ordered[i].Metric)
	}
}
