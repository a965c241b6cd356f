package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePath_SameSourceAndDestinationIsEmpty(t *testing.T) {
	env := twoHopEnv(1000)

	p, err := GeneratePath(env, 1, 1)
	require.NoError(t, err)
	assert.Empty(t, p.Devices)
	assert.Empty(t, p.Links)
}

func TestGeneratePath_WalksNextHopsToDestination(t *testing.T) {
	env := twoHopEnv(1000)

	p, err := GeneratePath(env, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, p.Devices)
	assert.Len(t, p.Links, 2)
}

func TestGeneratePath_NoRouteErrors(t *testing.T) {
	env := twoHopEnv(1000)
	// device 2 has no route back to 0
	_, err := GeneratePath(env, 2, 0)
	require.Error(t, err)
}

func TestMinAvailableBandwidth_EmptyPathIsInfinite(t *testing.T) {
	env := twoHopEnv(1000)
	p, _ := GeneratePath(env, 1, 1)
	assert.True(t, math.IsInf(MinAvailableBandwidth(env, p), 1))
}

func TestMinAvailableBandwidth_ReflectsTightestLink(t *testing.T) {
	env := twoHopEnv(1000)
	p, err := GeneratePath(env, 0, 2)
	require.NoError(t, err)

	link := env.Network.Link(1, 2)
	require.True(t, link.UseBandwidth(400))

	assert.Equal(t, 600.0, MinAvailableBandwidth(env, p))
}

func TestReservePath_RollsBackOnPartialFailure(t *testing.T) {
	env := twoHopEnv(1000)
	p, err := GeneratePath(env, 0, 2)
	require.NoError(t, err)

	// Exhaust the second link so the path as a whole cannot be reserved.
	second := env.Network.Link(1, 2)
	require.True(t, second.UseBandwidth(1000))

	ok := ReservePath(env, p, 100)
	assert.False(t, ok, "reservation must fail when any link lacks capacity")

	first := env.Network.Link(0, 1)
	assert.Equal(t, 0.0, first.Used(), "the first link's reservation must be rolled back, not leaked")
}

func TestReservePath_SucceedsAndFreePathReleasesExactly(t *testing.T) {
	env := twoHopEnv(1000)
	p, err := GeneratePath(env, 0, 2)
	require.NoError(t, err)

	require.True(t, ReservePath(env, p, 200))
	assert.Equal(t, 200.0, env.Network.Link(0, 1).Used())
	assert.Equal(t, 200.0, env.Network.Link(1, 2).Used())

	FreePath(env, p, 200)
	assert.Equal(t, 0.0, env.Network.Link(0, 1).Used())
	assert.Equal(t, 0.0, env.Network.Link(1, 2).Used())
}

func TestPhysicalLink_FreeBandwidthNeverGoesNegative(t *testing.T) {
	l := &PhysicalLink{Capacity: 100}
	l.FreeBandwidth(50)
	assert.Equal(t, 0.0, l.Used())
}
