package sim

// twoHopEnv builds a 3-device linear topology 0 -> 1 -> 2 with device 0's
// routing table pointing at 1 for destination 2, used across path/network
// tests that need a minimal resolvable route.
func twoHopEnv(bandwidth float64) *Environment {
	env := NewEnvironment(DefaultConfig())

	limit := map[string]float64{"cpu": 100, "gpu": 10, "mem": 1000, "disk": 5000}
	d0 := NewDevice(0, Position{}, limit)
	d1 := NewDevice(1, Position{}, limit)
	d2 := NewDevice(2, Position{}, limit)
	env.AddDevice(d0)
	env.AddDevice(d1)
	env.AddDevice(d2)

	env.Network.AddLink(0, 1, bandwidth, 10)
	env.Network.AddLink(1, 2, bandwidth, 10)

	d0.AddRoute(1, 1, 1)
	d0.AddRoute(2, 1, 2)
	d1.AddRoute(2, 2, 1)

	return env
}
