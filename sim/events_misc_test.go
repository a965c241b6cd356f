package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrganizeEvent_IsANoOp(t *testing.T) {
	env := singleDeviceEnv(map[string]float64{"cpu": 10, "gpu": 1, "mem": 10, "disk": 10})
	env.Schedule(NewOrganizeEvent(5))
	assert.NotPanics(t, func() { env.Run() })
}

func TestMovementEvent_UpdatesDevicePosition(t *testing.T) {
	env := singleDeviceEnv(map[string]float64{"cpu": 10, "gpu": 1, "mem": 10, "disk": 10})
	env.Schedule(NewMovementEvent(5, 0, Position{X: 1, Y: 2, Z: 3}))
	env.Run()

	assert.Equal(t, Position{X: 1, Y: 2, Z: 3}, env.devices[0].Position)
}

func TestMovementEvent_UnknownDeviceIsIgnored(t *testing.T) {
	env := singleDeviceEnv(map[string]float64{"cpu": 10, "gpu": 1, "mem": 10, "disk": 10})
	env.Schedule(NewMovementEvent(5, 999, Position{X: 1}))
	assert.NotPanics(t, func() { env.Run() })
}
