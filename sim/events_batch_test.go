package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchProcessing_AccumulatesAndDeploysViaGreedySolver(t *testing.T) {
	env := singleDeviceEnv(map[string]float64{"cpu": 100, "gpu": 10, "mem": 1000, "disk": 5000})
	env.Config.Batch = true
	env.Config.BatchWindow = 500

	app := smallApp(1, map[string]float64{"cpu": 20})
	env.AddApplication(app)

	env.Schedule(NewPlacementEvent(0, app.ID, 0, 0, 0))
	env.Run()

	assert.Equal(t, 1, env.Metrics.Latest().CumulativeAppAccepted)
	assert.Equal(t, 1, env.Metrics.Latest().CumulativeAppDeparture, "the deployed batch app still runs its full Sync/Undeploy lifecycle")
}

func TestBatchProcessing_SingleWindowDrainsMultipleArrivals(t *testing.T) {
	env := singleDeviceEnv(map[string]float64{"cpu": 100, "gpu": 10, "mem": 1000, "disk": 5000})
	env.Config.Batch = true
	env.Config.BatchWindow = 100

	appA := smallApp(1, map[string]float64{"cpu": 10})
	appB := smallApp(2, map[string]float64{"cpu": 10})
	env.AddApplication(appA)
	env.AddApplication(appB)

	env.Schedule(NewPlacementEvent(0, appA.ID, 0, 0, 0))
	env.Schedule(NewPlacementEvent(10, appB.ID, 0, 0, 0))

	env.Run()

	assert.Equal(t, 2, env.Metrics.Latest().CumulativeAppAccepted)
}

func TestBatchProcessing_RejectsWhenNoDeviceHasCapacity(t *testing.T) {
	env := singleDeviceEnv(map[string]float64{"cpu": 1, "gpu": 1, "mem": 1, "disk": 1})
	env.Config.Batch = true
	env.Config.BatchWindow = 10

	app := smallApp(1, map[string]float64{"cpu": 1000})
	env.AddApplication(app)

	env.Schedule(NewPlacementEvent(0, app.ID, 0, 0, 0))
	env.Run()

	require.Equal(t, MaxBatchAttempts, app.BatchAttempts)
	assert.Equal(t, 1, env.Metrics.Latest().CumulativeAppRejected)
}
