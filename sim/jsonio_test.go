package sim

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportExportDevices_RoundTrip(t *testing.T) {
	input := `{
		"devices": [
			{"id": 0, "position": {"x": 1, "y": 2, "z": 0}, "resource": {"cpu": 100, "gpu": 10, "mem": 1000, "disk": 5000}},
			{"id": 1, "position": {"x": 5, "y": 5, "z": 0}, "resource": {"cpu": 50, "gpu": 5, "mem": 500, "disk": 2500}}
		],
		"links": [
			{"id": 0, "source": 0, "target": 1, "weight": 12.5}
		]
	}`

	env := NewEnvironment(DefaultConfig())
	require.NoError(t, env.ImportDevices(strings.NewReader(input)))

	require.Len(t, env.Devices(), 2)
	d0 := env.devices[0]
	assert.Equal(t, Position{X: 1, Y: 2, Z: 0}, d0.Position)
	assert.Equal(t, 100.0, d0.Limit["cpu"])

	link := env.Network.Link(0, 1)
	require.NotNil(t, link)
	assert.Equal(t, 12.5, link.Metric)

	var out bytes.Buffer
	require.NoError(t, env.ExportDevices(&out))

	env2 := NewEnvironment(DefaultConfig())
	require.NoError(t, env2.ImportDevices(&out))
	assert.Len(t, env2.Devices(), 2)
	assert.Equal(t, d0.Limit, env2.devices[0].Limit)
}

func TestImportDevices_AdvancesDeviceIDAllocatorPastImportedIDs(t *testing.T) {
	input := `{"devices": [{"id": 7, "position": {"x":0,"y":0,"z":0}, "resource": {}}], "links": []}`

	env := NewEnvironment(DefaultConfig())
	require.NoError(t, env.ImportDevices(strings.NewReader(input)))

	assert.Equal(t, 8, env.NextDeviceID(), "the allocator must not reuse an imported id")
}

func TestImportExportApplications_RoundTrip(t *testing.T) {
	input := `[
		{
			"app_id": 1,
			"duration": 1000,
			"proc_list": [
				{"proc_id": 10, "proc_resource_request": {"cpu": 20}},
				{"proc_id": 11, "proc_resource_request": {"cpu": 30}}
			],
			"proc_links": [[0, 100], [0, 0]]
		}
	]`

	env := NewEnvironment(DefaultConfig())
	require.NoError(t, env.ImportApplications(strings.NewReader(input)))

	app, ok := env.GetApplicationByID(1)
	require.True(t, ok)
	assert.Equal(t, int64(1000), app.Duration)
	assert.Len(t, app.Procs, 2)
	assert.Equal(t, 100.0, app.ProcLinks[0][1])

	var out bytes.Buffer
	require.NoError(t, env.ExportApplications(&out))

	env2 := NewEnvironment(DefaultConfig())
	require.NoError(t, env2.ImportApplications(&out))
	app2, ok := env2.GetApplicationByID(1)
	require.True(t, ok)
	assert.Equal(t, app.ProcLinks, app2.ProcLinks)
}

func TestLoadSavePlacements_RoundTrip(t *testing.T) {
	arrivals := []PlacementArrival{
		{Time: 0, RequestingDevice: 0, ApplicationID: 1},
		{Time: 500, RequestingDevice: 2, ApplicationID: 2},
	}

	var buf bytes.Buffer
	require.NoError(t, SavePlacements(&buf, arrivals))

	loaded, err := LoadPlacements(&buf)
	require.NoError(t, err)
	assert.Equal(t, arrivals, loaded)
}

func TestScheduleArrivals_UsesApplicationPriorityWhenKnown(t *testing.T) {
	env := NewEnvironment(DefaultConfig())
	env.AddDevice(NewDevice(0, Position{}, map[string]float64{"cpu": 10, "gpu": 1, "mem": 10, "disk": 10}))
	app := NewApplication(1, 1000, 0)
	app.Priority = 7
	env.AddApplication(app)

	env.ScheduleArrivals([]PlacementArrival{{Time: 0, RequestingDevice: 0, ApplicationID: 1}})

	next := env.Queue.Peek()
	assert.Equal(t, PriorityPlacementBase+0.7, next.Priority())
}
