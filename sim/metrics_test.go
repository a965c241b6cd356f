package sim

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsFrame_NewFrameHasSingleZeroRow(t *testing.T) {
	f := NewMetricsFrame()
	require.Len(t, f.Rows(), 1)
	assert.Equal(t, int64(0), f.Rows()[0].Time)
}

func TestMetricsFrame_AdjustAtNewTimeForwardFillsPriorRow(t *testing.T) {
	f := NewMetricsFrame()
	f.Adjust(0, ColCumulativeAppArrival, 1)

	f.Adjust(100, ColCumulativeAppArrival, 1)

	rows := f.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, int64(100), rows[1].Time)
	assert.Equal(t, 2, rows[1].CumulativeAppArrival, "the forward-filled row carries the prior cumulative total forward before the delta is applied")
}

func TestMetricsFrame_AdjustAtExistingTimeDoesNotCreateNewRow(t *testing.T) {
	f := NewMetricsFrame()
	f.Adjust(50, ColAppInWaiting, 1)
	f.Adjust(50, ColAppInWaiting, 1)

	rows := f.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[1].AppInWaiting)
}

func TestMetricsFrame_LatestReturnsMostRecentRow(t *testing.T) {
	f := NewMetricsFrame()
	f.Adjust(10, ColCumulativeAppAccepted, 1)
	f.Adjust(20, ColCumulativeAppAccepted, 1)

	assert.Equal(t, int64(20), f.Latest().Time)
	assert.Equal(t, 2, f.Latest().CumulativeAppAccepted)
}

func TestMetricsFrame_WriteCSVProducesPercentUtilizationHeader(t *testing.T) {
	env := NewEnvironment(DefaultConfig())
	env.AddDevice(NewDevice(0, Position{}, map[string]float64{"cpu": 100, "gpu": 10, "mem": 1000, "disk": 5000}))

	env.Metrics.Adjust(0, ColCPUCurrent, 50)

	dir := t.TempDir()
	require.NoError(t, env.Metrics.WriteCSV(env, dir))

	f, err := os.Open(filepath.Join(dir, "results.csv"))
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(records), 2)
	assert.Equal(t, csvHeader, records[0])
	assert.Equal(t, "50.0000", records[1][1], "cpu_avg is the percent of total limit, not the raw usage")
}
