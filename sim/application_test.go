package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplication_ProcLookupsByIDAndIndex(t *testing.T) {
	app := NewApplication(1, 1000, 2)
	app.Procs = append(app.Procs, NewProcessus(10, 1, nil), NewProcessus(11, 1, nil))

	assert.Same(t, app.Procs[1], app.ProcByID(11))
	assert.Nil(t, app.ProcByID(999))
	assert.Equal(t, 1, app.ProcIndex(11))
	assert.Equal(t, -1, app.ProcIndex(999))
	assert.Equal(t, []int{10, 11}, app.ProcIDs())
}

func TestApplication_ClearDeploymentInfoEmptiesBothMaps(t *testing.T) {
	app := NewApplication(1, 1000, 1)
	app.SetDeploymentInfo(map[int]int{0: 5})
	app.SetLinksDeploymentInfo(map[[2]int]*Path{{0, 1}: {}})

	app.ClearDeploymentInfo()

	assert.Empty(t, app.DeploymentInfo)
	assert.Empty(t, app.LinksDeploymentInfo)
}

func TestApplication_NewApplicationAllocatesSquareZeroLinkMatrix(t *testing.T) {
	app := NewApplication(1, 1000, 3)
	require.Len(t, app.ProcLinks, 3)
	for _, row := range app.ProcLinks {
		require.Len(t, row, 3)
		for _, v := range row {
			assert.Equal(t, 0.0, v)
		}
	}
}
