package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregateProcessus_SumsElementWise(t *testing.T) {
	a := NewProcessus(1, 1, map[string]float64{"cpu": 10, "gpu": 1, "mem": 100, "disk": 50})
	b := NewProcessus(2, 1, map[string]float64{"cpu": 5, "gpu": 0, "mem": 20, "disk": 10})

	sum := aggregateProcessus(a, b)
	assert.Equal(t, 15.0, sum.ResourceRequest["cpu"])
	assert.Equal(t, 1.0, sum.ResourceRequest["gpu"])
	assert.Equal(t, 120.0, sum.ResourceRequest["mem"])
	assert.Equal(t, 60.0, sum.ResourceRequest["disk"])
}

func TestAggregateProcessus_ZeroRequestIsIdentity(t *testing.T) {
	zero := &Processus{ResourceRequest: map[string]float64{}}
	a := NewProcessus(1, 1, map[string]float64{"cpu": 10, "gpu": 1, "mem": 100, "disk": 50})

	sum := aggregateProcessus(zero, a)
	assert.Equal(t, a.ResourceRequest, sum.ResourceRequest)
}

func TestCompareProcessus_OrdersByGPUFirst(t *testing.T) {
	highGPU := NewProcessus(1, 1, map[string]float64{"gpu": 2, "cpu": 1})
	lowGPU := NewProcessus(2, 1, map[string]float64{"gpu": 1, "cpu": 100})

	assert.Positive(t, compareProcessus(highGPU, lowGPU))
	assert.Negative(t, compareProcessus(lowGPU, highGPU))
}

func TestCompareProcessus_FallsBackToCPUWhenGPUTied(t *testing.T) {
	a := NewProcessus(1, 1, map[string]float64{"gpu": 1, "cpu": 20})
	b := NewProcessus(2, 1, map[string]float64{"gpu": 1, "cpu": 10})

	assert.Positive(t, compareProcessus(a, b))
}

func TestCompareProcessus_EqualRequestsCompareZero(t *testing.T) {
	a := NewProcessus(1, 1, map[string]float64{"gpu": 1, "cpu": 1, "mem": 1, "disk": 1})
	b := NewProcessus(2, 1, map[string]float64{"gpu": 1, "cpu": 1, "mem": 1, "disk": 1})
	assert.Equal(t, 0, compareProcessus(a, b))
}

func TestMinProcessus_PicksSmallestByCompare(t *testing.T) {
	small := NewProcessus(1, 1, map[string]float64{"gpu": 0, "cpu": 1})
	big := NewProcessus(2, 1, map[string]float64{"gpu": 5, "cpu": 1})
	mid := NewProcessus(3, 1, map[string]float64{"gpu": 2, "cpu": 1})

	assert.Same(t, small, minProcessus([]*Processus{big, small, mid}))
}

func TestDeployable_FitsWithinResidualCapacity(t *testing.T) {
	d := NewDevice(1, Position{}, map[string]float64{"cpu": 100, "gpu": 10, "mem": 1000, "disk": 5000})
	small := NewProcessus(1, 1, map[string]float64{"cpu": 50, "gpu": 1, "mem": 100, "disk": 100})
	huge := NewProcessus(2, 1, map[string]float64{"cpu": 200, "gpu": 1, "mem": 100, "disk": 100})

	assert.True(t, deployable(small, d))
	assert.False(t, deployable(huge, d))
}

func TestDeployable_AccountsForExistingUsage(t *testing.T) {
	d := NewDevice(1, Position{}, map[string]float64{"cpu": 100, "gpu": 10, "mem": 1000, "disk": 5000})
	_, err := d.Allocate(1, "cpu", 60, AllocateOptions{})
	assert.NoError(t, err)

	fits := NewProcessus(2, 1, map[string]float64{"cpu": 30})
	tooMuch := NewProcessus(3, 1, map[string]float64{"cpu": 50})

	assert.True(t, deployable(fits, d))
	assert.False(t, deployable(tooMuch, d))
}
