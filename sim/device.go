// sim/device.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// ResourceKinds is the fixed resource set every Device and Processus is
// defined over (§3).
var ResourceKinds = [...]string{"cpu", "gpu", "mem", "disk"}

// Position is a device's location in 3-space.
type Position struct {
	X, Y, Z float64
}

// UsageSample is one (time, value) point in a resource's history.
type UsageSample struct {
	Time  int64
	Value float64
}

// RouteEntry is a simple routing-table entry: next hop and additive metric.
type RouteEntry struct {
	NextHop int
	Metric  float64
}

// Device models a compute node with bounded, per-resource capacity (§3).
//
// Device never holds references to other Devices: routing tables and the
// OSPF route lists store integer ids, resolved through the owning
// Environment, per spec.md §9 ("Cyclic references").
type Device struct {
	ID       int
	Position Position

	Limit           map[string]float64
	usage           map[string]float64
	theoreticalUsage map[string]float64
	history         map[string][]UsageSample

	// Overconsume is a per-device flag, independent of other devices.
	// Allocate does not read it: whether usage may exceed Limit is decided
	// per call by AllocateOptions.Overconsume.
	Overconsume bool

	// RoutingTable is the simple dest -> (next-hop, metric) table (§4.2).
	RoutingTable map[int]RouteEntry

	// OSPF is the ordered-route table populated by the topology bootstrap.
	// Nil until sim/topology installs it.
	OSPF *OSPFTable

	// ClosenessCentrality is an externally computed, informational metric
	// (carried from the original Python Device; read by reporting only).
	ClosenessCentrality float64
}

// NewDevice creates a Device with the given resource limits, all usage at
// zero, and a self-route of (self, 0) per §3.
func NewDevice(id int, pos Position, limit map[string]float64) *Device {
	d := &Device{
		ID:               id,
		Position:         pos,
		Limit:            map[string]float64{},
		usage:            map[string]float64{},
		theoreticalUsage: map[string]float64{},
		history:          map[string][]UsageSample{},
		RoutingTable:     map[int]RouteEntry{id: {NextHop: id, Metric: 0}},
	}
	for _, r := range ResourceKinds {
		v := limit[r]
		d.Limit[r] = v
		d.usage[r] = 0
		d.theoreticalUsage[r] = 0
		d.history[r] = []UsageSample{{Time: 0, Value: 0}}
	}
	return d
}

// AllocateOptions configures a single resource allocation call.
type AllocateOptions struct {
	// Force permits allocating at a time before the resource's last
	// recorded history sample; otherwise this is an error (§7 Time
	// regression).
	Force bool
	// Overconsume permits theoretical usage to exceed the device limit;
	// current usage then tracks theoretical usage exactly instead of being
	// clamped.
	Overconsume bool
}

// Allocate applies a (possibly negative) change to resource r's usage at
// time t, enforcing caps and recording step-function history (§4.1).
//
// It returns the retrofit coefficient, which callers may apply to scale the
// in-flight progress of an over-requesting process. When the new usage fits
// the limit (or Overconsume is set) it is the ratio current/theoretical
// usage held *before* this call (1 if theoretical usage was zero); when
// usage is clamped to the limit it is limit / new theoretical usage.
func (d *Device) Allocate(t int64, r string, amount float64, opts AllocateOptions) (float64, error) {
	hist := d.history[r]
	last := hist[len(hist)-1]

	if t < last.Time && !opts.Force {
		return 0, &ErrTimeRegression{DeviceID: d.ID, Resource: r, RequestedTime: t, LastKnownTime: last.Time}
	}

	var retrofit float64
	if d.theoreticalUsage[r] == 0 {
		retrofit = 1
	} else {
		retrofit = d.usage[r] / d.theoreticalUsage[r]
	}

	d.theoreticalUsage[r] += amount
	if d.theoreticalUsage[r] < 0 {
		d.theoreticalUsage[r] = 0
	}

	previous := d.usage[r]

	if opts.Overconsume || d.theoreticalUsage[r] <= d.Limit[r] {
		d.usage[r] = d.theoreticalUsage[r]
	} else {
		retrofit = fitResource(d.theoreticalUsage[r], d.Limit[r])
		d.usage[r] = d.Limit[r]
	}

	if previous != d.usage[r] {
		if last.Time != t {
			d.history[r] = append(d.history[r], UsageSample{Time: t - 1, Value: previous})
			d.history[r] = append(d.history[r], UsageSample{Time: t, Value: d.usage[r]})
		} else {
			d.history[r][len(d.history[r])-1] = UsageSample{Time: t, Value: d.usage[r]}
		}
	}

	return retrofit, nil
}

// fitResource computes the coefficient by which an over-requested resource
// must be scaled down to fit within limit (retrofit coefficient on the
// limit-clamped path).
func fitResource(theoretical, limit float64) float64 {
	if theoretical == 0 {
		return 1
	}
	return limit / theoretical
}

// Release is Allocate with the amount negated (§4.1).
func (d *Device) Release(t int64, r string, amount float64, opts AllocateOptions) (float64, error) {
	return d.Allocate(t, r, -amount, opts)
}

// AllocateAll allocates every resource named in amounts, logging (not
// aborting) on a per-resource failure, matching the Python original's
// best-effort batch semantics.
func (d *Device) AllocateAll(t int64, amounts map[string]float64, opts AllocateOptions) map[string]float64 {
	out := make(map[string]float64, len(amounts))
	for r, amount := range amounts {
		coef, err := d.Allocate(t, r, amount, opts)
		if err != nil {
			logrus.Warnf("device %d: failed to allocate resource %q: %v", d.ID, r, err)
			continue
		}
		out[r] = coef
	}
	return out
}

// ReleaseAll is AllocateAll with every amount negated.
func (d *Device) ReleaseAll(t int64, amounts map[string]float64, opts AllocateOptions) map[string]float64 {
	out := make(map[string]float64, len(amounts))
	for r, amount := range amounts {
		coef, err := d.Release(t, r, amount, opts)
		if err != nil {
			logrus.Warnf("device %d: failed to release resource %q: %v", d.ID, r, err)
			continue
		}
		out[r] = coef
	}
	return out
}

// Usage returns the current usage of resource r, double-checking it against
// the tail of the history — the primary integrity probe for C1 (§4.1, §7).
func (d *Device) Usage(r string) (float64, error) {
	hist := d.history[r]
	cur := d.usage[r]
	if len(hist) > 0 && hist[len(hist)-1].Value != cur {
		return 0, &ErrInconsistentLedger{DeviceID: d.ID, Resource: r}
	}
	return cur, nil
}

// Report appends the last history value of every tracked resource at time
// t. It is a no-op unless force is set or t is at least as large as the
// latest recorded time across all resources (§4.1).
func (d *Device) Report(t int64, force bool) []UsageSample {
	var maxTime int64 = -1 << 62
	for _, r := range ResourceKinds {
		hist := d.history[r]
		if len(hist) == 0 {
			continue
		}
		if last := hist[len(hist)-1].Time; last > maxTime {
			maxTime = last
		}
	}

	if maxTime > t && !force {
		return nil
	}

	reported := make([]UsageSample, 0, len(ResourceKinds))
	for _, r := range ResourceKinds {
		hist := d.history[r]
		last := hist[len(hist)-1]
		sample := UsageSample{Time: t, Value: last.Value}
		d.history[r] = append(d.history[r], sample)
		reported = append(reported, sample)
	}
	return reported
}

// ResidualCapacity returns limit[r] - usage[r] for every tracked resource.
func (d *Device) ResidualCapacity() map[string]float64 {
	out := make(map[string]float64, len(ResourceKinds))
	for _, r := range ResourceKinds {
		out[r] = d.Limit[r] - d.usage[r]
	}
	return out
}

// AddRoute adds or updates the simple routing table entry for destination,
// keeping only the lower-metric route when one already exists (§4.2).
func (d *Device) AddRoute(destination, nextHop int, metric float64) {
	existing, ok := d.RoutingTable[destination]
	if !ok || metric < existing.Metric {
		d.RoutingTable[destination] = RouteEntry{NextHop: nextHop, Metric: metric}
	}
}

// RouteTo returns the next hop and metric toward destination, or
// ErrNoRouteToHost if unknown (§4.2, §7).
func (d *Device) RouteTo(destination int) (RouteEntry, error) {
	entry, ok := d.RoutingTable[destination]
	if !ok {
		return RouteEntry{}, &ErrNoRouteToHost{DeviceID: d.ID, DestinationID: destination}
	}
	return entry, nil
}

func (d *Device) String() string {
	return fmt.Sprintf("Device(%d)", d.ID)
}
