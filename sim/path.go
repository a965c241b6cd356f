// sim/path.go
package sim

import "math"

// MaxHops bounds path length (§6 default constants).
const MaxHops = 100

// Path is an ordered device sequence from Source to Destination plus the
// physical link ids connecting consecutive devices (§3). A path whose
// source equals its destination is empty (no devices, no links — the
// endpoint itself is implicit).
type Path struct {
	Source      int
	Destination int
	Devices     []int
	Links       []int
}

// GeneratePath walks next-hop entries from src's routing table toward dst,
// producing the device and link sequences. It caps the walk at MaxHops and
// returns an error if dst is not reached within that bound (§4.3).
func GeneratePath(env *Environment, src, dst int) (*Path, error) {
	if src == dst {
		return &Path{Source: src, Destination: dst}, nil
	}

	source, err := env.GetDeviceByID(src)
	if err != nil {
		return nil, err
	}

	p := &Path{Source: src, Destination: dst, Devices: []int{src}}

	current := source
	hops := 0
	for current.ID != dst && hops < MaxHops {
		entry, err := current.RouteTo(dst)
		if err != nil {
			return nil, err
		}
		link := env.Network.Link(current.ID, entry.NextHop)
		if link == nil {
			return nil, &ErrNoRouteToHost{DeviceID: current.ID, DestinationID: dst}
		}
		p.Links = append(p.Links, link.ID)
		p.Devices = append(p.Devices, entry.NextHop)

		next, err := env.GetDeviceByID(entry.NextHop)
		if err != nil {
			return nil, err
		}
		current = next
		hops++
	}

	if p.Devices[len(p.Devices)-1] != dst {
		return nil, &ErrNoRouteToHost{DeviceID: src, DestinationID: dst}
	}

	return p, nil
}

// MinAvailableBandwidth returns the minimum of (capacity - used) across all
// links on the path, or +Inf for an empty (zero-length) path (§8 boundary
// case).
func MinAvailableBandwidth(env *Environment, p *Path) float64 {
	if len(p.Links) == 0 {
		return math.Inf(1)
	}
	min := math.Inf(1)
	for _, linkID := range p.Links {
		l := env.Network.LinkByID(linkID)
		if l == nil {
			continue
		}
		if avail := l.AvailableBandwidth(); avail < min {
			min = avail
		}
	}
	return min
}

// ReservePath attempts to reserve bw on every link of p, in order. If any
// link's reservation fails, every reservation already made by this call is
// rolled back (freed) and the call returns false — bandwidth is never
// leaked on partial failure (§4.3).
func ReservePath(env *Environment, p *Path, bw float64) bool {
	reserved := make([]int, 0, len(p.Links))
	for _, linkID := range p.Links {
		l := env.Network.LinkByID(linkID)
		if l == nil || !l.UseBandwidth(bw) {
			for _, doneID := range reserved {
				env.Network.LinkByID(doneID).FreeBandwidth(bw)
			}
			return false
		}
		reserved = append(reserved, linkID)
	}
	if len(reserved) > 0 {
		env.Metrics.Adjust(env.CurrentTime, ColBWCurrent, bw)
	}
	return true
}

// FreePath releases bw from every link of p; each link's used bandwidth is
// clamped at zero by PhysicalLink.FreeBandwidth.
func FreePath(env *Environment, p *Path, bw float64) {
	if len(p.Links) == 0 {
		return
	}
	for _, linkID := range p.Links {
		if l := env.Network.LinkByID(linkID); l != nil {
			l.FreeBandwidth(bw)
		}
	}
	env.Metrics.Adjust(env.CurrentTime, ColBWCurrent, -bw)
}
