// sim/events_placement.go
package sim

import (
	"errors"
	"sort"

	"github.com/sirupsen/logrus"
)

// Default retry constants (§6).
const (
	MaxTentatives = 5
	Backoff       = 90_000 // 15 minutes of 10ms ticks
)

var (
	errNodeMappingFailed = errors.New("sim: node mapping failed")
	errLinkMappingFailed = errors.New("sim: link mapping failed")
)

// placementRequest is the payload shared by the per-arrival greedy path and
// the batch-mode accumulation path (§4.5, §4.6): an application waiting to
// be mapped, the device it arrived at, and how many attempts have already
// been spent on it.
type placementRequest struct {
	AppID            int
	RequestingDevice int
	Attempt          int
}

// PlacementEvent is C5's per-arrival entry point. Priority carries a
// fractional sub-priority derived from the application's configured
// priority (§3, §4.7): PriorityPlacementBase + app.Priority/10.
type PlacementEvent struct {
	BaseEvent
	Request placementRequest
}

// NewPlacementEvent schedules a placement attempt for appID, arriving at
// requestingDevice, at time t. priority should be app.Priority (0 on first
// arrival creation if unknown).
func NewPlacementEvent(t int64, appID, requestingDevice int, priority float64, attempt int) *PlacementEvent {
	return &PlacementEvent{
		BaseEvent: newBaseEvent(t, PriorityPlacementBase+priority/10, EventPlacement),
		Request:   placementRequest{AppID: appID, RequestingDevice: requestingDevice, Attempt: attempt},
	}
}

func (e *PlacementEvent) Execute(env *Environment) {
	app, ok := env.GetApplicationByID(e.Request.AppID)
	if !ok {
		logrus.Warnf("placement: unknown application %d", e.Request.AppID)
		return
	}

	if e.Request.Attempt == 0 {
		env.Metrics.Adjust(env.CurrentTime, ColCumulativeAppArrival, 1)
		env.Metrics.Adjust(env.CurrentTime, ColAppInWaiting, 1)
	}

	if env.Config.Batch {
		env.EnqueueBatch(&e.Request)
		return
	}

	attemptPlacement(env, app, e.Request)
}

// attemptPlacement runs the two-phase greedy algorithm once, scheduling
// success, retry, or final rejection as appropriate (§4.5).
func attemptPlacement(env *Environment, app *Application, req placementRequest) {
	if env.Config.DryRun {
		acceptDryRun(env, app)
		return
	}

	if app.NumProcs() == 0 {
		acceptEmpty(env, app)
		return
	}

	startDevice := req.RequestingDevice
	if _, err := env.GetDeviceByID(startDevice); err != nil {
		logrus.Debugf("placement: requesting device %d not found, falling back to random device", startDevice)
		if d := env.GetRandomDevice(); d != nil {
			startDevice = d.ID
		}
	}

	match, metrics, reason, err := phaseA(env, startDevice, app)
	if err != nil {
		retryOrReject(env, app, req, reason)
		return
	}

	paths, reason, err := phaseB(env, app, match)
	if err != nil {
		retryOrReject(env, app, req, reason)
		return
	}

	acceptPlacement(env, app, match, metrics, paths)
}

// retryOrReject reschedules the placement after Backoff ticks, or drops it
// and records the rejection reason once MaxTentatives is reached (§4.5, §7).
func retryOrReject(env *Environment, app *Application, req placementRequest, reason RejectionReason) {
	if app.FailureReasons == nil {
		app.FailureReasons = map[RejectionReason]int{}
	}
	app.FailureReasons[reason]++

	next := req.Attempt + 1
	if next >= MaxTentatives {
		env.Metrics.Adjust(env.CurrentTime, ColAppInWaiting, -1)
		env.Metrics.Adjust(env.CurrentTime, ColCumulativeAppRejected, 1)
		env.RecordRejection(dominantReason(app.FailureReasons), app.ID)
		return
	}

	env.Schedule(NewPlacementEvent(env.CurrentTime+Backoff, app.ID, req.RequestingDevice, app.Priority, next))
}

// dominantReason picks the most frequently recorded rejection reason across
// an application's failed attempts (§4.5 "dominant rejection reason").
func dominantReason(tally map[RejectionReason]int) RejectionReason {
	best := RejectionUnknown
	bestCount := -1
	for _, r := range []RejectionReason{RejectionDevices, RejectionLinks, RejectionUnknown} {
		if tally[r] > bestCount {
			best = r
			bestCount = tally[r]
		}
	}
	return best
}

// acceptEmpty accepts a zero-process application trivially (§8 boundary
// case).
func acceptEmpty(env *Environment, app *Application) {
	app.PendingAssignment = map[int]int{}
	app.PendingPaths = map[[2]int]*Path{}
	finishAcceptance(env, app)
	env.Schedule(NewSyncEvent(env.CurrentTime, app.ID))
}

// acceptDryRun accepts without feasibility checks, per §4.5.
func acceptDryRun(env *Environment, app *Application) {
	app.PendingAssignment = map[int]int{}
	app.PendingPaths = map[[2]int]*Path{}
	finishAcceptance(env, app)
	env.MarkDeployed(app)
	env.Schedule(NewUndeployEvent(env.CurrentTime+app.Duration, app.ID))
}

func finishAcceptance(env *Environment, app *Application) {
	env.Metrics.Adjust(env.CurrentTime, ColAppInWaiting, -1)
	env.Metrics.Adjust(env.CurrentTime, ColCumulativeAppAccepted, 1)
}

// acceptPlacement schedules one DeployProc per component, the last of which
// triggers Sync once all components land (§4.5, §4.7). The assignment is
// held as a pending result until Sync commits it to DeploymentInfo.
func acceptPlacement(env *Environment, app *Application, match map[int]int, metrics map[int]float64, paths map[[2]int]*Path) {
	app.PendingAssignment = indexedAssignment(app, match)
	app.PendingPaths = paths
	finishAcceptance(env, app)

	for idx, p := range app.Procs {
		deviceID := match[p.ID]
		last := idx == len(app.Procs)-1
		t := env.CurrentTime + int64(metrics[p.ID])
		env.Schedule(NewDeployProcEvent(t, app.ID, idx, deviceID, last, DefaultLinkDelayMs))
	}
}

// indexedAssignment converts a process-id keyed match into the process-index
// keyed map Application.DeploymentInfo expects (§3).
func indexedAssignment(app *Application, match map[int]int) map[int]int {
	out := make(map[int]int, len(match))
	for idx, p := range app.Procs {
		out[idx] = match[p.ID]
	}
	return out
}

// preference is one (device, metric) candidate in a process's preference
// list (§4.5 Phase A).
type preference struct {
	deviceID int
	metric   float64
}

// phaseA runs the repeated-pop node-mapping matching described in §4.5. It
// returns the proc-id -> device-id match and the node metric used to pick
// each device (for DeployProc scheduling), or a rejection reason on
// failure.
func phaseA(env *Environment, startDevice int, app *Application) (map[int]int, map[int]float64, RejectionReason, error) {
	prefs := buildPreferences(env, startDevice, app)

	cursor := map[int]int{}
	match := map[int]int{}
	matchMetric := map[int]float64{}
	deviceProcs := map[int][]int{}

	worklist := make([]int, 0, app.NumProcs())
	for _, p := range app.Procs {
		worklist = append(worklist, p.ID)
	}

	for len(worklist) > 0 {
		procID := worklist[0]
		worklist = worklist[1:]

		list := prefs[procID]
		idx := cursor[procID]
		if idx >= len(list) {
			return nil, nil, RejectionDevices, errNodeMappingFailed
		}
		cand := list[idx]
		cursor[procID] = idx + 1
		proc := app.ProcByID(procID)

		occupants := deviceProcs[cand.deviceID]
		if len(occupants) == 0 {
			match[procID] = cand.deviceID
			matchMetric[procID] = cand.metric
			deviceProcs[cand.deviceID] = append(occupants, procID)
			continue
		}

		dev := env.devices[cand.deviceID]
		existing := make([]*Processus, 0, len(occupants))
		for _, id := range occupants {
			existing = append(existing, app.ProcByID(id))
		}
		aggregate := aggregateAll(append(existing, proc))

		if deployable(aggregate, dev) {
			match[procID] = cand.deviceID
			matchMetric[procID] = cand.metric
			deviceProcs[cand.deviceID] = append(occupants, procID)
			continue
		}

		min := minProcessus(existing)
		if compareProcessus(proc, min) > 0 {
			delete(match, min.ID)
			delete(matchMetric, min.ID)
			remaining := make([]int, 0, len(occupants))
			for _, id := range occupants {
				if id != min.ID {
					remaining = append(remaining, id)
				}
			}
			remaining = append(remaining, procID)
			deviceProcs[cand.deviceID] = remaining
			match[procID] = cand.deviceID
			matchMetric[procID] = cand.metric
			worklist = append(worklist, min.ID)
		} else {
			worklist = append(worklist, procID)
		}
	}

	return match, matchMetric, "", nil
}

// buildPreferences computes, per process, the candidate devices sorted by
// ascending metric from startDevice, filtered to individually-deployable
// devices (§4.5 Phase A).
func buildPreferences(env *Environment, startDevice int, app *Application) map[int][]preference {
	start, err := env.GetDeviceByID(startDevice)
	if err != nil {
		return map[int][]preference{}
	}

	prefs := make(map[int][]preference, app.NumProcs())
	for _, p := range app.Procs {
		var list []preference
		for _, devID := range env.DeviceIDs() {
			dev := env.devices[devID]
			if !deployable(p, dev) {
				continue
			}
			var metric float64
			if devID == startDevice {
				metric = 0
			} else {
				entry, err := start.RouteTo(devID)
				if err != nil {
					continue
				}
				metric = entry.Metric
			}
			list = append(list, preference{deviceID: devID, metric: metric})
		}
		sort.Slice(list, func(i, j int) bool { return list[i].metric < list[j].metric })
		prefs[p.ID] = list
	}
	return prefs
}

// aggregateAll folds aggregateProcessus over procs, starting from the zero-
// request identity element (§9).
func aggregateAll(procs []*Processus) *Processus {
	total := &Processus{ResourceRequest: map[string]float64{}}
	for _, p := range procs {
		total = aggregateProcessus(total, p)
	}
	return total
}

// phaseB maps every non-zero proc_links[i][j] to a physical path, reserving
// bandwidth as it goes and rolling back every reservation made during this
// call if any pair cannot be routed (§4.5 Phase B, §4.3).
func phaseB(env *Environment, app *Application, match map[int]int) (map[[2]int]*Path, RejectionReason, error) {
	paths := map[[2]int]*Path{}
	var reservedKeys [][2]int

	n := app.NumProcs()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			bw := app.ProcLinks[i][j]
			if bw <= 0 {
				continue
			}

			srcDevID := match[app.Procs[i].ID]
			dstDevID := match[app.Procs[j].ID]

			if srcDevID == dstDevID {
				paths[[2]int{i, j}] = &Path{Source: srcDevID, Destination: dstDevID}
				continue
			}

			if !routeLinkPair(env, paths, &reservedKeys, i, j, srcDevID, dstDevID, bw) {
				for _, key := range reservedKeys {
					FreePath(env, paths[key], app.ProcLinks[key[0]][key[1]])
				}
				return nil, RejectionLinks, errLinkMappingFailed
			}
		}
	}

	return paths, "", nil
}

// routeLinkPair tries every known route from srcDevID to dstDevID in
// ascending metric order until one reserves successfully.
func routeLinkPair(env *Environment, paths map[[2]int]*Path, reservedKeys *[][2]int, i, j, srcDevID, dstDevID int, bw float64) bool {
	srcDevice := env.devices[srcDevID]
	if srcDevice == nil || srcDevice.OSPF == nil {
		return false
	}
	for _, route := range srcDevice.OSPF.Ordered(dstDevID) {
		if ReservePath(env, route.Path, bw) {
			paths[[2]int{i, j}] = route.Path
			*reservedKeys = append(*reservedKeys, [2]int{i, j})
			return true
		}
	}
	return false
}
