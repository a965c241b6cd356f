// sim/events_batch.go
package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/edgeplace/edgeplace/sim/optimizer"
)

// BatchSolver is the C6 Batch Optimizer contract an Environment depends on;
// optimizer.Solver is kept in its own package so it carries no dependency on
// sim's Device/Application types (§9 "Optional solver dependency").
type BatchSolver = optimizer.Solver

// MaxBatchAttempts bounds how many drains an application may be re-enqueued
// across before final rejection (§4.6 "up to 15 attempts").
const MaxBatchAttempts = 15

// BatchProcessingEvent drains the pending batch, solves it, and schedules
// DeployProc for every accepted application; rejected or partially-failed
// applications are re-enqueued into the next window (§4.6).
type BatchProcessingEvent struct {
	BaseEvent
}

// NewBatchProcessingEvent creates a BatchProcessing event.
func NewBatchProcessingEvent(t int64) *BatchProcessingEvent {
	return &BatchProcessingEvent{BaseEvent: newBaseEvent(t, PriorityBatchProcessing, EventBatchProcessing)}
}

func (e *BatchProcessingEvent) Execute(env *Environment) {
	env.batchScheduled = false

	pending := env.PendingBatch
	env.PendingBatch = nil
	if len(pending) == 0 {
		return
	}

	input := buildBatchInput(env, pending)

	solver := env.Solver
	if solver == nil {
		solver = optimizer.NewGreedySolver()
	}

	result, err := solver.Solve(input)
	if err != nil {
		logrus.Errorf("batchprocessing: solver failed: %v", err)
		for _, req := range pending {
			requeueOrRejectBatch(env, req, RejectionUnknown)
		}
		return
	}

	byApp := map[int]*optimizer.Assignment{}
	for i := range result.Assignments {
		a := &result.Assignments[i]
		byApp[a.AppID] = a
	}

	for _, req := range pending {
		assignment := byApp[req.AppID]
		app, ok := env.GetApplicationByID(req.AppID)
		if !ok || assignment == nil || !assignment.Accepted {
			requeueOrRejectBatch(env, req, RejectionDevices)
			continue
		}

		match, metrics := resolveBatchAssignment(env, req.RequestingDevice, app, assignment.ComponentDevice)
		paths, _, err := phaseB(env, app, match)
		if err != nil {
			requeueOrRejectBatch(env, req, RejectionLinks)
			continue
		}

		acceptPlacement(env, app, match, metrics, paths)
	}
}

// requeueOrRejectBatch re-enqueues req for the next window, or finalizes a
// rejection once MaxBatchAttempts is exhausted.
func requeueOrRejectBatch(env *Environment, req *placementRequest, reason RejectionReason) {
	app, ok := env.GetApplicationByID(req.AppID)
	if !ok {
		return
	}
	app.BatchAttempts++
	if app.FailureReasons == nil {
		app.FailureReasons = map[RejectionReason]int{}
	}
	app.FailureReasons[reason]++

	if app.BatchAttempts >= MaxBatchAttempts {
		env.Metrics.Adjust(env.CurrentTime, ColAppInWaiting, -1)
		env.Metrics.Adjust(env.CurrentTime, ColCumulativeAppRejected, 1)
		env.RecordRejection(dominantReason(app.FailureReasons), app.ID)
		return
	}

	env.EnqueueBatch(req)
}

// buildBatchInput translates the pending batch and current Environment
// state into the optimizer's capacity/demand vectors (§4.6).
func buildBatchInput(env *Environment, pending []*placementRequest) optimizer.BatchInput {
	input := optimizer.BatchInput{
		DeviceResidual: map[int]map[string]float64{},
		DevicePosition: map[int][3]float64{},
		Range:          env.Config.WifiRange,
	}

	for _, id := range env.DeviceIDs() {
		d := env.devices[id]
		input.DeviceResidual[id] = d.ResidualCapacity()
		input.DevicePosition[id] = [3]float64{d.Position.X, d.Position.Y, d.Position.Z}
	}

	for _, req := range pending {
		app, ok := env.GetApplicationByID(req.AppID)
		if !ok {
			continue
		}
		spec := optimizer.AppSpec{
			AppID:            app.ID,
			RequestingDevice: req.RequestingDevice,
			Links:            map[[2]int]float64{},
		}
		for _, p := range app.Procs {
			spec.Components = append(spec.Components, optimizer.ComponentSpec{ID: p.ID, Resource: p.ResourceRequest})
		}
		n := app.NumProcs()
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if i == j || app.ProcLinks[i][j] <= 0 {
					continue
				}
				spec.Links[[2]int{app.Procs[i].ID, app.Procs[j].ID}] = app.ProcLinks[i][j]
			}
		}
		input.Apps = append(input.Apps, spec)
	}

	return input
}

// resolveBatchAssignment converts the optimizer's component-id -> device-id
// map into the proc-id keyed match phaseB/acceptPlacement expect, computing
// each component's node metric from the requesting device exactly as Phase
// A would (§4.5, reused here so DeployProc scheduling stays consistent
// between the greedy and batch paths).
func resolveBatchAssignment(env *Environment, requestingDevice int, app *Application, componentDevice map[int]int) (map[int]int, map[int]float64) {
	match := map[int]int{}
	metrics := map[int]float64{}

	start, err := env.GetDeviceByID(requestingDevice)
	for _, p := range app.Procs {
		devID, ok := componentDevice[p.ID]
		if !ok {
			continue
		}
		match[p.ID] = devID

		if err != nil || devID == requestingDevice {
			metrics[p.ID] = 0
			continue
		}
		if entry, rErr := start.RouteTo(devID); rErr == nil {
			metrics[p.ID] = entry.Metric
		}
	}

	return match, metrics
}
