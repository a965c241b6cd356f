// sim/environment.go
package sim

import (
	"math/rand"

	"github.com/sirupsen/logrus"
)

// Environment is the facade C9 describes: it owns devices, applications,
// the physical network, the event queue, and the simulation clock, and is
// the sole entry point event handlers mutate through (§4.9).
type Environment struct {
	Config Config

	devices      map[int]*Device
	applications map[int]*Application
	Network      *PhysicalNetwork

	Queue       *EventHeap
	CurrentTime int64

	Metrics *MetricsFrame

	// CurrentlyDeployed lists applications with an active Sync..Undeploy
	// window (§3 lifecycle, §4.7 state machine ACTIVE state).
	CurrentlyDeployed []*Application

	// RejectedByReason accumulates, per rejection reason, the application
	// ids finally dropped after MAX_TENTATIVES (§7).
	RejectedByReason map[RejectionReason][]int

	// Solver backs the optional Batch Optimizer (C6), used when
	// Config.Batch is set; nil makes BatchProcessing fall back to
	// optimizer.GreedySolver.
	Solver BatchSolver

	// PendingBatch accumulates placement requests between BatchProcessing
	// drains when Config.Batch is set (§4.6).
	PendingBatch   []*placementRequest
	batchScheduled bool

	deviceIDs idAllocator
	appIDs    idAllocator
	procIDs   idAllocator

	rng *rand.Rand
}

// NewEnvironment creates an empty Environment ready to accept devices,
// applications and scheduled events.
func NewEnvironment(cfg Config) *Environment {
	return &Environment{
		Config:           cfg,
		devices:          map[int]*Device{},
		applications:     map[int]*Application{},
		Network:          NewPhysicalNetwork(0),
		Queue:            NewEventHeap(),
		Metrics:          NewMetricsFrame(),
		RejectedByReason: map[RejectionReason][]int{},
		rng:              rand.New(rand.NewSource(cfg.RandomSeed)),
	}
}

// AddDevice registers a device under its own ID and grows the network's
// device count to cover it. It does not advance the id allocator: callers
// that pre-assign ids (e.g. JSON import) pass a Device already carrying the
// desired ID and advance the allocator themselves; NextDeviceID issues ids
// for callers that don't.
func (env *Environment) AddDevice(d *Device) {
	env.devices[d.ID] = d
	if d.ID >= env.Network.NumDevices {
		env.Network.NumDevices = d.ID + 1
	}
}

// NextDeviceID allocates the next sequential device id.
func (env *Environment) NextDeviceID() int { return env.deviceIDs.Allocate() }

// NextAppID allocates the next sequential application id.
func (env *Environment) NextAppID() int { return env.appIDs.Allocate() }

// NextProcID allocates the next sequential process id.
func (env *Environment) NextProcID() int { return env.procIDs.Allocate() }

// GetDeviceByID returns the device with the given id, or ErrDeviceNotFound.
func (env *Environment) GetDeviceByID(id int) (*Device, error) {
	d, ok := env.devices[id]
	if !ok {
		return nil, &ErrDeviceNotFound{DeviceID: id}
	}
	return d, nil
}

// GetRandomDevice returns a uniformly random device. Per §7, Placement falls
// back to this when its requested starting device is unknown.
func (env *Environment) GetRandomDevice() *Device {
	if len(env.devices) == 0 {
		return nil
	}
	ids := env.DeviceIDs()
	return env.devices[ids[env.rng.Intn(len(ids))]]
}

// DeviceIDs returns every registered device id, in ascending order.
func (env *Environment) DeviceIDs() []int {
	ids := make([]int, 0, len(env.devices))
	for id := range env.devices {
		ids = append(ids, id)
	}
	// simple insertion sort: device counts are small relative to event
	// volume, and callers need determinism more than raw speed here.
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
	return ids
}

// Devices returns the full device map (read-only use expected).
func (env *Environment) Devices() map[int]*Device { return env.devices }

// AddApplication registers an application with the Environment.
func (env *Environment) AddApplication(a *Application) {
	env.applications[a.ID] = a
}

// GetApplicationByID returns the application with the given id, if any.
func (env *Environment) GetApplicationByID(id int) (*Application, bool) {
	a, ok := env.applications[id]
	return a, ok
}

// Applications returns the full application map.
func (env *Environment) Applications() map[int]*Application { return env.applications }

// Schedule enqueues e. Per §4.4, any attempt to schedule in the past is
// clamped to CurrentTime — there is no pre-emption and no rewriting of
// history.
func (env *Environment) Schedule(e Event) {
	if e.Timestamp() < env.CurrentTime {
		logrus.Debugf("clamping event %s from t=%d to current time t=%d", e.Type(), e.Timestamp(), env.CurrentTime)
		e = clampTimestamp(e, env.CurrentTime)
	}
	env.Queue.Schedule(e)
}

// Run drains the event queue to completion, advancing CurrentTime to each
// popped event's timestamp before executing it (§4.4, §5).
func (env *Environment) Run() {
	for !env.Queue.Empty() {
		e := env.Queue.PopNext()
		env.CurrentTime = e.Timestamp()
		e.Execute(env)
	}
}

// MarkDeployed appends app to the currently-deployed list.
func (env *Environment) MarkDeployed(app *Application) {
	env.CurrentlyDeployed = append(env.CurrentlyDeployed, app)
}

// MarkUndeployed removes app from the currently-deployed list.
func (env *Environment) MarkUndeployed(app *Application) {
	for i, a := range env.CurrentlyDeployed {
		if a.ID == app.ID {
			env.CurrentlyDeployed = append(env.CurrentlyDeployed[:i], env.CurrentlyDeployed[i+1:]...)
			return
		}
	}
}

// RecordRejection tallies app.ID under reason.
func (env *Environment) RecordRejection(reason RejectionReason, appID int) {
	env.RejectedByReason[reason] = append(env.RejectedByReason[reason], appID)
}

// EnqueueBatch appends req to the pending batch and, if no drain is
// currently scheduled, schedules one BatchWindow ticks from now (§4.6).
func (env *Environment) EnqueueBatch(req *placementRequest) {
	env.PendingBatch = append(env.PendingBatch, req)
	if !env.batchScheduled {
		env.batchScheduled = true
		env.Schedule(NewBatchProcessingEvent(env.CurrentTime + env.Config.BatchWindow))
	}
}
