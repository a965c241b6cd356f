// sim/events_deploy.go
package sim

import "github.com/sirupsen/logrus"

// DeployProcEvent applies a single process's resource request to its
// assigned device (§4.7). When Last is set it enqueues the app's Sync.
type DeployProcEvent struct {
	BaseEvent
	AppID      int
	ProcIndex  int
	DeviceID   int
	Last       bool
	SyncDelay  float64
}

// NewDeployProcEvent creates a DeployProc event at priority 3 (§3).
func NewDeployProcEvent(t int64, appID, procIndex, deviceID int, last bool, syncDelay float64) *DeployProcEvent {
	return &DeployProcEvent{
		BaseEvent: newBaseEvent(t, PriorityDeployProc, EventDeployProc),
		AppID:     appID,
		ProcIndex: procIndex,
		DeviceID:  deviceID,
		Last:      last,
		SyncDelay: syncDelay,
	}
}

func (e *DeployProcEvent) Execute(env *Environment) {
	app, ok := env.GetApplicationByID(e.AppID)
	if !ok {
		logrus.Warnf("deployproc: unknown application %d", e.AppID)
		return
	}
	if e.ProcIndex < 0 || e.ProcIndex >= len(app.Procs) {
		logrus.Warnf("deployproc: app %d has no process index %d", e.AppID, e.ProcIndex)
		return
	}
	proc := app.Procs[e.ProcIndex]

	device, err := env.GetDeviceByID(e.DeviceID)
	if err != nil {
		logrus.Warnf("deployproc: %v", err)
		return
	}

	device.AllocateAll(env.CurrentTime, proc.ResourceRequest, AllocateOptions{})
	env.Metrics.AdjustResources(env.CurrentTime, proc.ResourceRequest, 1)

	if e.Last {
		env.Schedule(NewSyncEvent(env.CurrentTime+int64(e.SyncDelay), e.AppID))
	}
}

// SyncEvent finalizes a Placement's pending assignment: it commits
// DeploymentInfo/LinksDeploymentInfo, marks the app deployed, and schedules
// Undeploy at t+duration (§4.7).
//
// Per §9's open question on double-reservation, bandwidth was already
// reserved authoritatively during Placement's Phase B; Sync does not call
// reserve again, avoiding the invariant-2 violation the source's double
// reservation would cause. OperationalDelay is a diagnostic field only:
// NewSyncEvent leaves it at zero and Execute does not read it.
type SyncEvent struct {
	BaseEvent
	AppID           int
	OperationalDelay float64
}

// NewSyncEvent creates a Sync event at priority 4 (§3).
func NewSyncEvent(t int64, appID int) *SyncEvent {
	return &SyncEvent{
		BaseEvent: newBaseEvent(t, PrioritySync, EventSync),
		AppID:     appID,
	}
}

func (e *SyncEvent) Execute(env *Environment) {
	app, ok := env.GetApplicationByID(e.AppID)
	if !ok {
		logrus.Warnf("sync: unknown application %d", e.AppID)
		return
	}

	app.SetDeploymentInfo(app.PendingAssignment)
	app.SetLinksDeploymentInfo(app.PendingPaths)
	app.PendingAssignment = nil
	app.PendingPaths = nil

	env.MarkDeployed(app)
	env.Metrics.Adjust(env.CurrentTime, ColCurrentlyHostedApps, 1)
	env.Metrics.Adjust(env.CurrentTime, ColCurrentlyHostedProcs, float64(app.NumProcs()))

	env.Schedule(NewUndeployEvent(env.CurrentTime+app.Duration, e.AppID))
}

// UndeployEvent releases every component's resources and frees every
// reserved path's bandwidth (§4.7).
type UndeployEvent struct {
	BaseEvent
	AppID int
}

// NewUndeployEvent creates an Undeploy event at priority 1 (§3).
func NewUndeployEvent(t int64, appID int) *UndeployEvent {
	return &UndeployEvent{
		BaseEvent: newBaseEvent(t, PriorityUndeploy, EventUndeploy),
		AppID:     appID,
	}
}

func (e *UndeployEvent) Execute(env *Environment) {
	app, ok := env.GetApplicationByID(e.AppID)
	if !ok {
		logrus.Warnf("undeploy: unknown application %d", e.AppID)
		return
	}

	for idx, proc := range app.Procs {
		deviceID, ok := app.DeploymentInfo[idx]
		if !ok {
			continue
		}
		device, err := env.GetDeviceByID(deviceID)
		if err != nil {
			logrus.Warnf("undeploy: %v", err)
			continue
		}
		device.ReleaseAll(env.CurrentTime, proc.ResourceRequest, AllocateOptions{})
		env.Metrics.AdjustResources(env.CurrentTime, proc.ResourceRequest, -1)
	}

	n := app.NumProcs()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j || app.ProcLinks[i][j] <= 0 {
				continue
			}
			path, ok := app.LinksDeploymentInfo[[2]int{i, j}]
			if !ok {
				continue
			}
			FreePath(env, path, app.ProcLinks[i][j])
		}
	}

	env.MarkUndeployed(app)
	app.ClearDeploymentInfo()

	env.Metrics.Adjust(env.CurrentTime, ColCumulativeAppDeparture, 1)
	env.Metrics.Adjust(env.CurrentTime, ColCurrentlyHostedApps, -1)
	env.Metrics.Adjust(env.CurrentTime, ColCurrentlyHostedProcs, -float64(n))
}

// FinalReportEvent forces a report-on-value at every device and persists
// the metrics frame (§4.7, §4.8).
type FinalReportEvent struct {
	BaseEvent
	OutputFolder string
}

// NewFinalReportEvent creates a FinalReport event at priority 0 (§3).
func NewFinalReportEvent(t int64, outputFolder string) *FinalReportEvent {
	return &FinalReportEvent{
		BaseEvent:    newBaseEvent(t, PriorityFinalReport, EventFinalReport),
		OutputFolder: outputFolder,
	}
}

func (e *FinalReportEvent) Execute(env *Environment) {
	for _, id := range env.DeviceIDs() {
		env.devices[id].Report(env.CurrentTime, true)
	}
	if err := env.Metrics.WriteCSV(env, e.OutputFolder); err != nil {
		logrus.Errorf("finalreport: writing results: %v", err)
	}
}
