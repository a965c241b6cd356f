// sim/application.go
package sim

// Application is a DAG of processes with an inter-process bandwidth matrix
// and a lifetime (§3).
type Application struct {
	ID       int
	Duration int64 // ticks

	// Priority feeds the Placement event's sub-priority (§3 "Placements may
	// carry a sub-priority from application priority"); the exact
	// contribution is REFERENCE_PRIORITY + Priority/10, per
	// original_source/modules/events/Placement.py.
	Priority float64

	Procs []*Processus

	// ProcLinks is the symmetric NumProcs x NumProcs bandwidth-requirement
	// matrix (KB/s), zero on the diagonal.
	ProcLinks [][]float64

	// DeploymentInfo maps process index -> device id, filled by Sync,
	// cleared by Undeploy (§3).
	DeploymentInfo map[int]int

	// LinksDeploymentInfo maps an ordered (i,j) process-index pair with
	// ProcLinks[i][j] > 0 to the Path bound for it.
	LinksDeploymentInfo map[[2]int]*Path

	// PendingAssignment and PendingPaths hold a Placement's result between
	// acceptance and the paired Sync event, which is what actually commits
	// them into DeploymentInfo/LinksDeploymentInfo (§3 lifecycle: "filled by
	// Sync").
	PendingAssignment map[int]int
	PendingPaths      map[[2]int]*Path

	// FailureReasons tallies, per rejection reason, how many of this app's
	// placement attempts failed that way (§4.5 "dominant rejection reason").
	FailureReasons map[RejectionReason]int

	// BatchAttempts counts attempts spent in the batch optimizer path,
	// tracked separately from the per-arrival greedy Attempt counter (§4.6,
	// capped at 15 per spec.md §4.6).
	BatchAttempts int
}

// NewApplication creates an Application with num Processus slots reserved.
// Callers populate Procs and ProcLinks before the Application is placed.
func NewApplication(id int, duration int64, numProcs int) *Application {
	links := make([][]float64, numProcs)
	for i := range links {
		links[i] = make([]float64, numProcs)
	}
	return &Application{
		ID:                  id,
		Duration:            duration,
		Procs:               make([]*Processus, 0, numProcs),
		ProcLinks:           links,
		DeploymentInfo:      map[int]int{},
		LinksDeploymentInfo: map[[2]int]*Path{},
	}
}

// NumProcs returns the number of processes in the application.
func (a *Application) NumProcs() int {
	return len(a.Procs)
}

// ProcIDs returns the ids of every process in the application, in order.
func (a *Application) ProcIDs() []int {
	ids := make([]int, len(a.Procs))
	for i, p := range a.Procs {
		ids[i] = p.ID
	}
	return ids
}

// ProcByID returns the process with the given id, or nil if not present.
func (a *Application) ProcByID(id int) *Processus {
	for _, p := range a.Procs {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// ProcIndex returns the slice index of the process with the given id, or -1.
func (a *Application) ProcIndex(id int) int {
	for i, p := range a.Procs {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// SetDeploymentInfo records process-index -> device-id assignments.
func (a *Application) SetDeploymentInfo(assignment map[int]int) {
	a.DeploymentInfo = assignment
}

// SetLinksDeploymentInfo records the Paths bound to each linked process
// pair.
func (a *Application) SetLinksDeploymentInfo(paths map[[2]int]*Path) {
	a.LinksDeploymentInfo = paths
}

// ClearDeploymentInfo empties deployment bookkeeping (Undeploy, §4.7).
func (a *Application) ClearDeploymentInfo() {
	a.DeploymentInfo = map[int]int{}
	a.LinksDeploymentInfo = map[[2]int]*Path{}
}
