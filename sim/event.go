// sim/event.go
package sim

// EventType tags each event variant. Per spec.md §9 ("Dynamic dispatch
// across Event subtypes"), dispatch is a closed enumeration rather than open
// polymorphism; Execute still does the dispatching (via the Go interface
// method below) but every concrete type is named here for diagnostics and
// exhaustiveness review.
type EventType string

const (
	EventPlacement       EventType = "Placement"
	EventDeployProc      EventType = "DeployProc"
	EventSync            EventType = "Sync"
	EventUndeploy        EventType = "Undeploy"
	EventOrganize        EventType = "Organize"
	EventBatchProcessing EventType = "BatchProcessing"
	EventFinalReport     EventType = "FinalReport"
	EventMovement        EventType = "Movement"
)

// Base priority classes, in dispatch order at equal time (§3). Placement
// carries an additional fractional sub-priority derived from application
// priority (PriorityPlacementBase + app.Priority/10); BatchProcessing has no
// normative placement in spec.md's priority table, so it is assigned
// PriorityBatchProcessing between Undeploy and Placement — it must run
// before the individual Placements it may re-enqueue, and after any pending
// releases free resources for it to consider (an Open Question decision,
// recorded in DESIGN.md).
const (
	PriorityFinalReport     float64 = 0
	PriorityUndeploy        float64 = 1
	PriorityBatchProcessing float64 = 1.5
	PriorityPlacementBase   float64 = 2
	PriorityDeployProc      float64 = 3
	PrioritySync            float64 = 4
	PriorityOrganize        float64 = 5
)

// Event is one unit of simulated work, ordered by (Timestamp, Priority,
// sequence number) and dispatched by the Environment's event loop (§4.4).
type Event interface {
	Timestamp() int64
	Priority() float64
	Type() EventType
	Execute(env *Environment)
}

// BaseEvent supplies the fields every concrete Event embeds, mirroring the
// teacher's BaseEvent/EventID idiom (sim/cluster/events.go) adapted so that
// Priority is a float (to carry Placement's fractional sub-priority) rather
// than a table lookup by type.
type BaseEvent struct {
	time     int64
	priority float64
	kind     EventType
}

func newBaseEvent(t int64, priority float64, kind EventType) BaseEvent {
	return BaseEvent{time: t, priority: priority, kind: kind}
}

func (e *BaseEvent) Timestamp() int64    { return e.time }
func (e *BaseEvent) Priority() float64   { return e.priority }
func (e *BaseEvent) Type() EventType     { return e.kind }
func (e *BaseEvent) setTime(t int64)     { e.time = t }

// timestampSetter lets Environment.Schedule clamp an event scheduled in the
// past up to the current time (§4.4); every event satisfies it by embedding
// BaseEvent.
type timestampSetter interface {
	setTime(int64)
}

func clampTimestamp(e Event, t int64) Event {
	if ts, ok := e.(timestampSetter); ok {
		ts.setTime(t)
	}
	return e
}
