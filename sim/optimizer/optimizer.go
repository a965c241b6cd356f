// Package optimizer implements C6's Batch Optimizer contract: accept a
// window of pending placements described purely in terms of capacity
// matrices and demand vectors, and return a node assignment plus acceptance
// decision per application (§4.6).
//
// The optimal formulation in spec.md §4.6 is an integer program (binary
// node assignment subject to per-device capacity, per-app all-or-nothing
// acceptance, and a coverage-radius constraint) followed by a continuous
// multi-commodity flow link mapping. No MILP solver exists anywhere in the
// reference pack — the Python original calls out to gurobipy, a commercial
// solver with no Go equivalent among the example repositories — so Solver
// is kept as a trait the simulator depends on, with GreedySolver as the
// only implementation that ships (§9 "Optional solver dependency").
package optimizer

// ComponentSpec is one process awaiting placement within a batch.
type ComponentSpec struct {
	ID       int
	Resource map[string]float64
}

// AppSpec is one application's batch-input shape: the components needing
// placement, the bandwidth matrix between them, and the device the
// application's traffic originates at.
type AppSpec struct {
	AppID            int
	RequestingDevice int
	Components       []ComponentSpec
	// Links maps an ordered (component-id, component-id) pair to its
	// required bandwidth; zero entries are omitted.
	Links map[[2]int]float64
}

// BatchInput is everything the optimizer needs to decide a window of
// arrivals, expressed without any reference to the simulator's own types
// (§4.6: "device resource residuals", "per-component resource demands",
// "inter-device link capacities", "starting positions and coverage
// radius").
type BatchInput struct {
	DeviceResidual map[int]map[string]float64
	DevicePosition map[int][3]float64
	Range          float64
	Apps           []AppSpec
}

// Assignment is one application's batch decision: whether it was accepted,
// and if so, which device each of its components landed on (component id ->
// device id).
type Assignment struct {
	AppID           int
	Accepted        bool
	ComponentDevice map[int]int
}

// BatchResult is the optimizer's full decision for a window.
type BatchResult struct {
	Assignments []Assignment
}

// Solver decides a batch of pending applications at once (§4.6).
type Solver interface {
	Solve(input BatchInput) (BatchResult, error)
}
