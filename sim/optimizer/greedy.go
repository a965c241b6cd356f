package optimizer

import "sort"

// GreedySolver is the in-memory fallback used when no external solver is
// configured (§9). It processes applications in input order, placing each
// component on the nearest feasible device (by squared distance from the
// application's requesting device, respecting Range) and accepting the
// whole application only if every component finds a home — an
// all-or-nothing decision mirroring the integer program's per-app
// acceptance constraint, without the joint optimality.
type GreedySolver struct{}

// NewGreedySolver returns a ready-to-use GreedySolver.
func NewGreedySolver() *GreedySolver { return &GreedySolver{} }

func (g *GreedySolver) Solve(input BatchInput) (BatchResult, error) {
	residual := cloneResidual(input.DeviceResidual)
	result := BatchResult{Assignments: make([]Assignment, 0, len(input.Apps))}

	for _, app := range input.Apps {
		assignment, ok := g.placeApp(input, residual, app)
		result.Assignments = append(result.Assignments, assignment)
		if !ok {
			continue
		}
	}

	return result, nil
}

func (g *GreedySolver) placeApp(input BatchInput, residual map[int]map[string]float64, app AppSpec) (Assignment, bool) {
	origin, hasOrigin := input.DevicePosition[app.RequestingDevice]

	candidates := deviceOrder(input, origin, hasOrigin)

	tentative := map[int]int{}
	spent := map[int]map[string]float64{}

	for _, comp := range app.Components {
		placed := false
		for _, devID := range candidates {
			if fitsResidual(residual[devID], spent[devID], comp.Resource) {
				tentative[comp.ID] = devID
				if spent[devID] == nil {
					spent[devID] = map[string]float64{}
				}
				for r, v := range comp.Resource {
					spent[devID][r] += v
				}
				placed = true
				break
			}
		}
		if !placed {
			return Assignment{AppID: app.AppID, Accepted: false}, false
		}
	}

	for devID, amounts := range spent {
		for r, v := range amounts {
			residual[devID][r] -= v
		}
	}

	return Assignment{AppID: app.AppID, Accepted: true, ComponentDevice: tentative}, true
}

// deviceOrder returns candidate device ids sorted by ascending squared
// distance from origin, filtered to Range when origin is known and Range is
// positive (§4.6 coverage-radius constraint).
func deviceOrder(input BatchInput, origin [3]float64, hasOrigin bool) []int {
	type cand struct {
		id   int
		dist float64
	}
	cands := make([]cand, 0, len(input.DeviceResidual))
	for id := range input.DeviceResidual {
		dist := 0.0
		if hasOrigin && input.Range > 0 {
			pos, ok := input.DevicePosition[id]
			if !ok {
				continue
			}
			dist = squaredDistance(origin, pos)
			if dist > input.Range*input.Range {
				continue
			}
		}
		cands = append(cands, cand{id: id, dist: dist})
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].dist < cands[j].dist })
	out := make([]int, len(cands))
	for i, c := range cands {
		out[i] = c.id
	}
	return out
}

func squaredDistance(a, b [3]float64) float64 {
	dx, dy, dz := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return dx*dx + dy*dy + dz*dz
}

func fitsResidual(residual, alreadySpent map[string]float64, request map[string]float64) bool {
	for r, amount := range request {
		avail := residual[r] - alreadySpent[r]
		if amount > avail {
			return false
		}
	}
	return true
}

func cloneResidual(in map[int]map[string]float64) map[int]map[string]float64 {
	out := make(map[int]map[string]float64, len(in))
	for id, res := range in {
		copy := make(map[string]float64, len(res))
		for r, v := range res {
			copy[r] = v
		}
		out[id] = copy
	}
	return out
}
