// sim/jsonio.go
package sim

import (
	"encoding/json"
	"fmt"
	"io"
)

// --- Device JSON (§6) ---

type deviceDoc struct {
	Devices []deviceJSON `json:"devices"`
	Links   []linkJSON   `json:"links"`
}

type deviceJSON struct {
	ID       int            `json:"id"`
	Position positionJSON   `json:"position"`
	Resource map[string]float64 `json:"resource"`
}

type positionJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type linkJSON struct {
	ID     int     `json:"id"`
	Source int     `json:"source"`
	Target int     `json:"target"`
	Weight float64 `json:"weight"`
}

// ImportDevices decodes the Device JSON contract and installs every device
// and link into env. Links carry an explicit weight, so no distance-based
// metric synthesis is needed here (§4.2 "accept externally supplied
// links").
func (env *Environment) ImportDevices(r io.Reader) error {
	var doc deviceDoc
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("sim: decoding device catalog: %w", err)
	}

	for _, dj := range doc.Devices {
		d := NewDevice(dj.ID, Position{X: dj.Position.X, Y: dj.Position.Y, Z: dj.Position.Z}, dj.Resource)
		env.AddDevice(d)
		if dj.ID >= env.deviceIDs.next {
			env.deviceIDs.next = dj.ID + 1
		}
	}

	for _, lj := range doc.Links {
		link := env.Network.AddLink(lj.Source, lj.Target, 0, 0)
		link.Metric = lj.Weight
		if src, err := env.GetDeviceByID(lj.Source); err == nil {
			src.AddRoute(lj.Target, lj.Target, lj.Weight)
		}
	}

	return nil
}

// ExportDevices renders the current device/link state back into the Device
// JSON contract (§6 round-trip property).
func (env *Environment) ExportDevices(w io.Writer) error {
	doc := deviceDoc{}
	for _, id := range env.DeviceIDs() {
		d := env.devices[id]
		res := make(map[string]float64, len(ResourceKinds))
		for _, r := range ResourceKinds {
			res[r] = d.Limit[r]
		}
		doc.Devices = append(doc.Devices, deviceJSON{
			ID:       d.ID,
			Position: positionJSON{X: d.Position.X, Y: d.Position.Y, Z: d.Position.Z},
			Resource: res,
		})
	}
	for _, l := range env.Network.AllLinks() {
		doc.Links = append(doc.Links, linkJSON{ID: l.ID, Source: l.Origin, Target: l.Destination, Weight: l.Metric})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// --- Application JSON (§6) ---

type applicationJSON struct {
	AppID     int         `json:"app_id"`
	Duration  int64       `json:"duration"`
	ProcList  []procJSON  `json:"proc_list"`
	ProcLinks [][]float64 `json:"proc_links"`
}

type procJSON struct {
	ProcID               int                `json:"proc_id"`
	ProcResourceRequest map[string]float64 `json:"proc_resource_request"`
}

// ImportApplications decodes the Application JSON catalog contract and
// registers every application with env.
func (env *Environment) ImportApplications(r io.Reader) error {
	var docs []applicationJSON
	dec := json.NewDecoder(r)
	if err := dec.Decode(&docs); err != nil {
		return fmt.Errorf("sim: decoding application catalog: %w", err)
	}

	for _, aj := range docs {
		app := NewApplication(aj.AppID, aj.Duration, len(aj.ProcList))
		for _, pj := range aj.ProcList {
			app.Procs = append(app.Procs, NewProcessus(pj.ProcID, aj.AppID, pj.ProcResourceRequest))
		}
		if len(aj.ProcLinks) == len(aj.ProcList) {
			app.ProcLinks = aj.ProcLinks
		}
		env.AddApplication(app)
		if aj.AppID >= env.appIDs.next {
			env.appIDs.next = aj.AppID + 1
		}
	}

	return nil
}

// ExportApplications renders the application catalog back into its JSON
// contract.
func (env *Environment) ExportApplications(w io.Writer) error {
	var docs []applicationJSON
	for _, id := range sortedKeys(env.applications) {
		app := env.applications[id]
		aj := applicationJSON{AppID: app.ID, Duration: app.Duration, ProcLinks: app.ProcLinks}
		for _, p := range app.Procs {
			aj.ProcList = append(aj.ProcList, procJSON{ProcID: p.ID, ProcResourceRequest: p.ResourceRequest})
		}
		docs = append(docs, aj)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(docs)
}

func sortedKeys(m map[int]*Application) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
	return ids
}

// --- Placements JSON (§6) ---

// PlacementArrival is one decoded arrival from the Placements JSON contract.
type PlacementArrival struct {
	Time             int64 `json:"placement_time"`
	RequestingDevice int   `json:"requesting_device"`
	ApplicationID    int   `json:"application"`
}

// LoadPlacements decodes the Placements JSON contract.
func LoadPlacements(r io.Reader) ([]PlacementArrival, error) {
	var arrivals []PlacementArrival
	dec := json.NewDecoder(r)
	if err := dec.Decode(&arrivals); err != nil {
		return nil, fmt.Errorf("sim: decoding placements: %w", err)
	}
	return arrivals, nil
}

// SavePlacements encodes arrivals into the Placements JSON contract.
func SavePlacements(w io.Writer, arrivals []PlacementArrival) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(arrivals)
}

// ScheduleArrivals enqueues a Placement event for every arrival, first
// attempt, at its requesting application's configured priority.
func (env *Environment) ScheduleArrivals(arrivals []PlacementArrival) {
	for _, a := range arrivals {
		priority := 0.0
		if app, ok := env.GetApplicationByID(a.ApplicationID); ok {
			priority = app.Priority
		}
		env.Schedule(NewPlacementEvent(a.Time, a.ApplicationID, a.RequestingDevice, priority, 0))
	}
}
