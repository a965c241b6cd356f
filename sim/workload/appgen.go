package workload

import (
	"github.com/edgeplace/edgeplace/sim"
)

// TimePeriod is the 24-hour simulation horizon in ticks (§6).
const TimePeriod = 8_640_000

var (
	cpuChoices  = []float64{0.5, 1, 2, 3, 4}
	gpuChoices  = []float64{0, 0, 0, 0, 0.5, 1, 2, 4}
	linkKBChoices = []float64{10, 20, 30, 40, 50}
)

// GenerateApplications creates count applications, each with a random
// number of processes (1..maxProcs), random per-resource requests, and a
// random sparse inter-process link matrix, grounded on original_source's
// Application.randomAppInit / Processus.randomProcInit. durationOverride,
// if non-zero, replaces the randomly generated duration for every
// application (§6 app_duration).
func GenerateApplications(env *sim.Environment, count, maxProcs int, durationOverride int64, rng *sim.PartitionedRNG) {
	r := rng.ForSubsystem(sim.SubsystemApplications)

	for i := 0; i < count; i++ {
		numProcs := 1 + r.Intn(maxProcs)
		appID := env.NextAppID()

		duration := durationOverride
		if duration == 0 {
			duration = int64(TimePeriod/96 + r.Intn(TimePeriod/24-TimePeriod/96+1))
		}

		app := sim.NewApplication(appID, duration, numProcs)
		app.Priority = float64(r.Intn(10))

		for p := 0; p < numProcs; p++ {
			request := map[string]float64{
				"cpu":  cpuChoices[r.Intn(len(cpuChoices))],
				"gpu":  gpuChoices[r.Intn(len(gpuChoices))],
				"mem":  (r.Float64()*0.975 + 0.025) * 4 * 1024,
				"disk": (r.Float64()*9 + 1) * 10 * 1024,
			}
			procID := env.NextProcID()
			app.Procs = append(app.Procs, sim.NewProcessus(procID, appID, request))
		}

		for i := 0; i < numProcs; i++ {
			for j := i + 1; j < numProcs; j++ {
				connected := j == i+1 || r.Intn(2) == 1
				if !connected {
					continue
				}
				bw := linkKBChoices[r.Intn(len(linkKBChoices))] * 1024
				app.ProcLinks[i][j] = bw
				app.ProcLinks[j][i] = bw
			}
		}

		env.AddApplication(app)
	}
}
