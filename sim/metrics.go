// sim/metrics.go
package sim

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// MetricColumn names one mutable column of the metrics frame (§3 "Metrics
// frame"). Modeled as a typed enum rather than the original's string-keyed
// pandas column, so every call site is checked at compile time.
type MetricColumn int

const (
	ColCPUCurrent MetricColumn = iota
	ColGPUCurrent
	ColMemCurrent
	ColDiskCurrent
	ColBWCurrent
	ColCumulativeAppArrival
	ColCumulativeAppDeparture
	ColAppInWaiting
	ColCurrentlyHostedApps
	ColCurrentlyHostedProcs
	ColCumulativeAppAccepted
	ColCumulativeAppRejected
)

// MetricsRow is one row of the time-keyed frame: the full gauge/counter
// state as of Time.
type MetricsRow struct {
	Time int64

	CPUCurrent  float64
	GPUCurrent  float64
	MemCurrent  float64
	DiskCurrent float64
	BWCurrent   float64

	CumulativeAppArrival   int
	CumulativeAppDeparture int
	AppInWaiting           int
	CurrentlyHostedApps    int
	CurrentlyHostedProcs   int
	CumulativeAppAccepted  int
	CumulativeAppRejected  int
}

// MetricsFrame is the C8 Metrics Aggregator: a row-keyed table holding one
// row per time at which some column changed (not one row per tick), with
// forward-fill semantics between changes (§4.8, §9 Design Notes).
type MetricsFrame struct {
	rows  []MetricsRow
	index map[int64]int
}

// NewMetricsFrame creates a frame with a single zeroed row at time 0.
func NewMetricsFrame() *MetricsFrame {
	f := &MetricsFrame{index: map[int64]int{0: 0}}
	f.rows = []MetricsRow{{Time: 0}}
	return f
}

// IntegrityCheck ensures a row exists at time t, forward-filling a copy of
// the most recent prior row if one does not (§4.8). It is the aggregator's
// "primary integrity probe" equivalent for C8: every state-changing event
// calls this before mutating a column.
func (f *MetricsFrame) IntegrityCheck(t int64) {
	if _, ok := f.index[t]; ok {
		return
	}
	last := f.rows[len(f.rows)-1]
	last.Time = t
	f.index[t] = len(f.rows)
	f.rows = append(f.rows, last)
}

// Adjust adds delta to column col's value in the row at time t, creating a
// forward-filled row first if necessary.
func (f *MetricsFrame) Adjust(t int64, col MetricColumn, delta float64) {
	f.IntegrityCheck(t)
	row := &f.rows[f.index[t]]
	switch col {
	case ColCPUCurrent:
		row.CPUCurrent += delta
	case ColGPUCurrent:
		row.GPUCurrent += delta
	case ColMemCurrent:
		row.MemCurrent += delta
	case ColDiskCurrent:
		row.DiskCurrent += delta
	case ColBWCurrent:
		row.BWCurrent += delta
	case ColCumulativeAppArrival:
		row.CumulativeAppArrival += int(delta)
	case ColCumulativeAppDeparture:
		row.CumulativeAppDeparture += int(delta)
	case ColAppInWaiting:
		row.AppInWaiting += int(delta)
	case ColCurrentlyHostedApps:
		row.CurrentlyHostedApps += int(delta)
	case ColCurrentlyHostedProcs:
		row.CurrentlyHostedProcs += int(delta)
	case ColCumulativeAppAccepted:
		row.CumulativeAppAccepted += int(delta)
	case ColCumulativeAppRejected:
		row.CumulativeAppRejected += int(delta)
	}
}

// resourceColumn maps a resource kind name to its current-usage column,
// used so DeployProc/Undeploy/path reservation can keep the frame's
// cpu/gpu/mem/disk/bw current columns in step with the Resource Ledger and
// link bandwidth they mutate (§3 "Metrics frame", §4.8).
func resourceColumn(r string) (MetricColumn, bool) {
	switch r {
	case "cpu":
		return ColCPUCurrent, true
	case "gpu":
		return ColGPUCurrent, true
	case "mem":
		return ColMemCurrent, true
	case "disk":
		return ColDiskCurrent, true
	default:
		return 0, false
	}
}

// AdjustResources applies delta to every resource-keyed column named in
// amounts (e.g. a process's resource request), forward-filling as needed.
func (f *MetricsFrame) AdjustResources(t int64, amounts map[string]float64, sign float64) {
	for r, v := range amounts {
		if col, ok := resourceColumn(r); ok {
			f.Adjust(t, col, sign*v)
		}
	}
}

// Latest returns the most recently recorded row.
func (f *MetricsFrame) Latest() MetricsRow {
	return f.rows[len(f.rows)-1]
}

// Rows returns every recorded row, in ascending time order.
func (f *MetricsFrame) Rows() []MetricsRow {
	return f.rows
}

// resourceLimitTotals sums every device's per-resource limit, for percent
// utilization normalization at final report time (§4.8).
func resourceLimitTotals(env *Environment) map[string]float64 {
	totals := map[string]float64{}
	for _, d := range env.devices {
		for _, r := range ResourceKinds {
			totals[r] += d.Limit[r]
		}
	}
	return totals
}

// csvHeader matches §6's Results CSV contract exactly.
var csvHeader = []string{
	"time", "cpu_avg", "gpu_avg", "memory_avg", "disk_avg",
	"cumulative_app_arrival", "cumulative_app_departure", "app_in_waiting",
	"currently_hosted_apps", "currently_hosted_procs",
	"cumulative_app_accepted", "cumulative_app_rejected",
}

// WriteCSV renders every recorded row as a percent-utilization CSV under
// outputFolder/results.csv (§6). Resource columns are 0-100.
func (f *MetricsFrame) WriteCSV(env *Environment, outputFolder string) error {
	totals := resourceLimitTotals(env)
	pct := func(current, total float64) float64 {
		if total == 0 {
			return 0
		}
		return 100 * current / total
	}

	if err := os.MkdirAll(outputFolder, 0o755); err != nil {
		return fmt.Errorf("metrics: creating output folder: %w", err)
	}

	path := filepath.Join(outputFolder, "results.csv")
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("metrics: creating %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, row := range f.rows {
		record := []string{
			strconv.FormatInt(row.Time, 10),
			strconv.FormatFloat(pct(row.CPUCurrent, totals["cpu"]), 'f', 4, 64),
			strconv.FormatFloat(pct(row.GPUCurrent, totals["gpu"]), 'f', 4, 64),
			strconv.FormatFloat(pct(row.MemCurrent, totals["mem"]), 'f', 4, 64),
			strconv.FormatFloat(pct(row.DiskCurrent, totals["disk"]), 'f', 4, 64),
			strconv.Itoa(row.CumulativeAppArrival),
			strconv.Itoa(row.CumulativeAppDeparture),
			strconv.Itoa(row.AppInWaiting),
			strconv.Itoa(row.CurrentlyHostedApps),
			strconv.Itoa(row.CurrentlyHostedProcs),
			strconv.Itoa(row.CumulativeAppAccepted),
			strconv.Itoa(row.CumulativeAppRejected),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}
