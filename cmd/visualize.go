// cmd/visualize.go
package cmd

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// resourceColumns names the percent-utilization columns of the Results CSV
// that get one aggregate line plot each (§4.8).
var resourceColumns = []struct {
	index int
	name  string
}{
	{1, "cpu"},
	{2, "gpu"},
	{3, "memory"},
	{4, "disk"},
}

var visualizeCmd = &cobra.Command{
	Use:   "visualize",
	Short: "Render one aggregate line plot per resource from a run's results CSV",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(configFlag)
		applyLogLevel(cfg.LogLevel)

		in := filepath.Join(cfg.OutputFolder, "results.csv")
		out := outputFlag
		if out == "" {
			out = cfg.OutputFolder
		}

		rows, err := readResultsCSV(in)
		if err != nil {
			logrus.Fatalf("visualize: %v", err)
		}

		if err := os.MkdirAll(out, 0o755); err != nil {
			logrus.Fatalf("visualize: %v", err)
		}

		for _, col := range resourceColumns {
			if err := plotColumn(rows, col.index, col.name, filepath.Join(out, col.name+".png")); err != nil {
				logrus.Errorf("visualize: %s: %v", col.name, err)
			}
		}
		logrus.Infof("wrote %d resource plots to %s", len(resourceColumns), out)
	},
}

func readResultsCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		rows = rows[1:] // drop header
	}
	return rows, nil
}

func plotColumn(rows [][]string, col int, name, outPath string) error {
	pts := make(plotter.XYs, 0, len(rows))
	for _, row := range rows {
		if col >= len(row) {
			continue
		}
		t, err := strconv.ParseFloat(row[0], 64)
		if err != nil {
			continue
		}
		v, err := strconv.ParseFloat(row[col], 64)
		if err != nil {
			continue
		}
		pts = append(pts, plotter.XY{X: t, Y: v})
	}

	p := plot.New()
	p.Title.Text = name + " utilization"
	p.X.Label.Text = "time (ticks)"
	p.Y.Label.Text = "percent"

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	p.Add(line)

	return p.Save(8*vg.Inch, 4*vg.Inch, outPath)
}
