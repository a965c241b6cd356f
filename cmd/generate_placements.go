// cmd/generate_placements.go
package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/edgeplace/edgeplace/sim"
	"github.com/edgeplace/edgeplace/sim/workload"
)

var generatePlacementsCmd = &cobra.Command{
	Use:   "generate-placements",
	Short: "Generate a random arrival stream over the application catalog",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(configFlag)
		applyLogLevel(cfg.LogLevel)

		out := outputFlag
		if out == "" {
			out = "latest/placements.json"
		}

		rng := sim.NewPartitionedRNG(cfg.RandomSeed)
		arrivals := workload.GeneratePlacements(cfg.ApplicationNumber, cfg.DeviceNumber, rng)

		if err := os.MkdirAll(dirOf(out), 0o755); err != nil {
			logrus.Fatalf("generate-placements: %v", err)
		}
		f, err := os.Create(out)
		if err != nil {
			logrus.Fatalf("generate-placements: %v", err)
		}
		defer f.Close()

		if err := sim.SavePlacements(f, arrivals); err != nil {
			logrus.Fatalf("generate-placements: %v", err)
		}
		logrus.Infof("generated %d placements to %s", len(arrivals), out)
	},
}
