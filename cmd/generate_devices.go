// cmd/generate_devices.go
package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/edgeplace/edgeplace/sim"
	"github.com/edgeplace/edgeplace/sim/topology"
	"github.com/edgeplace/edgeplace/sim/workload"
)

// KShortestPaths bounds how many alternate routes the bootstrap installs
// per (src, dst) pair (§4.2).
const KShortestPaths = 3

var generateDevicesCmd = &cobra.Command{
	Use:   "generate-devices",
	Short: "Generate a random device catalog and its routing tables",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(configFlag)
		applyLogLevel(cfg.LogLevel)

		out := outputFlag
		if out == "" {
			out = "latest/devices.json"
		}

		env := sim.NewEnvironment(cfg)
		rng := sim.NewPartitionedRNG(cfg.RandomSeed)

		workload.GenerateDevices(env, cfg.DeviceNumber, cfg.DevicePositioning, rng)
		topology.SynthesizeLinks(env)

		g := topology.BuildGraph(env)
		topology.BootstrapShortestPaths(env, g)
		topology.BootstrapKShortestPaths(env, g, KShortestPaths)

		if err := os.MkdirAll(dirOf(out), 0o755); err != nil {
			logrus.Fatalf("generate-devices: %v", err)
		}
		f, err := os.Create(out)
		if err != nil {
			logrus.Fatalf("generate-devices: %v", err)
		}
		defer f.Close()

		if err := env.ExportDevices(f); err != nil {
			logrus.Fatalf("generate-devices: %v", err)
		}
		logrus.Infof("generated %d devices to %s", cfg.DeviceNumber, out)
	},
}
