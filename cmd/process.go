// cmd/process.go
package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/edgeplace/edgeplace/sim"
	"github.com/edgeplace/edgeplace/sim/topology"
	"github.com/edgeplace/edgeplace/sim/workload"
)

var (
	devicesFlag      string
	applicationsFlag string
	placementsFlag   string
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Run the placement simulation over a device catalog, application catalog, and arrival stream",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(configFlag)
		applyLogLevel(cfg.LogLevel)

		if outputFlag != "" {
			cfg.OutputFolder = outputFlag
		}

		env := sim.NewEnvironment(cfg)

		devices, err := os.Open(devicesFlag)
		if err != nil {
			logrus.Fatalf("process: %v", err)
		}
		if err := env.ImportDevices(devices); err != nil {
			logrus.Fatalf("process: %v", err)
		}
		devices.Close()

		g := topology.BuildGraph(env)
		topology.BootstrapShortestPaths(env, g)
		topology.BootstrapKShortestPaths(env, g, KShortestPaths)

		apps, err := os.Open(applicationsFlag)
		if err != nil {
			logrus.Fatalf("process: %v", err)
		}
		if err := env.ImportApplications(apps); err != nil {
			logrus.Fatalf("process: %v", err)
		}
		apps.Close()

		placements, err := os.Open(placementsFlag)
		if err != nil {
			logrus.Fatalf("process: %v", err)
		}
		arrivals, err := sim.LoadPlacements(placements)
		if err != nil {
			logrus.Fatalf("process: %v", err)
		}
		placements.Close()

		env.ScheduleArrivals(arrivals)
		env.Schedule(sim.NewFinalReportEvent(workload.TimePeriod, cfg.OutputFolder))

		env.Run()

		logrus.Infof("simulation complete: %d devices, %d applications, %d arrivals",
			len(env.Devices()), len(env.Applications()), len(arrivals))
	},
}

func init() {
	processCmd.Flags().StringVar(&devicesFlag, "devices", "latest/devices.json", "Device catalog JSON")
	processCmd.Flags().StringVar(&applicationsFlag, "applications", "latest/applications.json", "Application catalog JSON")
	processCmd.Flags().StringVar(&placementsFlag, "placements", "latest/placements.json", "Placements JSON")
}
