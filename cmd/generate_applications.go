// cmd/generate_applications.go
package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/edgeplace/edgeplace/sim"
	"github.com/edgeplace/edgeplace/sim/workload"
)

// MaxProcsPerApp bounds the random process count per generated application,
// matching original_source's Application.randomAppInit default of 3.
const MaxProcsPerApp = 3

var generateApplicationsCmd = &cobra.Command{
	Use:   "generate-applications",
	Short: "Generate a random application catalog",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(configFlag)
		applyLogLevel(cfg.LogLevel)

		out := outputFlag
		if out == "" {
			out = "latest/applications.json"
		}

		env := sim.NewEnvironment(cfg)
		rng := sim.NewPartitionedRNG(cfg.RandomSeed)

		workload.GenerateApplications(env, cfg.ApplicationNumber, MaxProcsPerApp, cfg.AppDuration, rng)

		if err := os.MkdirAll(dirOf(out), 0o755); err != nil {
			logrus.Fatalf("generate-applications: %v", err)
		}
		f, err := os.Create(out)
		if err != nil {
			logrus.Fatalf("generate-applications: %v", err)
		}
		defer f.Close()

		if err := env.ExportApplications(f); err != nil {
			logrus.Fatalf("generate-applications: %v", err)
		}
		logrus.Infof("generated %d applications to %s", cfg.ApplicationNumber, out)
	},
}
