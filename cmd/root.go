// cmd/root.go
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	configFlag string
	outputFlag string
)

var rootCmd = &cobra.Command{
	Use:   "edgeplace",
	Short: "Discrete-event simulator for workload placement on edge/fog networks",
}

// Execute runs the root command and exits the process with status 1 when it
// returns an error (§6 "Exit codes").
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "config.yaml", "Configuration file")
	rootCmd.PersistentFlags().StringVar(&outputFlag, "output", "", "Output path (stage-specific default if empty)")

	rootCmd.AddCommand(generateDevicesCmd)
	rootCmd.AddCommand(generateApplicationsCmd)
	rootCmd.AddCommand(generatePlacementsCmd)
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(visualizeCmd)
}
