// cpusched runs CPU scheduling simulations from the command line.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	verbose bool
	envFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cpusched",
		Short: "CPU scheduling simulator",
		Long: `cpusched simulates FCFS, SJF, Priority and Round Robin scheduling.

Examples:
  # Run Round Robin with quantum 3 over a CSV file (pid,arrival,burst[,priority])
  cpusched run --algorithm rr --quantum 3 processes.csv

  # Compare every policy on the same process set
  cpusched compare processes.json

  # Generate 10 reproducible demo processes
  cpusched generate --count 10 --seed 42
`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "File with environment variables used by report commands")

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(compareCmd())
	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(reportsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() *zap.Logger {
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	if !verbose {
		return log.WithOptions(zap.IncreaseLevel(zap.WarnLevel))
	}
	return log
}
