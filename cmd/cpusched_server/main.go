package main

import (
	"os"

	"cpusched/service"

	"github.com/spf13/cobra"
)

func main() {
	var envFile string
	rootCmd := &cobra.Command{
		Use:   "cpusched_server",
		Short: "CPU scheduling simulator HTTP service",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			service.NewService(envFile).StartWebService()
		},
	}
	rootCmd.Flags().StringVar(&envFile, "env-file", ".env", "File with environment variables loaded before parsing config")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
