package main

import (
	"encoding/json"
	"fmt"

	"cpusched/clients"
	"cpusched/domain"
	"cpusched/helpers"
	"cpusched/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newReportsClient(cmd *cobra.Command, log *zap.Logger) (*clients.S3Client, error) {
	cfg, err := service.NewService(envFile).LoadConfig(log)
	if err != nil {
		return nil, err
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%w: AWS_S3_BUCKET is not set", domain.ErrInvalidInput)
	}
	return clients.NewS3Client(cmd.Context(), cfg.AccessKey, cfg.SecretKey, cfg.Bucket, cfg.Region, log)
}

func reportsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Manage run reports exported to S3",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List exported reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			defer log.Sync()
			s3Client, err := newReportsClient(cmd, log)
			if err != nil {
				return err
			}
			keys, err := s3Client.ListReports()
			if err != nil {
				return err
			}
			if len(keys) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No reports found.")
				return nil
			}
			for _, key := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), key)
			}
			return nil
		},
	})

	var asJSON bool
	getCmd := &cobra.Command{
		Use:   "get <run-id>",
		Short: "Download a report and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			defer log.Sync()
			s3Client, err := newReportsClient(cmd, log)
			if err != nil {
				return err
			}
			run, err := s3Client.DownloadReport(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(run)
			}
			fmt.Fprintf(out, "Run %s (%s, %s)\n\n", run.RunID, run.Algorithm, run.CreatedTimestamp.Format("2006-01-02 15:04:05"))
			helpers.RenderGantt(out, run.Timeline)
			fmt.Fprintln(out)
			helpers.RenderTable(out, run.Completed, run.Summary)
			return nil
		},
	}
	getCmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	cmd.AddCommand(getCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <run-id>",
		Short: "Delete an exported report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			defer log.Sync()
			s3Client, err := newReportsClient(cmd, log)
			if err != nil {
				return err
			}
			if err := s3Client.DeleteReport(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", clients.ReportKey(args[0]))
			return nil
		},
	})
	return cmd
}
