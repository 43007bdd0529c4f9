package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"cpusched/domain"
	"cpusched/helpers"
	"cpusched/schedule_algorithms"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

// loadProcesses reads a JSON or CSV process file, "-" reads CSV from stdin
func loadProcesses(path string) ([]*domain.Process, error) {
	if path == "-" {
		return helpers.LoadProcessesCSV(os.Stdin)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return helpers.LoadProcessesJSON(file)
	}
	return helpers.LoadProcessesCSV(file)
}

func runCmd() *cobra.Command {
	var (
		algorithm string
		quantum   int
		sortBy    string
		sortDir   string
		asJSON    bool
	)
	cmd := &cobra.Command{
		Use:   "run [flags] <processes-file>",
		Short: "Run one scheduling policy and print the results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			defer log.Sync()

			if !slices.Contains(helpers.ProcessSortFields, sortBy) {
				return fmt.Errorf("%w: sort field must be one of %v", domain.ErrInvalidInput, helpers.ProcessSortFields)
			}
			if !slices.Contains(helpers.SortDirections, sortDir) {
				return fmt.Errorf("%w: sort direction must be one of %v", domain.ErrInvalidInput, helpers.SortDirections)
			}

			algorithm, err := schedule_algorithms.NormalizeAlgorithm(algorithm)
			if err != nil {
				return err
			}
			if algorithm != schedule_algorithms.RoundRobin {
				quantum = 0
			}
			processes, err := loadProcesses(args[0])
			if err != nil {
				return err
			}
			completed, timeline, err := schedule_algorithms.Run(algorithm, processes, quantum, log)
			if err != nil {
				return err
			}
			summary, err := schedule_algorithms.CalculateSummary(completed)
			if err != nil {
				return err
			}
			log.Debug("run finished", zap.String("algorithm", algorithm), zap.Int("intervals", len(timeline)))

			out := cmd.OutOrStdout()
			if asJSON {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(domain.ScheduleRun{
					Algorithm: algorithm,
					Completed: completed,
					Timeline:  timeline,
					Summary:   summary,
					Quantum:   quantum,
				})
			}

			fmt.Fprintf(out, "Algorithm: %s\n\n", algorithm)
			helpers.RenderGantt(out, timeline)
			fmt.Fprintln(out)
			helpers.RenderTable(out, helpers.SortProcesses(domain.CloneAll(completed), sortBy, sortDir), summary)
			fmt.Fprintln(out)
			helpers.RenderSummary(out, summary)
			return nil
		},
	}
	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", schedule_algorithms.FCFS, "Scheduling policy: fcfs, sjf, priority or rr")
	cmd.Flags().IntVarP(&quantum, "quantum", "q", 2, "Time quantum used by Round Robin")
	cmd.Flags().StringVar(&sortBy, "sort", "pid", "Sort the result table by pid, arrival_time, burst_time, finish_time or waiting_time")
	cmd.Flags().StringVar(&sortDir, "sort-dir", "asc", "Sort direction: asc or desc")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the run as JSON")
	return cmd
}

func compareCmd() *cobra.Command {
	var quantum int
	cmd := &cobra.Command{
		Use:   "compare [flags] <processes-file>",
		Short: "Run every policy on copies of the same processes and compare their metrics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			defer log.Sync()

			processes, err := loadProcesses(args[0])
			if err != nil {
				return err
			}

			algorithms := schedule_algorithms.Algorithms
			withPriority := true
			for _, p := range processes {
				if p != nil && p.Priority == nil {
					withPriority = false
					break
				}
			}
			if !withPriority {
				log.Warn("skipping priority policy, some processes have no priority")
				algorithms = slices.DeleteFunc(slices.Clone(algorithms), func(a string) bool {
					return a == schedule_algorithms.Priority
				})
			}

			summaries := make(map[string]domain.Summary, len(algorithms))
			for _, algorithm := range algorithms {
				completed, _, err := schedule_algorithms.Run(algorithm, domain.CloneAll(processes), quantum, log)
				if err != nil {
					return fmt.Errorf("%s: %w", algorithm, err)
				}
				summary, err := schedule_algorithms.CalculateSummary(completed)
				if err != nil {
					return fmt.Errorf("%s: %w", algorithm, err)
				}
				summaries[algorithm] = summary
			}
			helpers.RenderComparison(cmd.OutOrStdout(), algorithms, summaries)
			return nil
		},
	}
	cmd.Flags().IntVarP(&quantum, "quantum", "q", 2, "Time quantum used by Round Robin")
	return cmd
}

func generateCmd() *cobra.Command {
	var (
		request domain.GenerateRequest
		seed    int64
		format  string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate random demo processes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("seed") {
				request.Seed = &seed
			}
			processes, err := helpers.GenerateProcesses(request)
			if err != nil {
				return err
			}
			return writeProcesses(cmd.OutOrStdout(), processes, format)
		},
	}
	cmd.Flags().IntVarP(&request.Count, "count", "n", 5, "Number of processes")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed, the same seed always yields the same processes")
	cmd.Flags().IntVar(&request.MaxArrival, "max-arrival", helpers.DefaultMaxArrival, "Upper bound of arrival times")
	cmd.Flags().IntVar(&request.MinBurst, "min-burst", helpers.DefaultMinBurst, "Lower bound of burst times")
	cmd.Flags().IntVar(&request.MaxBurst, "max-burst", helpers.DefaultMaxBurst, "Upper bound of burst times")
	cmd.Flags().IntVar(&request.MaxPriority, "max-priority", helpers.DefaultMaxPriority, "Upper bound of priorities")
	cmd.Flags().StringVarP(&format, "output", "o", "csv", "Output format: csv or json")
	return cmd
}

// writeProcesses prints processes in a format accepted back by loadProcesses
func writeProcesses(w io.Writer, processes []*domain.Process, format string) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(processes)
	case "csv":
		writer := csv.NewWriter(w)
		if err := writer.Write([]string{"pid", "arrival", "burst", "priority"}); err != nil {
			return err
		}
		for _, p := range processes {
			row := []string{strconv.Itoa(p.PID), strconv.Itoa(p.ArrivalTime), strconv.Itoa(p.BurstTime)}
			if p.Priority != nil {
				row = append(row, strconv.Itoa(*p.Priority))
			}
			if err := writer.Write(row); err != nil {
				return err
			}
		}
		writer.Flush()
		return writer.Error()
	default:
		return fmt.Errorf("%w: unknown output format %q", domain.ErrInvalidInput, format)
	}
}
