package schedule_algorithms

import (
	"fmt"
	"strings"

	"cpusched/domain"

	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

const (
	// FCFS is the First Come First Served policy name
	FCFS = "fcfs"
	// SJF is the non preemptive Shortest Job First policy name
	SJF = "sjf"
	// Priority is the non preemptive priority policy name
	Priority = "priority"
	// RoundRobin is the preemptive Round Robin policy name
	RoundRobin = "rr"
)

// Algorithms lists the supported policies
var Algorithms = []string{FCFS, SJF, Priority, RoundRobin}

var algorithmAliases = map[string]string{
	"first_come_first_served": FCFS,
	"shortest_job_first":      SJF,
	"round_robin":             RoundRobin,
	"round-robin":             RoundRobin,
}

// NormalizeAlgorithm maps a user supplied policy name to its canonical form
func NormalizeAlgorithm(name string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := algorithmAliases[normalized]; ok {
		normalized = alias
	}
	if !slices.Contains(Algorithms, normalized) {
		return "", fmt.Errorf("%w: unknown algorithm %q", domain.ErrInvalidInput, name)
	}
	return normalized, nil
}

// Run executes one policy over processes. quantum is only read by Round Robin.
func Run(algorithm string, processes []*domain.Process, quantum int, logger *zap.Logger) ([]*domain.Process, domain.Timeline, error) {
	name, err := NormalizeAlgorithm(algorithm)
	if err != nil {
		logger.Error("cannot run algorithm", zap.Error(err))
		return nil, nil, err
	}
	switch name {
	case FCFS:
		return FirstComeFirstServedAlgorithm(processes, logger)
	case SJF:
		return ShortestJobFirstAlgorithm(processes, logger)
	case Priority:
		return PriorityAlgorithm(processes, logger)
	default:
		return RoundRobinAlgorithm(processes, quantum, logger)
	}
}
