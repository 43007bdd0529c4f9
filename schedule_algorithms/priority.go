package schedule_algorithms

import (
	"cpusched/domain"
	"cpusched/priority_queue"

	"go.uber.org/zap"
)

// PriorityAlgorithm runs the arrived process with the lowest priority value to completion.
// A more urgent arrival never preempts the running process.
func PriorityAlgorithm(processes []*domain.Process, logger *zap.Logger) ([]*domain.Process, domain.Timeline, error) {
	if err := ValidateProcesses(processes, true); err != nil {
		logger.Error("invalid priority input", zap.Error(err))
		return nil, nil, err
	}
	completed, timeline := nonPreemptive(processes, priority_queue.NewPriorityItem, logger)
	logger.Info("PRIORITY ALGORITHM SCHEDULED ALL PROCESSES", zap.Int("processes", len(completed)))
	return completed, timeline, nil
}
