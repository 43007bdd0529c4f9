package schedule_algorithms

import (
	"cpusched/domain"

	"go.uber.org/zap"
)

// FirstComeFirstServedAlgorithm runs processes to completion in arrival order
func FirstComeFirstServedAlgorithm(processes []*domain.Process, logger *zap.Logger) ([]*domain.Process, domain.Timeline, error) {
	if err := ValidateProcesses(processes, false); err != nil {
		logger.Error("invalid fcfs input", zap.Error(err))
		return nil, nil, err
	}

	completed := make([]*domain.Process, 0, len(processes))
	timeline := make(domain.Timeline, 0, len(processes))
	clock := 0
	for _, p := range arrivalOrder(processes) {
		if clock < p.ArrivalTime {
			clock = p.ArrivalTime
		}
		dispatch(p, clock)
		finish := clock + p.BurstTime
		timeline.Record(p, clock, finish)
		complete(p, finish)
		completed = append(completed, p)
		logger.Debug("dispatched", zap.Int("pid", p.PID), zap.Int("start", clock), zap.Int("finish", finish))
		clock = finish
	}

	logger.Info("FIRST COME FIRST SERVED ALGORITHM SCHEDULED ALL PROCESSES", zap.Int("processes", len(completed)))
	return completed, timeline, nil
}
