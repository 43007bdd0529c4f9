package schedule_algorithms

import (
	"cpusched/domain"

	"go.uber.org/zap"
)

// RoundRobinAlgorithm grants each ready process at most quantum time units per dispatch.
// Processes arriving during a slice are queued ahead of the preempted process.
func RoundRobinAlgorithm(processes []*domain.Process, quantum int, logger *zap.Logger) ([]*domain.Process, domain.Timeline, error) {
	if err := ValidateQuantum(quantum); err != nil {
		logger.Error("invalid round robin quantum", zap.Error(err))
		return nil, nil, err
	}
	if err := ValidateProcesses(processes, false); err != nil {
		logger.Error("invalid round robin input", zap.Error(err))
		return nil, nil, err
	}

	ordered := arrivalOrder(processes)
	completed := make([]*domain.Process, 0, len(ordered))
	timeline := make(domain.Timeline, 0, len(ordered))
	queue := make([]*domain.Process, 0, len(ordered))

	next := 0
	admit := func(clock int) {
		for next < len(ordered) && ordered[next].ArrivalTime <= clock {
			queue = append(queue, ordered[next])
			next++
		}
	}

	// every process sharing the earliest arrival is seeded, in pid order
	clock := ordered[0].ArrivalTime
	admit(clock)

	for len(completed) < len(ordered) {
		if len(queue) == 0 {
			clock = max(clock, ordered[next].ArrivalTime)
			admit(clock)
			continue
		}

		current := queue[0]
		queue = queue[1:]
		dispatch(current, clock)

		slice := min(quantum, current.RemainingTime)
		timeline.Record(current, clock, clock+slice)
		clock += slice
		current.RemainingTime -= slice
		logger.Debug("dispatched", zap.Int("pid", current.PID), zap.Int("slice", slice),
			zap.Int("clock", clock), zap.Int("remaining", current.RemainingTime))

		admit(clock)
		if current.RemainingTime == 0 {
			complete(current, clock)
			completed = append(completed, current)
			continue
		}
		queue = append(queue, current)
	}

	logger.Info("ROUND ROBIN ALGORITHM SCHEDULED ALL PROCESSES", zap.Int("processes", len(completed)),
		zap.Int("quantum", quantum), zap.Int("slices", len(timeline)))
	return completed, timeline, nil
}
