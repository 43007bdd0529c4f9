package schedule_algorithms

import (
	"cpusched/domain"
	"cpusched/priority_queue"

	"go.uber.org/zap"
)

// ShortestJobFirstAlgorithm runs the arrived process with the smallest burst time to completion, then picks again
func ShortestJobFirstAlgorithm(processes []*domain.Process, logger *zap.Logger) ([]*domain.Process, domain.Timeline, error) {
	if err := ValidateProcesses(processes, false); err != nil {
		logger.Error("invalid sjf input", zap.Error(err))
		return nil, nil, err
	}
	completed, timeline := nonPreemptive(processes, priority_queue.NewBurstItem, logger)
	logger.Info("SHORTEST JOB FIRST ALGORITHM SCHEDULED ALL PROCESSES", zap.Int("processes", len(completed)))
	return completed, timeline, nil
}

// nonPreemptive is the ready set loop shared by SJF and Priority scheduling.
// newItem decides the ordering key of an admitted process.
func nonPreemptive(processes []*domain.Process, newItem func(*domain.Process) *priority_queue.Item,
	logger *zap.Logger) ([]*domain.Process, domain.Timeline) {

	ordered := arrivalOrder(processes)
	completed := make([]*domain.Process, 0, len(ordered))
	timeline := make(domain.Timeline, 0, len(ordered))
	ready := make(priority_queue.PriorityQueue, 0, len(ordered))

	clock := 0
	next := 0
	for len(completed) < len(ordered) {
		// admission pointer, every process enters the ready set once
		for next < len(ordered) && ordered[next].ArrivalTime <= clock {
			ready.PushItem(newItem(ordered[next]))
			next++
		}
		if ready.Len() == 0 {
			// CPU idles until the next arrival
			clock = ordered[next].ArrivalTime
			continue
		}

		current := ready.PopProcess()
		dispatch(current, clock)
		finish := clock + current.BurstTime
		timeline.Record(current, clock, finish)
		complete(current, finish)
		completed = append(completed, current)
		logger.Debug("dispatched", zap.Int("pid", current.PID), zap.Int("start", clock), zap.Int("finish", finish))
		clock = finish
	}
	return completed, timeline
}
