package schedule_algorithms

import (
	"fmt"

	"cpusched/domain"
)

// CalculateSummary computes mean waiting and turnaround time plus utilization figures of a completed run
func CalculateSummary(completed []*domain.Process) (domain.Summary, error) {
	if len(completed) == 0 {
		return domain.Summary{}, domain.ErrEmptyAggregate
	}

	var totalWaiting, totalTurnaround, busy int
	firstArrival := completed[0].ArrivalTime
	lastFinish := 0
	for _, p := range completed {
		if !p.IsCompleted() || p.WaitingTime == nil || p.TurnaroundTime == nil {
			return domain.Summary{}, fmt.Errorf("%w: P%d has not completed", domain.ErrInvalidInput, p.PID)
		}
		totalWaiting += *p.WaitingTime
		totalTurnaround += *p.TurnaroundTime
		busy += p.BurstTime
		firstArrival = min(firstArrival, p.ArrivalTime)
		lastFinish = max(lastFinish, *p.FinishTime)
	}

	count := float64(len(completed))
	summary := domain.Summary{
		AverageWaitingTime:    float64(totalWaiting) / count,
		AverageTurnaroundTime: float64(totalTurnaround) / count,
		Makespan:              lastFinish - firstArrival,
		BusyTime:              busy,
		Processes:             len(completed),
	}
	if summary.Makespan > 0 {
		summary.CPUUtilization = float64(busy) / float64(summary.Makespan)
		summary.Throughput = count / float64(summary.Makespan)
	}
	return summary, nil
}
