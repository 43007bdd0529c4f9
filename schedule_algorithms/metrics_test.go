package schedule_algorithms

import (
	"errors"
	"testing"

	"cpusched/domain"

	"go.uber.org/zap/zaptest"
)

func TestCalculateSummary(t *testing.T) {
	completed := make([]*domain.Process, 0)
	for i, waiting := range []int{0, 2, 4} {
		p := domain.NewProcess(i+1, 0, 2, nil)
		p.StartTime = domain.IntPtr(waiting)
		complete(p, waiting+2)
		completed = append(completed, p)
	}

	summary, err := CalculateSummary(completed)
	if err != nil {
		t.Fatalf("failed to calculate summary : %v", err)
	}
	if summary.AverageWaitingTime != 2.0 {
		t.Errorf("expected mean waiting time 2.0, got %v", summary.AverageWaitingTime)
	}
	if summary.AverageTurnaroundTime != 4.0 {
		t.Errorf("expected mean turnaround time 4.0, got %v", summary.AverageTurnaroundTime)
	}
	if summary.Makespan != 6 || summary.BusyTime != 6 || summary.CPUUtilization != 1.0 {
		t.Errorf("unexpected utilization figures %+v", summary)
	}
}

func TestCalculateSummaryAfterRun(t *testing.T) {
	logger := zaptest.NewLogger(t)
	processes := []*domain.Process{
		domain.NewProcess(1, 0, 5, nil),
		domain.NewProcess(2, 1, 3, nil),
		domain.NewProcess(3, 10, 2, nil),
	}
	completed, _, err := FirstComeFirstServedAlgorithm(processes, logger)
	if err != nil {
		t.Fatalf("fcfs failed : %v", err)
	}
	summary, err := CalculateSummary(completed)
	if err != nil {
		t.Fatalf("failed to calculate summary : %v", err)
	}
	// waits 0, 4, 0 and turnarounds 5, 7, 2
	if summary.AverageTurnaroundTime != 14.0/3.0 || summary.AverageWaitingTime != 4.0/3.0 {
		t.Errorf("unexpected means %+v", summary)
	}
	if summary.Makespan != 12 || summary.BusyTime != 10 {
		t.Errorf("unexpected makespan %+v", summary)
	}
}

func TestCalculateSummaryEmpty(t *testing.T) {
	_, err := CalculateSummary(nil)
	if !errors.Is(err, domain.ErrEmptyAggregate) {
		t.Fatalf("expected empty aggregate error, got %v", err)
	}
}

func TestCalculateSummaryIncomplete(t *testing.T) {
	_, err := CalculateSummary([]*domain.Process{domain.NewProcess(1, 0, 2, nil)})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for unfinished process, got %v", err)
	}
}
