package schedule_algorithms

import (
	"fmt"
	"sort"

	"cpusched/domain"
)

// ValidateProcesses checks the process set before any of it is mutated
func ValidateProcesses(processes []*domain.Process, requirePriority bool) error {
	if len(processes) == 0 {
		return fmt.Errorf("%w: empty process list", domain.ErrInvalidInput)
	}
	seen := make(map[int]bool, len(processes))
	for i, p := range processes {
		if p == nil {
			return fmt.Errorf("%w: process at index %d is nil", domain.ErrInvalidInput, i)
		}
		if p.PID <= 0 {
			return fmt.Errorf("%w: pid %d must be positive", domain.ErrInvalidInput, p.PID)
		}
		if p.BurstTime <= 0 {
			return fmt.Errorf("%w: P%d burst time %d must be positive", domain.ErrInvalidInput, p.PID, p.BurstTime)
		}
		if p.ArrivalTime < 0 {
			return fmt.Errorf("%w: P%d arrival time %d must not be negative", domain.ErrInvalidInput, p.PID, p.ArrivalTime)
		}
		if requirePriority && p.Priority == nil {
			return fmt.Errorf("%w: P%d has no priority", domain.ErrInvalidInput, p.PID)
		}
		if seen[p.PID] {
			return fmt.Errorf("%w: P%d", domain.ErrDuplicateIdentity, p.PID)
		}
		seen[p.PID] = true
		if p.HasRunData() {
			return fmt.Errorf("%w: P%d", domain.ErrReuseWithoutReset, p.PID)
		}
	}
	return nil
}

// ValidateQuantum checks the Round Robin time slice
func ValidateQuantum(quantum int) error {
	if quantum <= 0 {
		return fmt.Errorf("%w: quantum %d must be positive", domain.ErrInvalidInput, quantum)
	}
	return nil
}

// arrivalOrder returns the processes sorted by arrival time then pid, the input slice is left untouched.
// Remaining time is restored to the burst time for every process.
func arrivalOrder(processes []*domain.Process) []*domain.Process {
	ordered := make([]*domain.Process, len(processes))
	copy(ordered, processes)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].ArrivalTime != ordered[j].ArrivalTime {
			return ordered[i].ArrivalTime < ordered[j].ArrivalTime
		}
		return ordered[i].PID < ordered[j].PID
	})
	for _, p := range ordered {
		p.RemainingTime = p.BurstTime
	}
	return ordered
}

// dispatch marks the first time p gets the CPU
func dispatch(p *domain.Process, clock int) {
	if p.StartTime == nil {
		p.StartTime = domain.IntPtr(clock)
	}
}

// complete sets finish time and derives turnaround and waiting time
func complete(p *domain.Process, finish int) {
	p.RemainingTime = 0
	p.FinishTime = domain.IntPtr(finish)
	turnaround := finish - p.ArrivalTime
	p.TurnaroundTime = domain.IntPtr(turnaround)
	p.WaitingTime = domain.IntPtr(turnaround - p.BurstTime)
}
