package domain

import (
	"fmt"
	"time"
)

// Process represents one schedulable process and the values a policy assigns to it
type Process struct {
	StartTime      *int `json:"start_time,omitempty"`
	FinishTime     *int `json:"finish_time,omitempty"`
	WaitingTime    *int `json:"waiting_time,omitempty"`
	TurnaroundTime *int `json:"turnaround_time,omitempty"`
	Priority       *int `json:"priority,omitempty"`
	PID            int  `json:"pid"`
	ArrivalTime    int  `json:"arrival_time"`
	BurstTime      int  `json:"burst_time"`
	RemainingTime  int  `json:"remaining_time"`
}

// NewProcess returns a fresh process ready for a policy run
func NewProcess(pid, arrivalTime, burstTime int, priority *int) *Process {
	return &Process{
		PID:           pid,
		ArrivalTime:   arrivalTime,
		BurstTime:     burstTime,
		RemainingTime: burstTime,
		Priority:      priority,
	}
}

// Reset clears every output of a previous run
func (p *Process) Reset() {
	p.StartTime = nil
	p.FinishTime = nil
	p.WaitingTime = nil
	p.TurnaroundTime = nil
	p.RemainingTime = p.BurstTime
}

// HasRunData reports whether a policy already touched the process
func (p *Process) HasRunData() bool {
	return p.StartTime != nil || p.FinishTime != nil || p.WaitingTime != nil || p.TurnaroundTime != nil
}

// IsCompleted reports whether the process finished its burst
func (p *Process) IsCompleted() bool {
	return p.FinishTime != nil && p.RemainingTime == 0
}

// Clone returns a deep copy of the process
func (p *Process) Clone() *Process {
	clone := *p
	clone.StartTime = copyInt(p.StartTime)
	clone.FinishTime = copyInt(p.FinishTime)
	clone.WaitingTime = copyInt(p.WaitingTime)
	clone.TurnaroundTime = copyInt(p.TurnaroundTime)
	clone.Priority = copyInt(p.Priority)
	return &clone
}

// Label is the name used for the process in timelines and tables
func (p *Process) Label() string {
	return fmt.Sprintf("P%d", p.PID)
}

// ResetAll resets every process in place
func ResetAll(processes []*Process) {
	for _, p := range processes {
		if p != nil {
			p.Reset()
		}
	}
}

// CloneAll returns deep copies of processes, in the same order. Nil entries stay nil.
func CloneAll(processes []*Process) []*Process {
	clones := make([]*Process, 0, len(processes))
	for _, p := range processes {
		if p == nil {
			clones = append(clones, nil)
			continue
		}
		clones = append(clones, p.Clone())
	}
	return clones
}

// IntPtr returns a pointer to v
func IntPtr(v int) *int {
	return &v
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	return IntPtr(*v)
}

// Summary represents aggregate metrics of a completed run
type Summary struct {
	AverageWaitingTime    float64 `json:"average_waiting_time"`
	AverageTurnaroundTime float64 `json:"average_turnaround_time"`
	CPUUtilization        float64 `json:"cpu_utilization"`
	Throughput            float64 `json:"throughput"`
	Makespan              int     `json:"makespan"`
	BusyTime              int     `json:"busy_time"`
	Processes             int     `json:"processes"`
}

// ScheduleRequest represents input for a simulation run
type ScheduleRequest struct {
	Algorithm string     `json:"algorithm"`
	Processes []*Process `json:"processes"`
	Quantum   int        `json:"quantum,omitempty"`
}

// ScheduleRun represents the stored result of a simulation run
type ScheduleRun struct {
	CreatedTimestamp time.Time  `json:"created_timestamp"`
	RunID            string     `json:"run_id"`
	Algorithm        string     `json:"algorithm"`
	Completed        []*Process `json:"completed"`
	Timeline         Timeline   `json:"timeline"`
	Summary          Summary    `json:"summary"`
	Quantum          int        `json:"quantum,omitempty"`
}

// GetScheduleRunsData represents response for listing runs
type GetScheduleRunsData struct {
	Response []*ScheduleRun `json:"response"`
	Errors   []ErrorResponse `json:"errors,omitempty"`
}

// GenerateRequest represents parameters for random demo processes
type GenerateRequest struct {
	Seed        *int64 `json:"seed,omitempty"`
	Count       int    `json:"count"`
	MaxArrival  int    `json:"max_arrival,omitempty"`
	MinBurst    int    `json:"min_burst,omitempty"`
	MaxBurst    int    `json:"max_burst,omitempty"`
	MaxPriority int    `json:"max_priority,omitempty"`
}

// ErrorResponse represents error info
type ErrorResponse struct {
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
}
