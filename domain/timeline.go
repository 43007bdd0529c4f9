package domain

import (
	"fmt"
	"sort"
)

// Interval represents one slice of CPU execution
type Interval struct {
	Label string `json:"label"`
	PID   int    `json:"pid"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Duration returns the length of the interval
func (i Interval) Duration() int {
	return i.End - i.Start
}

// Timeline is the ordered list of execution intervals of a run
type Timeline []Interval

// Record appends the execution of p on [start, end)
func (t *Timeline) Record(p *Process, start, end int) {
	*t = append(*t, Interval{
		Label: p.Label(),
		PID:   p.PID,
		Start: start,
		End:   end,
	})
}

// End returns the time the last interval finishes, 0 for an empty timeline
func (t Timeline) End() int {
	end := 0
	for _, interval := range t {
		if interval.End > end {
			end = interval.End
		}
	}
	return end
}

// BusyTime returns the total time the CPU executed something
func (t Timeline) BusyTime() int {
	busy := 0
	for _, interval := range t {
		busy += interval.Duration()
	}
	return busy
}

// ForProcess returns the intervals of a single pid
func (t Timeline) ForProcess(pid int) Timeline {
	slices := make(Timeline, 0)
	for _, interval := range t {
		if interval.PID == pid {
			slices = append(slices, interval)
		}
	}
	return slices
}

// Validate checks that every interval is non empty and that no two intervals overlap
func (t Timeline) Validate() error {
	sorted := make(Timeline, len(t))
	copy(sorted, t)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})
	for i, interval := range sorted {
		if interval.End <= interval.Start {
			return fmt.Errorf("empty interval %s [%d,%d)", interval.Label, interval.Start, interval.End)
		}
		if i > 0 && sorted[i-1].End > interval.Start {
			return fmt.Errorf("interval %s [%d,%d) overlaps %s [%d,%d)", interval.Label, interval.Start, interval.End,
				sorted[i-1].Label, sorted[i-1].Start, sorted[i-1].End)
		}
	}
	return nil
}
