package priority_queue

import "cpusched/domain"

// Item is a ready process managed in a priority queue.
// Key is the scheduling criterion, burst time for SJF and priority for Priority scheduling.
type Item struct {
	Process *domain.Process
	Key     int
	Index   int
}

// NewBurstItem returns an item ordered by burst time
func NewBurstItem(p *domain.Process) *Item {
	return &Item{Process: p, Key: p.BurstTime}
}

// NewPriorityItem returns an item ordered by priority value, processes without priority never reach the queue
func NewPriorityItem(p *domain.Process) *Item {
	return &Item{Process: p, Key: *p.Priority}
}
