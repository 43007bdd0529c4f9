package priority_queue

import (
	"container/heap"

	"cpusched/domain"
)

// A PriorityQueue implements heap.Interface and holds Items.
type PriorityQueue []*Item

// Len returns length of priorityQueue
func (pq PriorityQueue) Len() int { return len(pq) }

// Less is the function used for priority queue order.
// Lowest key first, ties broken by arrival time then pid.
func (pq PriorityQueue) Less(i, j int) bool {
	if pq[i].Key != pq[j].Key {
		return pq[i].Key < pq[j].Key
	}
	if pq[i].Process.ArrivalTime != pq[j].Process.ArrivalTime {
		return pq[i].Process.ArrivalTime < pq[j].Process.ArrivalTime
	}
	return pq[i].Process.PID < pq[j].Process.PID
}

// Swap swaps 2 elements
func (pq PriorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].Index = i
	pq[j].Index = j
}

// Push adds item in queue
func (pq *PriorityQueue) Push(x any) {
	n := len(*pq)
	item := x.(*Item)
	item.Index = n
	*pq = append(*pq, item)
}

// Pop returns last item in queue and removes it
func (pq *PriorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil  // avoid memory leak
	item.Index = -1 // for safety
	*pq = old[0 : n-1]
	return item
}

// PushItem adds item keeping heap order
func (pq *PriorityQueue) PushItem(item *Item) {
	heap.Push(pq, item)
}

// PopProcess removes and returns the most urgent process
func (pq *PriorityQueue) PopProcess() *domain.Process {
	return heap.Pop(pq).(*Item).Process
}

// Update modifies the key of an Item in the queue.
func (pq *PriorityQueue) Update(item *Item, key int) {
	item.Key = key
	heap.Fix(pq, item.Index)
}
