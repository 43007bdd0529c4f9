package priority_queue

import (
	"container/heap"
	"testing"

	"cpusched/domain"
)

func TestBurstOrder(t *testing.T) {
	pq := make(PriorityQueue, 0)
	heap.Init(&pq)
	pq.PushItem(NewBurstItem(domain.NewProcess(1, 0, 6, nil)))
	pq.PushItem(NewBurstItem(domain.NewProcess(2, 1, 2, nil)))
	pq.PushItem(NewBurstItem(domain.NewProcess(3, 2, 4, nil)))
	pq.PushItem(NewBurstItem(domain.NewProcess(4, 0, 2, nil)))

	expectedOrder := []int{4, 2, 3, 1}
	for i, pid := range expectedOrder {
		p := pq.PopProcess()
		if p.PID != pid {
			t.Errorf("At index %d, expected P%d, got P%d", i, pid, p.PID)
		}
	}
	if pq.Len() != 0 {
		t.Fatalf("expected empty queue, got %d items", pq.Len())
	}
}

func TestPriorityOrderTieBreak(t *testing.T) {
	pq := make(PriorityQueue, 0)
	pq.PushItem(NewPriorityItem(domain.NewProcess(3, 1, 5, domain.IntPtr(1))))
	pq.PushItem(NewPriorityItem(domain.NewProcess(2, 1, 5, domain.IntPtr(1))))
	pq.PushItem(NewPriorityItem(domain.NewProcess(1, 2, 5, domain.IntPtr(1))))
	pq.PushItem(NewPriorityItem(domain.NewProcess(5, 9, 5, domain.IntPtr(0))))

	expectedOrder := []int{5, 2, 3, 1}
	for i, pid := range expectedOrder {
		p := pq.PopProcess()
		if p.PID != pid {
			t.Errorf("At index %d, expected P%d, got P%d", i, pid, p.PID)
		}
	}
}

func TestUpdate(t *testing.T) {
	pq := make(PriorityQueue, 0)
	first := NewBurstItem(domain.NewProcess(1, 0, 1, nil))
	second := NewBurstItem(domain.NewProcess(2, 0, 5, nil))
	pq.PushItem(first)
	pq.PushItem(second)

	pq.Update(first, 10)
	if p := pq.PopProcess(); p.PID != 2 {
		t.Fatalf("expected P2 after update, got P%d", p.PID)
	}
}
