package sched

import (
	"github.com/emirpasic/gods/lists/doublylinkedlist"
	"github.com/emirpasic/gods/queues/priorityqueue"
	"github.com/emirpasic/gods/utils"
)

// Queue is the container holding the tasks of one priority band.
type Queue interface {
	// Push adds a task. FIFO queues append, heap queues insert by order.
	Push(t *Task)
	// Pop removes the front (FIFO) or minimum (heap) task.
	Pop() (*Task, bool)
	// Remove takes a specific task out of the queue. On a heap it rebuilds
	// the whole heap, so policies that remove often (lottery) use a FIFO.
	Remove(t *Task) bool
	Len() int
	// Tasks returns a snapshot in container order. For heaps that is the
	// backing array order, not selection order.
	Tasks() []*Task
	// Reorder restores the container's ordering after task keys changed in
	// place (aging, burst updates). It is a no-op for unordered FIFOs.
	Reorder()
}

// Comparator orders two tasks; a negative result puts a first.
type Comparator func(a, b *Task) int

func (c Comparator) gods() utils.Comparator {
	return func(a, b any) int {
		return c(a.(*Task), b.(*Task))
	}
}

// byBurst orders by remaining burst time, shortest first.
func byBurst(a, b *Task) int {
	switch {
	case a.BurstTime < b.BurstTime:
		return -1
	case a.BurstTime > b.BurstTime:
		return 1
	}
	return bySeq(a, b)
}

// byPriority orders by priority, highest first.
func byPriority(a, b *Task) int {
	switch {
	case a.Priority > b.Priority:
		return -1
	case a.Priority < b.Priority:
		return 1
	}
	return bySeq(a, b)
}

// byPriorityThenBurst compares priority first and only looks at the
// remaining burst when priorities are equal.
func byPriorityThenBurst(a, b *Task) int {
	switch {
	case a.Priority > b.Priority:
		return -1
	case a.Priority < b.Priority:
		return 1
	case a.BurstTime < b.BurstTime:
		return -1
	case a.BurstTime > b.BurstTime:
		return 1
	}
	return bySeq(a, b)
}

func bySeq(a, b *Task) int {
	return utils.IntComparator(a.seq, b.seq)
}

// fifoQueue keeps insertion order. When order is set, Reorder sorts it.
type fifoQueue struct {
	list  *doublylinkedlist.List
	order Comparator
}

func newFIFOQueue(order Comparator) *fifoQueue {
	return &fifoQueue{list: doublylinkedlist.New(), order: order}
}

func (q *fifoQueue) Push(t *Task) { q.list.Append(t) }

func (q *fifoQueue) Pop() (*Task, bool) {
	v, ok := q.list.Get(0)
	if !ok {
		return nil, false
	}
	q.list.Remove(0)
	return v.(*Task), true
}

func (q *fifoQueue) Remove(t *Task) bool {
	i := q.list.IndexOf(t)
	if i < 0 {
		return false
	}
	q.list.Remove(i)
	return true
}

func (q *fifoQueue) Len() int { return q.list.Size() }

func (q *fifoQueue) Tasks() []*Task { return toTasks(q.list.Values()) }

func (q *fifoQueue) Reorder() {
	if q.order == nil || q.list.Size() < 2 {
		return
	}
	q.list.Sort(q.order.gods())
}

// heapQueue is a binary heap ordered by an injected comparator. Every
// heap-backed discipline shares it; only the comparator differs.
type heapQueue struct {
	pq    *priorityqueue.Queue
	order Comparator
}

func newHeapQueue(order Comparator) *heapQueue {
	return &heapQueue{pq: priorityqueue.NewWith(order.gods()), order: order}
}

func (q *heapQueue) Push(t *Task) { q.pq.Enqueue(t) }

func (q *heapQueue) Pop() (*Task, bool) {
	v, ok := q.pq.Dequeue()
	if !ok {
		return nil, false
	}
	return v.(*Task), true
}

func (q *heapQueue) Remove(t *Task) bool {
	values := q.pq.Values()
	found := false
	q.pq.Clear()
	for _, v := range values {
		if v.(*Task) == t && !found {
			found = true
			continue
		}
		q.pq.Enqueue(v)
	}
	return found
}

func (q *heapQueue) Len() int { return q.pq.Size() }

func (q *heapQueue) Tasks() []*Task { return toTasks(q.pq.Values()) }

func (q *heapQueue) Reorder() {
	values := q.pq.Values()
	q.pq.Clear()
	for _, v := range values {
		q.pq.Enqueue(v)
	}
}

func toTasks(values []any) []*Task {
	out := make([]*Task, len(values))
	for i, v := range values {
		out[i] = v.(*Task)
	}
	return out
}
