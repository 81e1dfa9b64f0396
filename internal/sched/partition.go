package sched

import "fmt"

// Partition assigns tasks to one queue per range. A task goes to the first
// range containing its priority; FIFO queues keep input order and heap
// queues order under their comparator. With nil ranges a single queue spans
// every observed priority. A task outside all ranges is an ErrUnassigned.
func Partition(tasks []*Task, ranges []Range, newQueue func() Queue) ([]Queue, error) {
	queues, dropped := partition(tasks, ranges, newQueue)
	if len(dropped) > 0 {
		t := dropped[0]
		return nil, fmt.Errorf("%w: %s has priority %d", ErrUnassigned, t.Name, t.Priority)
	}
	return queues, nil
}

// partition is Partition without the coverage check; it returns the tasks
// that matched no range.
func partition(tasks []*Task, ranges []Range, newQueue func() Queue) ([]Queue, []*Task) {
	if ranges == nil {
		ranges = []Range{SpanRange(tasks)}
	}

	queues := make([]Queue, len(ranges))
	for i := range queues {
		queues[i] = newQueue()
	}

	var dropped []*Task
	for _, t := range tasks {
		placed := false
		for i, r := range ranges {
			if r.Contains(t.Priority) {
				queues[i].Push(t)
				placed = true
				break
			}
		}
		if !placed {
			dropped = append(dropped, t)
		}
	}
	return queues, dropped
}

// SpanRange returns the smallest range holding every task's priority.
func SpanRange(tasks []*Task) Range {
	if len(tasks) == 0 {
		return Range{}
	}
	r := Range{Low: tasks[0].Priority, High: tasks[0].Priority}
	for _, t := range tasks[1:] {
		r.Low = min(r.Low, t.Priority)
		r.High = max(r.High, t.Priority)
	}
	return r
}
