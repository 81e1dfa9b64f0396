package sched

// Aging raises the priority of tasks that wait too long. It runs once per
// full traversal of the queues.
type Aging struct {
	Threshold int // cycles of waiting before a promotion; 0 disables aging
	Increment int // priority added per promotion
}

// Enabled reports whether aging does anything.
func (a Aging) Enabled() bool { return a.Threshold > 0 }

// Apply ages every task resident in queues. A task that ran during the
// traversal only has its run mark cleared; the others wait one more cycle. A
// task whose waiting time reaches the threshold gains Increment priority and
// starts waiting from zero again; promoted is called for each such task. Queues are reordered afterwards so
// heaps reflect the new priorities. Aging never removes or completes a task.
func (a Aging) Apply(queues []Queue, promoted func(queue int, t *Task)) {
	if !a.Enabled() {
		return
	}
	for i, q := range queues {
		changed := false
		for _, t := range q.Tasks() {
			if t.ran {
				t.ran = false
				continue
			}
			t.WaitingTime++
			if t.WaitingTime >= a.Threshold {
				t.Priority += a.Increment
				t.WaitingTime = 0
				changed = true
				if promoted != nil {
					promoted(i, t)
				}
			}
		}
		if changed {
			q.Reorder()
		}
	}
}
