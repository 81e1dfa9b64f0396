package sched

import (
	"fmt"
	"math/rand/v2"
)

// Placement says where a task that still has work goes after it ran.
type Placement int

const (
	// PlaceRequeue returns the task to its own queue, immediately or at the
	// end of the turn depending on Config.Reinsert.
	PlaceRequeue Placement = iota
	// PlaceDemote moves the task one queue toward the lowest priority. In the
	// lowest queue it behaves like PlaceRequeue.
	PlaceDemote
	// PlaceRedraw puts the task straight back so the next draw of the same
	// turn can pick it again.
	PlaceRedraw
)

// RunContext is the state a policy may consult while selecting. It lives for
// exactly one run.
type RunContext struct {
	Completed *Completed
	Rand      *rand.Rand
}

// Policy is the intra-queue dispatch strategy of one discipline.
type Policy interface {
	Discipline() Discipline
	// NewQueue returns an empty container of the flavor the policy selects
	// from.
	NewQueue() Queue
	// Prepare runs at the start of every queue turn.
	Prepare(q Queue)
	// Select removes and returns the next candidate. It returns false when
	// nothing in q can run this turn. Candidates may still be gated by the
	// loop, except where the policy already filtered on runnability.
	Select(q Queue, rc *RunContext) (*Task, bool)
	// OnPartial decides where a task with work left goes.
	OnPartial(t *Task) Placement
	// Ages reports whether the aging policy applies to this discipline.
	Ages() bool
}

// NewPolicy returns the policy implementing d.
func NewPolicy(d Discipline) (Policy, error) {
	switch d {
	case FCFS, RoundRobin:
		return &queuePolicy{discipline: d, placement: PlaceRequeue}, nil
	case SJF:
		return &queuePolicy{discipline: d, order: byBurst, placement: PlaceRequeue}, nil
	case STR:
		return &queuePolicy{discipline: d, order: byBurst, heap: true, placement: PlaceRequeue}, nil
	case Priority:
		return &queuePolicy{discipline: d, order: byPriority, heap: true, placement: PlaceRequeue}, nil
	case MLFQ:
		return &queuePolicy{discipline: d, placement: PlaceDemote}, nil
	case SVR2:
		return &queuePolicy{discipline: d, order: byPriorityThenBurst, heap: true, placement: PlaceDemote, ages: true}, nil
	case Lottery:
		return lotteryPolicy{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown discipline %q", ErrInvalidConfig, d)
	}
}

// queuePolicy covers every discipline that takes the front of an ordered
// container. The container flavor, its order and the placement rule are the
// only differences between them.
//
// For STR the shortest task stays at the heap top after a partial run, so it
// can run again within the same queue quantum and starve longer tasks of
// that queue. That is the discipline's documented behaviour.
type queuePolicy struct {
	discipline Discipline
	order      Comparator // nil keeps insertion order
	heap       bool
	placement  Placement
	ages       bool
}

func (p *queuePolicy) Discipline() Discipline { return p.discipline }

func (p *queuePolicy) NewQueue() Queue {
	if p.heap {
		return newHeapQueue(p.order)
	}
	return newFIFOQueue(p.order)
}

// Prepare sorts FIFO queues that carry an order (SJF). Heaps are always in
// order already.
func (p *queuePolicy) Prepare(q Queue) {
	if !p.heap {
		q.Reorder()
	}
}

func (p *queuePolicy) Select(q Queue, _ *RunContext) (*Task, bool) {
	return q.Pop()
}

func (p *queuePolicy) OnPartial(*Task) Placement { return p.placement }

func (p *queuePolicy) Ages() bool { return p.ages }
