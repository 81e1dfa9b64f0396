package sched

// lotteryPolicy draws the next task at random, weighted by tickets. Its queue
// is an unordered set: container order only decides the walk order of a
// draw, never who wins.
type lotteryPolicy struct{}

func (lotteryPolicy) Discipline() Discipline { return Lottery }

func (lotteryPolicy) NewQueue() Queue { return newFIFOQueue(nil) }

func (lotteryPolicy) Prepare(Queue) {}

// Select draws among runnable tasks only. A queue whose runnable tasks hold
// no tickets yields nothing, which ends the turn.
func (lotteryPolicy) Select(q Queue, rc *RunContext) (*Task, bool) {
	winner := draw(q.Tasks(), rc)
	if winner == nil {
		return nil, false
	}
	q.Remove(winner)
	return winner, true
}

func (lotteryPolicy) OnPartial(*Task) Placement { return PlaceRedraw }

func (lotteryPolicy) Ages() bool { return false }

// draw picks a ticket uniformly in [1, total] and returns the first runnable
// task whose cumulative ticket count reaches it.
func draw(tasks []*Task, rc *RunContext) *Task {
	total := 0
	for _, t := range tasks {
		if Runnable(t, rc.Completed) {
			total += t.Tickets
		}
	}
	if total == 0 {
		return nil
	}

	winning := rc.Rand.IntN(total) + 1
	cumulative := 0
	for _, t := range tasks {
		if !Runnable(t, rc.Completed) {
			continue
		}
		cumulative += t.Tickets
		if cumulative >= winning {
			return t
		}
	}
	return nil
}
