// Package trace turns the scheduler's event stream into something a person
// or a test can read: an in-memory recorder with per-task accounting, a CSV
// writer, a colored console printer and a slog adapter.
package trace

import (
	"github.com/emirpasic/gods/trees/redblacktree"

	"mqsim/internal/sched"
)

// TaskStats is the per-task ledger built from events.
type TaskStats struct {
	Name       string
	Queue      int   // queue of the last event seen
	Executed   int   // units run
	Runs       int   // run events
	Blocked    int   // times skipped on dependencies
	Demotions  int
	Promotions int   // aging steps
	FirstRun   int64 // simulated time of the first run, -1 before it
	Finish     int64 // simulated time the task completed
	Completed  bool
	Priority   int // priority after the last event
}

// Turnaround is the completion time. Every task arrives at time zero.
func (s TaskStats) Turnaround() int64 { return s.Finish }

// Waiting is the time the task spent queued without running.
func (s TaskStats) Waiting() int64 { return s.Finish - int64(s.Executed) }

// Recorder keeps every event and a running ledger per task. It is a
// sched.Sink.
type Recorder struct {
	events   []sched.Event
	tasks    map[string]*TaskStats
	order    []string           // task names in first-seen order
	finished *redblacktree.Tree // finishKey -> *TaskStats
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		tasks:    make(map[string]*TaskStats),
		finished: redblacktree.NewWith(cmp),
	}
}

// Emit records ev.
func (r *Recorder) Emit(ev sched.Event) {
	r.events = append(r.events, ev)

	st := r.stats(ev.Task)
	st.Queue = ev.Queue
	st.Priority = ev.Priority

	switch ev.Kind {
	case sched.EventRun:
		if st.Runs == 0 {
			st.FirstRun = ev.Time
		}
		st.Runs++
		st.Executed += ev.Units
		if ev.Completed {
			st.Completed = true
			st.Finish = ev.Time + int64(ev.Units)
			r.finished.Put(finishKey{finish: st.Finish, name: st.Name}, st)
		}
	case sched.EventBlocked:
		st.Blocked++
	case sched.EventDemote:
		st.Demotions++
		st.Queue = ev.Target
	case sched.EventAge:
		st.Promotions++
	}
}

func (r *Recorder) stats(name string) *TaskStats {
	st, ok := r.tasks[name]
	if !ok {
		st = &TaskStats{Name: name, FirstRun: -1}
		r.tasks[name] = st
		r.order = append(r.order, name)
	}
	return st
}

// Events returns every recorded event.
func (r *Recorder) Events() []sched.Event { return r.events }

// Runs returns only the execution events, the trace proper.
func (r *Recorder) Runs() []sched.Event {
	var out []sched.Event
	for _, ev := range r.events {
		if ev.Kind == sched.EventRun {
			out = append(out, ev)
		}
	}
	return out
}

// Stats returns the ledger of one task.
func (r *Recorder) Stats(name string) (TaskStats, bool) {
	st, ok := r.tasks[name]
	if !ok {
		return TaskStats{}, false
	}
	return *st, true
}

// All returns every ledger in the order tasks first appeared.
func (r *Recorder) All() []TaskStats {
	out := make([]TaskStats, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, *r.tasks[name])
	}
	return out
}

// Finished returns completed tasks ordered by completion time, then name.
func (r *Recorder) Finished() []TaskStats {
	out := make([]TaskStats, 0, r.finished.Size())
	it := r.finished.Iterator()
	for it.Next() {
		out = append(out, *it.Value().(*TaskStats))
	}
	return out
}

// Executed returns the total units run across all tasks.
func (r *Recorder) Executed() int {
	total := 0
	for _, st := range r.tasks {
		total += st.Executed
	}
	return total
}

// Summary aggregates the completed tasks of a run.
type Summary struct {
	Tasks         int
	Executed      int
	Makespan      int64
	AvgTurnaround float64
	AvgWaiting    float64
	AvgResponse   float64
}

// Summary computes averages over completed tasks.
func (r *Recorder) Summary() Summary {
	done := r.Finished()
	s := Summary{Tasks: len(done), Executed: r.Executed()}
	if len(done) == 0 {
		return s
	}
	var turnaround, waiting, response int64
	for _, st := range done {
		turnaround += st.Turnaround()
		waiting += st.Waiting()
		response += st.FirstRun
		s.Makespan = max(s.Makespan, st.Finish)
	}
	n := float64(len(done))
	s.AvgTurnaround = float64(turnaround) / n
	s.AvgWaiting = float64(waiting) / n
	s.AvgResponse = float64(response) / n
	return s
}

// finishKey is used as a key in the red-black tree.
type finishKey struct {
	finish int64
	name   string
}

// cmp orders finishKeys by completion time, then name.
func cmp(a, b any) int {
	ka, kb := a.(finishKey), b.(finishKey)
	switch {
	case ka.finish < kb.finish:
		return -1
	case ka.finish > kb.finish:
		return 1
	case ka.name < kb.name:
		return -1
	case ka.name > kb.name:
		return 1
	default:
		return 0
	}
}
