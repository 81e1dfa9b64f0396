// internal/sched/event.go

package sched

// EventKind represents the type of scheduler event
type EventKind int

const (
	EventRun     EventKind = iota // a task executed for Units
	EventBlocked                  // a task was skipped because of unmet dependencies
	EventDemote                   // a task moved to a lower-priority queue
	EventAge                      // aging raised a task's priority
)

// Event is emitted on every scheduling decision. Run events form the
// execution trace; the other kinds explain it.
type Event struct {
	Kind      EventKind
	Time      int64  // simulated clock when the decision was taken
	Cycle     int    // full traversals completed before this event
	Task      string // task name
	Queue     int    // queue index the task was taken from
	Units     int    // units executed (EventRun)
	Remaining int    // burst time left after the event
	Completed bool   // EventRun finished the task
	Target    int    // destination queue (EventDemote)
	Priority  int    // priority after the event
}

func (k EventKind) String() string {
	switch k {
	case EventRun:
		return "Run"
	case EventBlocked:
		return "Blocked"
	case EventDemote:
		return "Demote"
	case EventAge:
		return "Age"
	default:
		return "Unknown"
	}
}

// Sink receives events in the order the loop decides them.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

func (f SinkFunc) Emit(ev Event) { f(ev) }

// MultiSink fans every event out to each sink in order.
type MultiSink []Sink

func (m MultiSink) Emit(ev Event) {
	for _, s := range m {
		s.Emit(ev)
	}
}

type discardSink struct{}

func (discardSink) Emit(Event) {}
