package sched

// Task represents one unit of simulated work. The scheduler mutates it in
// place while it holds the task outside of any queue.
type Task struct {
	Name           string
	Priority       int      // higher value means higher priority
	BurstTime      int      // remaining units of work
	TotalBurstTime int      // burst time at construction, never changes
	WaitingTime    int      // full cycles spent without running
	Dependencies   []string // names that must complete before this task may run
	Tickets        int      // lottery weight
	Completed      bool

	seq int  // input position, the last tie-break of every ordering
	ran bool // executed since the last aging pass
}

// TaskOption configures optional Task fields.
type TaskOption func(*Task)

// WithDependencies sets the names of the tasks that must complete first.
func WithDependencies(names ...string) TaskOption {
	return func(t *Task) {
		t.Dependencies = append([]string(nil), names...)
	}
}

// WithTickets sets the lottery weight.
func WithTickets(n int) TaskOption {
	return func(t *Task) {
		t.Tickets = n
	}
}

// NewTask creates a task with its remaining and total burst set to burst.
// NOTE: no validation happens here; a Scheduler rejects bad tasks before the
// first event is emitted.
func NewTask(name string, priority, burst int, opts ...TaskOption) *Task {
	t := &Task{
		Name:           name,
		Priority:       priority,
		BurstTime:      burst,
		TotalBurstTime: burst,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Executed returns how many units the task has run so far.
func (t *Task) Executed() int {
	return t.TotalBurstTime - t.BurstTime
}

// Clone returns a deep copy so the same workload can be run more than once.
func (t *Task) Clone() *Task {
	c := *t
	c.Dependencies = append([]string(nil), t.Dependencies...)
	return &c
}

// CloneTasks deep-copies a task list.
func CloneTasks(tasks []*Task) []*Task {
	out := make([]*Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}

// consume runs the task for units and reports whether it finished.
func (t *Task) consume(units int) bool {
	t.BurstTime -= units
	t.WaitingTime = 0
	t.ran = true
	if t.BurstTime == 0 {
		t.Completed = true
	}
	return t.Completed
}
