// internal/sched/scheduler.go

package sched

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/google/uuid"
)

// Scheduler runs one discipline over a task list and streams every decision
// to its sink. It holds configuration only, so one Scheduler can run many
// task lists; each Run builds its own queues and completed-set.
type Scheduler struct {
	cfg    Config
	policy Policy
	aging  Aging
	sink   Sink
	logger *slog.Logger
	runID  uuid.UUID
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithSink sets the event sink. Events are dropped without one.
func WithSink(sink Sink) Option {
	return func(s *Scheduler) {
		s.sink = sink
	}
}

// WithLogger sets the logger used for run lifecycle and debug output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = l
	}
}

// WithRunID fixes the id reported in Result instead of generating one.
func WithRunID(id uuid.UUID) Option {
	return func(s *Scheduler) {
		s.runID = id
	}
}

// Result summarizes a finished run.
type Result struct {
	RunID      uuid.UUID
	Discipline Discipline
	Cycles     int      // full traversals of the queue ring
	Elapsed    int64    // simulated units executed
	Events     int      // run events emitted
	Completed  []string // task names in completion order
	Dropped    []string // tasks left out by Config.DropUnassigned
}

// New validates cfg and creates a Scheduler for its discipline.
func New(cfg Config, opts ...Option) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	policy, err := NewPolicy(cfg.Discipline)
	if err != nil {
		return nil, err
	}

	s := &Scheduler{
		cfg:    cfg,
		policy: policy,
		sink:   discardSink{},
		logger: slog.New(slog.DiscardHandler),
	}
	if policy.Ages() {
		s.aging = Aging{Threshold: cfg.AgingThreshold, Increment: cfg.AgingIncrement}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Config returns the configuration the Scheduler was built with.
func (s *Scheduler) Config() Config { return s.cfg }

// Run partitions tasks and drives the loop until every queue is empty. The
// tasks are mutated in place; pass CloneTasks(tasks) to keep the originals.
// Configuration problems are reported before the first event.
func (s *Scheduler) Run(ctx context.Context, tasks []*Task) (Result, error) {
	if err := ValidateTasks(tasks); err != nil {
		return Result{}, err
	}

	queues, dropped, err := s.buildQueues(tasks)
	if err != nil {
		return Result{}, err
	}

	id := s.runID
	if id == uuid.Nil {
		id = uuid.New()
	}

	r := &run{
		Scheduler: s,
		queues:    queues,
		rc: &RunContext{
			Completed: NewCompleted(),
			Rand:      rand.New(rand.NewPCG(s.cfg.Seed, s.cfg.Seed)),
		},
		result: Result{RunID: id, Discipline: s.cfg.Discipline},
	}
	for _, t := range dropped {
		r.result.Dropped = append(r.result.Dropped, t.Name)
		s.logger.Warn("task dropped, priority outside all ranges", "task", t.Name, "priority", t.Priority)
	}

	s.logger.Info("run started",
		"run_id", id,
		"discipline", s.cfg.Discipline,
		"queues", len(queues),
		"tasks", len(tasks)-len(dropped))

	err = r.loop(ctx)
	r.result.Elapsed = r.clock.Now()

	if err != nil {
		s.logger.Error("run aborted", "run_id", id, "cycles", r.result.Cycles, "err", err)
		return r.result, err
	}
	s.logger.Info("run finished",
		"run_id", id,
		"cycles", r.result.Cycles,
		"elapsed", r.result.Elapsed,
		"events", r.result.Events)
	return r.result, nil
}

// buildQueues assigns sequence numbers and places tasks in their starting
// queues.
func (s *Scheduler) buildQueues(tasks []*Task) ([]Queue, []*Task, error) {
	for i, t := range tasks {
		t.seq = i
	}

	if s.cfg.Entry == EntryTop {
		queues := make([]Queue, s.cfg.queueCount())
		for i := range queues {
			queues[i] = s.policy.NewQueue()
		}
		top := s.first(len(queues))
		for _, t := range tasks {
			queues[top].Push(t)
		}
		return queues, nil, nil
	}

	queues, dropped := partition(tasks, s.cfg.PriorityRanges, s.policy.NewQueue)
	if len(dropped) == 0 {
		return queues, nil, nil
	}
	if !s.cfg.DropUnassigned {
		t := dropped[0]
		return nil, nil, fmt.Errorf("%w: %s has priority %d", ErrUnassigned, t.Name, t.Priority)
	}

	// Tasks depending on a dropped task could never run.
	kept := make([]*Task, 0, len(tasks)-len(dropped))
	for _, q := range queues {
		kept = append(kept, q.Tasks()...)
	}
	if err := ValidateDependencies(kept); err != nil {
		return nil, nil, err
	}
	return queues, dropped, nil
}

// first is the index of the queue visited first, the highest-priority one.
func (s *Scheduler) first(n int) int {
	if s.cfg.Direction == Ascending {
		return 0
	}
	return n - 1
}

// next returns the queue visited after i and whether the ring wrapped,
// which closes a full traversal.
func (s *Scheduler) next(i, n int) (int, bool) {
	if s.cfg.Direction == Ascending {
		if i+1 == n {
			return 0, true
		}
		return i + 1, false
	}
	if i == 0 {
		return n - 1, true
	}
	return i - 1, false
}

// lower returns the demotion target of queue i. It is false for the
// lowest-priority queue.
func (s *Scheduler) lower(i, n int) (int, bool) {
	if s.cfg.Direction == Ascending {
		return i + 1, i+1 < n
	}
	return i - 1, i > 0
}

// run is the state of one simulation. It is owned by a single Run call.
type run struct {
	*Scheduler
	queues []Queue
	rc     *RunContext
	clock  Clock
	result Result
}

// loop cycles over the queue ring until all queues are empty.
func (r *run) loop(ctx context.Context) error {
	n := len(r.queues)
	cur := r.first(n)
	executed := 0 // units run in the current traversal

	for !r.empty() {
		// 1) check shutdown
		if err := ctx.Err(); err != nil {
			return err
		}

		// 2) give the current queue its turn
		if r.queues[cur].Len() > 0 {
			executed += r.turn(cur)
		}

		// 3) advance, closing the traversal on wrap
		var wrapped bool
		cur, wrapped = r.next(cur, n)
		if !wrapped {
			continue
		}
		r.result.Cycles++
		if r.empty() {
			break
		}
		if executed == 0 {
			return fmt.Errorf("%w after %d cycles: %d tasks queued, none runnable", ErrStalled, r.result.Cycles, r.pending())
		}
		executed = 0

		r.aging.Apply(r.queues, func(q int, t *Task) {
			r.logger.Debug("task aged", "task", t.Name, "priority", t.Priority, "queue", q)
			r.emit(Event{
				Kind:      EventAge,
				Task:      t.Name,
				Queue:     q,
				Target:    q,
				Remaining: t.BurstTime,
				Priority:  t.Priority,
			})
		})

		if r.cfg.MaxCycles > 0 && r.result.Cycles >= r.cfg.MaxCycles {
			return fmt.Errorf("%w: %d cycles, %d tasks queued", ErrCycleLimit, r.result.Cycles, r.pending())
		}
	}
	return nil
}

// turn spends queue i's quantum and returns the units executed.
func (r *run) turn(i int) int {
	q := r.queues[i]
	r.policy.Prepare(q)

	remaining := r.cfg.quantum(i)
	executed := 0
	var deferred []*Task

	for remaining > 0 && q.Len() > 0 {
		t, ok := r.policy.Select(q, r.rc)
		if !ok {
			break
		}

		if !Runnable(t, r.rc.Completed) {
			r.logger.Debug("task blocked on dependencies", "task", t.Name, "queue", i)
			r.emit(Event{
				Kind:      EventBlocked,
				Task:      t.Name,
				Queue:     i,
				Remaining: t.BurstTime,
				Priority:  t.Priority,
			})
			deferred = append(deferred, t)
			continue
		}

		units := min(t.BurstTime, r.cfg.TaskQuantum, remaining)
		start := r.clock.Now()
		r.clock.Advance(units)
		remaining -= units
		executed += units
		done := t.consume(units)

		r.result.Events++
		r.emit(Event{
			Kind:      EventRun,
			Time:      start,
			Task:      t.Name,
			Queue:     i,
			Units:     units,
			Remaining: t.BurstTime,
			Completed: done,
			Priority:  t.Priority,
		})

		if done {
			r.rc.Completed.Add(t.Name)
			r.result.Completed = append(r.result.Completed, t.Name)
			continue
		}

		switch r.policy.OnPartial(t) {
		case PlaceRedraw:
			q.Push(t)
		case PlaceDemote:
			if j, ok := r.lower(i, len(r.queues)); ok {
				r.queues[j].Push(t)
				r.emit(Event{
					Kind:      EventDemote,
					Task:      t.Name,
					Queue:     i,
					Target:    j,
					Remaining: t.BurstTime,
					Priority:  t.Priority,
				})
				continue
			}
			fallthrough
		case PlaceRequeue:
			if r.cfg.Reinsert {
				q.Push(t)
			} else {
				deferred = append(deferred, t)
			}
		}
	}

	for _, t := range deferred {
		q.Push(t)
	}
	return executed
}

func (r *run) emit(ev Event) {
	if ev.Kind != EventRun {
		ev.Time = r.clock.Now()
	}
	ev.Cycle = r.result.Cycles
	r.sink.Emit(ev)
}

func (r *run) empty() bool {
	return r.pending() == 0
}

func (r *run) pending() int {
	n := 0
	for _, q := range r.queues {
		n += q.Len()
	}
	return n
}
