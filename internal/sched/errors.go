package sched

import "errors"

var (
	// ErrInvalidConfig reports malformed ranges, quanta or aging settings.
	ErrInvalidConfig = errors.New("invalid scheduler config")
	// ErrInvalidTask reports a task with an empty name, non-positive burst or
	// negative tickets.
	ErrInvalidTask = errors.New("invalid task")
	// ErrUnassigned reports a task whose priority falls outside every range.
	ErrUnassigned = errors.New("task priority outside all ranges")
	// ErrDuplicateTask reports two tasks sharing a name.
	ErrDuplicateTask = errors.New("duplicate task name")
	// ErrUnknownDependency reports a dependency naming no task in the run.
	ErrUnknownDependency = errors.New("unknown dependency")
	// ErrDependencyCycle reports a dependency graph that is not acyclic.
	ErrDependencyCycle = errors.New("dependency cycle")
	// ErrStalled is returned when a full cycle executes nothing while tasks
	// remain queued. Nothing can become runnable after that.
	ErrStalled = errors.New("scheduler stalled")
	// ErrCycleLimit is returned when Config.MaxCycles is reached.
	ErrCycleLimit = errors.New("cycle limit reached")
)
