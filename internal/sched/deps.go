package sched

import (
	"fmt"
	"sort"
	"strings"

	"github.com/emirpasic/gods/sets/hashset"
)

// Completed is the run-scoped set of finished task names. It only grows
// during a run.
type Completed struct {
	set *hashset.Set
}

// NewCompleted returns an empty set.
func NewCompleted() *Completed {
	return &Completed{set: hashset.New()}
}

func (c *Completed) Add(name string) { c.set.Add(name) }

func (c *Completed) Has(name string) bool { return c.set.Contains(name) }

func (c *Completed) Len() int { return c.set.Size() }

// Runnable reports whether t may be selected: it has work left and every
// dependency has completed.
func Runnable(t *Task, done *Completed) bool {
	if t.BurstTime <= 0 {
		return false
	}
	for _, dep := range t.Dependencies {
		if !done.Has(dep) {
			return false
		}
	}
	return true
}

// ValidateTasks rejects task lists the loop could not finish: empty or
// duplicate names, non-positive bursts, negative tickets, dependencies on
// unknown tasks and dependency cycles.
func ValidateTasks(tasks []*Task) error {
	names := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		switch {
		case t.Name == "":
			return fmt.Errorf("%w: empty name", ErrInvalidTask)
		case t.BurstTime <= 0 || t.BurstTime > t.TotalBurstTime:
			return fmt.Errorf("%w: %s has burst %d of %d", ErrInvalidTask, t.Name, t.BurstTime, t.TotalBurstTime)
		case t.Tickets < 0:
			return fmt.Errorf("%w: %s has %d tickets", ErrInvalidTask, t.Name, t.Tickets)
		case names[t.Name]:
			return fmt.Errorf("%w: %s", ErrDuplicateTask, t.Name)
		}
		names[t.Name] = true
	}
	return ValidateDependencies(tasks)
}

// ValidateDependencies checks that every dependency names a task in the list
// and that the graph is acyclic. It uses Kahn's algorithm; the tasks left
// with a non-zero in-degree are reported as the cycle.
func ValidateDependencies(tasks []*Task) error {
	forward := make(map[string][]string, len(tasks))
	inDegree := make(map[string]int, len(tasks))
	for _, t := range tasks {
		inDegree[t.Name] = 0
	}

	for _, t := range tasks {
		seen := make(map[string]bool)
		for _, dep := range t.Dependencies {
			if dep == t.Name {
				return fmt.Errorf("%w: %s depends on itself", ErrDependencyCycle, t.Name)
			}
			if _, ok := inDegree[dep]; !ok {
				return fmt.Errorf("%w: %s depends on %s", ErrUnknownDependency, t.Name, dep)
			}
			if seen[dep] {
				continue
			}
			seen[dep] = true
			forward[dep] = append(forward[dep], t.Name)
			inDegree[t.Name]++
		}
	}

	var queue []string
	for name, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, name)
		}
	}

	visited := 0
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		visited++
		for _, succ := range forward[node] {
			inDegree[succ]--
			if inDegree[succ] == 0 {
				queue = append(queue, succ)
			}
		}
	}

	if visited != len(inDegree) {
		var cycle []string
		for name, deg := range inDegree {
			if deg > 0 {
				cycle = append(cycle, name)
			}
		}
		sort.Strings(cycle)
		return fmt.Errorf("%w involving tasks: %s", ErrDependencyCycle, strings.Join(cycle, ", "))
	}
	return nil
}
