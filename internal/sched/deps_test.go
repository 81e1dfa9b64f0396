package sched_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mqsim/internal/sched"
)

func TestRunnable(t *testing.T) {
	t.Parallel()

	done := sched.NewCompleted()
	task := sched.NewTask("t", 1, 5, sched.WithDependencies("a", "b"))

	assert.False(t, sched.Runnable(task, done))
	done.Add("a")
	assert.False(t, sched.Runnable(task, done))
	done.Add("b")
	assert.True(t, sched.Runnable(task, done))
	assert.Equal(t, 2, done.Len())

	task.BurstTime = 0
	assert.False(t, sched.Runnable(task, done), "a finished task is never runnable")

	free := sched.NewTask("free", 1, 1)
	assert.True(t, sched.Runnable(free, sched.NewCompleted()))
}

func TestValidateTasks(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		tasks []*sched.Task
		want  error
	}{
		"empty name": {
			tasks: []*sched.Task{sched.NewTask("", 1, 1)},
			want:  sched.ErrInvalidTask,
		},
		"zero burst": {
			tasks: []*sched.Task{sched.NewTask("a", 1, 0)},
			want:  sched.ErrInvalidTask,
		},
		"negative tickets": {
			tasks: []*sched.Task{sched.NewTask("a", 1, 1, sched.WithTickets(-1))},
			want:  sched.ErrInvalidTask,
		},
		"duplicate name": {
			tasks: []*sched.Task{sched.NewTask("a", 1, 1), sched.NewTask("a", 2, 2)},
			want:  sched.ErrDuplicateTask,
		},
		"unknown dependency": {
			tasks: []*sched.Task{sched.NewTask("a", 1, 1, sched.WithDependencies("ghost"))},
			want:  sched.ErrUnknownDependency,
		},
		"self dependency": {
			tasks: []*sched.Task{sched.NewTask("a", 1, 1, sched.WithDependencies("a"))},
			want:  sched.ErrDependencyCycle,
		},
		"three task cycle": {
			tasks: []*sched.Task{
				sched.NewTask("a", 1, 1, sched.WithDependencies("c")),
				sched.NewTask("b", 1, 1, sched.WithDependencies("a")),
				sched.NewTask("c", 1, 1, sched.WithDependencies("b")),
				sched.NewTask("d", 1, 1),
			},
			want: sched.ErrDependencyCycle,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			require.ErrorIs(t, sched.ValidateTasks(tt.tasks), tt.want)
		})
	}

	t.Run("cycle members are named", func(t *testing.T) {
		t.Parallel()

		err := sched.ValidateDependencies([]*sched.Task{
			sched.NewTask("a", 1, 1, sched.WithDependencies("b")),
			sched.NewTask("b", 1, 1, sched.WithDependencies("a")),
			sched.NewTask("c", 1, 1, sched.WithDependencies("a")),
		})
		require.ErrorIs(t, err, sched.ErrDependencyCycle)
		assert.Contains(t, err.Error(), "a, b")
	})

	t.Run("diamond is acyclic", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, sched.ValidateTasks([]*sched.Task{
			sched.NewTask("root", 1, 1),
			sched.NewTask("left", 1, 1, sched.WithDependencies("root")),
			sched.NewTask("right", 1, 1, sched.WithDependencies("root", "root")),
			sched.NewTask("join", 1, 1, sched.WithDependencies("left", "right")),
		}))
	})
}
