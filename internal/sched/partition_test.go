package sched_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mqsim/internal/sched"
)

func queueNames(q sched.Queue) []string {
	var out []string
	for _, t := range q.Tasks() {
		out = append(out, t.Name)
	}
	return out
}

func TestPartition(t *testing.T) {
	t.Parallel()

	fcfs, err := sched.NewPolicy(sched.FCFS)
	require.NoError(t, err)

	tasks := []*sched.Task{
		sched.NewTask("a", 2, 1),
		sched.NewTask("b", 8, 1),
		sched.NewTask("c", 3, 1),
		sched.NewTask("d", 5, 1),
		sched.NewTask("e", 1, 1),
	}

	t.Run("bands keep input order", func(t *testing.T) {
		queues, err := sched.Partition(tasks, []sched.Range{{Low: 1, High: 3}, {Low: 4, High: 6}, {Low: 7, High: 10}}, fcfs.NewQueue)
		require.NoError(t, err)
		require.Len(t, queues, 3)
		assert.Equal(t, []string{"a", "c", "e"}, queueNames(queues[0]))
		assert.Equal(t, []string{"d"}, queueNames(queues[1]))
		assert.Equal(t, []string{"b"}, queueNames(queues[2]))
	})

	t.Run("empty band still gets a queue", func(t *testing.T) {
		queues, err := sched.Partition(tasks, []sched.Range{{Low: 1, High: 8}, {Low: 20, High: 30}}, fcfs.NewQueue)
		require.NoError(t, err)
		require.Len(t, queues, 2)
		assert.Equal(t, 5, queues[0].Len())
		assert.Zero(t, queues[1].Len())
	})

	t.Run("nil ranges mean one queue", func(t *testing.T) {
		queues, err := sched.Partition(tasks, nil, fcfs.NewQueue)
		require.NoError(t, err)
		require.Len(t, queues, 1)
		assert.Equal(t, []string{"a", "b", "c", "d", "e"}, queueNames(queues[0]))
	})

	t.Run("uncovered priority", func(t *testing.T) {
		_, err := sched.Partition(tasks, []sched.Range{{Low: 1, High: 3}, {Low: 7, High: 10}}, fcfs.NewQueue)
		require.ErrorIs(t, err, sched.ErrUnassigned)
		assert.Contains(t, err.Error(), "d has priority 5")
	})

	t.Run("heap queues order by their comparator", func(t *testing.T) {
		priority, err := sched.NewPolicy(sched.Priority)
		require.NoError(t, err)
		queues, err := sched.Partition(tasks, nil, priority.NewQueue)
		require.NoError(t, err)

		var popped []string
		for queues[0].Len() > 0 {
			task, _ := queues[0].Pop()
			popped = append(popped, task.Name)
		}
		assert.Equal(t, []string{"b", "d", "c", "a", "e"}, popped)
	})
}

func TestSpanRange(t *testing.T) {
	t.Parallel()

	assert.Equal(t, sched.Range{}, sched.SpanRange(nil))
	assert.Equal(t, sched.Range{Low: -2, High: 9}, sched.SpanRange([]*sched.Task{
		sched.NewTask("a", 4, 1),
		sched.NewTask("b", 9, 1),
		sched.NewTask("c", -2, 1),
	}))
	assert.True(t, sched.Range{Low: 1, High: 3}.Contains(3))
	assert.False(t, sched.Range{Low: 1, High: 3}.Contains(4))
}
