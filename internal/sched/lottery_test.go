package sched_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mqsim/internal/sched"
)

func lotteryConfig(seed uint64) sched.Config {
	cfg := sched.DefaultConfig()
	cfg.Discipline = sched.Lottery
	cfg.Seed = seed
	return cfg
}

func TestLottery_TicketShare(t *testing.T) {
	t.Parallel()

	// one unit per turn, so every turn is one independent draw
	cfg := lotteryConfig(11)
	cfg.QueueQuanta = []int{1}
	cfg.TaskQuantum = 1
	cfg.MaxCycles = 2000

	rec, res, err := simulate(t, cfg, []*sched.Task{
		sched.NewTask("A", 1, 2000, sched.WithTickets(1)),
		sched.NewTask("B", 1, 2000, sched.WithTickets(3)),
	})
	require.ErrorIs(t, err, sched.ErrCycleLimit)
	require.Equal(t, 2000, res.Events)

	wins := 0
	for _, ev := range rec.Runs() {
		if ev.Task == "B" {
			wins++
		}
	}
	assert.InDelta(t, 0.75, float64(wins)/float64(res.Events), 0.05)
}

func TestLottery_SameSeedSameTrace(t *testing.T) {
	t.Parallel()

	tasks := func() []*sched.Task {
		return []*sched.Task{
			sched.NewTask("A", 1, 6, sched.WithTickets(2)),
			sched.NewTask("B", 1, 6, sched.WithTickets(5)),
			sched.NewTask("C", 1, 6, sched.WithTickets(1)),
		}
	}
	cfg := lotteryConfig(99)
	cfg.QueueQuanta = []int{3}
	cfg.TaskQuantum = 1

	first, _, err := simulate(t, cfg, tasks())
	require.NoError(t, err)
	second, _, err := simulate(t, cfg, tasks())
	require.NoError(t, err)

	assert.Equal(t, steps(first.Runs()), steps(second.Runs()))
	assert.Len(t, first.Runs(), 18)
}

func TestLottery_DrawsOnlyRunnableTasks(t *testing.T) {
	t.Parallel()

	cfg := lotteryConfig(5)
	cfg.TaskQuantum = 1

	rec, res, err := simulate(t, cfg, []*sched.Task{
		sched.NewTask("late", 1, 4, sched.WithTickets(100), sched.WithDependencies("early")),
		sched.NewTask("early", 1, 4, sched.WithTickets(1)),
	})
	require.NoError(t, err)

	var order []string
	for _, ev := range rec.Runs() {
		order = append(order, ev.Task)
	}
	assert.Equal(t, []string{"early", "early", "early", "early", "late", "late", "late", "late"}, order)
	assert.Equal(t, []string{"early", "late"}, res.Completed)

	// draws skip blocked tasks instead of reporting them
	st, ok := rec.Stats("late")
	require.True(t, ok)
	assert.Zero(t, st.Blocked)
}
