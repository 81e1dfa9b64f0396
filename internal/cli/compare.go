package cli

import (
	"context"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"mqsim/internal/sched"
	"mqsim/internal/trace"
)

// comparison is one discipline's outcome.
type comparison struct {
	discipline sched.Discipline
	result     sched.Result
	summary    trace.Summary
	err        error
}

func newCompareCmd() *cobra.Command {
	var (
		sf       scenarioFlags
		parallel int
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run every discipline on the same workload and compare them",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, w, err := sf.load()
			if err != nil {
				return err
			}
			rows, err := compareAll(cmd.Context(), cfg, w.Tasks(), parallel)
			if err != nil {
				return err
			}
			renderComparison(cmd.OutOrStdout(), rows)
			return nil
		},
	}

	sf.register(cmd)
	cmd.Flags().IntVar(&parallel, "parallel", runtime.NumCPU(), "Disciplines simulated at once")
	return cmd
}

// compareAll runs each discipline on its own copy of tasks. Runs share no
// state, so they are simulated concurrently. A discipline that fails (for
// example a lottery over zero tickets) is reported in its row, not returned.
func compareAll(ctx context.Context, base sched.Config, tasks []*sched.Task, parallel int) ([]comparison, error) {
	disciplines := sched.Disciplines()
	rows := make([]comparison, len(disciplines))

	g, ctx := errgroup.WithContext(ctx)
	if parallel > 0 {
		g.SetLimit(parallel)
	}

	for i, d := range disciplines {
		cfg := base
		cfg.Discipline = d
		g.Go(func() error {
			rec := trace.NewRecorder()
			s, err := sched.New(cfg, sched.WithSink(rec), sched.WithLogger(logger))
			if err != nil {
				return fmt.Errorf("%s: %w", d, err)
			}
			res, err := s.Run(ctx, sched.CloneTasks(tasks))
			if ctx.Err() != nil {
				return ctx.Err()
			}
			rows[i] = comparison{discipline: d, result: res, summary: rec.Summary(), err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}
