package cli

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"mqsim/internal/sched"
	"mqsim/internal/trace"
)

func newRunCmd() *cobra.Command {
	var (
		sf      scenarioFlags
		csvPath string
		verbose bool
		quiet   bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one discipline and print its execution trace",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, w, err := sf.load()
			if err != nil {
				return err
			}

			id := uuid.New()
			rec := trace.NewRecorder()
			sinks := sched.MultiSink{rec, trace.LogSink{Logger: logger}}
			if !quiet {
				sinks = append(sinks, trace.Console{W: cmd.OutOrStdout(), Verbose: verbose})
			}

			var csvSink *trace.CSVSink
			if csvPath != "" {
				f, err := os.Create(csvPath)
				if err != nil {
					return fmt.Errorf("create csv: %w", err)
				}
				defer f.Close()
				csvSink = trace.NewCSV(f, id.String())
				sinks = append(sinks, csvSink)
			}

			s, err := sched.New(cfg, sched.WithSink(sinks), sched.WithLogger(logger), sched.WithRunID(id))
			if err != nil {
				return err
			}

			res, runErr := s.Run(cmd.Context(), w.Tasks())
			fmt.Fprintf(cmd.OutOrStdout(), "\n%s: %d cycles, %d units, %d run events (run %s)\n",
				res.Discipline, res.Cycles, res.Elapsed, res.Events, res.RunID)
			renderTasks(cmd.OutOrStdout(), rec)

			if csvSink != nil && csvSink.Err() != nil {
				return fmt.Errorf("write csv: %w", csvSink.Err())
			}
			return runErr
		},
	}

	sf.register(cmd)
	cmd.Flags().StringVar(&csvPath, "csv", "", "Also write every event to this CSV file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print blocked, demote and age events too")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print the summary table")
	return cmd
}
