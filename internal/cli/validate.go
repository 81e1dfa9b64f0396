package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"mqsim/internal/job"
	"mqsim/internal/sched"
)

func newValidateCmd() *cobra.Command {
	var sf scenarioFlags

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a scenario without running it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, w, err := sf.load()
			if err != nil {
				return err
			}
			tasks := w.Tasks()
			if err := sched.ValidateTasks(tasks); err != nil {
				return err
			}
			if cfg.Entry == sched.EntryBand && !cfg.DropUnassigned {
				policy, err := sched.NewPolicy(cfg.Discipline)
				if err != nil {
					return err
				}
				if _, err := sched.Partition(tasks, cfg.PriorityRanges, policy.NewQueue); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %s, %d tasks\n", cfg.Discipline, len(tasks))
			return nil
		},
	}

	sf.register(cmd)
	return cmd
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the built-in workloads",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range job.PresetNames() {
				w, _ := job.Preset(name)
				fmt.Fprintf(cmd.OutOrStdout(), "%-14s %d tasks\n", name, len(w))
			}
			return nil
		},
	}
}
