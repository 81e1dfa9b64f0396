package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"mqsim/internal/job"
	"mqsim/internal/sched"
)

// scenarioFlags are the flags shared by commands that build a run.
type scenarioFlags struct {
	file       string
	preset     string
	discipline string
	seed       uint64
}

func (f *scenarioFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "Scenario YAML (scheduler keys plus tasks or preset)")
	cmd.Flags().StringVarP(&f.preset, "preset", "p", "basic", "Built-in workload used when no file is given")
	cmd.Flags().StringVarP(&f.discipline, "discipline", "d", "", "Override the scenario's discipline")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "Override the lottery seed (0 keeps the scenario's)")
}

// exampleConfig is the three-band setup the presets were written for.
func exampleConfig() sched.Config {
	cfg := sched.DefaultConfig()
	cfg.PriorityRanges = []sched.Range{{Low: 1, High: 3}, {Low: 4, High: 6}, {Low: 7, High: 10}}
	cfg.QueueQuanta = []int{6, 8, 10}
	cfg.TaskQuantum = 4
	return cfg
}

// load resolves the scheduler config and workload from the flags.
func (f *scenarioFlags) load() (sched.Config, job.Workload, error) {
	var (
		cfg sched.Config
		w   job.Workload
		err error
	)
	if f.file != "" {
		if cfg, err = sched.Load(f.file); err != nil {
			return cfg, nil, err
		}
		if w, err = job.Load(f.file); err != nil {
			return cfg, nil, err
		}
	} else {
		cfg = exampleConfig()
		var ok bool
		if w, ok = job.Preset(f.preset); !ok {
			return cfg, nil, fmt.Errorf("unknown preset %q (see `mqsim presets`)", f.preset)
		}
	}

	if f.discipline != "" {
		cfg.Discipline = sched.Discipline(f.discipline)
	}
	if f.seed != 0 {
		cfg.Seed = f.seed
	}
	return cfg, w, cfg.Validate()
}
