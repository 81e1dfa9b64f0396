package job

import (
	"fmt"
	"os"

	yaml "github.com/goccy/go-yaml"

	"mqsim/internal/sched"
)

// Spec describes one task in a scenario file.
type Spec struct {
	Name      string   `yaml:"name"`
	Priority  int      `yaml:"priority"`
	Burst     int      `yaml:"burst"`
	Tickets   int      `yaml:"tickets"`
	DependsOn []string `yaml:"depends_on"`
}

// Task builds a fresh scheduler task.
func (s Spec) Task() *sched.Task {
	return sched.NewTask(s.Name, s.Priority, s.Burst,
		sched.WithTickets(s.Tickets),
		sched.WithDependencies(s.DependsOn...))
}

// Workload is an ordered task list; order matters for FIFO disciplines.
type Workload []Spec

// Tasks builds new tasks every call, so each run gets its own copies.
func (w Workload) Tasks() []*sched.Task {
	tasks := make([]*sched.Task, len(w))
	for i, s := range w {
		tasks[i] = s.Task()
	}
	return tasks
}

// scenario is the task section of a scenario file. Scheduler keys in the
// same file are read by sched.Load.
type scenario struct {
	Preset string   `yaml:"preset"`
	Tasks  Workload `yaml:"tasks"`
}

// Load reads the workload of a scenario file: its inline tasks, or the named
// preset when no tasks are listed.
func Load(path string) (Workload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read workload: %w", err)
	}
	return Parse(data)
}

// Parse decodes the workload part of a scenario document.
func Parse(data []byte) (Workload, error) {
	var sc scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse workload: %w", err)
	}
	if len(sc.Tasks) > 0 {
		return sc.Tasks, nil
	}
	if sc.Preset == "" {
		return nil, fmt.Errorf("workload: scenario lists no tasks and no preset")
	}
	w, ok := Preset(sc.Preset)
	if !ok {
		return nil, fmt.Errorf("workload: unknown preset %q", sc.Preset)
	}
	return w, nil
}
