package job

import "sort"

// presets are the classic task sets used to compare disciplines.
var presets = map[string]Workload{
	// five independent tasks spread over three priority bands
	"basic": {
		{Name: "Task1", Priority: 2, Burst: 10},
		{Name: "Task2", Priority: 5, Burst: 15},
		{Name: "Task3", Priority: 8, Burst: 7},
		{Name: "Task4", Priority: 4, Burst: 12},
		{Name: "Task5", Priority: 6, Burst: 6},
	},
	// Task4 waits on Task2 and Task3, which both wait on Task1
	"dependencies": {
		{Name: "Task1", Priority: 2, Burst: 10},
		{Name: "Task2", Priority: 8, Burst: 15, DependsOn: []string{"Task1"}},
		{Name: "Task3", Priority: 4, Burst: 5, DependsOn: []string{"Task1"}},
		{Name: "Task4", Priority: 6, Burst: 20, DependsOn: []string{"Task2", "Task3"}},
		{Name: "Task5", Priority: 5, Burst: 8},
	},
	"lottery": {
		{Name: "Task1", Priority: 1, Burst: 10, Tickets: 5},
		{Name: "Task2", Priority: 2, Burst: 15, Tickets: 10, DependsOn: []string{"Task1"}},
		{Name: "Task3", Priority: 3, Burst: 5, Tickets: 20, DependsOn: []string{"Task1"}},
		{Name: "Task4", Priority: 4, Burst: 20, Tickets: 8, DependsOn: []string{"Task2", "Task3"}},
		{Name: "Task5", Priority: 7, Burst: 8, Tickets: 12},
	},
	// long low-priority jobs mixed with short ones, for feedback queues
	"feedback": {
		{Name: "Task1", Priority: 2, Burst: 10},
		{Name: "Task2", Priority: 8, Burst: 20},
		{Name: "Task3", Priority: 4, Burst: 5},
		{Name: "Task4", Priority: 1, Burst: 15},
		{Name: "Task5", Priority: 5, Burst: 8},
	},
}

// Preset returns a copy of the named workload.
func Preset(name string) (Workload, bool) {
	w, ok := presets[name]
	if !ok {
		return nil, false
	}
	out := make(Workload, len(w))
	copy(out, w)
	return out, true
}

// PresetNames lists the presets in name order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
