package cli

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"mqsim/internal/trace"
)

// renderTasks prints the per-task ledger in completion order, then any task
// that never finished.
func renderTasks(w io.Writer, rec *trace.Recorder) {
	table := tablewriter.NewWriter(w)
	table.Header("Task", "Queue", "Priority", "Executed", "Runs", "Blocked", "Demoted", "Aged", "First run", "Finish")

	seen := make(map[string]bool)
	for _, st := range rec.Finished() {
		seen[st.Name] = true
		_ = table.Append(taskRow(st, fmt.Sprint(st.Finish))...)
	}
	for _, st := range rec.All() {
		if !seen[st.Name] {
			_ = table.Append(taskRow(st, "-")...)
		}
	}
	_ = table.Render()
}

func taskRow(st trace.TaskStats, finish string) []any {
	first := "-"
	if st.FirstRun >= 0 {
		first = fmt.Sprint(st.FirstRun)
	}
	return []any{st.Name, st.Queue, st.Priority, st.Executed, st.Runs, st.Blocked, st.Demotions, st.Promotions, first, finish}
}

func renderComparison(w io.Writer, rows []comparison) {
	table := tablewriter.NewWriter(w)
	table.Header("Discipline", "Tasks", "Units", "Makespan", "Cycles", "Avg turnaround", "Avg waiting", "Avg response", "Status")

	for _, r := range rows {
		status := "ok"
		if r.err != nil {
			status = r.err.Error()
		}
		_ = table.Append(
			string(r.discipline),
			r.summary.Tasks,
			r.summary.Executed,
			r.summary.Makespan,
			r.result.Cycles,
			fmt.Sprintf("%.2f", r.summary.AvgTurnaround),
			fmt.Sprintf("%.2f", r.summary.AvgWaiting),
			fmt.Sprintf("%.2f", r.summary.AvgResponse),
			status,
		)
	}
	_ = table.Render()
}
