package cli

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mqsim/internal/job"
	"mqsim/internal/sched"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCompareAll(t *testing.T) {
	w, ok := job.Preset("dependencies")
	require.True(t, ok)
	tasks := w.Tasks()

	rows, err := compareAll(context.Background(), exampleConfig(), tasks, 3)
	require.NoError(t, err)
	require.Len(t, rows, len(sched.Disciplines()))

	for i, row := range rows {
		assert.Equal(t, sched.Disciplines()[i], row.discipline)
		if row.discipline == sched.Lottery {
			// the preset carries no tickets
			require.ErrorIs(t, row.err, sched.ErrStalled)
			continue
		}
		require.NoError(t, row.err, row.discipline)
		assert.Equal(t, 5, row.summary.Tasks)
		assert.Equal(t, 58, row.summary.Executed)
		assert.Equal(t, int64(58), row.result.Elapsed)
	}

	// the caller's tasks are left untouched
	for _, task := range tasks {
		assert.Equal(t, task.TotalBurstTime, task.BurstTime)
	}

	var buf bytes.Buffer
	renderComparison(&buf, rows)
	assert.Contains(t, buf.String(), "svr2")
	assert.Contains(t, buf.String(), "lottery")
}

func TestRunCommand(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "events.csv")
	out, err := execute(t, "run", "--preset", "basic", "--discipline", "rr", "--csv", csvPath)
	require.NoError(t, err)

	assert.Contains(t, out, "Task Task3 (Queue 2) executed for 4 units, 3 left")
	assert.Contains(t, out, "rr: ")
	assert.Contains(t, out, "50 units")

	f, err := os.Open(csvPath)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Greater(t, len(records), 1)
	assert.Equal(t, "run_id", records[0][0])
}

func TestRunCommand_ScenarioFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
discipline: mlfq
priority_ranges: [[1, 5], [6, 10]]
queue_quanta: [10, 4]
task_quantum: 3
tasks:
  - {name: A, priority: 7, burst: 6}
  - {name: B, priority: 2, burst: 2}
`), 0o644))

	out, err := execute(t, "run", "-f", path, "-v")
	require.NoError(t, err)
	assert.Contains(t, out, "Task A moved from Queue 1 to Queue 0")
	assert.Contains(t, out, "mlfq: ")
}

func TestRunCommand_Errors(t *testing.T) {
	_, err := execute(t, "run", "--preset", "missing")
	require.ErrorContains(t, err, `unknown preset "missing"`)

	_, err = execute(t, "run", "--discipline", "edf")
	require.ErrorIs(t, err, sched.ErrInvalidConfig)

	_, err = execute(t, "run", "--discipline", "lottery", "-q")
	require.ErrorIs(t, err, sched.ErrStalled)
}

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, "validate", "--preset", "dependencies", "--discipline", "svr2")
	require.NoError(t, err)
	assert.Equal(t, "ok: svr2, 5 tasks\n", out)

	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
priority_ranges: [[1, 3]]
tasks:
  - {name: A, priority: 9, burst: 1}
`), 0o644))
	_, err = execute(t, "validate", "-f", path)
	require.ErrorIs(t, err, sched.ErrUnassigned)
}

func TestPresetsCommand(t *testing.T) {
	out, err := execute(t, "presets")
	require.NoError(t, err)
	for _, name := range job.PresetNames() {
		assert.Contains(t, out, name)
	}
}
