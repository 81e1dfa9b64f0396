package trace

import (
	"encoding/csv"
	"io"
	"strconv"

	"mqsim/internal/sched"
)

// CSVSink writes one CSV record per event.
type CSVSink struct {
	w     *csv.Writer
	runID string
	err   error
}

// NewCSV writes the header to w and returns the sink. runID fills the first
// column so several runs can share one file.
func NewCSV(w io.Writer, runID string) *CSVSink {
	s := &CSVSink{w: csv.NewWriter(w), runID: runID}
	s.write([]string{"run_id", "time", "cycle", "event", "task", "queue", "units", "remaining", "completed", "priority"})
	return s
}

// Emit writes ev and flushes. The first write error is kept and later events
// are ignored.
func (s *CSVSink) Emit(ev sched.Event) {
	s.write([]string{
		s.runID,
		strconv.FormatInt(ev.Time, 10),
		strconv.Itoa(ev.Cycle),
		ev.Kind.String(),
		ev.Task,
		strconv.Itoa(ev.Queue),
		strconv.Itoa(ev.Units),
		strconv.Itoa(ev.Remaining),
		strconv.FormatBool(ev.Completed),
		strconv.Itoa(ev.Priority),
	})
}

func (s *CSVSink) write(rec []string) {
	if s.err != nil {
		return
	}
	if err := s.w.Write(rec); err != nil {
		s.err = err
		return
	}
	s.w.Flush()
	s.err = s.w.Error()
}

// Err returns the first write error.
func (s *CSVSink) Err() error { return s.err }
