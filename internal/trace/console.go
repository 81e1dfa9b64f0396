package trace

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"

	"mqsim/internal/sched"
)

var (
	runColor     = color.New(color.FgGreen)
	doneColor    = color.New(color.FgGreen, color.Bold)
	blockedColor = color.New(color.FgYellow)
	demoteColor  = color.New(color.FgBlue)
	ageColor     = color.New(color.FgMagenta)
)

// Console prints one line per event. Only run events are printed unless
// Verbose is set.
type Console struct {
	W       io.Writer
	Verbose bool
}

// Emit prints ev.
func (c Console) Emit(ev sched.Event) {
	if ev.Kind != sched.EventRun && !c.Verbose {
		return
	}

	// an auxiliary function to center the event kind in the output
	center := func(str string, width int) string {
		spaces := (width - len(str)) / 2
		return strings.Repeat(" ", spaces) + str + strings.Repeat(" ", width-(spaces+len(str)))
	}

	prefix := fmt.Sprintf("t=%06d c=%03d", ev.Time, ev.Cycle)
	switch ev.Kind {
	case sched.EventRun:
		if ev.Completed {
			doneColor.Fprintf(c.W, "%s [%s] Task %s (Queue %d) executed for %d units and completed\n",
				prefix, center("Done", 9), ev.Task, ev.Queue, ev.Units)
			return
		}
		runColor.Fprintf(c.W, "%s [%s] Task %s (Queue %d) executed for %d units, %d left\n",
			prefix, center(ev.Kind.String(), 9), ev.Task, ev.Queue, ev.Units, ev.Remaining)
	case sched.EventBlocked:
		blockedColor.Fprintf(c.W, "%s [%s] Task %s (Queue %d) cannot run due to unmet dependencies\n",
			prefix, center(ev.Kind.String(), 9), ev.Task, ev.Queue)
	case sched.EventDemote:
		demoteColor.Fprintf(c.W, "%s [%s] Task %s moved from Queue %d to Queue %d\n",
			prefix, center(ev.Kind.String(), 9), ev.Task, ev.Queue, ev.Target)
	case sched.EventAge:
		ageColor.Fprintf(c.W, "%s [%s] Task %s (Queue %d) priority raised to %d\n",
			prefix, center(ev.Kind.String(), 9), ev.Task, ev.Queue, ev.Priority)
	}
}

// LogSink forwards events to a structured logger at debug level.
type LogSink struct {
	Logger *slog.Logger
}

// Emit logs ev.
func (s LogSink) Emit(ev sched.Event) {
	s.Logger.Debug("scheduler event",
		"kind", ev.Kind.String(),
		"time", ev.Time,
		"cycle", ev.Cycle,
		"task", ev.Task,
		"queue", ev.Queue,
		"units", ev.Units,
		"remaining", ev.Remaining,
		"completed", ev.Completed)
}
