package sched

import (
	"cmp"
	"fmt"
	"math"
	"os"
	"slices"

	yaml "github.com/goccy/go-yaml"
)

// Unlimited disables a quantum ceiling.
const Unlimited = math.MaxInt

// Discipline selects the intra-queue policy.
type Discipline string

const (
	FCFS       Discipline = "fcfs"
	RoundRobin Discipline = "rr"
	SJF        Discipline = "sjf"
	STR        Discipline = "str"
	Lottery    Discipline = "lottery"
	Priority   Discipline = "priority"
	MLFQ       Discipline = "mlfq"
	SVR2       Discipline = "svr2"
)

// Disciplines lists every supported discipline.
func Disciplines() []Discipline {
	return []Discipline{FCFS, RoundRobin, SJF, STR, Lottery, Priority, MLFQ, SVR2}
}

// Direction is the order in which the loop visits queues. The first queue
// visited is the highest-priority one, and demotion moves a task toward the
// queue visited next.
type Direction string

const (
	Descending Direction = "descending" // last index first
	Ascending  Direction = "ascending"  // index 0 first
)

// Entry decides where tasks start.
type Entry string

const (
	EntryBand Entry = "band" // queue whose priority range holds the task
	EntryTop  Entry = "top"  // every task starts in the highest-priority queue
)

// Range is a closed priority interval [Low, High].
type Range struct {
	Low  int `yaml:"low"`
	High int `yaml:"high"`
}

// Contains reports whether p lies in the range.
func (r Range) Contains(p int) bool { return r.Low <= p && p <= r.High }

// UnmarshalYAML accepts both `[low, high]` and `{low: .., high: ..}`.
func (r *Range) UnmarshalYAML(unmarshal func(any) error) error {
	var pair []int
	if err := unmarshal(&pair); err == nil {
		if len(pair) != 2 {
			return fmt.Errorf("priority range needs 2 values, got %d", len(pair))
		}
		r.Low, r.High = pair[0], pair[1]
		return nil
	}
	type plain Range
	var p plain
	if err := unmarshal(&p); err != nil {
		return err
	}
	*r = Range(p)
	return nil
}

// Config mirrors the scheduler section of a scenario file.
type Config struct {
	Discipline     Discipline `yaml:"discipline"`
	PriorityRanges []Range    `yaml:"priority_ranges"` // nil = one queue over all priorities
	QueueQuanta    []int      `yaml:"queue_quanta"`    // empty = Unlimited for every queue
	TaskQuantum    int        `yaml:"task_quantum"`
	AgingThreshold int        `yaml:"aging_threshold"` // 0 disables aging
	AgingIncrement int        `yaml:"aging_increment"`
	Reinsert       bool       `yaml:"reinsert"` // false defers interrupted tasks to the end of the turn
	Direction      Direction  `yaml:"direction"`
	Entry          Entry      `yaml:"entry"`
	Seed           uint64     `yaml:"seed"`
	MaxCycles      int        `yaml:"max_cycles"` // 0 = no cap
	DropUnassigned bool       `yaml:"drop_unassigned"`
}

// DefaultConfig returns the settings used when a scenario leaves keys out.
func DefaultConfig() Config {
	return Config{
		Discipline:     FCFS,
		TaskQuantum:    Unlimited,
		AgingThreshold: 5,
		AgingIncrement: 1,
		Reinsert:       true,
		Direction:      Descending,
		Entry:          EntryBand,
	}
}

// Load reads YAML and overrides defaults; empty path = defaults only.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults, fills empty enum keys and validates
// the result. An explicit non-positive task_quantum is an error.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	// empty enum keys fall back to defaults
	if cfg.Direction == "" {
		cfg.Direction = Descending
	}
	if cfg.Entry == "" {
		cfg.Entry = EntryBand
	}
	if cfg.Discipline == "" {
		cfg.Discipline = FCFS
	}
	return cfg, cfg.Validate()
}

// Validate checks everything that can be checked without the task list.
func (c Config) Validate() error {
	if !slices.Contains(Disciplines(), c.Discipline) {
		return fmt.Errorf("%w: unknown discipline %q", ErrInvalidConfig, c.Discipline)
	}
	if c.Direction != Descending && c.Direction != Ascending {
		return fmt.Errorf("%w: unknown direction %q", ErrInvalidConfig, c.Direction)
	}
	if c.TaskQuantum <= 0 {
		return fmt.Errorf("%w: task_quantum must be positive, got %d", ErrInvalidConfig, c.TaskQuantum)
	}
	if c.AgingThreshold < 0 || c.AgingIncrement < 0 {
		return fmt.Errorf("%w: aging settings must not be negative", ErrInvalidConfig)
	}
	if c.MaxCycles < 0 {
		return fmt.Errorf("%w: max_cycles must not be negative", ErrInvalidConfig)
	}

	switch c.Entry {
	case EntryBand:
		if err := validateRanges(c.PriorityRanges); err != nil {
			return err
		}
	case EntryTop:
		if c.PriorityRanges != nil {
			return fmt.Errorf("%w: entry %q does not use priority_ranges", ErrInvalidConfig, c.Entry)
		}
		if len(c.QueueQuanta) == 0 {
			return fmt.Errorf("%w: entry %q needs queue_quanta to size the queues", ErrInvalidConfig, c.Entry)
		}
	default:
		return fmt.Errorf("%w: unknown entry %q", ErrInvalidConfig, c.Entry)
	}

	if len(c.QueueQuanta) > 0 && len(c.QueueQuanta) != c.queueCount() {
		return fmt.Errorf("%w: %d queue_quanta for %d queues", ErrInvalidConfig, len(c.QueueQuanta), c.queueCount())
	}
	for i, q := range c.QueueQuanta {
		if q <= 0 {
			return fmt.Errorf("%w: queue_quanta[%d] must be positive, got %d", ErrInvalidConfig, i, q)
		}
	}
	return nil
}

func validateRanges(ranges []Range) error {
	if ranges != nil && len(ranges) == 0 {
		return fmt.Errorf("%w: priority_ranges is empty", ErrInvalidConfig)
	}
	for i, r := range ranges {
		if r.Low > r.High {
			return fmt.Errorf("%w: priority_ranges[%d] low %d > high %d", ErrInvalidConfig, i, r.Low, r.High)
		}
	}
	sorted := slices.Clone(ranges)
	slices.SortFunc(sorted, func(a, b Range) int { return cmp.Compare(a.Low, b.Low) })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Low <= sorted[i-1].High {
			return fmt.Errorf("%w: priority ranges [%d,%d] and [%d,%d] overlap", ErrInvalidConfig,
				sorted[i-1].Low, sorted[i-1].High, sorted[i].Low, sorted[i].High)
		}
	}
	return nil
}

// queueCount is the number of queues a run will build.
func (c Config) queueCount() int {
	switch {
	case c.Entry == EntryTop:
		return len(c.QueueQuanta)
	case c.PriorityRanges == nil:
		return 1
	default:
		return len(c.PriorityRanges)
	}
}

// quantum returns the time budget of queue i.
func (c Config) quantum(i int) int {
	if len(c.QueueQuanta) == 0 {
		return Unlimited
	}
	return c.QueueQuanta[i]
}
