// Package tracking reports assembly run progress.
package tracking

// State is the lifecycle state of an assembly run.
type State string

// State values.
const (
	StateRunning   State = "running"
	StateCompleted State = "completed"
	StateFailed    State = "failed"
)

// IsTerminal returns true when no further updates follow.
func (s State) IsTerminal() bool {
	return s == StateCompleted || s == StateFailed
}

// Status is an immutable snapshot of one assembly run's progress.
// Transition methods return a modified copy.
type Status struct {
	runID   string
	total   int
	built   int
	failed  int
	current string
	state   State
	errMsg  string
}

// NewStatus creates a running Status for a batch of total constructs.
func NewStatus(runID string, total int) Status {
	return Status{
		runID: runID,
		total: total,
		state: StateRunning,
	}
}

// ID returns the run identifier.
func (s Status) ID() string { return s.runID }

// Total returns the number of constructs in the batch.
func (s Status) Total() int { return s.total }

// Built returns the number of successfully assembled constructs.
func (s Status) Built() int { return s.built }

// Failed returns the number of constructs that could not be assembled.
func (s Status) Failed() int { return s.failed }

// Current returns the name of the most recently processed construct.
func (s Status) Current() string { return s.current }

// State returns the run state.
func (s Status) State() State { return s.state }

// Error returns the failure reason for runs in StateFailed.
func (s Status) Error() string { return s.errMsg }

// Done returns the number of constructs processed so far.
func (s Status) Done() int { return s.built + s.failed }

// CompletionPercent returns progress through the batch as a percentage.
func (s Status) CompletionPercent() float64 {
	if s.total == 0 {
		return 0
	}
	return float64(s.built+s.failed) / float64(s.total) * 100
}

// RecordBuilt returns a copy with one more successfully built construct.
func (s Status) RecordBuilt(name string) Status {
	s.built++
	s.current = name
	return s
}

// RecordFailed returns a copy with one more failed construct.
func (s Status) RecordFailed(name string) Status {
	s.failed++
	s.current = name
	return s
}

// Complete returns a copy in StateCompleted.
func (s Status) Complete() Status {
	s.state = StateCompleted
	return s
}

// Fail returns a copy in StateFailed with the given reason.
func (s Status) Fail(reason string) Status {
	s.state = StateFailed
	s.errMsg = reason
	return s
}
