package alloc

import "fmt"

// SchemaError reports an input table missing a required identifying
// column. It aborts the run immediately; there is no recovery inside the
// adapter.
type SchemaError struct {
	Table  string
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("table %s is missing required column %q", e.Table, e.Column)
}

// InfeasibleError reports that the constraint set admits no feasible
// point, most commonly because override floors sum past available supply.
// No partial allocation is fabricated.
type InfeasibleError struct {
	Status string
}

func (e *InfeasibleError) Error() string {
	return fmt.Sprintf("allocation problem is infeasible (solver status: %s)", e.Status)
}

// SolverFailureError reports that the solving engine errored out, hit its
// node limit or timed out. The run returns an empty result.
type SolverFailureError struct {
	Status string
	Err    error
}

func (e *SolverFailureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("solver failure (status: %s): %v", e.Status, e.Err)
	}
	return fmt.Sprintf("solver failure (status: %s)", e.Status)
}

func (e *SolverFailureError) Unwrap() error {
	return e.Err
}

// ConversionWarning records an input cell whose raw value could not be
// read as a non-negative number. The cell is treated as zero and the run
// proceeds; warnings are surfaced for the caller's visibility.
type ConversionWarning struct {
	Table  string
	Row    int
	Column string
	Value  string
}

func (w ConversionWarning) String() string {
	return fmt.Sprintf("table %s row %d column %q: value %q is not numeric, treated as zero",
		w.Table, w.Row, w.Column, w.Value)
}
