package contract

import (
	"fmt"
	"strings"
)

// RefViolation describes one dangling reference found during model
// building: which table and row holds it, which column, and what target
// id is missing.
type RefViolation struct {
	Table    string
	RowID    string
	Column   string
	TargetID string
	Reason   string
}

func (v RefViolation) String() string {
	if v.TargetID != "" {
		return fmt.Sprintf("%s[%s].%s -> %q: %s", v.Table, v.RowID, v.Column, v.TargetID, v.Reason)
	}
	return fmt.Sprintf("%s[%s].%s: %s", v.Table, v.RowID, v.Column, v.Reason)
}

// ReferentialError aggregates every dangling reference found in a
// snapshot so the user can fix the source data in one pass. It is fatal:
// a partial org chart is worse than no chart.
type ReferentialError struct {
	Violations []RefViolation
}

func (e *ReferentialError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "referential integrity: %d violation(s)", len(e.Violations))
	for _, v := range e.Violations {
		sb.WriteString("\n  - ")
		sb.WriteString(v.String())
	}
	return sb.String()
}

// Add records one violation.
func (e *ReferentialError) Add(v RefViolation) {
	e.Violations = append(e.Violations, v)
}

// OrNil returns the error when at least one violation was collected.
func (e *ReferentialError) OrNil() error {
	if len(e.Violations) == 0 {
		return nil
	}
	return e
}

// MalformedValueError reports a value that cannot be coerced to its
// expected type where no safe default exists. Fatal.
type MalformedValueError struct {
	Field  string
	Value  string
	Reason string
}

func (e *MalformedValueError) Error() string {
	return fmt.Sprintf("malformed value for %s (%q): %s", e.Field, e.Value, e.Reason)
}

// InvariantError reports an internal invariant failure during
// classification or layout. It marks a defect, never a data problem, and
// is never recovered.
type InvariantError struct {
	Stage  string
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("logic invariant violated in %s: %s", e.Stage, e.Detail)
}
