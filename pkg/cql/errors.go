package cql

import (
	"errors"
	"fmt"
)

// ErrFilter is the base error every rendering failure matches. Callers use
// errors.Is(err, cql.ErrFilter) to detect any error from this package and
// errors.As to pick out the specific kind.
var ErrFilter = errors.New("cql: filter error")

// InvalidConditionError reports a condition rendered while missing a required
// field. It is raised only at render time; constructors accept anything.
type InvalidConditionError struct {
	Op        Operator
	Missing   string
	Condition Condition
}

func (e *InvalidConditionError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("cql: invalid condition: missing %s", e.Missing)
	}
	return fmt.Sprintf("cql: invalid %s condition: missing %s", e.Op, e.Missing)
}

func (e *InvalidConditionError) Is(target error) bool { return target == ErrFilter }

// UnsupportedConditionError reports an operator tag the render dispatch has
// no rule for. Unreachable for conditions built through this package's
// constructors, but hand-built or foreign Condition values can trigger it.
type UnsupportedConditionError struct {
	Op        Operator
	Condition Condition
}

func (e *UnsupportedConditionError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("cql: unsupported condition type %T", e.Condition)
	}
	return fmt.Sprintf("cql: unsupported operator %q", e.Op)
}

func (e *UnsupportedConditionError) Is(target error) bool { return target == ErrFilter }

// SpatialError reports a geometry the geometry engine rejected during WKT
// conversion. Err carries the underlying parse failure.
type SpatialError struct {
	Op  Operator
	Err error
}

func (e *SpatialError) Error() string {
	return fmt.Sprintf("cql: spatial %s: %v", e.Op, e.Err)
}

func (e *SpatialError) Unwrap() error { return e.Err }

func (e *SpatialError) Is(target error) bool { return target == ErrFilter }
