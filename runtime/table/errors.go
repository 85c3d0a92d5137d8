package table

import (
	"errors"
	"fmt"

	"github.com/tablekit/tablekit/query/predicate"
)

// Error kinds for table operations.
var (
	// ErrInvalidArgument is returned when a caller-supplied value
	// violates a precondition, before any statement is issued.
	ErrInvalidArgument = predicate.ErrInvalidArgument

	// ErrInvariantViolation is returned when a single-row query matched
	// an unexpected number of rows.
	ErrInvariantViolation = errors.New("result cardinality invariant violated")
)

// DataAccessError wraps a failure reported by the underlying connection.
// The original error is preserved and never retried.
type DataAccessError struct {
	Op    string
	Table string
	Cause error
}

// Error implements the error interface.
func (e *DataAccessError) Error() string {
	return fmt.Sprintf("%s on %s: %v", e.Op, e.Table, e.Cause)
}

// Unwrap returns the underlying error.
func (e *DataAccessError) Unwrap() error {
	return e.Cause
}

// IsInvalidArgument checks if an error is a precondition failure.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsInvariantViolation checks if an error is a cardinality failure.
func IsInvariantViolation(err error) bool {
	return errors.Is(err, ErrInvariantViolation)
}

// IsDataAccess checks if an error came from the underlying connection.
func IsDataAccess(err error) bool {
	var dae *DataAccessError
	return errors.As(err, &dae)
}

func (t *Table) dataErr(op string, err error) error {
	return &DataAccessError{Op: op, Table: t.name, Cause: err}
}
