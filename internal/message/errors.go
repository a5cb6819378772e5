package message

import "fmt"

// InvariantViolationError reports structurally valid fields whose values
// break the fragment-count relationship.
type InvariantViolationError struct {
	MinFragments   uint64
	TotalFragments uint64
}

func (e *InvariantViolationError) Error() string {
	if e.MinFragments == 0 {
		return "minFragments must be greater than zero"
	}
	return fmt.Sprintf("minFragments (%d) exceeds totalFragments (%d)", e.MinFragments, e.TotalFragments)
}

// TupleShapeError reports a DataArray slot holding a value of the wrong type.
type TupleShapeError struct {
	Index int
	Field string
	Want  string
	Got   any
}

func (e *TupleShapeError) Error() string {
	return fmt.Sprintf("slot %d (%s): want %s, got %T", e.Index, e.Field, e.Want, e.Got)
}
