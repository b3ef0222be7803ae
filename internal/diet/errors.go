package diet

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification of build failures. Every typed
// error below matches ErrInvalidInput and its own sentinel via errors.Is.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidCost  = errors.New("invalid cost")
	ErrInvalidBound = errors.New("invalid bound")
	ErrInvalidYield = errors.New("invalid yield")
)

// InvalidCostError reports a negative or non-finite unit cost.
type InvalidCostError struct {
	Good string
	Cost float64
}

func (e *InvalidCostError) Error() string {
	return fmt.Sprintf("good %q has invalid unit cost %v: cost must be finite and non-negative", e.Good, e.Cost)
}

func (e *InvalidCostError) Is(target error) bool {
	return target == ErrInvalidCost || target == ErrInvalidInput
}

// InvalidBoundError reports a bound on an undeclared attribute, a non-finite
// bound, or a minimum above its paired maximum.
type InvalidBoundError struct {
	Attribute string
	Reason    string
}

func (e *InvalidBoundError) Error() string {
	return fmt.Sprintf("attribute %q has an invalid bound: %s", e.Attribute, e.Reason)
}

func (e *InvalidBoundError) Is(target error) bool {
	return target == ErrInvalidBound || target == ErrInvalidInput
}

// InvalidYieldError reports a negative or non-finite yield entry.
type InvalidYieldError struct {
	Good      string
	Attribute string
	Yield     float64
}

func (e *InvalidYieldError) Error() string {
	return fmt.Sprintf("good %q has invalid %s yield %v: yield must be finite and non-negative", e.Good, e.Attribute, e.Yield)
}

func (e *InvalidYieldError) Is(target error) bool {
	return target == ErrInvalidYield || target == ErrInvalidInput
}

// InvalidInputError reports structural problems with identifiers.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return e.Reason
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ErrorKind returns a short classification of a build error, suitable for
// metric labels.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidCost):
		return "cost"
	case errors.Is(err, ErrInvalidBound):
		return "bound"
	case errors.Is(err, ErrInvalidYield):
		return "yield"
	case errors.Is(err, ErrInvalidInput):
		return "input"
	default:
		return "other"
	}
}
