package colors

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is wrapped by ValidationError when a component falls
	// outside its declared range or is not a finite number.
	ErrOutOfRange = errors.New("component out of range")
	// ErrMalformedHex is wrapped by ValidationError when a hex string is not
	// of the form #RRGGBB.
	ErrMalformedHex = errors.New("malformed hex color")
	// ErrTypeMismatch matches every TypeMismatchError.
	ErrTypeMismatch = errors.New("color type mismatch")
)

// ValidationError reports a component or input that cannot form a color.
type ValidationError struct {
	Model Model
	// Field names the offending component ("r", "h", "L", ...). It is empty
	// when the whole input was rejected, e.g. a malformed hex string.
	Field string
	Value float64
	Min   float64
	Max   float64
	// Input holds the raw text for parse failures.
	Input string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Input != "" {
		return fmt.Sprintf("%s: invalid input %q: %v", e.Model, e.Input, e.Err)
	}
	return fmt.Sprintf("%s: invalid %s value %g not in [%g, %g]", e.Model, e.Field, e.Value, e.Min, e.Max)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// TypeMismatchError is returned by the dynamic helpers when two values of
// different models are compared.
type TypeMismatchError struct {
	Op    string
	Left  Model
	Right Model
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: cannot compare %s with %s", e.Op, e.Left, e.Right)
}

func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}
