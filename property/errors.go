package property

import "fmt"

type constError string

func (e constError) Error() string { return string(e) }

// Validation failure reasons. Convert wraps them in a *ValidationError.
var (
	ErrNoTypeDefinition = constError("type definition must be set")
	ErrUnknownProperty  = constError("property is not valid for this type")
	ErrIDMismatch       = constError("property id mismatch")
	ErrNotMultiValued   = constError("not a multi value property")
	ErrNotSingleValued  = constError("not a single value property")
	ErrNullValue        = constError("contains null values")
	ErrInhomogeneous    = constError("values are inhomogeneous")
	ErrTypeMismatch     = constError("value does not match property type")
	ErrOutOfRange       = constError("value out of range")
	ErrUnsupportedType  = constError("unsupported property type")
)

// ValidationError names the property that failed and why.
type ValidationError struct {
	PropertyID string
	Err        error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("property %q: %v", e.PropertyID, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(id string, err error) error {
	return &ValidationError{PropertyID: id, Err: err}
}
