package tag

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrTargetMustBePointer = errors.New("target must be a non-nil pointer to a struct")
	ErrUnsupportedType     = errors.New("unsupported type")
	ErrMaxDepthExceeded    = errors.New("max recursion depth exceeded")
)

// FieldError reports the field a default could not be applied to
type FieldError struct {
	Path  string
	Kind  reflect.Kind
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("default for %s (%s) %q: %v", e.Path, e.Kind, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
