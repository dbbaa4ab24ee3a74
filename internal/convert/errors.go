package convert

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrCoercion is matched by every *CoercionError.
	ErrCoercion = errors.New("unsafe coercion failed")
	// ErrConstruction is matched by every *ConstructionError.
	ErrConstruction = errors.New("converter construction failed")

	ErrIncompatibleRepresentation = errors.New("value representations are incompatible")
	ErrNilValue                   = errors.New("nil value cannot be dereferenced")
	ErrUnknownDecision            = errors.New("unknown decision kind")
	ErrBadIndex                   = errors.New("field index does not resolve")
	ErrNotStruct                  = errors.New("type is not a struct")

	ErrSourceType = errors.New("source value does not match converter source type")
	ErrTargetType = errors.New("target value does not match converter target type")
)

// CoercionError reports a field that could not be copied by an unsafe binding.
type CoercionError struct {
	Field string
	From  reflect.Type
	To    reflect.Type
	Err   error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("field %s: cannot coerce %s to %s: %v", e.Field, e.From, e.To, e.Err)
}

func (e *CoercionError) Unwrap() error {
	return e.Err
}

// Is matches ErrCoercion.
func (e *CoercionError) Is(target error) bool {
	return target == ErrCoercion
}

// ConstructionError reports a plan that could not be compiled.
type ConstructionError struct {
	Field string // empty when the whole type pair is rejected
	Err   error
}

func (e *ConstructionError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("build converter: %v", e.Err)
	}

	return fmt.Sprintf("build converter: field %s: %v", e.Field, e.Err)
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}

// Is matches ErrConstruction.
func (e *ConstructionError) Is(target error) bool {
	return target == ErrConstruction
}
