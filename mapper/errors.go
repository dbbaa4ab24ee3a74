package mapper

import "errors"

var (
	ErrNilSource        = errors.New("source is nil")
	ErrNotStruct        = errors.New("type is not a struct")
	ErrTargetNotPointer = errors.New("target must be a non-nil pointer to a struct")
	ErrMixedSequence    = errors.New("sequence elements have different types")
)
