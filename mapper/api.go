package mapper

import (
	"fmt"
	"iter"
	"reflect"
	"slices"

	"field-mapper/internal/convert"
	"field-mapper/options"
)

// Map creates a T from src using the default Mapper.
// T is a struct type or a pointer to one.
func Map[T any](src any, flags ...options.Flag) (T, error) {
	return MapWith[T](Default(), src, flags...)
}

// MapUnsafe is Map with type conflicts ignored: every same-named field is
// bound, and values that cannot be coerced fail the call.
func MapUnsafe[T any](src any) (T, error) {
	return MapWith[T](Default(), src, options.IgnoreTypeConflicts)
}

// MapMany maps every element of seq using the default Mapper.
func MapMany[T, S any](seq iter.Seq[S], flags ...options.Flag) ([]T, error) {
	return MapManyWith[T](Default(), seq, flags...)
}

// MapSlice maps every element of src using the default Mapper.
func MapSlice[T, S any](src []S, flags ...options.Flag) ([]T, error) {
	return MapManyWith[T](Default(), slices.Values(src), flags...)
}

// CopyInto copies src into dst using the default Mapper.
func CopyInto(src, dst any, flags ...options.Flag) error {
	return Default().CopyInto(src, dst, flags...)
}

// CopyIntoIfNotNull copies the non-nil values of src into dst using the default Mapper.
func CopyIntoIfNotNull(src, dst any, flags ...options.Flag) error {
	return Default().CopyIntoIfNotNull(src, dst, flags...)
}

// MapWith creates a T from src using m.
func MapWith[T any](m *Mapper, src any, flags ...options.Flag) (T, error) {
	var zero T

	target, isPtr, err := targetOf[T]()
	if err != nil {
		return zero, err
	}

	out, err := m.MapValue(src, target, flags...)
	if err != nil {
		return zero, err
	}

	return unwrapResult[T](out, isPtr), nil
}

// MapManyWith maps every element of seq using m. The converter is resolved
// from the first element and reused; an element of another dynamic type
// fails with ErrMixedSequence. Order is preserved and empty input yields an
// empty slice.
func MapManyWith[T, S any](m *Mapper, seq iter.Seq[S], flags ...options.Flag) ([]T, error) {
	target, isPtr, err := targetOf[T]()
	if err != nil {
		return nil, err
	}

	f := m.createFlags(flags)
	out := make([]T, 0)

	var (
		conv *convert.Converter
		i    int
	)

	for s := range seq {
		sv, err := sourceValue(s)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}

		if conv == nil {
			conv, err = m.converter(sv.Type(), target, f)
			if err != nil {
				return nil, err
			}
		} else if sv.Type() != conv.Source() {
			return nil, fmt.Errorf("element %d: %w: %s after %s", i, ErrMixedSequence, sv.Type(), conv.Source())
		}

		v, err := conv.New(sv)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}

		out = append(out, unwrapResult[T](v, isPtr))
		i++
	}

	return out, nil
}

func targetOf[T any]() (reflect.Type, bool, error) {
	t := reflect.TypeFor[T]()

	isPtr := t.Kind() == reflect.Ptr
	if isPtr {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return nil, false, fmt.Errorf("%w: target %s", ErrNotStruct, reflect.TypeFor[T]())
	}

	return t, isPtr, nil
}

// unwrapResult turns the *Target produced by a converter into T.
func unwrapResult[T any](v reflect.Value, isPtr bool) T {
	if isPtr {
		return v.Interface().(T)
	}

	return v.Elem().Interface().(T)
}
