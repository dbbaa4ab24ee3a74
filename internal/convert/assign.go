package convert

import (
	"fmt"
	"reflect"

	"field-mapper/internal/resolve"
	"field-mapper/primitive"
)

// assignFunc stores src into the settable dst. The returned error is the
// cause of a coercion failure and is wrapped by the caller.
type assignFunc func(dst, src reflect.Value) error

func assignerFor(d resolve.Decision, from, to reflect.Type) (assignFunc, error) {
	switch d.Kind {
	case resolve.DecisionDirectCopy:
		return assignDirect, nil
	case resolve.DecisionNullableCoerce:
		switch d.Direction {
		case resolve.DirectionWrap:
			return assignWrap(to.Elem()), nil
		case resolve.DirectionUnwrap:
			return assignUnwrap, nil
		default:
			return nil, ErrUnknownDecision
		}
	case resolve.DecisionUnsafeCopy:
		if fn := unsafeAssigner(from, to); fn != nil {
			return fn, nil
		}

		return assignIncompatible, nil
	default:
		return nil, ErrUnknownDecision
	}
}

func assignDirect(dst, src reflect.Value) error {
	dst.Set(src)
	return nil
}

func assignWrap(elem reflect.Type) assignFunc {
	return func(dst, src reflect.Value) error {
		ptr := reflect.New(elem)
		ptr.Elem().Set(src)
		dst.Set(ptr)

		return nil
	}
}

// assignUnwrap is only reached with a non-nil source; nil sources are
// filtered out before the target is touched.
func assignUnwrap(dst, src reflect.Value) error {
	dst.Set(src.Elem())
	return nil
}

func assignIncompatible(reflect.Value, reflect.Value) error {
	return ErrIncompatibleRepresentation
}

func representable(from, to reflect.Type) bool {
	return unsafeAssigner(from, to) != nil
}

// unsafeAssigner returns the best-effort copy for two unrelated declared
// types, or nil when no representation-preserving copy exists.
func unsafeAssigner(from, to reflect.Type) assignFunc {
	switch {
	case from.AssignableTo(to):
		return assignDirect
	case from.Kind() == reflect.Interface:
		return assignBoxed(to)
	case primitive.Reinterpretable(from, to, primitive.CategoryAll), isTextual(from, to), isTextual(to, from):
		return func(dst, src reflect.Value) error {
			dst.Set(src.Convert(to))
			return nil
		}
	case from.Kind() == reflect.Ptr && to.Kind() == reflect.Ptr:
		elem := unsafeAssigner(from.Elem(), to.Elem())
		if elem == nil {
			return nil
		}

		return func(dst, src reflect.Value) error {
			if src.IsNil() {
				dst.SetZero()
				return nil
			}

			ptr := reflect.New(to.Elem())
			if err := elem(ptr.Elem(), src.Elem()); err != nil {
				return err
			}

			dst.Set(ptr)

			return nil
		}
	case from.Kind() == reflect.Ptr:
		elem := unsafeAssigner(from.Elem(), to)
		if elem == nil {
			return nil
		}

		return func(dst, src reflect.Value) error {
			if src.IsNil() {
				return ErrNilValue
			}

			return elem(dst, src.Elem())
		}
	case to.Kind() == reflect.Ptr:
		elem := unsafeAssigner(from, to.Elem())
		if elem == nil {
			return nil
		}

		return func(dst, src reflect.Value) error {
			ptr := reflect.New(to.Elem())
			if err := elem(ptr.Elem(), src); err != nil {
				return err
			}

			dst.Set(ptr)

			return nil
		}
	default:
		return nil
	}
}

// assignBoxed stores the dynamic value of an interface. The copy is chosen
// per call since the dynamic type is only known then.
func assignBoxed(to reflect.Type) assignFunc {
	return func(dst, src reflect.Value) error {
		if src.IsNil() {
			if isNilable(to) {
				dst.SetZero()
				return nil
			}

			return ErrNilValue
		}

		elem := src.Elem()

		fn := unsafeAssigner(elem.Type(), to)
		if fn == nil {
			return fmt.Errorf("%w: dynamic type %s", ErrIncompatibleRepresentation, elem.Type())
		}

		return fn(dst, elem)
	}
}

// isTextual reports whether from is a byte or rune slice and to is a string.
func isTextual(from, to reflect.Type) bool {
	if from.Kind() != reflect.Slice || to.Kind() != reflect.String {
		return false
	}

	switch from.Elem().Kind() {
	case reflect.Uint8, reflect.Int32:
		return from.ConvertibleTo(to)
	default:
		return false
	}
}

func isNilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return true
	default:
		return false
	}
}
