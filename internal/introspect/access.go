package introspect

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrNotAddressable = errors.New("target struct is not addressable")
	ErrNilEmbedded    = errors.New("embedded pointer is nil and cannot be allocated")
)

// ValueOf reads the field from root, a struct value of the described type.
// ok is false when an embedded pointer on the path is nil.
func (f *FieldDescriptor) ValueOf(root reflect.Value) (reflect.Value, bool) {
	v, err := root.FieldByIndexErr(f.Index)
	if err != nil {
		return reflect.Value{}, false
	}

	return v, true
}

// Target returns the settable field inside root, an addressable struct value
// of the described type. Nil embedded pointers on the path are allocated.
func (f *FieldDescriptor) Target(root reflect.Value) (reflect.Value, error) {
	if !root.CanAddr() {
		return reflect.Value{}, fmt.Errorf("field %s: %w", f.Name, ErrNotAddressable)
	}

	v := root
	for i, x := range f.Index {
		if i > 0 && v.Kind() == reflect.Ptr {
			if v.IsNil() {
				if !v.CanSet() {
					return reflect.Value{}, fmt.Errorf("field %s: %w", f.Name, ErrNilEmbedded)
				}

				v.Set(reflect.New(v.Type().Elem()))
			}

			v = v.Elem()
		}

		v = v.Field(x)
	}

	if !v.CanSet() {
		return reflect.Value{}, fmt.Errorf("field %s: %w", f.Name, ErrNotAddressable)
	}

	return v, nil
}
