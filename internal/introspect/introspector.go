package introspect

import (
	"reflect"
	"slices"
	"sort"
	"sync"
	"sync/atomic"
)

// Introspector builds and caches TypeDescriptors.
// Descriptors are created lazily and never evicted.
type Introspector struct {
	cache sync.Map // reflect.Type -> *TypeDescriptor
	walks atomic.Int64
}

// New creates an empty Introspector.
func New() *Introspector {
	return &Introspector{}
}

// Describe returns the descriptor of t. Pointer types are described by their
// element type. Non-struct types yield an empty descriptor.
func (in *Introspector) Describe(t reflect.Type) *TypeDescriptor {
	t = derefType(t)
	if t == nil {
		return &TypeDescriptor{Fields: map[string]*FieldDescriptor{}}
	}

	if cached, ok := in.cache.Load(t); ok {
		return cached.(*TypeDescriptor)
	}

	in.walks.Add(1)

	actual, _ := in.cache.LoadOrStore(t, describe(t))
	return actual.(*TypeDescriptor)
}

// Walks returns how many times a type was actually walked (cache misses).
func (in *Introspector) Walks() int64 {
	return in.walks.Load()
}

func derefType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	return t
}

type candidate struct {
	field *FieldDescriptor
	count int // declarations seen at field.Depth
}

// describe walks the struct and its embedded structs. A field declared at a
// shallower depth hides deeper declarations of the same name; two
// declarations at the same shallowest depth hide each other.
func describe(t reflect.Type) *TypeDescriptor {
	desc := &TypeDescriptor{
		ID:     TypeIDOf(t),
		Type:   t,
		Fields: make(map[string]*FieldDescriptor),
	}

	if t.Kind() != reflect.Struct {
		return desc
	}

	found := make(map[string]*candidate)
	visiting := map[reflect.Type]struct{}{t: {}}

	var walk func(st reflect.Type, index []int, depth int, hidden bool)
	walk = func(st reflect.Type, index []int, depth int, hidden bool) {
		for i := range st.NumField() {
			sf := st.Field(i)
			path := append(slices.Clone(index), i)

			if sf.Anonymous {
				inner, isPtr := sf.Type, false
				if inner.Kind() == reflect.Ptr {
					inner, isPtr = inner.Elem(), true
				}

				if inner.Kind() == reflect.Struct {
					if _, cyclic := visiting[inner]; cyclic {
						continue
					}

					visiting[inner] = struct{}{}
					walk(inner, path, depth+1, hidden || (isPtr && !sf.IsExported()))
					delete(visiting, inner)

					continue
				}
			}

			if !sf.IsExported() {
				continue
			}

			c, seen := found[sf.Name]
			switch {
			case !seen || depth < c.field.Depth:
				found[sf.Name] = &candidate{field: newFieldDescriptor(sf, path, depth, hidden), count: 1}
			case depth == c.field.Depth:
				c.count++
			}
		}
	}

	walk(t, nil, 0, false)

	for name, c := range found {
		if c.count > 1 {
			desc.Ambiguous = append(desc.Ambiguous, name)
			continue
		}

		desc.Fields[name] = c.field
		desc.Names = append(desc.Names, name)
	}

	sort.Strings(desc.Names)
	sort.Strings(desc.Ambiguous)

	return desc
}
