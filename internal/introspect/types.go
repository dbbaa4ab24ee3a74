package introspect

import (
	"reflect"
	"slices"

	"field-mapper/internal/common"
)

// TagName is the struct tag consulted for per-field mapping hints.
// A value of "-" excludes the field from every mapping.
const TagName = "mapper"

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "field-mapper/store"
	Name    string // e.g., "User"
}

// TypeIDOf returns the identifier of t. Unnamed types use their literal
// representation as the name.
func TypeIDOf(t reflect.Type) TypeID {
	if t == nil {
		return TypeID{}
	}

	if t.Name() == "" {
		return TypeID{Name: t.String()}
	}

	return TypeID{PkgPath: t.PkgPath(), Name: t.Name()}
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// Short returns the identifier qualified by the package alias only (e.g., "store.User").
func (t TypeID) Short() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return common.PkgAlias(t.PkgPath) + "." + t.Name
}

// FieldDescriptor describes a single mappable field of a struct.
type FieldDescriptor struct {
	Name     string            // Go field name
	Type     reflect.Type      // declared type
	Elem     reflect.Type      // pointed-to type for optional fields, Type otherwise
	Optional bool              // declared as *T
	Nilable  bool              // the zero value is nil (pointer, map, slice, interface, func, chan)
	Hidden   bool              // reached through an embedded pointer to an unexported struct type
	Ignored  bool              // tagged mapper:"-"
	Index    []int             // index path from the root struct, through embedded structs
	Depth    int               // embedding depth, 0 for fields declared on the type itself
	Tag      reflect.StructTag // raw struct tag
}

// Promoted returns true if the field is declared on an embedded struct.
func (f *FieldDescriptor) Promoted() bool {
	return f.Depth > 0
}

// HasTag returns true if the field has the specified tag.
func (f *FieldDescriptor) HasTag(key string) bool {
	return f.Tag.Get(key) != ""
}

// GetTag returns the value of the specified tag.
func (f *FieldDescriptor) GetTag(key string) string {
	return f.Tag.Get(key)
}

// TypeDescriptor is the resolved field map of one type.
// It is immutable once returned by an Introspector.
type TypeDescriptor struct {
	ID        TypeID
	Type      reflect.Type
	Fields    map[string]*FieldDescriptor
	Names     []string // field names in lexicographic order
	Ambiguous []string // names declared more than once at the same shallowest depth
}

// IsStruct returns true if the described type is a struct.
func (d *TypeDescriptor) IsStruct() bool {
	return d.Type != nil && d.Type.Kind() == reflect.Struct
}

// Field returns the descriptor of the named field.
func (d *TypeDescriptor) Field(name string) (*FieldDescriptor, bool) {
	f, ok := d.Fields[name]
	return f, ok
}

// Len returns the number of mappable fields.
func (d *TypeDescriptor) Len() int {
	return len(d.Fields)
}

// Each calls fn for every field in lexicographic order.
func (d *TypeDescriptor) Each(fn func(*FieldDescriptor)) {
	for _, name := range d.Names {
		fn(d.Fields[name])
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

// hidden is true when the path crosses an embedded pointer to an unexported
// struct type. Such a pointer cannot be allocated from outside its package, so
// the field is only reachable while the pointer is set.
func newFieldDescriptor(sf reflect.StructField, index []int, depth int, hidden bool) *FieldDescriptor {
	fd := &FieldDescriptor{
		Name:     sf.Name,
		Type:     sf.Type,
		Elem:     sf.Type,
		Nilable:  isNilable(sf.Type),
		Hidden:   hidden,
		Ignored:  sf.Tag.Get(TagName) == "-",
		Index:    slices.Clone(index),
		Depth:    depth,
		Tag:      sf.Tag,
	}

	if sf.Type.Kind() == reflect.Ptr {
		fd.Optional = true
		fd.Elem = sf.Type.Elem()
	}

	return fd
}
