// Package introspect discovers the mappable fields of struct types at runtime.
//
// It walks a struct with reflect, following embedded structs the way Go
// promotes their fields, and builds a canonical in-memory descriptor that is
// cached per type for the life of the process.
//
// Key types:
//   - TypeID: package import path + type name
//   - TypeDescriptor: the resolved name -> field map of one struct type
//   - FieldDescriptor: field name, declared type, optionality, read/write capability
package introspect
