// Package mapper copies same-named exported fields between struct types that
// are only known at runtime.
//
// The first mapping between two types introspects both, decides per field
// whether and how the value can be copied, and compiles the result into a
// converter that is cached for the life of the Mapper. Later mappings between
// the same types, in the same behavior mode, reuse that converter.
//
//	client, err := mapper.Map[warehouse.Client](user)
//	err = mapper.CopyInto(&user, &client, options.CoerceNullable)
//	err = mapper.CopyIntoIfNotNull(patch, &client)
//
// Fields that exist on both sides with incompatible types are never copied;
// each one produces a warning in the Mapper's diagnostics instead of an error.
// Behavior flags (see package options) relax these rules per call.
package mapper
