// Package convert compiles a resolve.Plan into a reusable Converter.
//
// A Converter is a list of pre-resolved assignment steps, one per bound field,
// executed in lexicographic field order. It can either allocate a fresh target
// (New) or write into an existing one (Into). Fields the plan left unmapped
// are never touched.
//
// Converters are immutable and safe for concurrent use.
package convert
