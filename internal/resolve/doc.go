// Package resolve decides, per same-named field pair, whether and how a value
// can be copied from a source struct into a target struct.
//
// Decisions follow a fixed ladder:
//  1. identical declared types copy directly
//  2. an explicit ignore-type-conflicts override binds anything (unsafe)
//  3. *T <-> T pairs coerce when nullable coercion is requested
//  4. everything else is skipped with a warning
//
// Resolve turns two type descriptors into a Plan: the ordered list of bound
// fields plus the unmapped target fields with the reason each was left alone.
// Fields are never matched across different names; near-miss names are only
// reported as suggestions.
package resolve
