// Package diagnostic provides structured warnings and informational notes
// emitted while converters are planned.
//
// Key capabilities:
//   - Incompatible field warnings (the field is left unmapped)
//   - Nullable mismatch and not-writable warnings
//   - Near-miss name suggestions for unmatched target fields
//   - A process-wide, append-only Sink that also logs through zap
package diagnostic
