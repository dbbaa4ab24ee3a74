// Package cache memoizes converters per (source type, target type, flags).
//
// The cache is two-level: an outer map keyed by target type holds an inner map
// keyed by source type and behavior flags. Both levels are sync.Maps filled
// with insert-if-absent, so lookups never take a lock and no global mutex
// serializes mappings. Entries are never evicted.
package cache
