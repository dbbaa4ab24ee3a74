package options

import "strings"

// Flag is a set of behavior switches selecting how a converter is built and run.
// The zero value is the default behavior: create a new target, copy nil values,
// no nullable coercion, type conflicts are skipped.
type Flag int

const (
	CopyInto            Flag = 1 << iota // assign into an existing target instead of creating a new one
	SkipNull                             // leave the target field untouched when the source value is nil
	CoerceNullable                       // *T <-> T bindings between fields of the same underlying T
	IgnoreTypeConflicts                  // bind fields by name only, conversion failures surface at call time

	FlagAll  Flag = (1 << iota) - 1 // all flags combined
	FlagNone Flag = 0               // default behavior
)

var flagNames = [...]struct {
	flag Flag
	name string
}{
	{CopyInto, "copy_into"},
	{SkipNull, "skip_null"},
	{CoerceNullable, "coerce_nullable"},
	{IgnoreTypeConflicts, "ignore_type_conflicts"},
}

// Merge combines flags into a single set.
func Merge(flags ...Flag) Flag {
	var f Flag
	for _, fl := range flags {
		f |= fl
	}

	return f & FlagAll
}

// Has reports whether every bit of other is set in f.
func (f Flag) Has(other Flag) bool {
	return f&other == other
}

// With returns f with other added.
func (f Flag) With(other Flag) Flag {
	return (f | other) & FlagAll
}

// Without returns f with other removed.
func (f Flag) Without(other Flag) Flag {
	return f &^ other
}

// String returns the set flags joined by "|", or "none".
func (f Flag) String() string {
	if f&FlagAll == FlagNone {
		return "none"
	}

	parts := make([]string, 0, len(flagNames))
	for _, fn := range flagNames {
		if f.Has(fn.flag) {
			parts = append(parts, fn.name)
		}
	}

	return strings.Join(parts, "|")
}
