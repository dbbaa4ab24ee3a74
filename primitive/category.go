package primitive

import "reflect"

type CategoryEnum int

const (
	CategorySafeNumber   CategoryEnum = 1 << iota // int, uint, float without precision loss
	CategoryUnsafeNumber                          // int, uint, float with precision loss
	CategoryEnumValue                             // named bool/string/integer type <-> same underlying kind
	CategoryNanoseconds                           // int(nanoseconds) <-> time.Duration

	CategoryAll  CategoryEnum = (1 << iota) - 1 // all categories combined
	CategoryNone CategoryEnum = 0               // no categories selected
)

// Classify reports which representation change turns a value of type from
// into a value of type to with reflect.Value.Convert. Identical types, structs,
// pointers and time.Time are never classified.
func Classify(from, to reflect.Type) CategoryEnum {
	fromKind, toKind := FromReflectType(from), FromReflectType(to)
	if fromKind == 0 || toKind == 0 || fromKind == KindTime || toKind == KindTime {
		return CategoryNone
	}

	fromBase, toBase := FromReflectKind(from.Kind()), FromReflectKind(to.Kind())

	if fromKind == KindDuration || toKind == KindDuration {
		if fromBase.IsInteger() && toBase.IsInteger() && fromBase != KindUint64 && toBase != KindUint64 {
			return CategoryNanoseconds
		}

		return CategoryNone
	}

	switch {
	case fromBase.IsNumber() && toBase.IsNumber():
		if widens(fromBase, toBase) {
			return CategorySafeNumber
		}

		return CategoryUnsafeNumber
	case fromBase == toBase:
		return CategoryEnumValue
	default:
		return CategoryNone
	}
}

// Reinterpretable reports whether a value of type from can be stored into a
// field of type to by a plain representation change within the allowed categories.
func Reinterpretable(from, to reflect.Type, allowed CategoryEnum) bool {
	if from == nil || to == nil {
		return false
	}

	return Classify(from, to)&allowed != 0
}

// widens reports whether every value of number kind from survives a
// conversion to number kind to. Platform-sized int and uint use the host width.
func widens(from, to KindEnum) bool {
	switch {
	case from == to:
		return true
	case from.IsFloat():
		return to.IsFloat() && from.Bits() <= to.Bits()
	case to.IsFloat():
		return from.Bits() <= to.Mantissa()
	case from.IsSigned():
		return to.IsSigned() && from.Bits() <= to.Bits()
	case to.IsUnsigned():
		return from.Bits() <= to.Bits()
	default:
		// unsigned into signed needs a spare bit for the sign
		return from.Bits() < to.Bits()
	}
}

// String returns the category name.
func (c CategoryEnum) String() string {
	switch c {
	case CategoryNone:
		return "none"
	case CategorySafeNumber:
		return "safe_number"
	case CategoryUnsafeNumber:
		return "unsafe_number"
	case CategoryEnumValue:
		return "enum_value"
	case CategoryNanoseconds:
		return "nanoseconds"
	default:
		return "mixed"
	}
}
