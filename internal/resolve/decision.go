package resolve

import (
	"fmt"

	"field-mapper/internal/common"
	"field-mapper/internal/diagnostic"
	"field-mapper/internal/introspect"
	"field-mapper/options"
	"field-mapper/primitive"
)

// DecisionKind is the outcome of comparing a source field with a target field.
type DecisionKind int

const (
	// DecisionSkip means the field is left unmapped.
	DecisionSkip DecisionKind = iota
	// DecisionDirectCopy means the declared types are identical.
	DecisionDirectCopy
	// DecisionNullableCoerce means one side is *T and the other is T.
	DecisionNullableCoerce
	// DecisionUnsafeCopy means the types differ and conflicts are ignored on request.
	DecisionUnsafeCopy
)

const (
	VerdictSkip           = "skip"
	VerdictDirectCopy     = "direct_copy"
	VerdictNullableCoerce = "nullable_coerce"
	VerdictUnsafeCopy     = "unsafe_copy"
)

// String returns a human-readable name for the decision kind.
func (k DecisionKind) String() string {
	switch k {
	case DecisionSkip:
		return VerdictSkip
	case DecisionDirectCopy:
		return VerdictDirectCopy
	case DecisionNullableCoerce:
		return VerdictNullableCoerce
	case DecisionUnsafeCopy:
		return VerdictUnsafeCopy
	default:
		return common.UnknownStr
	}
}

// Direction tells which side of a nullable coercion is optional.
type Direction int

const (
	DirectionNone   Direction = iota
	DirectionWrap             // T -> *T
	DirectionUnwrap           // *T -> T
)

// String returns a human-readable direction name.
func (d Direction) String() string {
	switch d {
	case DirectionNone:
		return "none"
	case DirectionWrap:
		return "wrap"
	case DirectionUnwrap:
		return "unwrap"
	default:
		return common.UnknownStr
	}
}

// Decision is the per-field-pair compatibility verdict.
type Decision struct {
	Kind      DecisionKind
	Direction Direction
	Category  primitive.CategoryEnum // representation change of an unsafe copy, CategoryNone otherwise
	Code      string                 // diagnostic code when Kind is DecisionSkip
	Reason    string                 // human-readable explanation
}

// Resolvable returns true if the field will be bound.
func (d Decision) Resolvable() bool {
	return d.Kind != DecisionSkip
}

// String returns the kind, with direction for coercions and the
// representation change for unsafe copies.
func (d Decision) String() string {
	switch {
	case d.Kind == DecisionNullableCoerce:
		return d.Kind.String() + ":" + d.Direction.String()
	case d.Kind == DecisionUnsafeCopy && d.Category != primitive.CategoryNone:
		return d.Kind.String() + ":" + d.Category.String()
	}

	return d.Kind.String()
}

// Decide compares two same-named fields under the given behavior flags.
func Decide(src, dst *introspect.FieldDescriptor, flags options.Flag) Decision {
	if src.Type == dst.Type {
		return Decision{
			Kind:   DecisionDirectCopy,
			Reason: "types are identical",
		}
	}

	if flags.Has(options.IgnoreTypeConflicts) {
		return Decision{
			Kind:     DecisionUnsafeCopy,
			Category: primitive.Classify(src.Elem, dst.Elem),
			Reason:   fmt.Sprintf("type conflict %s -> %s ignored on request", src.Type, dst.Type),
		}
	}

	if dir := nullableDirection(src, dst); dir != DirectionNone {
		if flags.Has(options.CoerceNullable) {
			return Decision{
				Kind:      DecisionNullableCoerce,
				Direction: dir,
				Reason:    fmt.Sprintf("nullable coercion %s -> %s", src.Type, dst.Type),
			}
		}

		return Decision{
			Kind:   DecisionSkip,
			Code:   diagnostic.CodeNullableMismatch,
			Reason: fmt.Sprintf("field %s is nullable on one side only (%s -> %s) and will not be copied", dst.Name, src.Type, dst.Type),
		}
	}

	return Decision{
		Kind:   DecisionSkip,
		Code:   diagnostic.CodeIncompatibleTypes,
		Reason: fmt.Sprintf("field %s has different types (%s -> %s) and will not be copied", dst.Name, src.Type, dst.Type),
	}
}

func nullableDirection(src, dst *introspect.FieldDescriptor) Direction {
	switch {
	case src.Optional && !dst.Optional && src.Elem == dst.Type:
		return DirectionUnwrap
	case !src.Optional && dst.Optional && dst.Elem == src.Type:
		return DirectionWrap
	default:
		return DirectionNone
	}
}
