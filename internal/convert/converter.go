package convert

import (
	"errors"
	"fmt"
	"reflect"

	"field-mapper/internal/diagnostic"
	"field-mapper/internal/introspect"
	"field-mapper/internal/resolve"
	"field-mapper/options"
)

type step struct {
	name    string
	src     *introspect.FieldDescriptor
	dst     *introspect.FieldDescriptor
	skipNil bool
	assign  assignFunc
}

// Converter copies the bound fields of one source type into one target type.
type Converter struct {
	plan   *resolve.Plan
	source reflect.Type
	target reflect.Type
	steps  []step
	diags  diagnostic.Diagnostics
}

// Build compiles plan. The same plan always yields an equivalent converter.
func Build(plan *resolve.Plan) (*Converter, error) {
	if plan == nil || plan.Source == nil || plan.Target == nil {
		return nil, &ConstructionError{Err: ErrNotStruct}
	}

	if !plan.Source.IsStruct() {
		return nil, &ConstructionError{Err: fmt.Errorf("source %s: %w", plan.Source.ID, ErrNotStruct)}
	}

	if !plan.Target.IsStruct() {
		return nil, &ConstructionError{Err: fmt.Errorf("target %s: %w", plan.Target.ID, ErrNotStruct)}
	}

	c := &Converter{
		plan:   plan,
		source: plan.Source.Type,
		target: plan.Target.Type,
		steps:  make([]step, 0, len(plan.Fields)),
	}
	c.diags.Merge(plan.Diagnostics)

	skipNull := plan.Flags.Has(options.SkipNull)

	for _, f := range plan.Fields {
		if err := checkIndex(plan.Source.Type, f.Source); err != nil {
			return nil, &ConstructionError{Field: f.Name, Err: err}
		}

		if err := checkIndex(plan.Target.Type, f.Target); err != nil {
			return nil, &ConstructionError{Field: f.Name, Err: err}
		}

		assign, err := assignerFor(f.Decision, f.Source.Type, f.Target.Type)
		if err != nil {
			return nil, &ConstructionError{Field: f.Name, Err: fmt.Errorf("%s: %w", f.Decision, err)}
		}

		if f.Decision.Kind == resolve.DecisionUnsafeCopy && !representable(f.Source.Type, f.Target.Type) {
			c.diags.AddError(diagnostic.CodeUnrepresentable,
				fmt.Sprintf("%s cannot be stored into %s; mapping fails whenever a value reaches this field", f.Source.Type, f.Target.Type),
				plan.TypePair(), f.Name)
		}

		c.steps = append(c.steps, step{
			name:    f.Name,
			src:     f.Source,
			dst:     f.Target,
			skipNil: f.Source.Nilable && (skipNull || f.Decision.Direction == resolve.DirectionUnwrap),
			assign:  assign,
		})
	}

	return c, nil
}

// checkIndex verifies that the descriptor's index path leads to a field of
// the recorded name and type inside t.
func checkIndex(t reflect.Type, fd *introspect.FieldDescriptor) error {
	if fd == nil || len(fd.Index) == 0 {
		return ErrBadIndex
	}

	cur := t
	var sf reflect.StructField

	for i, x := range fd.Index {
		if i > 0 {
			cur = sf.Type
			if cur.Kind() == reflect.Ptr {
				cur = cur.Elem()
			}
		}

		if cur.Kind() != reflect.Struct || x < 0 || x >= cur.NumField() {
			return fmt.Errorf("%v in %s: %w", fd.Index, t, ErrBadIndex)
		}

		sf = cur.Field(x)
	}

	if sf.Name != fd.Name || sf.Type != fd.Type {
		return fmt.Errorf("%v in %s leads to %s %s: %w", fd.Index, t, sf.Name, sf.Type, ErrBadIndex)
	}

	return nil
}

// Plan returns the plan the converter was built from.
func (c *Converter) Plan() *resolve.Plan {
	return c.plan
}

// Diagnostics returns the plan diagnostics plus the problems found while
// compiling it. Bindings that can never succeed are reported as errors.
func (c *Converter) Diagnostics() diagnostic.Diagnostics {
	var out diagnostic.Diagnostics
	out.Merge(c.diags)

	return out
}

// Source returns the struct type the converter reads.
func (c *Converter) Source() reflect.Type {
	return c.source
}

// Target returns the struct type the converter writes.
func (c *Converter) Target() reflect.Type {
	return c.target
}

// Flags returns the behavior mode the converter was built for.
func (c *Converter) Flags() options.Flag {
	return c.plan.Flags
}

// Fields returns the names of the bound fields in execution order.
func (c *Converter) Fields() []string {
	names := make([]string, len(c.steps))
	for i, s := range c.steps {
		names[i] = s.name
	}

	return names
}

// New allocates a target and fills it from src, a struct value or a pointer to
// one. The result is a pointer to the new target.
func (c *Converter) New(src reflect.Value) (reflect.Value, error) {
	out := reflect.New(c.target)
	if err := c.Into(src, out); err != nil {
		return reflect.Value{}, err
	}

	return out, nil
}

// Into copies the bound fields of src into dst. dst must be a non-nil pointer
// to the target type or an addressable target value. On error dst may be
// partially updated.
func (c *Converter) Into(src, dst reflect.Value) error {
	src = reflect.Indirect(src)
	if !src.IsValid() || src.Type() != c.source {
		return fmt.Errorf("%w: want %s", ErrSourceType, c.source)
	}

	if dst.Kind() == reflect.Ptr {
		if dst.IsNil() {
			return fmt.Errorf("%w: nil pointer", ErrTargetType)
		}

		dst = dst.Elem()
	}

	if !dst.IsValid() || dst.Type() != c.target || !dst.CanAddr() {
		return fmt.Errorf("%w: want addressable %s", ErrTargetType, c.target)
	}

	for i := range c.steps {
		s := &c.steps[i]

		v, ok := s.src.ValueOf(src)
		if !ok || (s.skipNil && v.IsNil()) {
			continue
		}

		field, err := s.dst.Target(dst)
		if s.dst.Hidden && errors.Is(err, introspect.ErrNilEmbedded) {
			continue
		}

		if err != nil {
			return err
		}

		if err := s.assign(field, v); err != nil {
			return &CoercionError{Field: s.name, From: s.src.Type, To: s.dst.Type, Err: err}
		}
	}

	return nil
}
