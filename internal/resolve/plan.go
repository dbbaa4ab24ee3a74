package resolve

import (
	"field-mapper/internal/diagnostic"
	"field-mapper/internal/introspect"
	"field-mapper/options"
)

// Plan is the resolved field binding between one source and one target type.
type Plan struct {
	// Source type being read from.
	Source *introspect.TypeDescriptor
	// Target type being written to.
	Target *introspect.TypeDescriptor
	// Flags is the behavior mode the plan was resolved under.
	Flags options.Flag
	// Fields lists bound fields in lexicographic order.
	Fields []FieldPlan
	// Unmapped lists target fields left alone, in lexicographic order.
	Unmapped []Unmapped
	// Diagnostics contains the warnings and notes produced by resolution.
	Diagnostics diagnostic.Diagnostics
}

// FieldPlan is a single bound field.
type FieldPlan struct {
	Name     string
	Source   *introspect.FieldDescriptor
	Target   *introspect.FieldDescriptor
	Decision Decision
}

// Unmapped is a target field that will not be assigned.
type Unmapped struct {
	Name        string
	Target      *introspect.FieldDescriptor
	Code        string
	Reason      string
	Suggestions []string
}

// TypePair returns "source -> target" using short type names.
func (p *Plan) TypePair() string {
	return p.Source.ID.Short() + " -> " + p.Target.ID.Short()
}

// Field returns the bound field with the given name.
func (p *Plan) Field(name string) (FieldPlan, bool) {
	for _, f := range p.Fields {
		if f.Name == name {
			return f, true
		}
	}

	return FieldPlan{}, false
}

// Unresolved returns the unmapped entry for name.
func (p *Plan) Unresolved(name string) (Unmapped, bool) {
	for _, u := range p.Unmapped {
		if u.Name == name {
			return u, true
		}
	}

	return Unmapped{}, false
}

// CountByKind returns how many bound fields use each decision kind.
func (p *Plan) CountByKind() map[DecisionKind]int {
	counts := make(map[DecisionKind]int, len(p.Fields))
	for _, f := range p.Fields {
		counts[f.Decision.Kind]++
	}

	return counts
}
