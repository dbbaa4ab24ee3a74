package resolve

import (
	"fmt"

	"field-mapper/internal/diagnostic"
	"field-mapper/internal/introspect"
	"field-mapper/options"
	"field-mapper/primitive"
)

// Resolve binds every target field to the same-named source field.
// ignore names target fields that must be left untouched regardless of type.
func Resolve(src, dst *introspect.TypeDescriptor, flags options.Flag, ignore map[string]struct{}) *Plan {
	p := &Plan{
		Source: src,
		Target: dst,
		Flags:  flags,
	}
	pair := p.TypePair()

	for _, name := range dst.Ambiguous {
		p.Diagnostics.AddInfo(diagnostic.CodeAmbiguousField,
			fmt.Sprintf("target field %s is declared more than once at the same depth and is not mapped", name), pair, name)
	}

	for _, name := range src.Ambiguous {
		p.Diagnostics.AddInfo(diagnostic.CodeAmbiguousField,
			fmt.Sprintf("source field %s is declared more than once at the same depth and is not read", name), pair, name)
	}

	for _, name := range dst.Names {
		tf := dst.Fields[name]

		if _, skip := ignore[name]; skip || tf.Ignored {
			p.unmapped(tf, diagnostic.CodeIgnored, "field is ignored", nil)
			continue
		}

		sf, found := src.Fields[name]
		if !found {
			p.unmapped(tf, diagnostic.CodeMissing, "no source field with this name", Suggest(name, src.Names))
			continue
		}

		if sf.Ignored {
			p.unmapped(tf, diagnostic.CodeIgnored, "source field is ignored", nil)
			continue
		}

		decision := Decide(sf, tf, flags)
		if !decision.Resolvable() {
			p.unmapped(tf, decision.Code, decision.Reason, nil)
			continue
		}

		if decision.Kind == DecisionUnsafeCopy {
			p.Diagnostics.AddInfo(diagnostic.CodeUnsafeBinding, decision.Reason, pair, name)

			if decision.Category == primitive.CategoryUnsafeNumber {
				p.Diagnostics.AddWarning(diagnostic.CodeLossyConversion,
					fmt.Sprintf("field %s may lose precision converting %s to %s", name, sf.Elem, tf.Elem), pair, name)
			}
		}

		if tf.Hidden {
			p.Diagnostics.AddInfo(diagnostic.CodeHiddenEmbedded,
				fmt.Sprintf("field %s sits behind an unexported embedded pointer and is written only while that pointer is set", name), pair, name)
		}

		p.Fields = append(p.Fields, FieldPlan{
			Name:     name,
			Source:   sf,
			Target:   tf,
			Decision: decision,
		})
	}

	return p
}

func (p *Plan) unmapped(tf *introspect.FieldDescriptor, code, reason string, suggestions []string) {
	p.Unmapped = append(p.Unmapped, Unmapped{
		Name:        tf.Name,
		Target:      tf,
		Code:        code,
		Reason:      reason,
		Suggestions: suggestions,
	})

	pair := p.TypePair()

	switch code {
	case diagnostic.CodeIncompatibleTypes, diagnostic.CodeNullableMismatch:
		p.Diagnostics.AddWarning(code, reason, pair, tf.Name)
	case diagnostic.CodeIgnored:
		p.Diagnostics.AddInfo(code, reason, pair, tf.Name)
	case diagnostic.CodeMissing:
		if len(suggestions) > 0 {
			p.Diagnostics.AddInfo(code, reason, pair, tf.Name)
			p.Diagnostics.AddSuggestion(suggestions...)
		}
	}
}
