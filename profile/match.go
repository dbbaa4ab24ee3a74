package profile

import (
	"reflect"

	"field-mapper/options"
)

// Flags converts the profile defaults into behavior flags.
// A nil profile yields options.FlagNone.
func (p *Profile) Flags() options.Flag {
	if p == nil {
		return options.FlagNone
	}

	var f options.Flag

	if p.Defaults.CopyNullValues != nil && !*p.Defaults.CopyNullValues {
		f = f.With(options.SkipNull)
	}

	if p.Defaults.CopyNullableProperties {
		f = f.With(options.CoerceNullable)
	}

	if p.Defaults.IgnoreTypeConflicts {
		f = f.With(options.IgnoreTypeConflicts)
	}

	return f
}

// Ignored returns the union of ignore lists of every mapping matching the
// source and target types, or nil when nothing matches.
func (p *Profile) Ignored(src, dst reflect.Type) map[string]struct{} {
	if p == nil {
		return nil
	}

	var out map[string]struct{}

	for _, m := range p.Mappings {
		if m.Ignore.IsEmpty() || !matchType(m.Source, src) || !matchType(m.Target, dst) {
			continue
		}

		if out == nil {
			out = make(map[string]struct{}, len(m.Ignore))
		}

		for _, name := range m.Ignore {
			out[name] = struct{}{}
		}
	}

	return out
}

func matchType(pattern string, t reflect.Type) bool {
	if pattern == Wildcard {
		return true
	}

	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t == nil {
		return false
	}

	return pattern == t.String() || (t.PkgPath() != "" && pattern == t.PkgPath()+"."+t.Name())
}
