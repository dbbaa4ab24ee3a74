package profile

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"field-mapper/internal/common"
)

// Wildcard matches any source or target type.
const Wildcard = "*"

// Profile is the root of a profile file.
type Profile struct {
	// Version of the profile schema.
	Version string `yaml:"version"`
	// Defaults are OR-ed into the flags of every mapping call.
	Defaults Defaults `yaml:"defaults,omitempty"`
	// Mappings list per type pair adjustments.
	Mappings []Mapping `yaml:"mappings,omitempty"`
}

// Defaults mirror the three behavior switches of the mapper.
type Defaults struct {
	// CopyNullValues defaults to true; false makes copy-into skip nil sources.
	CopyNullValues *bool `yaml:"copy_null_values,omitempty"`
	// CopyNullableProperties enables *T <-> T coercion.
	CopyNullableProperties bool `yaml:"copy_nullable_properties,omitempty"`
	// IgnoreTypeConflicts binds fields by name only.
	IgnoreTypeConflicts bool `yaml:"ignore_type_conflicts,omitempty"`
}

// Mapping adjusts one source/target type pair.
type Mapping struct {
	Source string        `yaml:"source"`
	Target string        `yaml:"target"`
	Ignore StringOrArray `yaml:"ignore,omitempty"`
}

// StringOrArray accepts either a single string or an array of strings.
type StringOrArray []string

// UnmarshalYAML accepts either a single string or an array of strings.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		err := node.Decode(&str)
		if err != nil {
			return err
		}

		if str != "" {
			*s = StringOrArray{str}
		} else {
			*s = StringOrArray{}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string

		err := node.Decode(&arr)
		if err != nil {
			return err
		}

		*s = arr

		return nil

	default:
		return fmt.Errorf("expected string or array, got %v", node.Kind)
	}
}

// MarshalYAML outputs a single string if length is 1, otherwise an array.
func (s StringOrArray) MarshalYAML() (any, error) {
	if common.IsSingle(s) {
		return s[0], nil
	}

	return []string(s), nil
}

// IsEmpty returns true if the array is empty.
func (s StringOrArray) IsEmpty() bool {
	return common.IsEmpty(s)
}
