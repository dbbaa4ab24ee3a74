package profile

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CurrentVersion is the only profile schema version understood.
const CurrentVersion = "1"

var (
	ErrUnsupportedVersion = errors.New("unsupported profile version")
	ErrInvalidMapping     = errors.New("invalid mapping entry")
)

// LoadFile loads and parses a YAML profile from the given path.
func LoadFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}

	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}

	return p, nil
}

// Parse parses YAML data into a Profile.
func Parse(data []byte) (*Profile, error) {
	var p Profile

	err := yaml.Unmarshal(data, &p)
	if err != nil {
		return nil, fmt.Errorf("failed to parse profile YAML: %w", err)
	}

	applyDefaults(&p)

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return &p, nil
}

func applyDefaults(p *Profile) {
	if p.Version == "" {
		p.Version = CurrentVersion
	}
}

// Validate checks the version and that every mapping names both types.
func (p *Profile) Validate() error {
	if p.Version != CurrentVersion {
		return fmt.Errorf("%w: %q", ErrUnsupportedVersion, p.Version)
	}

	var errs []error

	for i, m := range p.Mappings {
		if m.Source == "" || m.Target == "" {
			errs = append(errs, fmt.Errorf("%w: mappings[%d]: source and target are required", ErrInvalidMapping, i))
		}

		for _, name := range m.Ignore {
			if name == "" {
				errs = append(errs, fmt.Errorf("%w: mappings[%d]: empty ignore entry", ErrInvalidMapping, i))
			}
		}
	}

	return errors.Join(errs...)
}

// Marshal serializes a Profile to YAML.
func Marshal(p *Profile) ([]byte, error) {
	return yaml.Marshal(p)
}

// WriteFile writes a Profile to the given path.
func WriteFile(p *Profile, path string) error {
	data, err := Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write profile %s: %w", path, err)
	}

	return nil
}
