package mapping

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults applied to omitted top-level fields.
const (
	DefaultVersion = "1"
	DefaultPackage = "accessors"
)

// LoadFile loads and parses a YAML accessor file from the given path.
func LoadFile(path string) (*AccessorFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read accessor file %s: %w", path, err)
	}

	af, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	for i := range af.Accessors {
		af.Accessors[i].Origin = path
	}

	return af, nil
}

// Parse parses YAML data into an AccessorFile.
func Parse(data []byte) (*AccessorFile, error) {
	var af AccessorFile

	err := yaml.Unmarshal(data, &af)
	if err != nil {
		return nil, fmt.Errorf("failed to parse accessor YAML: %w", err)
	}

	applyDefaults(&af)

	return &af, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(af *AccessorFile) {
	if af.Version == "" {
		af.Version = DefaultVersion
	}

	if af.Package == "" {
		af.Package = DefaultPackage
	}
}

// Marshal serializes an AccessorFile to YAML.
func Marshal(af *AccessorFile) ([]byte, error) {
	return yaml.Marshal(af)
}

// WriteFile writes an AccessorFile to the given path.
func WriteFile(af *AccessorFile, path string) error {
	data, err := Marshal(af)
	if err != nil {
		return fmt.Errorf("failed to marshal accessor file: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write accessor file %s: %w", path, err)
	}

	return nil
}
