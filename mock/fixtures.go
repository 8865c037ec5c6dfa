package mock

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFixtures reads descriptors from a YAML file. The file holds either a list
// of descriptors or a mapping with a "mocks" list.
func LoadFixtures(path string) ([]Descriptor, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read the fixtures: %w", err)
	}

	descs, err := ParseFixtures(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return descs, nil
}

// ParseFixtures decodes YAML fixtures and validates every descriptor.
func ParseFixtures(b []byte) ([]Descriptor, error) {
	var descs []Descriptor

	trimmed := bytes.TrimSpace(b)
	if bytes.HasPrefix(trimmed, []byte("-")) {
		if err := yaml.Unmarshal(b, &descs); err != nil {
			return nil, fmt.Errorf("failed to decode the fixtures: %w", err)
		}
	} else {
		var f struct {
			Mocks []Descriptor `yaml:"mocks"`
		}
		if err := yaml.Unmarshal(b, &f); err != nil {
			return nil, fmt.Errorf("failed to decode the fixtures: %w", err)
		}
		descs = f.Mocks
	}

	for i, d := range descs {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("mock %d: %w", i, err)
		}
	}

	return descs, nil
}
