package bridge

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadStackFile reads technology constraints from a YAML file. Unknown
// keys are rejected so a typo'd constraint fails loudly instead of
// silently deferring to the seed.
func LoadStackFile(path string) (*StackConstraints, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stack file: %w", err)
	}

	var stack StackConstraints
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&stack); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parse stack file %s: %w", path, err)
	}
	return &stack, nil
}
