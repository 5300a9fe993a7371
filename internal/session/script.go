// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// Script is the on-disk record of a session's accepted commands. The
// explorer writes one on exit and can replay one at startup with
// --script, which is the supported way to rebuild a tree from a save.
// Replaying numeric selections calls the suggestion service again, so
// the rebuilt branches may differ in content.
type Script struct {
	RootConcept string    `yaml:"root_concept"`
	MaxDepth    int       `yaml:"max_depth"`
	Commands    []string  `yaml:"commands"`
	SavedAt     time.Time `yaml:"saved_at"`
}

// ReadScript loads a previously saved session script.
func ReadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading session script: %w", err)
	}
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing session script: %w", err)
	}
	return &s, nil
}

// WriteScript saves the script to path, overwriting any previous file.
func WriteScript(path string, s *Script) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling session script: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
