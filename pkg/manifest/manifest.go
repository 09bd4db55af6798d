package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Output records one generated source file and the declarations it covers.
type Output struct {
	Package string   `yaml:"package" json:"package"`
	File    string   `yaml:"file" json:"file"`
	Types   []string `yaml:"types" json:"types"`
}

// Manifest tracks the outputs of generation runs so stale files can be
// identified and regenerated.
type Manifest struct {
	Outputs []Output `yaml:"outputs" json:"outputs"`
}

// Load reads a manifest from the provided path. If the file does not exist,
// an empty manifest is returned.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Manifest{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}

	return &m, nil
}

// Save writes the manifest to the provided path, creating parent directories as needed.
func (m *Manifest) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create manifest directory: %w", err)
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return nil
}

// AddOutput records an output, replacing any existing entry for the same
// package and file.
func (m *Manifest) AddOutput(o Output) {
	for i := range m.Outputs {
		if m.Outputs[i].Package == o.Package && m.Outputs[i].File == o.File {
			m.Outputs[i] = o
			return
		}
	}

	m.Outputs = append(m.Outputs, o)
}

// OutputFile returns the file recorded for the given package, if present.
func (m *Manifest) OutputFile(pkg string) string {
	for _, o := range m.Outputs {
		if o.Package == pkg {
			return o.File
		}
	}
	return ""
}
