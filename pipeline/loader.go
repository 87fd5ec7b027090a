package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// Loader loads pipeline definitions by name.
type Loader interface {
	Load(name string) (*Pipeline, error)
}

// FileLoader loads pipelines from YAML files on disk.
type FileLoader struct {
	dirs []string
}

// NewFileLoader creates a loader that searches the given directories for
// pipeline YAML files.
func NewFileLoader(dirs ...string) *FileLoader {
	return &FileLoader{dirs: dirs}
}

// Load searches for a pipeline YAML file by name across configured
// directories. It tries {name}.yaml and {name}.yml in each directory.
func (l *FileLoader) Load(name string) (*Pipeline, error) {
	for _, dir := range l.dirs {
		for _, ext := range []string{".yaml", ".yml"} {
			path := filepath.Join(dir, name+ext)
			if p, err := LoadFile(path); err == nil {
				return p, nil
			}
		}
	}
	return nil, fmt.Errorf("pipeline: %q not found in %v", name, l.dirs)
}

// List returns the names of all pipelines found in the configured
// directories, without parsing them.
func (l *FileLoader) List() []string {
	seen := make(map[string]bool)
	var names []string
	for _, dir := range l.dirs {
		for _, ext := range []string{".yaml", ".yml"} {
			matches, _ := filepath.Glob(filepath.Join(dir, "*"+ext))
			for _, match := range matches {
				name := filepath.Base(match)
				name = name[:len(name)-len(ext)]
				if !seen[name] {
					seen[name] = true
					names = append(names, name)
				}
			}
		}
	}
	return names
}

// LoadFile reads and parses a pipeline definition from a file.
func LoadFile(path string) (*Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("pipeline: parsing %s: %w", path, err)
	}
	return p, nil
}

// Parse decodes a pipeline definition from YAML bytes.
func Parse(data []byte) (*Pipeline, error) {
	var p Pipeline
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	return &p, nil
}
