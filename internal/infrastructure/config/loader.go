package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultSimulation is the file loaded by LoadDefault
const DefaultSimulation = "simulation.yaml"

// Loader loads simulation configuration from JSON or YAML files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// LoadSimulation loads and validates a simulation file. The format is picked by extension.
func (l *Loader) LoadSimulation(name string) (*SimulationConfig, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path.Join(l.basePath, name), err)
	}
	return Parse(name, data)
}

// LoadDefault loads DefaultSimulation
func (l *Loader) LoadDefault() (*SimulationConfig, error) {
	return l.LoadSimulation(DefaultSimulation)
}

// LoadFile loads a simulation file from disk
func LoadFile(filename string) (*SimulationConfig, error) {
	return NewLoader(filepath.Dir(filename)).LoadSimulation(filepath.Base(filename))
}

// Parse decodes a simulation config; name selects the decoder by extension
func Parse(name string, data []byte) (*SimulationConfig, error) {
	var cfg SimulationConfig

	switch ext := strings.ToLower(path.Ext(name)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q for %s", ext, name)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &cfg, nil
}
