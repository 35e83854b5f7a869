// Package meta exposes the name and version the loader is published under.
package meta

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed package.yaml
var packageYAML []byte

type Package struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Description string `yaml:"description,omitempty"`
}

// Load parses the embedded package manifest.
func Load() (Package, error) {
	return Parse(packageYAML)
}

func Parse(raw []byte) (Package, error) {
	var p Package
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return p, fmt.Errorf("meta: decode package manifest: %w", err)
	}
	if p.Name == "" || p.Version == "" {
		return p, fmt.Errorf("meta: package manifest needs name and version")
	}
	return p, nil
}
