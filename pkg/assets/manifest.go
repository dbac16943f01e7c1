package assets

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// manifest mirrors the YAML layout of a material manifest file:
//
//	materials:
//	  - path: dev/blockout
//	    shader: LightmappedGeneric
//	    base_texture: dev/dev_measuregeneric01
type manifest struct {
	Materials []manifestMaterial `yaml:"materials"`
}

type manifestMaterial struct {
	Path        string `yaml:"path"`
	Shader      string `yaml:"shader"`
	BaseTexture string `yaml:"base_texture"`
}

// LoadManifest registers every material listed in the YAML manifest at path.
// Existing registrations with the same path are replaced.
func (r *MemoryRepository) LoadManifest(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read material manifest %q: %w", path, err)
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("failed to parse material manifest %q: %w", path, err)
	}

	for i, entry := range m.Materials {
		if entry.Path == "" {
			return fmt.Errorf("material manifest %q: entry %d has no path", path, i)
		}
		r.Register(&Material{
			Path:        entry.Path,
			Shader:      entry.Shader,
			BaseTexture: entry.BaseTexture,
		})
	}
	return nil
}
