// Package manifest loads the declarative host manifest and the engine's
// own settings file.
package manifest

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hostprep/hostprep/internal/ports"
)

// DefaultPath is the manifest file looked for when none is given.
const DefaultPath = "hostprep.yaml"

// sectionNames lists the manifest sections the engine understands. Unknown
// sections are a load error so a typo does not silently drop steps.
var sectionNames = map[string]bool{
	"packages": true,
	"repos":    true,
	"files":    true,
	"services": true,
	"shell":    true,
	"accounts": true,
}

// Manifest is the parsed declarative description of the desired host state.
type Manifest struct {
	Name     string
	Sections map[string]map[string]interface{}
}

// GetSection returns a raw section or nil if absent.
func (m *Manifest) GetSection(name string) map[string]interface{} {
	return m.Sections[name]
}

// Load reads and parses a manifest file.
func Load(fs ports.FileSystem, path string) (*Manifest, error) {
	data, err := fs.ReadFile(ports.ExpandPath(path))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(data)
}

// Parse parses manifest YAML.
func Parse(data []byte) (*Manifest, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	m := &Manifest{
		Sections: make(map[string]map[string]interface{}),
	}

	for key, value := range raw {
		if key == "name" {
			if name, ok := value.(string); ok {
				m.Name = name
			}
			continue
		}
		if !sectionNames[key] {
			return nil, fmt.Errorf("unknown manifest section %q (known: %s)", key, knownSections())
		}
		section, ok := value.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("section %q must be a mapping", key)
		}
		m.Sections[key] = section
	}

	return m, nil
}

// knownSections renders the accepted section names for error messages.
func knownSections() string {
	names := make([]string, 0, len(sectionNames))
	for name := range sectionNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
