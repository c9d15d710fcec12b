// Package pkgmgr provides the package provider: steps that install native
// packages through the host's package manager.
package pkgmgr

import (
	"fmt"
)

// Config represents the packages section of the manifest.
type Config struct {
	Install []Package
}

// Package represents one package to install, named by its logical name.
type Package struct {
	Name string
}

// ParseConfig parses the packages configuration from a raw map.
func ParseConfig(raw map[string]interface{}) (*Config, error) {
	cfg := &Config{
		Install: make([]Package, 0),
	}

	if install, ok := raw["install"]; ok {
		list, ok := install.([]interface{})
		if !ok {
			return nil, fmt.Errorf("install must be a list")
		}
		for _, p := range list {
			pkg, err := parsePackage(p)
			if err != nil {
				return nil, err
			}
			cfg.Install = append(cfg.Install, pkg)
		}
	}

	return cfg, nil
}

// parsePackage parses a single package from either a string or a map.
func parsePackage(raw interface{}) (Package, error) {
	switch v := raw.(type) {
	case string:
		return Package{Name: v}, nil
	case map[string]interface{}:
		pkg := Package{}
		if name, ok := v["name"].(string); ok {
			pkg.Name = name
		} else {
			return Package{}, fmt.Errorf("package must have a name")
		}
		return pkg, nil
	default:
		return Package{}, fmt.Errorf("package must be a string or object")
	}
}
