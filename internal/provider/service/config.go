// Package service provides the service provider: steps that enable and
// start systemd units.
package service

import "fmt"

// Config represents the services section of the manifest.
type Config struct {
	Enable []Service
}

// Service represents one systemd unit to enable. Package optionally names
// the logical package from the packages section that ships the unit.
type Service struct {
	Unit    string
	Package string
}

// ParseConfig parses the services configuration from a raw map.
func ParseConfig(raw map[string]interface{}) (*Config, error) {
	cfg := &Config{
		Enable: make([]Service, 0),
	}

	enable, ok := raw["enable"]
	if !ok {
		return cfg, nil
	}

	list, ok := enable.([]interface{})
	if !ok {
		return nil, fmt.Errorf("enable must be a list")
	}

	for _, s := range list {
		switch v := s.(type) {
		case string:
			cfg.Enable = append(cfg.Enable, Service{Unit: v})
		case map[string]interface{}:
			svc := Service{}
			if unit, ok := v["unit"].(string); ok {
				svc.Unit = unit
			} else {
				return nil, fmt.Errorf("service must have a unit")
			}
			if pkg, ok := v["package"].(string); ok {
				svc.Package = pkg
			}
			cfg.Enable = append(cfg.Enable, svc)
		default:
			return nil, fmt.Errorf("service must be a string or object")
		}
	}

	return cfg, nil
}
