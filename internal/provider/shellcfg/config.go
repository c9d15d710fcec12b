// Package shellcfg provides the shell provider: steps that configure the
// user's shell through targeted rc-file edits and chsh.
package shellcfg

import "fmt"

// DefaultRCFile is the rc file edited when the manifest does not name one.
const DefaultRCFile = "~/.zshrc"

// Config represents the shell section of the manifest.
type Config struct {
	RCFile       string
	Theme        string
	Plugins      []string
	Aliases      map[string]string
	DefaultShell string
	User         string
}

// ParseConfig parses the shell configuration from a raw map.
func ParseConfig(raw map[string]interface{}) (*Config, error) {
	cfg := &Config{
		RCFile:  DefaultRCFile,
		Plugins: make([]string, 0),
		Aliases: make(map[string]string),
	}

	if rc, ok := raw["rc_file"].(string); ok {
		cfg.RCFile = rc
	}
	if theme, ok := raw["theme"].(string); ok {
		cfg.Theme = theme
	}
	if shell, ok := raw["default_shell"].(string); ok {
		cfg.DefaultShell = shell
	}
	if user, ok := raw["user"].(string); ok {
		cfg.User = user
	}

	if plugins, ok := raw["plugins"]; ok {
		list, ok := plugins.([]interface{})
		if !ok {
			return nil, fmt.Errorf("plugins must be a list")
		}
		for _, p := range list {
			name, ok := p.(string)
			if !ok {
				return nil, fmt.Errorf("plugin must be a string")
			}
			cfg.Plugins = append(cfg.Plugins, name)
		}
	}

	if aliases, ok := raw["aliases"]; ok {
		m, ok := aliases.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("aliases must be a map")
		}
		for name, cmd := range m {
			value, ok := cmd.(string)
			if !ok {
				return nil, fmt.Errorf("alias %s must be a string", name)
			}
			cfg.Aliases[name] = value
		}
	}

	return cfg, nil
}
