// Package repo provides the repository provider: steps that clone git
// repositories to fixed destinations (shell frameworks, prompt themes,
// editor configurations).
package repo

import (
	"fmt"
)

// Config represents the repos section of the manifest.
type Config struct {
	Clone []Repository
}

// Repository represents one repository to clone.
type Repository struct {
	URL    string
	Dest   string
	Branch string // optional
	Depth  int    // optional, 0 means full clone
}

// ParseConfig parses the repos configuration from a raw map.
func ParseConfig(raw map[string]interface{}) (*Config, error) {
	cfg := &Config{
		Clone: make([]Repository, 0),
	}

	clone, ok := raw["clone"]
	if !ok {
		return cfg, nil
	}

	list, ok := clone.([]interface{})
	if !ok {
		return nil, fmt.Errorf("clone must be a list")
	}

	for _, r := range list {
		entry, ok := r.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("repository must be an object")
		}

		repo := Repository{}
		if url, ok := entry["url"].(string); ok {
			repo.URL = url
		} else {
			return nil, fmt.Errorf("repository must have a url")
		}
		if dest, ok := entry["dest"].(string); ok {
			repo.Dest = dest
		} else {
			return nil, fmt.Errorf("repository must have a dest")
		}
		if branch, ok := entry["branch"].(string); ok {
			repo.Branch = branch
		}
		if depth, ok := entry["depth"].(int); ok {
			repo.Depth = depth
		}

		cfg.Clone = append(cfg.Clone, repo)
	}

	return cfg, nil
}
