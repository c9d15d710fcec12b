// Package files provides the files provider: steps that write configuration
// files from inline manifest content or download them from a URL.
package files

import (
	"fmt"
	"os"
	"strconv"
)

// Config represents the files section of the manifest.
type Config struct {
	Write []File
}

// File represents one file to put in place. Exactly one of Content or
// SourceURL is set.
type File struct {
	Path      string
	Content   string
	SourceURL string
	Mode      os.FileMode
}

// ParseConfig parses the files configuration from a raw map.
func ParseConfig(raw map[string]interface{}) (*Config, error) {
	cfg := &Config{
		Write: make([]File, 0),
	}

	write, ok := raw["write"]
	if !ok {
		return cfg, nil
	}

	list, ok := write.([]interface{})
	if !ok {
		return nil, fmt.Errorf("write must be a list")
	}

	for _, f := range list {
		entry, ok := f.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("file must be an object")
		}

		file := File{Mode: 0o644}
		if path, ok := entry["path"].(string); ok {
			file.Path = path
		} else {
			return nil, fmt.Errorf("file must have a path")
		}
		if content, ok := entry["content"].(string); ok {
			file.Content = content
		}
		if url, ok := entry["source_url"].(string); ok {
			file.SourceURL = url
		}
		if file.Content != "" && file.SourceURL != "" {
			return nil, fmt.Errorf("file %s: content and source_url are mutually exclusive", file.Path)
		}
		if file.Content == "" && file.SourceURL == "" {
			return nil, fmt.Errorf("file %s: one of content or source_url is required", file.Path)
		}
		if mode, ok := entry["mode"].(string); ok {
			parsed, err := strconv.ParseUint(mode, 8, 32)
			if err != nil {
				return nil, fmt.Errorf("file %s: invalid mode %q", file.Path, mode)
			}
			file.Mode = os.FileMode(parsed)
		}

		cfg.Write = append(cfg.Write, file)
	}

	return cfg, nil
}
