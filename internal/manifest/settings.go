package manifest

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/hostprep/hostprep/internal/ports"
)

// SettingsPath is where per-user engine settings live.
const SettingsPath = "~/.config/hostprep/config.toml"

// Settings holds per-user engine defaults. Command-line flags override
// whatever is loaded here.
type Settings struct {
	ContinueOnError bool   `toml:"continue_on_error"`
	AcceptPartial   bool   `toml:"accept_partial"`
	StepTimeout     string `toml:"step_timeout"`
	LogFormat       string `toml:"log_format"`
	LogLevel        string `toml:"log_level"`
	History         bool   `toml:"history"`
}

// DefaultSettings returns the settings used when no config file exists.
func DefaultSettings() Settings {
	return Settings{
		LogFormat: "text",
		LogLevel:  "info",
		History:   true,
	}
}

// LoadSettings reads the settings file, falling back to defaults when the
// file is missing. A present but malformed file is an error.
func LoadSettings(fs ports.FileSystem, path string) (Settings, error) {
	settings := DefaultSettings()

	data, err := fs.ReadFile(ports.ExpandPath(path))
	if errors.Is(err, os.ErrNotExist) {
		return settings, nil
	}
	if err != nil {
		return settings, fmt.Errorf("read settings: %w", err)
	}

	if err := toml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("parse settings: %w", err)
	}
	if _, err := settings.StepTimeoutDuration(); err != nil {
		return settings, err
	}
	return settings, nil
}

// StepTimeoutDuration parses the configured step timeout. Zero means "use
// the executor default".
func (s Settings) StepTimeoutDuration() (time.Duration, error) {
	if s.StepTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.StepTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid step_timeout %q: %w", s.StepTimeout, err)
	}
	return d, nil
}
