package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/hostprep/hostprep/internal/adapters/filesystem"
	"github.com/hostprep/hostprep/internal/adapters/logging"
	"github.com/hostprep/hostprep/internal/app"
	"github.com/hostprep/hostprep/internal/manifest"
	"github.com/hostprep/hostprep/internal/ports"
)

var (
	manifestPath string
	logLevel     string
	logJSON      bool
	noColor      bool

	settings = manifest.DefaultSettings()
)

var rootCmd = &cobra.Command{
	Use:   "hostprep",
	Short: "An idempotent Linux host provisioning engine",
	Long: `Hostprep converges a Linux host toward the state declared in a manifest.

Every step checks the live system first and only applies when the host
diverges, so re-running a manifest is always safe. Packages, cloned
repositories, config files, systemd units, shell configuration, and local
accounts are reconciled in declaration order.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&manifestPath, "manifest", "f", manifest.DefaultPath, "path to the host manifest")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "emit logs as JSON")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable styled output")
}

// loadSettings merges the per-user settings file under the command flags.
// Flags that were set explicitly win.
func loadSettings(cmd *cobra.Command, _ []string) error {
	loaded, err := manifest.LoadSettings(filesystem.NewRealFileSystem(), manifest.SettingsPath)
	if err != nil {
		return err
	}
	settings = loaded

	if logLevel == "" {
		logLevel = settings.LogLevel
	}
	if !cmd.Flags().Changed("log-json") && settings.LogFormat == "json" {
		logJSON = true
	}
	if noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	return nil
}

// newLogger builds the console logger from the resolved flags.
func newLogger() ports.Logger {
	level := ports.LevelInfo
	switch logLevel {
	case "debug":
		level = ports.LevelDebug
	case "warn":
		level = ports.LevelWarn
	case "error":
		level = ports.LevelError
	}

	return logging.NewConsoleLogger(
		logging.WithLevel(level),
		logging.WithJSONFormat(logJSON),
	)
}

// newApp builds the engine, translating an unsupported platform into an
// actionable error.
func newApp() (*app.App, error) {
	a, err := app.New(newLogger(), settings)
	if app.IsUnsupportedPlatform(err) {
		return nil, fmt.Errorf("%w\nhostprep supports Debian, Fedora, Arch, and SUSE family systems", err)
	}
	return a, err
}
