package shellcfg

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/hostprep/hostprep/internal/domain/step"
	"github.com/hostprep/hostprep/internal/facts"
	"github.com/hostprep/hostprep/internal/patch"
	"github.com/hostprep/hostprep/internal/ports"
	"github.com/hostprep/hostprep/internal/validation"
)

// AliasMarker guards the managed alias block. Its presence in the rc file
// means the block was already appended; the block is never rewritten.
const AliasMarker = "# --- hostprep managed aliases ---"

// themeAnchorRe locates the ZSH_THEME assignment to replace.
var themeAnchorRe = regexp.MustCompile(`^ZSH_THEME=`)

// ThemeStep sets the oh-my-zsh theme by replacing the existing ZSH_THEME
// line. A rc file without that line is left alone: the step skips rather
// than guess where an assignment belongs.
type ThemeStep struct {
	rcFile  string
	theme   string
	id      step.ID
	fs      ports.FileSystem
	patcher *patch.Patcher
}

// NewThemeStep creates a new ThemeStep.
func NewThemeStep(rcFile, theme string, fs ports.FileSystem) *ThemeStep {
	return &ThemeStep{
		rcFile:  rcFile,
		theme:   theme,
		id:      step.MustNewID("shell:theme"),
		fs:      fs,
		patcher: patch.New(fs),
	}
}

// ID returns the step identifier.
func (s *ThemeStep) ID() step.ID {
	return s.id
}

// DependsOn returns the step dependencies.
func (s *ThemeStep) DependsOn() []step.ID {
	return nil
}

// Check reports satisfied when the rc file already assigns the theme.
func (s *ThemeStep) Check(_ step.RunContext) (step.Status, error) {
	data, err := s.fs.ReadFile(ports.ExpandPath(s.rcFile))
	if err != nil {
		return step.StatusUnknown, err
	}
	for _, line := range strings.Split(string(data), "\n") {
		if line == s.themeLine() {
			return step.StatusSatisfied, nil
		}
	}
	return step.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *ThemeStep) Plan(_ step.RunContext) (step.Diff, error) {
	return step.NewDiff(step.DiffTypeModify, "shell", s.rcFile, "", s.themeLine()), nil
}

// Apply rewrites the ZSH_THEME line in place.
func (s *ThemeStep) Apply(_ step.RunContext) error {
	_, err := s.patcher.ReplaceLine(s.rcFile, themeAnchorRe, s.themeLine())
	if errors.Is(err, patch.ErrAnchorNotFound) {
		return fmt.Errorf("%w: no ZSH_THEME line in %s", step.ErrSkip, s.rcFile)
	}
	return err
}

func (s *ThemeStep) themeLine() string {
	return fmt.Sprintf("ZSH_THEME=%q", s.theme)
}

// PluginsStep merges plugin names into the rc file's plugins=(...) line.
// Entries already on the line stay where they are; new ones are appended
// in manifest order.
type PluginsStep struct {
	rcFile  string
	plugins []string
	id      step.ID
	fs      ports.FileSystem
}

// NewPluginsStep creates a new PluginsStep.
func NewPluginsStep(rcFile string, plugins []string, fs ports.FileSystem) *PluginsStep {
	return &PluginsStep{
		rcFile:  rcFile,
		plugins: plugins,
		id:      step.MustNewID("shell:plugins"),
		fs:      fs,
	}
}

// ID returns the step identifier.
func (s *PluginsStep) ID() step.ID {
	return s.id
}

// DependsOn returns the step dependencies.
func (s *PluginsStep) DependsOn() []step.ID {
	return nil
}

// Check reports satisfied when every plugin is already listed.
func (s *PluginsStep) Check(_ step.RunContext) (step.Status, error) {
	data, err := s.fs.ReadFile(ports.ExpandPath(s.rcFile))
	if err != nil {
		return step.StatusUnknown, err
	}
	for _, plugin := range s.plugins {
		if !containsPlugin(string(data), plugin) {
			return step.StatusNeedsApply, nil
		}
	}
	return step.StatusSatisfied, nil
}

// Plan returns the diff for this step.
func (s *PluginsStep) Plan(_ step.RunContext) (step.Diff, error) {
	return step.NewDiff(step.DiffTypeModify, "shell", s.rcFile, "", "plugins: "+strings.Join(s.plugins, " ")), nil
}

// Apply merges the plugins and writes the file back atomically, preserving
// its mode.
func (s *PluginsStep) Apply(_ step.RunContext) error {
	path := ports.ExpandPath(s.rcFile)

	data, err := s.fs.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	content := string(data)
	for _, plugin := range s.plugins {
		content = addPlugin(content, plugin)
	}
	if content == string(data) {
		return nil
	}

	mode := os.FileMode(0o644)
	if info, err := s.fs.GetFileInfo(path); err == nil {
		mode = info.Mode.Perm()
	}
	return s.fs.WriteFileAtomic(path, []byte(content), mode)
}

// AliasBlockStep appends a marker-guarded alias block to the rc file.
type AliasBlockStep struct {
	rcFile  string
	aliases map[string]string
	id      step.ID
	fs      ports.FileSystem
	patcher *patch.Patcher
}

// NewAliasBlockStep creates a new AliasBlockStep.
func NewAliasBlockStep(rcFile string, aliases map[string]string, fs ports.FileSystem) *AliasBlockStep {
	return &AliasBlockStep{
		rcFile:  rcFile,
		aliases: aliases,
		id:      step.MustNewID("shell:aliases"),
		fs:      fs,
		patcher: patch.New(fs),
	}
}

// ID returns the step identifier.
func (s *AliasBlockStep) ID() step.ID {
	return s.id
}

// DependsOn returns the step dependencies.
func (s *AliasBlockStep) DependsOn() []step.ID {
	return nil
}

// Check reports satisfied when the marker is already in the rc file.
func (s *AliasBlockStep) Check(_ step.RunContext) (step.Status, error) {
	data, err := s.fs.ReadFile(ports.ExpandPath(s.rcFile))
	if err != nil {
		return step.StatusNeedsApply, nil
	}
	if strings.Contains(string(data), AliasMarker) {
		return step.StatusSatisfied, nil
	}
	return step.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *AliasBlockStep) Plan(_ step.RunContext) (step.Diff, error) {
	return step.NewDiff(step.DiffTypeAdd, "shell", s.rcFile, "", fmt.Sprintf("%d aliases", len(s.aliases))), nil
}

// Apply appends the block unless the marker is present.
func (s *AliasBlockStep) Apply(_ step.RunContext) error {
	_, err := s.patcher.AppendBlock(s.rcFile, AliasMarker, generateAliasBlock(s.aliases))
	return err
}

// generateAliasBlock renders the alias definitions in sorted order.
func generateAliasBlock(aliases map[string]string) string {
	keys := make([]string, 0, len(aliases))
	for k := range aliases {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "alias %s=%q\n", k, aliases[k])
	}
	return b.String()
}

// DefaultShellStep changes the user's login shell with chsh.
type DefaultShellStep struct {
	shell  string
	user   string
	id     step.ID
	runner ports.CommandRunner
	prober facts.Prober
}

// NewDefaultShellStep creates a new DefaultShellStep.
func NewDefaultShellStep(shell, user string, runner ports.CommandRunner, prober facts.Prober) *DefaultShellStep {
	return &DefaultShellStep{
		shell:  shell,
		user:   user,
		id:     step.MustNewID("shell:chsh"),
		runner: runner,
		prober: prober,
	}
}

// ID returns the step identifier.
func (s *DefaultShellStep) ID() step.ID {
	return s.id
}

// DependsOn returns the step dependencies.
func (s *DefaultShellStep) DependsOn() []step.ID {
	return nil
}

// Check compares the user's current login shell against the target.
func (s *DefaultShellStep) Check(ctx step.RunContext) (step.Status, error) {
	if s.prober.CurrentShell(ctx.Context(), s.user) == s.shell {
		return step.StatusSatisfied, nil
	}
	return step.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *DefaultShellStep) Plan(ctx step.RunContext) (step.Diff, error) {
	current := s.prober.CurrentShell(ctx.Context(), s.user)
	return step.NewDiff(step.DiffTypeModify, "shell", s.user, current, s.shell), nil
}

// Apply changes the login shell.
func (s *DefaultShellStep) Apply(ctx step.RunContext) error {
	if err := validation.ValidateShellPath(s.shell); err != nil {
		return fmt.Errorf("invalid shell path: %w", err)
	}

	result, err := s.runner.Run(ctx.Context(), "sudo", "chsh", "-s", s.shell, s.user)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("chsh -s %s failed for %s: %s", s.shell, s.user, strings.TrimSpace(result.Stderr))
	}
	return nil
}
