package files

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hostprep/hostprep/internal/domain/step"
	"github.com/hostprep/hostprep/internal/ports"
	"github.com/hostprep/hostprep/internal/validation"
)

// WriteStep puts one file in place.
//
// Idempotency policy differs by source: inline-content files are compared
// byte for byte and rewritten when they drift; URL-sourced files are
// existence-checked only, since the remote content is unknowable without
// fetching it.
type WriteStep struct {
	file   File
	id     step.ID
	fs     ports.FileSystem
	runner ports.CommandRunner
}

// NewWriteStep creates a new WriteStep.
func NewWriteStep(file File, fs ports.FileSystem, runner ports.CommandRunner) *WriteStep {
	name := strings.TrimPrefix(filepath.ToSlash(file.Path), "~/")
	name = strings.TrimPrefix(name, "/")
	return &WriteStep{
		file:   file,
		id:     step.MustNewID("file:write:" + strings.ReplaceAll(name, "/", "-")),
		fs:     fs,
		runner: runner,
	}
}

// ID returns the step identifier.
func (s *WriteStep) ID() step.ID {
	return s.id
}

// DependsOn returns the step dependencies.
func (s *WriteStep) DependsOn() []step.ID {
	return nil
}

// Check compares the target against the desired state.
func (s *WriteStep) Check(_ step.RunContext) (step.Status, error) {
	path := ports.ExpandPath(s.file.Path)

	if !s.fs.Exists(path) {
		return step.StatusNeedsApply, nil
	}
	if s.file.SourceURL != "" {
		return step.StatusSatisfied, nil
	}

	existing, err := s.fs.ReadFile(path)
	if err != nil {
		return step.StatusUnknown, err
	}
	if bytes.Equal(existing, []byte(s.file.Content)) {
		return step.StatusSatisfied, nil
	}
	return step.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *WriteStep) Plan(_ step.RunContext) (step.Diff, error) {
	source := "inline content"
	if s.file.SourceURL != "" {
		source = s.file.SourceURL
	}
	return step.NewDiff(step.DiffTypeAdd, "file", s.file.Path, "", source), nil
}

// Apply writes or downloads the file. Writes are atomic; downloads land in
// a staging path and are renamed into place.
func (s *WriteStep) Apply(ctx step.RunContext) error {
	path := ports.ExpandPath(s.file.Path)

	if err := s.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create parent directory: %w", err)
	}

	if s.file.SourceURL == "" {
		return s.fs.WriteFileAtomic(path, []byte(s.file.Content), s.file.Mode)
	}

	if err := validation.ValidateURL(s.file.SourceURL); err != nil {
		return fmt.Errorf("invalid source URL: %w", err)
	}

	staging := path + ".download"
	result, err := s.runner.Run(ctx.Context(), "curl", "-fsSL", "-o", staging, s.file.SourceURL)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("download %s failed: %s", s.file.SourceURL, strings.TrimSpace(result.Stderr))
	}
	// curl creates the staging file with umask defaults; the declared mode
	// must hold before the file lands at its destination.
	if err := s.fs.Chmod(staging, s.file.Mode); err != nil {
		return fmt.Errorf("set mode on download: %w", err)
	}
	if err := s.fs.Rename(staging, path); err != nil {
		return fmt.Errorf("move download into place: %w", err)
	}
	return nil
}
