package repo

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/hostprep/hostprep/internal/domain/step"
	"github.com/hostprep/hostprep/internal/facts"
	"github.com/hostprep/hostprep/internal/ports"
	"github.com/hostprep/hostprep/internal/validation"
)

// CloneStep clones a git repository to a destination directory.
// Existence of the destination is the idempotency check; the engine does
// not fetch or fast-forward an existing clone.
type CloneStep struct {
	repo   Repository
	id     step.ID
	deps   []step.ID
	runner ports.CommandRunner
	prober facts.Prober
}

// NewCloneStep creates a new CloneStep.
func NewCloneStep(repo Repository, deps []step.ID, runner ports.CommandRunner, prober facts.Prober) *CloneStep {
	name := strings.TrimSuffix(path.Base(repo.URL), ".git")
	return &CloneStep{
		repo:   repo,
		id:     step.MustNewID("repo:clone:" + name),
		deps:   deps,
		runner: runner,
		prober: prober,
	}
}

// ID returns the step identifier.
func (s *CloneStep) ID() step.ID {
	return s.id
}

// DependsOn returns the step dependencies.
func (s *CloneStep) DependsOn() []step.ID {
	return s.deps
}

// Check reports satisfied when the destination directory already exists.
func (s *CloneStep) Check(_ step.RunContext) (step.Status, error) {
	if s.prober.PathExists(s.repo.Dest) {
		return step.StatusSatisfied, nil
	}
	return step.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *CloneStep) Plan(_ step.RunContext) (step.Diff, error) {
	return step.NewDiff(step.DiffTypeAdd, "repo", s.repo.Dest, "", s.repo.URL), nil
}

// Apply clones the repository. Network and auth failures from git are
// surfaced verbatim; no retries.
func (s *CloneStep) Apply(ctx step.RunContext) error {
	if err := validation.ValidateURL(s.repo.URL); err != nil {
		return fmt.Errorf("invalid repository URL: %w", err)
	}
	if !facts.GitUsable(ctx.Context(), s.runner) {
		return fmt.Errorf("git %s or newer is required to clone %s", facts.MinGitVersion, s.repo.URL)
	}

	args := []string{"clone"}
	if s.repo.Depth > 0 {
		args = append(args, "--depth", strconv.Itoa(s.repo.Depth))
	}
	if s.repo.Branch != "" {
		args = append(args, "--branch", s.repo.Branch)
	}
	args = append(args, s.repo.URL, ports.ExpandPath(s.repo.Dest))

	result, err := s.runner.Run(ctx.Context(), "git", args...)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("git clone %s failed: %s", s.repo.URL, strings.TrimSpace(result.Stderr))
	}
	return nil
}
