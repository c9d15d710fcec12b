package pkgmgr

import (
	"fmt"

	"github.com/hostprep/hostprep/internal/domain/step"
	"github.com/hostprep/hostprep/internal/facts"
	"github.com/hostprep/hostprep/internal/ports"
	"github.com/hostprep/hostprep/internal/validation"
)

// PackageStep installs one package via the family's package manager.
// The step is named by the logical package name; the family-specific name
// is resolved once at construction.
type PackageStep struct {
	pkg      Package
	family   facts.Family
	resolved string
	id       step.ID
	runner   ports.CommandRunner
	prober   facts.Prober
}

// NewPackageStep creates a new PackageStep.
func NewPackageStep(pkg Package, family facts.Family, runner ports.CommandRunner, prober facts.Prober) *PackageStep {
	return &PackageStep{
		pkg:      pkg,
		family:   family,
		resolved: Resolve(pkg.Name, family),
		id:       step.MustNewID("pkg:install:" + pkg.Name),
		runner:   runner,
		prober:   prober,
	}
}

// StepID returns the ID a package step gets for a logical name, for other
// providers to declare dependencies on.
func StepID(logical string) step.ID {
	return step.MustNewID("pkg:install:" + logical)
}

// ID returns the step identifier.
func (s *PackageStep) ID() step.ID {
	return s.id
}

// DependsOn returns the step dependencies.
func (s *PackageStep) DependsOn() []step.ID {
	return nil
}

// Check queries the live package database.
func (s *PackageStep) Check(ctx step.RunContext) (step.Status, error) {
	if s.prober.PackageInstalled(ctx.Context(), s.resolved) {
		return step.StatusSatisfied, nil
	}
	return step.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *PackageStep) Plan(_ step.RunContext) (step.Diff, error) {
	return step.NewDiff(step.DiffTypeAdd, "package", s.pkg.Name, "", s.resolved), nil
}

// Apply installs the package.
func (s *PackageStep) Apply(ctx step.RunContext) error {
	if err := validation.ValidatePackageName(s.resolved); err != nil {
		return fmt.Errorf("invalid package name: %w", err)
	}

	cmd, args := installCommand(s.family, s.resolved)
	if cmd == "" {
		return fmt.Errorf("no install command for family %q", s.family)
	}

	result, err := s.runner.Run(ctx.Context(), cmd, args...)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("install %s failed: %s", s.resolved, result.Stderr)
	}
	return nil
}
