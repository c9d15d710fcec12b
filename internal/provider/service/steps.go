package service

import (
	"fmt"
	"strings"

	"github.com/hostprep/hostprep/internal/domain/step"
	"github.com/hostprep/hostprep/internal/facts"
	"github.com/hostprep/hostprep/internal/ports"
	"github.com/hostprep/hostprep/internal/provider/pkgmgr"
	"github.com/hostprep/hostprep/internal/validation"
)

// EnableStep enables and starts one systemd unit. An active unit is taken
// as already enabled; the engine does not reconcile enabled-but-stopped
// units separately.
type EnableStep struct {
	svc    Service
	id     step.ID
	runner ports.CommandRunner
	prober facts.Prober
}

// NewEnableStep creates a new EnableStep.
func NewEnableStep(svc Service, runner ports.CommandRunner, prober facts.Prober) *EnableStep {
	return &EnableStep{
		svc:    svc,
		id:     step.MustNewID("svc:enable:" + strings.TrimSuffix(svc.Unit, ".service")),
		runner: runner,
		prober: prober,
	}
}

// ID returns the step identifier.
func (s *EnableStep) ID() step.ID {
	return s.id
}

// DependsOn returns the install step for the unit's package when the
// manifest declares one.
func (s *EnableStep) DependsOn() []step.ID {
	if s.svc.Package == "" {
		return nil
	}
	return []step.ID{pkgmgr.StepID(s.svc.Package)}
}

// Check reports satisfied when the unit is currently active.
func (s *EnableStep) Check(ctx step.RunContext) (step.Status, error) {
	if s.prober.ServiceActive(ctx.Context(), s.svc.Unit) {
		return step.StatusSatisfied, nil
	}
	return step.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *EnableStep) Plan(_ step.RunContext) (step.Diff, error) {
	return step.NewDiff(step.DiffTypeAdd, "service", s.svc.Unit, "inactive", "enabled and active"), nil
}

// Apply enables and starts the unit in one systemctl invocation.
func (s *EnableStep) Apply(ctx step.RunContext) error {
	if err := validation.ValidateServiceName(s.svc.Unit); err != nil {
		return fmt.Errorf("invalid unit name: %w", err)
	}

	result, err := s.runner.Run(ctx.Context(), "sudo", "systemctl", "enable", "--now", s.svc.Unit)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("systemctl enable --now %s failed: %s", s.svc.Unit, strings.TrimSpace(result.Stderr))
	}
	return nil
}
