package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostprep/hostprep/internal/domain/step"
	"github.com/hostprep/hostprep/internal/testutil/mocks"
)

func runCtx() step.RunContext {
	return step.NewRunContext(context.Background())
}

func TestEnableStepCheck(t *testing.T) {
	t.Parallel()

	prober := mocks.NewProber()
	prober.AddService("sshd")

	active := NewEnableStep(Service{Unit: "sshd"}, mocks.NewCommandRunner(), prober)
	inactive := NewEnableStep(Service{Unit: "fail2ban"}, mocks.NewCommandRunner(), prober)

	status, err := active.Check(runCtx())
	require.NoError(t, err)
	assert.Equal(t, step.StatusSatisfied, status)

	status, err = inactive.Check(runCtx())
	require.NoError(t, err)
	assert.Equal(t, step.StatusNeedsApply, status)
}

func TestEnableStepApply(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddSuccess("sudo", []string{"systemctl", "enable", "--now", "fail2ban"}, "")

	s := NewEnableStep(Service{Unit: "fail2ban"}, runner, mocks.NewProber())

	require.NoError(t, s.Apply(runCtx()))
	assert.True(t, runner.CalledWith("sudo", "systemctl", "enable", "--now", "fail2ban"))
}

func TestEnableStepApplyFailure(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddFailure("sudo", []string{"systemctl", "enable", "--now", "nosuch"}, "Unit nosuch.service not found.")

	s := NewEnableStep(Service{Unit: "nosuch"}, runner, mocks.NewProber())

	err := s.Apply(runCtx())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestEnableStepDependsOnPackage(t *testing.T) {
	t.Parallel()

	with := NewEnableStep(Service{Unit: "docker", Package: "docker"}, mocks.NewCommandRunner(), mocks.NewProber())
	without := NewEnableStep(Service{Unit: "sshd"}, mocks.NewCommandRunner(), mocks.NewProber())

	require.Len(t, with.DependsOn(), 1)
	assert.Equal(t, "pkg:install:docker", with.DependsOn()[0].String())
	assert.Empty(t, without.DependsOn())
}

func TestEnableStepIDStripsUnitSuffix(t *testing.T) {
	t.Parallel()

	s := NewEnableStep(Service{Unit: "tailscaled.service"}, mocks.NewCommandRunner(), mocks.NewProber())

	assert.Equal(t, "svc:enable:tailscaled", s.ID().String())
}

func TestProviderCompile(t *testing.T) {
	t.Parallel()

	p := NewProvider(mocks.NewCommandRunner(), mocks.NewProber())
	ctx := step.NewCompileContext(map[string]interface{}{
		"services": map[string]interface{}{
			"enable": []interface{}{
				"sshd",
				map[string]interface{}{"unit": "docker", "package": "docker"},
			},
		},
	})

	steps, err := p.Compile(ctx)

	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, "svc:enable:sshd", steps[0].ID().String())
	assert.Equal(t, "svc:enable:docker", steps[1].ID().String())
}
