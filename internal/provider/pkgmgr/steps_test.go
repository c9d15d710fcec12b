package pkgmgr

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostprep/hostprep/internal/domain/step"
	"github.com/hostprep/hostprep/internal/facts"
	"github.com/hostprep/hostprep/internal/testutil/mocks"
)

func runCtx() step.RunContext {
	return step.NewRunContext(context.Background())
}

func TestPackageStepCheck(t *testing.T) {
	t.Parallel()

	prober := mocks.NewProber()
	prober.AddPackage("fd-find")

	installed := NewPackageStep(Package{Name: "fd"}, facts.FamilyDebian, mocks.NewCommandRunner(), prober)
	missing := NewPackageStep(Package{Name: "htop"}, facts.FamilyDebian, mocks.NewCommandRunner(), prober)

	status, err := installed.Check(runCtx())
	require.NoError(t, err)
	assert.Equal(t, step.StatusSatisfied, status)

	status, err = missing.Check(runCtx())
	require.NoError(t, err)
	assert.Equal(t, step.StatusNeedsApply, status)
}

func TestPackageStepApply(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddSuccess("sudo", []string{"apt-get", "install", "-y", "fd-find"}, "")

	s := NewPackageStep(Package{Name: "fd"}, facts.FamilyDebian, runner, mocks.NewProber())

	require.NoError(t, s.Apply(runCtx()))
	assert.True(t, runner.CalledWith("sudo", "apt-get", "install", "-y", "fd-find"))
}

func TestPackageStepApplyFailure(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddFailure("sudo", []string{"dnf", "install", "-y", "htop"}, "No match for argument: htop")

	s := NewPackageStep(Package{Name: "htop"}, facts.FamilyFedora, runner, mocks.NewProber())

	err := s.Apply(runCtx())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No match for argument")
}

func TestPackageStepRejectsBadName(t *testing.T) {
	t.Parallel()

	s := NewPackageStep(Package{Name: "htop; rm -rf /"}, facts.FamilyDebian, mocks.NewCommandRunner(), mocks.NewProber())

	err := s.Apply(runCtx())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid package name")
}

func TestProviderCompile(t *testing.T) {
	t.Parallel()

	p := NewProvider(mocks.NewCommandRunner(), mocks.NewProber())
	ctx := step.NewCompileContext(map[string]interface{}{
		"packages": map[string]interface{}{
			"install": []interface{}{"git", "curl", map[string]interface{}{"name": "fd"}},
		},
	}).WithFamily(facts.FamilyDebian)

	steps, err := p.Compile(ctx)

	require.NoError(t, err)
	require.Len(t, steps, 3)
	assert.Equal(t, "pkg:install:git", steps[0].ID().String())
	assert.Equal(t, "pkg:install:curl", steps[1].ID().String())
	assert.Equal(t, "pkg:install:fd", steps[2].ID().String())
}

func TestProviderCompileNoSection(t *testing.T) {
	t.Parallel()

	p := NewProvider(mocks.NewCommandRunner(), mocks.NewProber())
	steps, err := p.Compile(step.NewCompileContext(map[string]interface{}{}))

	require.NoError(t, err)
	assert.Empty(t, steps)
}
