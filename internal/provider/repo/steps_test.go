package repo

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

func gitRunner() *mocks.CommandRunner {
	runner := mocks.NewCommandRunner()
	runner.AddSuccess("git", []string{"--version"}, "git version 2.39.2\n")
	return runner
}

func TestCloneStepID(t *testing.T) {
	t.Parallel()

	s := NewCloneStep(Repository{
		URL:  "https://github.com/romkatv/powerlevel10k.git",
		Dest: "~/.oh-my-zsh/custom/themes/powerlevel10k",
	}, nil, mocks.NewCommandRunner(), mocks.NewProber())

	assert.Equal(t, "repo:clone:powerlevel10k", s.ID().String())
}

func TestCloneStepCheck(t *testing.T) {
	t.Parallel()

	prober := mocks.NewProber()
	prober.AddPath("~/dev/dotfiles")

	existing := NewCloneStep(Repository{URL: "https://example.com/dotfiles.git", Dest: "~/dev/dotfiles"},
		nil, mocks.NewCommandRunner(), prober)
	fresh := NewCloneStep(Repository{URL: "https://example.com/other.git", Dest: "~/dev/other"},
		nil, mocks.NewCommandRunner(), prober)

	status, err := existing.Check(runCtx())
	require.NoError(t, err)
	assert.Equal(t, step.StatusSatisfied, status)

	status, err = fresh.Check(runCtx())
	require.NoError(t, err)
	assert.Equal(t, step.StatusNeedsApply, status)
}

func TestCloneStepApply(t *testing.T) {
	t.Parallel()

	runner := gitRunner()
	runner.AddSuccess("git", []string{"clone", "--depth", "1", "https://example.com/dotfiles.git", "/home/u/dotfiles"}, "")

	s := NewCloneStep(Repository{
		URL:   "https://example.com/dotfiles.git",
		Dest:  "/home/u/dotfiles",
		Depth: 1,
	}, nil, runner, mocks.NewProber())

	require.NoError(t, s.Apply(runCtx()))
	assert.True(t, runner.CalledWith("git", "clone", "--depth", "1"))
}

func TestCloneStepApplyRequiresUsableGit(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddFailure("git", []string{"--version"}, "command not found")

	s := NewCloneStep(Repository{URL: "https://example.com/dotfiles.git", Dest: "/home/u/dotfiles"},
		nil, runner, mocks.NewProber())

	err := s.Apply(runCtx())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "git")
	assert.False(t, runner.CalledWith("git", "clone"))
}

func TestCloneStepApplyRejectsBadURL(t *testing.T) {
	t.Parallel()

	s := NewCloneStep(Repository{URL: "not a url", Dest: "/home/u/x"},
		nil, gitRunner(), mocks.NewProber())

	err := s.Apply(runCtx())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid repository URL")
}

func TestProviderCompileAddsGitDependency(t *testing.T) {
	t.Parallel()

	p := NewProvider(mocks.NewCommandRunner(), mocks.NewProber())
	ctx := step.NewCompileContext(map[string]interface{}{
		"packages": map[string]interface{}{
			"install": []interface{}{"git", "zsh"},
		},
		"repos": map[string]interface{}{
			"clone": []interface{}{
				map[string]interface{}{
					"url":  "https://example.com/dotfiles.git",
					"dest": "~/dev/dotfiles",
				},
			},
		},
	})

	steps, err := p.Compile(ctx)

	require.NoError(t, err)
	require.Len(t, steps, 1)
	require.Len(t, steps[0].DependsOn(), 1)
	assert.Equal(t, "pkg:install:git", steps[0].DependsOn()[0].String())
}

func TestProviderCompileNoGitNoDependency(t *testing.T) {
	t.Parallel()

	p := NewProvider(mocks.NewCommandRunner(), mocks.NewProber())
	ctx := step.NewCompileContext(map[string]interface{}{
		"repos": map[string]interface{}{
			"clone": []interface{}{
				map[string]interface{}{
					"url":  "https://example.com/dotfiles.git",
					"dest": "~/dev/dotfiles",
				},
			},
		},
	})

	steps, err := p.Compile(ctx)

	require.NoError(t, err)
	require.Len(t, steps, 1)
	assert.Empty(t, steps[0].DependsOn())
}
