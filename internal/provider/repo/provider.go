package repo

import (
	"github.com/hostprep/hostprep/internal/domain/step"
	"github.com/hostprep/hostprep/internal/facts"
	"github.com/hostprep/hostprep/internal/ports"
	"github.com/hostprep/hostprep/internal/provider/pkgmgr"
)

// Provider compiles the repos section into clone steps.
type Provider struct {
	runner ports.CommandRunner
	prober facts.Prober
}

// NewProvider creates a new repo Provider.
func NewProvider(runner ports.CommandRunner, prober facts.Prober) *Provider {
	return &Provider{runner: runner, prober: prober}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "repo"
}

// Compile transforms the repos section into executable steps. When the
// manifest also installs git, every clone step depends on that install so
// a fresh host gets git before the first clone.
func (p *Provider) Compile(ctx step.CompileContext) ([]step.Step, error) {
	raw := ctx.GetSection("repos")
	if raw == nil {
		return nil, nil
	}

	cfg, err := ParseConfig(raw)
	if err != nil {
		return nil, err
	}

	var deps []step.ID
	if manifestInstallsGit(ctx) {
		deps = []step.ID{pkgmgr.StepID("git")}
	}

	steps := make([]step.Step, 0, len(cfg.Clone))
	for _, repo := range cfg.Clone {
		steps = append(steps, NewCloneStep(repo, deps, p.runner, p.prober))
	}

	return steps, nil
}

// manifestInstallsGit reports whether the packages section lists git.
func manifestInstallsGit(ctx step.CompileContext) bool {
	raw := ctx.GetSection("packages")
	if raw == nil {
		return false
	}
	cfg, err := pkgmgr.ParseConfig(raw)
	if err != nil {
		return false
	}
	for _, pkg := range cfg.Install {
		if pkg.Name == "git" {
			return true
		}
	}
	return false
}

// Ensure Provider implements step.Provider.
var _ step.Provider = (*Provider)(nil)
