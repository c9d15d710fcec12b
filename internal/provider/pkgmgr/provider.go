package pkgmgr

import (
	"github.com/hostprep/hostprep/internal/domain/step"
	"github.com/hostprep/hostprep/internal/facts"
	"github.com/hostprep/hostprep/internal/ports"
)

// Provider compiles the packages section into install steps.
type Provider struct {
	runner ports.CommandRunner
	prober facts.Prober
}

// NewProvider creates a new package Provider.
func NewProvider(runner ports.CommandRunner, prober facts.Prober) *Provider {
	return &Provider{runner: runner, prober: prober}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "pkg"
}

// Compile transforms the packages section into executable steps, one per
// package, in declaration order.
func (p *Provider) Compile(ctx step.CompileContext) ([]step.Step, error) {
	raw := ctx.GetSection("packages")
	if raw == nil {
		return nil, nil
	}

	cfg, err := ParseConfig(raw)
	if err != nil {
		return nil, err
	}

	steps := make([]step.Step, 0, len(cfg.Install))
	for _, pkg := range cfg.Install {
		steps = append(steps, NewPackageStep(pkg, ctx.Family(), p.runner, p.prober))
	}

	return steps, nil
}

// Ensure Provider implements step.Provider.
var _ step.Provider = (*Provider)(nil)
