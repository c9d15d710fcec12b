package service

import (
	"github.com/hostprep/hostprep/internal/domain/step"
	"github.com/hostprep/hostprep/internal/facts"
	"github.com/hostprep/hostprep/internal/ports"
)

// Provider compiles the services section into enable steps.
type Provider struct {
	runner ports.CommandRunner
	prober facts.Prober
}

// NewProvider creates a new service Provider.
func NewProvider(runner ports.CommandRunner, prober facts.Prober) *Provider {
	return &Provider{runner: runner, prober: prober}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "svc"
}

// Compile transforms the services section into executable steps.
func (p *Provider) Compile(ctx step.CompileContext) ([]step.Step, error) {
	raw := ctx.GetSection("services")
	if raw == nil {
		return nil, nil
	}

	cfg, err := ParseConfig(raw)
	if err != nil {
		return nil, err
	}

	steps := make([]step.Step, 0, len(cfg.Enable))
	for _, svc := range cfg.Enable {
		steps = append(steps, NewEnableStep(svc, p.runner, p.prober))
	}

	return steps, nil
}

// Ensure Provider implements step.Provider.
var _ step.Provider = (*Provider)(nil)
