package account

import (
	"github.com/hostprep/hostprep/internal/domain/step"
	"github.com/hostprep/hostprep/internal/facts"
	"github.com/hostprep/hostprep/internal/ports"
)

// Provider compiles the accounts section into user, group, and sudoers
// steps.
type Provider struct {
	runner ports.CommandRunner
	fs     ports.FileSystem
	prober facts.Prober
}

// NewProvider creates a new account Provider.
func NewProvider(runner ports.CommandRunner, fs ports.FileSystem, prober facts.Prober) *Provider {
	return &Provider{runner: runner, fs: fs, prober: prober}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "acct"
}

// Compile transforms the accounts section into executable steps. Group and
// sudoers steps depend on their user's creation step.
func (p *Provider) Compile(ctx step.CompileContext) ([]step.Step, error) {
	raw := ctx.GetSection("accounts")
	if raw == nil {
		return nil, nil
	}

	cfg, err := ParseConfig(raw)
	if err != nil {
		return nil, err
	}

	var steps []step.Step
	for _, user := range cfg.Users {
		steps = append(steps, NewUserStep(user, p.runner, p.prober))
		for _, group := range user.Groups {
			steps = append(steps, NewGroupStep(user.Name, group, p.runner, p.prober))
		}
		if user.SudoNoPasswd {
			steps = append(steps, NewSudoersStep(user.Name, p.runner, p.fs))
		}
	}

	return steps, nil
}

// Ensure Provider implements step.Provider.
var _ step.Provider = (*Provider)(nil)
