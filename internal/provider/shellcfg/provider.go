package shellcfg

import (
	"os/user"

	"github.com/hostprep/hostprep/internal/domain/step"
	"github.com/hostprep/hostprep/internal/facts"
	"github.com/hostprep/hostprep/internal/ports"
)

// Provider compiles the shell section into rc-file and login-shell steps.
type Provider struct {
	fs     ports.FileSystem
	runner ports.CommandRunner
	prober facts.Prober
}

// NewProvider creates a new shell Provider.
func NewProvider(fs ports.FileSystem, runner ports.CommandRunner, prober facts.Prober) *Provider {
	return &Provider{fs: fs, runner: runner, prober: prober}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "shell"
}

// Compile transforms the shell section into executable steps. Steps appear
// in a fixed order: theme, plugins, aliases, then the login shell change.
func (p *Provider) Compile(ctx step.CompileContext) ([]step.Step, error) {
	raw := ctx.GetSection("shell")
	if raw == nil {
		return nil, nil
	}

	cfg, err := ParseConfig(raw)
	if err != nil {
		return nil, err
	}

	var steps []step.Step
	if cfg.Theme != "" {
		steps = append(steps, NewThemeStep(cfg.RCFile, cfg.Theme, p.fs))
	}
	if len(cfg.Plugins) > 0 {
		steps = append(steps, NewPluginsStep(cfg.RCFile, cfg.Plugins, p.fs))
	}
	if len(cfg.Aliases) > 0 {
		steps = append(steps, NewAliasBlockStep(cfg.RCFile, cfg.Aliases, p.fs))
	}
	if cfg.DefaultShell != "" {
		target := cfg.User
		if target == "" {
			current, err := user.Current()
			if err != nil {
				return nil, err
			}
			target = current.Username
		}
		steps = append(steps, NewDefaultShellStep(cfg.DefaultShell, target, p.runner, p.prober))
	}

	return steps, nil
}

// Ensure Provider implements step.Provider.
var _ step.Provider = (*Provider)(nil)
