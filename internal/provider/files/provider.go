package files

import (
	"github.com/hostprep/hostprep/internal/domain/step"
	"github.com/hostprep/hostprep/internal/ports"
)

// Provider compiles the files section into write steps.
type Provider struct {
	fs     ports.FileSystem
	runner ports.CommandRunner
}

// NewProvider creates a new files Provider.
func NewProvider(fs ports.FileSystem, runner ports.CommandRunner) *Provider {
	return &Provider{fs: fs, runner: runner}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "file"
}

// Compile transforms the files section into executable steps.
func (p *Provider) Compile(ctx step.CompileContext) ([]step.Step, error) {
	raw := ctx.GetSection("files")
	if raw == nil {
		return nil, nil
	}

	cfg, err := ParseConfig(raw)
	if err != nil {
		return nil, err
	}

	steps := make([]step.Step, 0, len(cfg.Write))
	for _, file := range cfg.Write {
		steps = append(steps, NewWriteStep(file, p.fs, p.runner))
	}

	return steps, nil
}

// Ensure Provider implements step.Provider.
var _ step.Provider = (*Provider)(nil)
