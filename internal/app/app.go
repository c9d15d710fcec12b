// Package app wires adapters, providers, planner, and executor into the
// engine behind the CLI.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hostprep/hostprep/internal/adapters/command"
	"github.com/hostprep/hostprep/internal/adapters/filesystem"
	"github.com/hostprep/hostprep/internal/domain/execution"
	"github.com/hostprep/hostprep/internal/domain/step"
	"github.com/hostprep/hostprep/internal/facts"
	"github.com/hostprep/hostprep/internal/history"
	"github.com/hostprep/hostprep/internal/manifest"
	"github.com/hostprep/hostprep/internal/ports"
	"github.com/hostprep/hostprep/internal/provider/account"
	"github.com/hostprep/hostprep/internal/provider/files"
	"github.com/hostprep/hostprep/internal/provider/pkgmgr"
	"github.com/hostprep/hostprep/internal/provider/repo"
	"github.com/hostprep/hostprep/internal/provider/service"
	"github.com/hostprep/hostprep/internal/provider/shellcfg"
)

// App is the provisioning engine: it loads a manifest, compiles it into a
// step graph for the detected OS family, and plans or applies it.
type App struct {
	fs          ports.FileSystem
	runner      ports.CommandRunner
	logger      ports.Logger
	prober      facts.Prober
	family      facts.Family
	builder     *step.Builder
	settings    manifest.Settings
	historyPath string
}

// Option configures the App.
type Option func(*App)

// WithFileSystem overrides the filesystem adapter.
func WithFileSystem(fs ports.FileSystem) Option {
	return func(a *App) { a.fs = fs }
}

// WithCommandRunner overrides the command runner adapter.
func WithCommandRunner(runner ports.CommandRunner) Option {
	return func(a *App) { a.runner = runner }
}

// WithHistoryPath overrides where run history is stored.
func WithHistoryPath(path string) Option {
	return func(a *App) { a.historyPath = path }
}

// New creates an App for the host it runs on. Detection of an unsupported
// OS family is fatal: no provider can compile meaningful steps without one.
func New(logger ports.Logger, settings manifest.Settings, opts ...Option) (*App, error) {
	a := &App{
		fs:          filesystem.NewRealFileSystem(),
		runner:      command.NewRealRunner(),
		logger:      logger,
		settings:    settings,
		historyPath: history.DefaultPath,
	}
	for _, opt := range opts {
		opt(a)
	}

	family, err := facts.DetectFamily(a.fs)
	if err != nil {
		return nil, err
	}
	a.family = family
	a.prober = facts.NewSystemProber(family, a.runner, a.fs)

	a.builder = step.NewBuilder()
	a.builder.RegisterProvider(pkgmgr.NewProvider(a.runner, a.prober))
	a.builder.RegisterProvider(repo.NewProvider(a.runner, a.prober))
	a.builder.RegisterProvider(files.NewProvider(a.fs, a.runner))
	a.builder.RegisterProvider(service.NewProvider(a.runner, a.prober))
	a.builder.RegisterProvider(shellcfg.NewProvider(a.fs, a.runner, a.prober))
	a.builder.RegisterProvider(account.NewProvider(a.runner, a.fs, a.prober))

	return a, nil
}

// Family returns the detected OS family.
func (a *App) Family() facts.Family {
	return a.family
}

// LoadManifest reads and parses the manifest at path.
func (a *App) LoadManifest(path string) (*manifest.Manifest, error) {
	return manifest.Load(a.fs, path)
}

// compile builds the validated step graph for a manifest.
func (a *App) compile(m *manifest.Manifest) (*step.Graph, error) {
	sections := make(map[string]interface{}, len(m.Sections))
	for name, section := range m.Sections {
		sections[name] = section
	}

	compileCtx := step.NewCompileContext(sections).WithFamily(a.family)
	graph, err := a.builder.Build(compileCtx)
	if err != nil {
		return nil, fmt.Errorf("compile manifest: %w", err)
	}
	return graph, nil
}

// Plan compiles the manifest and checks every step against live host facts.
func (a *App) Plan(ctx context.Context, m *manifest.Manifest) (*execution.Plan, error) {
	graph, err := a.compile(m)
	if err != nil {
		return nil, err
	}

	a.logger.Debug(ctx, "planning", ports.F("steps", graph.Len()), ports.F("family", string(a.family)))
	return execution.NewPlanner().Plan(ctx, graph)
}

// ApplyOptions control one apply run.
type ApplyOptions struct {
	DryRun          bool
	ContinueOnError bool
	StepTimeout     time.Duration
}

// Apply plans and executes the manifest, then records the run.
func (a *App) Apply(ctx context.Context, m *manifest.Manifest, opts ApplyOptions) (execution.Report, error) {
	plan, err := a.Plan(ctx, m)
	if err != nil {
		return execution.Report{}, err
	}

	executor := execution.NewExecutor().
		WithDryRun(opts.DryRun).
		WithContinueOnError(opts.ContinueOnError).
		WithStepTimeout(opts.StepTimeout)

	started := time.Now()
	results := executor.Execute(ports.ContextWithLogger(ctx, a.logger), plan)
	report := execution.NewReport(results)

	if a.settings.History && !opts.DryRun {
		a.recordRun(ctx, m, report, started, opts.DryRun)
	}

	return report, nil
}

// recordRun persists the run outcome. History failures are logged and
// swallowed: a run that changed the host must not fail because a local
// database write did.
func (a *App) recordRun(ctx context.Context, m *manifest.Manifest, report execution.Report, started time.Time, dryRun bool) {
	store, err := history.Open(a.historyPath)
	if err != nil {
		a.logger.Warn(ctx, "history unavailable", ports.F("error", err.Error()))
		return
	}
	defer store.Close()

	run := history.RunRecord{
		ID:         history.NewRunID(),
		Manifest:   m.Name,
		StartedAt:  started,
		FinishedAt: time.Now(),
		DryRun:     dryRun,
		Applied:    report.Applied(),
		Skipped:    report.Skipped(),
		Failed:     report.Failed(),
		Success:    report.Success(),
	}

	results := report.Results()
	steps := make([]history.StepRecord, 0, len(results))
	for i := range results {
		steps = append(steps, history.StepRecord{
			StepID:   results[i].StepID().String(),
			Status:   string(results[i].Status()),
			Detail:   results[i].Detail(),
			Duration: results[i].Duration(),
		})
	}

	recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := store.RecordRun(recordCtx, run, steps); err != nil {
		a.logger.Warn(ctx, "history write failed", ports.F("error", err.Error()))
	}
}

// History returns the most recent recorded runs.
func (a *App) History(ctx context.Context, limit int) ([]history.RunRecord, error) {
	store, err := history.Open(a.historyPath)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.RecentRuns(ctx, limit)
}

// ClearHistory deletes all recorded runs.
func (a *App) ClearHistory(ctx context.Context) error {
	store, err := history.Open(a.historyPath)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Clear(ctx)
}

// IsUnsupportedPlatform reports whether err is the fatal unsupported-OS
// detection error.
func IsUnsupportedPlatform(err error) bool {
	var unsupported *facts.UnsupportedPlatformError
	return errors.As(err, &unsupported)
}
