package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hostprep/hostprep/internal/app"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Converge the host toward the manifest",
	Long: `Apply plans the manifest against live host state and executes every step
that needs action, in declaration order. A failing step halts the run
unless --continue-on-error is set. An interrupt (Ctrl-C) stops the run at
the next step boundary; the step in flight always finishes.`,
	RunE: runApply,
}

var (
	applyDryRun        bool
	applyContinue      bool
	applyAcceptPartial bool
	applyStepTimeout   time.Duration
)

func init() {
	rootCmd.AddCommand(applyCmd)

	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "show what would be applied without making changes")
	applyCmd.Flags().BoolVar(&applyContinue, "continue-on-error", false, "keep going after a failed step")
	applyCmd.Flags().BoolVar(&applyAcceptPartial, "accept-partial", false, "with --continue-on-error, exit 0 even when some steps failed")
	applyCmd.Flags().DurationVar(&applyStepTimeout, "step-timeout", 0, "per-step timeout (default 10m)")
}

func runApply(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine, err := newApp()
	if err != nil {
		return err
	}

	m, err := engine.LoadManifest(manifestPath)
	if err != nil {
		return err
	}

	opts := app.ApplyOptions{
		DryRun:          applyDryRun,
		ContinueOnError: applyContinue || settings.ContinueOnError,
		StepTimeout:     applyStepTimeout,
	}
	if opts.StepTimeout == 0 {
		if d, err := settings.StepTimeoutDuration(); err == nil {
			opts.StepTimeout = d
		}
	}

	report, err := engine.Apply(ctx, m, opts)
	if err != nil {
		return err
	}

	fmt.Fprint(os.Stdout, app.RenderReport(report))

	acceptPartial := applyAcceptPartial || settings.AcceptPartial
	if report.ExitCode(acceptPartial, opts.ContinueOnError) != 0 {
		return fmt.Errorf("provisioning failed: %s", report.Summary())
	}
	return nil
}
