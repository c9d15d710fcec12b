package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hostprep/hostprep/internal/app"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show what apply would change without touching the host",
	RunE:  runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	engine, err := newApp()
	if err != nil {
		return err
	}

	m, err := engine.LoadManifest(manifestPath)
	if err != nil {
		return err
	}

	plan, err := engine.Plan(ctx, m)
	if err != nil {
		return err
	}

	fmt.Fprint(os.Stdout, app.RenderPlan(plan))
	return nil
}
