package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hostprep/hostprep/internal/app"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show outcomes of past runs",
	RunE:  runHistory,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded runs",
	RunE:  runHistoryClear,
}

var historyLimit int

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyClearCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "number of runs to show")
}

func runHistory(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	engine, err := newApp()
	if err != nil {
		return err
	}

	runs, err := engine.History(ctx, historyLimit)
	if err != nil {
		return err
	}

	fmt.Fprint(os.Stdout, app.RenderHistory(runs))
	return nil
}

func runHistoryClear(_ *cobra.Command, _ []string) error {
	engine, err := newApp()
	if err != nil {
		return err
	}
	return engine.ClearHistory(context.Background())
}
