package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hostprep/hostprep/internal/adapters/command"
	"github.com/hostprep/hostprep/internal/facts"
)

var factsCmd = &cobra.Command{
	Use:   "facts",
	Short: "Show what hostprep detects about this host",
	RunE:  runFacts,
}

func init() {
	rootCmd.AddCommand(factsCmd)
}

func runFacts(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	engine, err := newApp()
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "family: %s\n", engine.Family())

	runner := command.NewRealRunner()
	if version := facts.GitVersion(ctx, runner); version != "" {
		usable := "no"
		if facts.GitUsable(ctx, runner) {
			usable = "yes"
		}
		fmt.Fprintf(os.Stdout, "git: %s (usable: %s, minimum %s)\n", version, usable, facts.MinGitVersion)
	} else {
		fmt.Fprintln(os.Stdout, "git: not found")
	}

	return nil
}
