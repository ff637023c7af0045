package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/wizzomafizzo/settingsync/internal/console"
	"github.com/wizzomafizzo/settingsync/internal/prompt"
)

// newPrompter and isInteractive are replaced in tests.
var (
	newPrompter   = prompt.NewLinerPrompter
	isInteractive = func() bool { return console.IsTerminal(os.Stdin) }
)

// activeDir returns the positional argument or asks for it on a terminal
func activeDir(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if !isInteractive() {
		return "", errors.New("merge requires the active file directory")
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = ""
	}

	p := newPrompter()
	defer func() { _ = p.Close() }()

	dir, err := prompt.Directory(p, "Active file directory", cwd)
	if err != nil {
		return "", fmt.Errorf("failed to read directory: %w", err)
	}
	return dir, nil
}

// createMergeCommand creates the merge command.
func createMergeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "merge [active-file-dir]",
		Short: "Merge compiler argument lists from a project's .vscode/settings.json",
		Long: "Find .vscode/settings.json for the given directory and copy its " +
			"C_ARGS_BASE, C_ARGS, CPP_ARGS_BASE and CPP_ARGS task fields into settings.json",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := activeDir(args)
			if err != nil {
				return err
			}

			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			_, err = s.app.Merge(s.ctx, dir)
			return err //nolint:wrapcheck // operation errors are already wrapped
		},
	}
}
