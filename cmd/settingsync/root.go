package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/wizzomafizzo/settingsync/internal/cli"
	"github.com/wizzomafizzo/settingsync/internal/config"
	"github.com/wizzomafizzo/settingsync/internal/logging"
	"github.com/wizzomafizzo/settingsync/internal/storage"
)

// createNewRootCommand creates the main root command that shows help by default.
func createNewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "settingsync",
		Short: "Back up, merge and restore editor settings.json files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Show help when run without subcommands
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringP("dir", "d", "",
		"Directory holding settings.json (default: the directory of the executable)")
	rootCmd.PersistentFlags().String("data-dir", "", "Directory for the log and journal (default: XDG data dir)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(
		createBackupCommand(),
		createMergeCommand(),
		createRestoreCommand(),
		createStatusCommand(),
	)

	return rootCmd
}

// session bundles what a subcommand needs and how to release it.
type session struct {
	ctx     context.Context
	app     *cli.App
	journal *storage.Journal
}

func (s *session) Close() {
	if s.journal == nil {
		return
	}
	if err := s.journal.Close(); err != nil {
		logging.Get(s.ctx).Warn().Err(err).Msg("failed to close journal")
	}
}

// settingsDir returns the --dir flag or the directory of the executable
func settingsDir(cmd *cobra.Command) (string, error) {
	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return "", fmt.Errorf("failed to get dir flag: %w", err)
	}
	if dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
		}
		return abs, nil
	}

	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// newSession loads configuration, logging and the journal for cmd
func newSession(cmd *cobra.Command) (*session, error) {
	dir, err := settingsDir(cmd)
	if err != nil {
		return nil, err
	}
	dataDir, err := cmd.Flags().GetString("data-dir")
	if err != nil {
		return nil, fmt.Errorf("failed to get data-dir flag: %w", err)
	}
	levelName, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get log-level flag: %w", err)
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return nil, err //nolint:wrapcheck // already describes the flag value
	}

	fs := afero.NewOsFs()

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, err := logging.New(parent, fs, logging.Config{
		DataDir:   dataDir,
		ProjectID: dir,
		Level:     level,
	})
	if err != nil {
		return nil, fmt.Errorf("logger init failed: %w", err)
	}

	cfg, err := config.Load(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	s := &session{ctx: ctx}
	opts := cli.Options{Config: cfg, Fs: fs, Out: cmd.OutOrStdout()}

	journal, err := openJournal(ctx, fs, dataDir)
	if err != nil {
		logging.Get(ctx).Warn().Err(err).Msg("journal unavailable, continuing without it")
	} else {
		s.journal = journal
		opts.Journal = journal
	}

	s.app, err = cli.NewApp(opts)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to create app: %w", err)
	}

	logging.Get(ctx).Debug().
		Str("command", cmd.Name()).
		Str("settings", cfg.SettingsPath).
		Msg("starting")

	return s, nil
}

func openJournal(ctx context.Context, fs afero.Fs, dataDir string) (*storage.Journal, error) {
	path, err := storage.NewWithDataDir(fs, dataDir).GetJournalPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get journal path: %w", err)
	}
	journal, err := storage.OpenJournal(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	return journal, nil
}
