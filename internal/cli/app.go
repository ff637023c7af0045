// Package cli implements the backup, merge, restore and status operations.
package cli

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/wizzomafizzo/settingsync/internal/config"
	"github.com/wizzomafizzo/settingsync/internal/console"
	"github.com/wizzomafizzo/settingsync/internal/logging"
	"github.com/wizzomafizzo/settingsync/internal/storage"
)

// Operation names recorded in the journal.
const (
	OperationBackup  = "backup"
	OperationMerge   = "merge"
	OperationRestore = "restore"
)

// Recorder stores document state transitions.
type Recorder interface {
	Record(ctx context.Context, settingsPath, operation string, state storage.State) (*storage.Entry, error)
	Last(ctx context.Context, settingsPath string) (storage.State, error)
}

// Options contains everything an App needs.
type Options struct {
	Config *config.Config
	Fs     afero.Fs
	Out    io.Writer
	// Journal is optional; operations run the same without one.
	Journal Recorder
}

// App runs settings operations against one configuration.
type App struct {
	config  *config.Config
	fs      afero.Fs
	printer *console.Printer
	journal Recorder
}

// NewApp creates an App. Fs defaults to the OS filesystem and Out to stdout.
func NewApp(opts Options) (*App, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, err //nolint:wrapcheck // validation errors are descriptive
	}

	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	return &App{
		config:  opts.Config,
		fs:      fs,
		printer: console.NewPrinter(out),
		journal: opts.Journal,
	}, nil
}

// Config returns the configuration the App runs with.
func (a *App) Config() *config.Config {
	return a.config
}

// record writes a journal entry. Journal failures never fail an operation.
func (a *App) record(ctx context.Context, operation string, state storage.State) {
	if a.journal == nil {
		return
	}
	if _, err := a.journal.Record(ctx, a.config.SettingsPath, operation, state); err != nil {
		logging.Get(ctx).Warn().Err(err).
			Str("operation", operation).
			Msg("failed to record journal entry")
	}
}
