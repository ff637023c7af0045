package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/wizzomafizzo/settingsync/internal/filesystem"
	"github.com/wizzomafizzo/settingsync/internal/logging"
	"github.com/wizzomafizzo/settingsync/internal/merge"
	"github.com/wizzomafizzo/settingsync/internal/project"
	"github.com/wizzomafizzo/settingsync/internal/settings"
	"github.com/wizzomafizzo/settingsync/internal/storage"
)

// Merge locates the custom settings file for startDir and copies its
// argument fields into the settings file. When no custom file can be found
// the condition is reported, the settings file is left alone and nil is
// returned. Malformed documents are returned as errors.
func (a *App) Merge(ctx context.Context, startDir string) (*merge.Report, error) {
	logger := logging.Get(ctx)

	resolver, err := project.NewResolver(a.fs, a.config.Resolve)
	if err != nil {
		return nil, fmt.Errorf("merge failed: %w", err)
	}

	customPath, err := resolver.Resolve(startDir)
	if errors.Is(err, project.ErrCustomNotFound) {
		logger.Warn().Str("start_dir", startDir).Str("strategy", a.config.Resolve).Msg("no custom settings found")
		a.printer.Warn("settings.json file does not exist in the .vscode directory. Exiting.")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("merge failed: %w", err)
	}
	logger.Debug().Str("custom", customPath).Msg("resolved custom settings")

	custom, err := settings.LoadFromFileWithFS(a.fs, customPath)
	if errors.Is(err, settings.ErrMissingFile) {
		a.printer.Warn("settings.json file does not exist in %s. Exiting.", filepath.Dir(customPath))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("merge failed: %w", err)
	}

	// Same file: merge in place on the one decoded copy.
	target := custom
	if !filesystem.SamePath(customPath, a.config.SettingsPath) {
		target, err = settings.LoadFromFileWithFS(a.fs, a.config.SettingsPath)
		if errors.Is(err, settings.ErrMissingFile) {
			a.printer.Warn("%s not found.", a.config.SettingsPath)
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("merge failed: %w", err)
		}
	}

	report, err := merge.New(a.config.Separator).Merge(ctx, target, custom)
	if err != nil {
		return nil, fmt.Errorf("merge failed: %w", err)
	}

	for _, key := range report.Skipped {
		a.printer.Warn("%s is not defined in custom settings. Skipping merging.", key)
	}

	err = settings.SaveToFileWithFS(a.fs, target, a.config.SettingsPath, a.config.Indent)
	if err != nil {
		return nil, fmt.Errorf("merge failed: %w", err)
	}

	logger.Info().
		Str("custom", customPath).
		Str("settings", a.config.SettingsPath).
		Strs("merged", report.Merged).
		Strs("skipped", report.Skipped).
		Msg("settings merged")
	a.printer.Success("Settings merged successfully!")
	a.record(ctx, OperationMerge, storage.StateMerged)

	return report, nil
}
