package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/wizzomafizzo/settingsync/internal/filesystem"
	"github.com/wizzomafizzo/settingsync/internal/logging"
	"github.com/wizzomafizzo/settingsync/internal/settings"
	"github.com/wizzomafizzo/settingsync/internal/storage"
)

// Restore copies the backup over the settings file and deletes the backup.
// Without a backup the default settings file is copied instead and nothing
// is deleted. It fails when neither file exists.
func (a *App) Restore(ctx context.Context) error {
	logger := logging.Get(ctx)

	err := settings.RestoreFromBackupWithFS(a.fs, a.config.BackupPath, a.config.SettingsPath)
	if errors.Is(err, settings.ErrMissingFile) {
		return a.restoreDefault(ctx)
	}
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}
	a.printer.Success("Settings restored successfully.")

	if err := filesystem.Remove(a.fs, a.config.BackupPath); err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}
	a.printer.Info("Backup file deleted.")

	logger.Info().
		Str("backup", a.config.BackupPath).
		Str("settings", a.config.SettingsPath).
		Msg("settings restored from backup")
	a.record(ctx, OperationRestore, storage.StateRestoredFromBackup)
	return nil
}

func (a *App) restoreDefault(ctx context.Context) error {
	a.printer.Warn("%s not found, using %s.",
		filepath.Base(a.config.BackupPath), filepath.Base(a.config.DefaultPath))

	err := settings.RestoreFromBackupWithFS(a.fs, a.config.DefaultPath, a.config.SettingsPath)
	if err != nil {
		return fmt.Errorf("restore from default failed: %w", err)
	}

	logging.Get(ctx).Info().
		Str("default", a.config.DefaultPath).
		Str("settings", a.config.SettingsPath).
		Msg("settings restored from default")
	a.printer.Success("Settings restored successfully.")
	a.record(ctx, OperationRestore, storage.StateRestoredFromDefault)
	return nil
}
