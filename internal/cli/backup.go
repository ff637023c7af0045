package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/wizzomafizzo/settingsync/internal/logging"
	"github.com/wizzomafizzo/settingsync/internal/settings"
	"github.com/wizzomafizzo/settingsync/internal/storage"
)

// Backup copies the settings file to the backup file, replacing any earlier
// backup. A missing settings file is reported and is not an error.
func (a *App) Backup(ctx context.Context) error {
	logger := logging.Get(ctx)

	err := settings.CreateBackupWithFS(a.fs, a.config.SettingsPath, a.config.BackupPath)
	if errors.Is(err, settings.ErrMissingFile) {
		logger.Warn().Str("path", a.config.SettingsPath).Msg("settings file missing, nothing to back up")
		a.printer.Error("%s not found.", filepath.Base(a.config.SettingsPath))
		return nil
	}
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	logger.Info().
		Str("settings", a.config.SettingsPath).
		Str("backup", a.config.BackupPath).
		Msg("settings backed up")
	a.printer.Success("Settings backed up successfully.")
	a.record(ctx, OperationBackup, storage.StateBackedUp)
	return nil
}
