package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/wizzomafizzo/settingsync/internal/filesystem"
	"github.com/wizzomafizzo/settingsync/internal/logging"
)

// Status describes the settings files, the merge options and the last
// recorded state of the settings file.
func (a *App) Status(ctx context.Context) (string, error) {
	var status strings.Builder

	// strings.Builder.WriteString never returns error, but satisfying linter
	writeString := func(s string) {
		_, _ = status.WriteString(s)
	}

	writeString("Settings Sync Status:\n")
	writeString("=====================\n\n")

	files := []struct {
		label string
		path  string
	}{
		{label: "Settings file", path: a.config.SettingsPath},
		{label: "Backup file", path: a.config.BackupPath},
		{label: "Default file", path: a.config.DefaultPath},
	}
	for _, file := range files {
		if filesystem.Exists(a.fs, file.path) {
			writeString(fmt.Sprintf("%s: EXISTS\n", file.label))
			writeString(fmt.Sprintf("   Location: %s\n", file.path))
		} else {
			writeString(fmt.Sprintf("%s: NOT FOUND\n", file.label))
			writeString(fmt.Sprintf("   Expected: %s\n", file.path))
		}
	}

	writeString(fmt.Sprintf("\nResolve strategy: %s\n", a.config.Resolve))
	writeString(fmt.Sprintf("Separator: %s\n", a.config.SeparatorName()))

	if a.journal != nil {
		state, err := a.journal.Last(ctx, a.config.SettingsPath)
		if err != nil {
			logging.Get(ctx).Warn().Err(err).Msg("failed to read journal")
			writeString("State: unknown\n")
		} else {
			writeString(fmt.Sprintf("State: %s\n", state))
		}
	}

	return status.String(), nil
}
